package member

import "time"

// MemberResponse represents a member in API responses.
type MemberResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

// GroupResponse represents a group in API responses.
type GroupResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	BuiltIn bool   `json:"built_in"`
}

// ToResponse maps a member to its API shape. Email is only included for the
// member's own profile.
func ToResponse(m Member, includeEmail bool) MemberResponse {
	resp := MemberResponse{
		ID:        m.ID,
		Username:  m.Username,
		IsAdmin:   m.IsAdmin,
		CreatedAt: m.CreatedAt,
	}
	if includeEmail {
		resp.Email = m.Email
	}
	return resp
}

// ToGroupResponse maps a group to its API shape.
func ToGroupResponse(g Group) GroupResponse {
	return GroupResponse{ID: g.ID, Name: g.Name, BuiltIn: g.BuiltIn}
}
