package member

import "time"

// Member represents a forum member account, scoped to one site.
type Member struct {
	ID              string
	SiteID          string
	Username        string
	Email           string
	PasswordHash    *string
	IsAdmin         bool
	OAuthProvider   *string
	OAuthProviderID *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Group represents a member group. Preferences attached to a group are
// inherited by its members as fallbacks, never as overrides.
type Group struct {
	ID        string
	SiteID    string
	Name      string
	BuiltIn   bool
	CreatedAt time.Time
}

// EveryoneGroupName is the built-in group every member of a site belongs to.
const EveryoneGroupName = "everyone"
