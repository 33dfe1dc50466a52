package page

import "time"

// ============= Request DTOs =============

// CreatePageRequest creates a page with its original post.
type CreatePageRequest struct {
	CategoryID *string `json:"category_id,omitempty"`
	Title      string  `json:"title"`
	Type       string  `json:"type,omitempty"`
	Body       string  `json:"body"`
}

// ReplyRequest appends a post to a page.
type ReplyRequest struct {
	Body string `json:"body"`
}

// EditPostRequest replaces a post's current body.
type EditPostRequest struct {
	Body string `json:"body"`
}

// ============= Response DTOs =============

// PostResponse represents a post in API responses.
type PostResponse struct {
	ID        string     `json:"id"`
	Nr        int        `json:"nr"`
	AuthorID  string     `json:"author_id"`
	Body      string     `json:"body"`
	Approved  bool       `json:"approved"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// PageResponse represents a page in API responses.
type PageResponse struct {
	ID         string     `json:"id"`
	CategoryID *string    `json:"category_id,omitempty"`
	AuthorID   string     `json:"author_id"`
	Title      string     `json:"title"`
	Type       PageType   `json:"type"`
	CreatedAt  time.Time  `json:"created_at"`
	BumpedAt   time.Time  `json:"bumped_at"`
	DeletedAt  *time.Time `json:"deleted_at,omitempty"`

	Posts []PostResponse `json:"posts,omitempty"`
}

// PageListResponse is a paginated list of pages.
type PageListResponse struct {
	Pages    []PageResponse `json:"pages"`
	Total    int            `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"page_size"`
}

// ToPostResponse maps a post to its API shape.
func ToPostResponse(p Post) PostResponse {
	return PostResponse{
		ID:        p.ID,
		Nr:        p.Nr,
		AuthorID:  p.AuthorID,
		Body:      p.Body,
		Approved:  p.Approved,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
		DeletedAt: p.DeletedAt,
	}
}

// ToPageResponse maps a page (optionally with its posts) to its API shape.
func ToPageResponse(pg Page, posts []Post) PageResponse {
	resp := PageResponse{
		ID:         pg.ID,
		CategoryID: pg.CategoryID,
		AuthorID:   pg.AuthorID,
		Title:      pg.Title,
		Type:       pg.Type,
		CreatedAt:  pg.CreatedAt,
		BumpedAt:   pg.BumpedAt,
		DeletedAt:  pg.DeletedAt,
	}
	for _, p := range posts {
		resp.Posts = append(resp.Posts, ToPostResponse(p))
	}
	return resp
}
