package page

import (
	"context"
	"time"
)

// Repository defines page persistence.
type Repository interface {
	Create(ctx context.Context, newPage Page) (Page, error)
	GetByID(ctx context.Context, siteID, id string) (Page, error)
	ListBySite(ctx context.Context, siteID string, limit, offset int) ([]Page, int, error)
	ListByCategory(ctx context.Context, siteID, categoryID string, limit, offset int) ([]Page, int, error)
	SetBumpedAt(ctx context.Context, siteID, id string, bumpedAt time.Time) error
	SetDeleted(ctx context.Context, siteID, id string, deleted bool) (bool, error)
}

// PostRepository defines post persistence.
type PostRepository interface {
	Create(ctx context.Context, newPost Post) (Post, error)
	GetByID(ctx context.Context, pageID, id string) (Post, error)
	GetByNr(ctx context.Context, pageID string, nr int) (Post, error)
	ListByPage(ctx context.Context, pageID string) ([]Post, error)
	NextNr(ctx context.Context, pageID string) (int, error)
	UpdateBody(ctx context.Context, pageID, id, body string, approved bool) (Post, error)
	Approve(ctx context.Context, pageID, id, approvedByID string) (Post, error)
	SetDeleted(ctx context.Context, pageID, id string, deleted bool) (bool, error)
}
