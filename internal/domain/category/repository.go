package category

import (
	"context"
)

// Repository defines category persistence.
type Repository interface {
	Create(ctx context.Context, newCategory Category) (Category, error)
	GetByID(ctx context.Context, siteID, id string) (Category, error)
	GetBySlug(ctx context.Context, siteID, slug string) (Category, error)
	ListBySite(ctx context.Context, siteID string) ([]Category, error)

	// ListAncestors returns the chain from the category's parent up to the
	// root, nearest first. Used when explaining where an inherited
	// preference came from, not by the resolver itself.
	ListAncestors(ctx context.Context, siteID, id string) ([]Category, error)
}
