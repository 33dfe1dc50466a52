package member

import (
	"context"
)

// Repository defines member persistence.
type Repository interface {
	Create(ctx context.Context, newMember Member) (Member, error)
	GetByID(ctx context.Context, siteID, id string) (Member, error)
	GetByEmail(ctx context.Context, siteID, email string) (Member, error)
	GetByUsername(ctx context.Context, siteID, username string) (Member, error)
	LinkGoogleAccount(ctx context.Context, siteID, email, googleID string) (Member, error)
	UpdatePassword(ctx context.Context, siteID, memberID, passwordHash string) error

	// ListGroupIDs is the membership provider consumed when building a
	// preference snapshot: the ids of every group the member belongs to.
	ListGroupIDs(ctx context.Context, siteID, memberID string) ([]string, error)
}

// GroupRepository defines group persistence.
type GroupRepository interface {
	Create(ctx context.Context, newGroup Group) (Group, error)
	GetByID(ctx context.Context, siteID, id string) (Group, error)
	GetByName(ctx context.Context, siteID, name string) (Group, error)
	ListBySite(ctx context.Context, siteID string) ([]Group, error)
	AddMember(ctx context.Context, siteID, groupID, memberID string) error
	RemoveMember(ctx context.Context, siteID, groupID, memberID string) (bool, error)
}
