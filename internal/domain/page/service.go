package page

import (
	"context"
)

// Actor is the member performing a page action, with the bits access checks
// need.
type Actor struct {
	MemberID string
	IsAdmin  bool
}

// Service defines page and post operations.
type Service interface {
	CreatePage(ctx context.Context, siteID string, actor Actor, req CreatePageRequest) (PageResponse, error)
	GetPage(ctx context.Context, siteID, pageID string) (PageResponse, error)
	ListPages(ctx context.Context, siteID string, categoryID string, pageNum, pageSize int) (PageListResponse, error)

	Reply(ctx context.Context, siteID, pageID string, actor Actor, req ReplyRequest) (PostResponse, error)
	EditPost(ctx context.Context, siteID, pageID, postID string, actor Actor, req EditPostRequest) (PostResponse, error)
	ApprovePost(ctx context.Context, siteID, pageID, postID string, actor Actor) (PostResponse, error)
	DeletePost(ctx context.Context, siteID, pageID, postID string, actor Actor) error
	DeletePage(ctx context.Context, siteID, pageID string, actor Actor) error
	RestorePage(ctx context.Context, siteID, pageID string, actor Actor) error
}
