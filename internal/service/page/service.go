package page

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/talkweave/forum-backend-go/internal/domain/category"
	"github.com/talkweave/forum-backend-go/internal/domain/page"
	"github.com/talkweave/forum-backend-go/internal/pkg/database"
	"github.com/talkweave/forum-backend-go/internal/repository/postgresql"
)

type PageServiceImpl struct {
	db           *database.DB
	pageRepo     page.Repository
	postRepo     page.PostRepository
	categoryRepo category.Repository
}

// NewPageService creates a new page service
func NewPageService(
	db *database.DB,
	pageRepo page.Repository,
	postRepo page.PostRepository,
	categoryRepo category.Repository,
) page.Service {
	return &PageServiceImpl{
		db:           db,
		pageRepo:     pageRepo,
		postRepo:     postRepo,
		categoryRepo: categoryRepo,
	}
}

// CreatePage implements page.Service. The page and its original post are
// written in one transaction so a page can never exist without post nr 1.
func (s *PageServiceImpl) CreatePage(ctx context.Context, siteID string, actor page.Actor, req page.CreatePageRequest) (page.PageResponse, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return page.PageResponse{}, page.ErrEmptyTitle
	}
	body := strings.TrimSpace(req.Body)
	if body == "" {
		return page.PageResponse{}, page.ErrEmptyBody
	}

	pageType := page.TypeDiscussion
	if req.Type != "" {
		pageType = page.PageType(req.Type)
		if !validPageType(pageType) {
			return page.PageResponse{}, page.ErrInvalidPageType
		}
	}

	if req.CategoryID != nil {
		if _, err := s.categoryRepo.GetByID(ctx, siteID, *req.CategoryID); err != nil {
			return page.PageResponse{}, err
		}
	}

	var created page.Page
	var origPost page.Post
	err := postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := postgresql.ContextWithTx(ctx, tx)

		var err error
		created, err = s.pageRepo.Create(txCtx, page.Page{
			SiteID:     siteID,
			CategoryID: req.CategoryID,
			AuthorID:   actor.MemberID,
			Title:      title,
			Type:       pageType,
		})
		if err != nil {
			return err
		}

		origPost, err = s.postRepo.Create(txCtx, newPost(created.ID, page.OrigPostNr, actor, body))
		return err
	})
	if err != nil {
		return page.PageResponse{}, err
	}

	return page.ToPageResponse(created, []page.Post{origPost}), nil
}

// GetPage implements page.Service.
func (s *PageServiceImpl) GetPage(ctx context.Context, siteID, pageID string) (page.PageResponse, error) {
	pageData, err := s.pageRepo.GetByID(ctx, siteID, pageID)
	if err != nil {
		return page.PageResponse{}, err
	}
	if pageData.IsDeleted() {
		return page.PageResponse{}, page.ErrPageDeleted
	}

	posts, err := s.postRepo.ListByPage(ctx, pageID)
	if err != nil {
		return page.PageResponse{}, fmt.Errorf("failed to list posts: %w", err)
	}

	return page.ToPageResponse(pageData, posts), nil
}

// ListPages implements page.Service. pageNum is 1-based.
func (s *PageServiceImpl) ListPages(ctx context.Context, siteID string, categoryID string, pageNum, pageSize int) (page.PageListResponse, error) {
	if pageNum < 1 {
		pageNum = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	offset := (pageNum - 1) * pageSize

	var pages []page.Page
	var total int
	var err error
	if categoryID != "" {
		pages, total, err = s.pageRepo.ListByCategory(ctx, siteID, categoryID, pageSize, offset)
	} else {
		pages, total, err = s.pageRepo.ListBySite(ctx, siteID, pageSize, offset)
	}
	if err != nil {
		return page.PageListResponse{}, fmt.Errorf("failed to list pages: %w", err)
	}

	resp := page.PageListResponse{
		Pages:    make([]page.PageResponse, 0, len(pages)),
		Total:    total,
		Page:     pageNum,
		PageSize: pageSize,
	}
	for _, p := range pages {
		resp.Pages = append(resp.Pages, page.ToPageResponse(p, nil))
	}
	return resp, nil
}

// Reply implements page.Service. The post number is allocated inside the
// transaction so concurrent replies to the same page never collide.
func (s *PageServiceImpl) Reply(ctx context.Context, siteID, pageID string, actor page.Actor, req page.ReplyRequest) (page.PostResponse, error) {
	body := strings.TrimSpace(req.Body)
	if body == "" {
		return page.PostResponse{}, page.ErrEmptyBody
	}

	pageData, err := s.pageRepo.GetByID(ctx, siteID, pageID)
	if err != nil {
		return page.PostResponse{}, err
	}
	if pageData.IsDeleted() {
		return page.PostResponse{}, page.ErrPageDeleted
	}

	var created page.Post
	err = postgresql.WithTransaction(ctx, s.db, func(tx pgx.Tx) error {
		txCtx := postgresql.ContextWithTx(ctx, tx)

		nr, err := s.postRepo.NextNr(txCtx, pageID)
		if err != nil {
			return err
		}

		created, err = s.postRepo.Create(txCtx, newPost(pageID, nr, actor, body))
		if err != nil {
			return err
		}

		return s.pageRepo.SetBumpedAt(txCtx, siteID, pageID, time.Now().UTC())
	})
	if err != nil {
		return page.PostResponse{}, err
	}

	return page.ToPostResponse(created), nil
}

// EditPost implements page.Service. Authors may edit their own posts; staff
// may edit any. A non-staff edit sends the post back through approval.
func (s *PageServiceImpl) EditPost(ctx context.Context, siteID, pageID, postID string, actor page.Actor, req page.EditPostRequest) (page.PostResponse, error) {
	body := strings.TrimSpace(req.Body)
	if body == "" {
		return page.PostResponse{}, page.ErrEmptyBody
	}

	post, err := s.getLivePost(ctx, siteID, pageID, postID)
	if err != nil {
		return page.PostResponse{}, err
	}
	if post.AuthorID != actor.MemberID && !actor.IsAdmin {
		return page.PostResponse{}, page.ErrNotAuthor
	}

	approved := post.Approved
	if !actor.IsAdmin {
		approved = false
	}

	updated, err := s.postRepo.UpdateBody(ctx, pageID, postID, body, approved)
	if err != nil {
		return page.PostResponse{}, err
	}
	return page.ToPostResponse(updated), nil
}

// ApprovePost implements page.Service. Staff only.
func (s *PageServiceImpl) ApprovePost(ctx context.Context, siteID, pageID, postID string, actor page.Actor) (page.PostResponse, error) {
	if !actor.IsAdmin {
		return page.PostResponse{}, page.ErrStaffOnly
	}
	if _, err := s.getLivePost(ctx, siteID, pageID, postID); err != nil {
		return page.PostResponse{}, err
	}

	approved, err := s.postRepo.Approve(ctx, pageID, postID, actor.MemberID)
	if err != nil {
		return page.PostResponse{}, err
	}
	return page.ToPostResponse(approved), nil
}

// DeletePost implements page.Service. Authors may delete their own posts;
// staff may delete any. The original post cannot be deleted on its own:
// delete the page instead.
func (s *PageServiceImpl) DeletePost(ctx context.Context, siteID, pageID, postID string, actor page.Actor) error {
	post, err := s.getLivePost(ctx, siteID, pageID, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != actor.MemberID && !actor.IsAdmin {
		return page.ErrNotAuthor
	}
	if post.Nr == page.OrigPostNr {
		return page.ErrOrigPost
	}

	_, err = s.postRepo.SetDeleted(ctx, pageID, postID, true)
	return err
}

// DeletePage implements page.Service. Staff only; deleting twice is a no-op.
func (s *PageServiceImpl) DeletePage(ctx context.Context, siteID, pageID string, actor page.Actor) error {
	if !actor.IsAdmin {
		return page.ErrStaffOnly
	}
	if _, err := s.pageRepo.GetByID(ctx, siteID, pageID); err != nil {
		return err
	}

	_, err := s.pageRepo.SetDeleted(ctx, siteID, pageID, true)
	return err
}

// RestorePage implements page.Service. Staff only.
func (s *PageServiceImpl) RestorePage(ctx context.Context, siteID, pageID string, actor page.Actor) error {
	if !actor.IsAdmin {
		return page.ErrStaffOnly
	}
	if _, err := s.pageRepo.GetByID(ctx, siteID, pageID); err != nil {
		return err
	}

	_, err := s.pageRepo.SetDeleted(ctx, siteID, pageID, false)
	return err
}

// getLivePost loads a post, confirming the page exists and neither the page
// nor the post has been deleted.
func (s *PageServiceImpl) getLivePost(ctx context.Context, siteID, pageID, postID string) (page.Post, error) {
	pageData, err := s.pageRepo.GetByID(ctx, siteID, pageID)
	if err != nil {
		return page.Post{}, err
	}
	if pageData.IsDeleted() {
		return page.Post{}, page.ErrPageDeleted
	}

	post, err := s.postRepo.GetByID(ctx, pageID, postID)
	if err != nil {
		return page.Post{}, err
	}
	if post.IsDeleted() {
		return page.Post{}, page.ErrPostNotFound
	}
	return post, nil
}

// newPost builds an unsaved post. Staff posts are approved immediately;
// everyone else's wait for moderation.
func newPost(pageID string, nr int, actor page.Actor, body string) page.Post {
	post := page.Post{
		PageID:   pageID,
		Nr:       nr,
		AuthorID: actor.MemberID,
		Body:     body,
	}
	if actor.IsAdmin {
		post.Approved = true
		approvedBy := actor.MemberID
		post.ApprovedBy = &approvedBy
	}
	return post
}

func validPageType(t page.PageType) bool {
	for _, pt := range page.AllPageTypes() {
		if t == pt {
			return true
		}
	}
	return false
}
