package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/talkweave/forum-backend-go/internal/domain/page"
	"github.com/talkweave/forum-backend-go/internal/handler/http/response"
)

type PageHandler interface {
	CreatePage(w http.ResponseWriter, r *http.Request)
	GetPage(w http.ResponseWriter, r *http.Request)
	ListPages(w http.ResponseWriter, r *http.Request)
	Reply(w http.ResponseWriter, r *http.Request)
	EditPost(w http.ResponseWriter, r *http.Request)
	ApprovePost(w http.ResponseWriter, r *http.Request)
	DeletePost(w http.ResponseWriter, r *http.Request)
	DeletePage(w http.ResponseWriter, r *http.Request)
	RestorePage(w http.ResponseWriter, r *http.Request)
}

type PageHandlerImpl struct {
	pageService page.Service
	siteID      string
}

func NewPageHandler(pageService page.Service, siteID string) PageHandler {
	return &PageHandlerImpl{
		pageService: pageService,
		siteID:      siteID,
	}
}

// CreatePage implements PageHandler.
func (h *PageHandlerImpl) CreatePage(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req page.CreatePageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreatePage decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.pageService.CreatePage(r.Context(), h.siteID, actor, req)
	if err != nil {
		slog.Error("CreatePage service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Page created", created)
}

// GetPage implements PageHandler.
func (h *PageHandlerImpl) GetPage(w http.ResponseWriter, r *http.Request) {
	pageID := chi.URLParam(r, "pageID")

	pageData, err := h.pageService.GetPage(r.Context(), h.siteID, pageID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, pageData)
}

// ListPages implements PageHandler.
func (h *PageHandlerImpl) ListPages(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	pageNum, _ := strconv.Atoi(q.Get("page"))
	pageSize, _ := strconv.Atoi(q.Get("page_size"))

	list, err := h.pageService.ListPages(r.Context(), h.siteID, q.Get("category_id"), pageNum, pageSize)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	totalPages := 0
	if list.PageSize > 0 {
		totalPages = (list.Total + list.PageSize - 1) / list.PageSize
	}
	response.SuccessWithMeta(w, list.Pages, &response.Meta{
		Page:       list.Page,
		PageSize:   list.PageSize,
		TotalItems: int64(list.Total),
		TotalPages: totalPages,
	})
}

// Reply implements PageHandler.
func (h *PageHandlerImpl) Reply(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req page.ReplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Reply decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	pageID := chi.URLParam(r, "pageID")
	post, err := h.pageService.Reply(r.Context(), h.siteID, pageID, actor, req)
	if err != nil {
		slog.Error("Reply service error", "error", err, "page_id", pageID)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Reply posted", post)
}

// EditPost implements PageHandler.
func (h *PageHandlerImpl) EditPost(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req page.EditPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("EditPost decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	pageID := chi.URLParam(r, "pageID")
	postID := chi.URLParam(r, "postID")
	post, err := h.pageService.EditPost(r.Context(), h.siteID, pageID, postID, actor, req)
	if err != nil {
		slog.Error("EditPost service error", "error", err, "page_id", pageID, "post_id", postID)
		response.HandleError(w, err)
		return
	}

	response.Success(w, post)
}

// ApprovePost implements PageHandler.
func (h *PageHandlerImpl) ApprovePost(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	pageID := chi.URLParam(r, "pageID")
	postID := chi.URLParam(r, "postID")
	post, err := h.pageService.ApprovePost(r.Context(), h.siteID, pageID, postID, actor)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Post approved", post)
}

// DeletePost implements PageHandler.
func (h *PageHandlerImpl) DeletePost(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	pageID := chi.URLParam(r, "pageID")
	postID := chi.URLParam(r, "postID")
	if err := h.pageService.DeletePost(r.Context(), h.siteID, pageID, postID, actor); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Post deleted", nil)
}

// DeletePage implements PageHandler.
func (h *PageHandlerImpl) DeletePage(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	pageID := chi.URLParam(r, "pageID")
	if err := h.pageService.DeletePage(r.Context(), h.siteID, pageID, actor); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Page deleted", nil)
}

// RestorePage implements PageHandler.
func (h *PageHandlerImpl) RestorePage(w http.ResponseWriter, r *http.Request) {
	actor, err := actorFrom(r)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	pageID := chi.URLParam(r, "pageID")
	if err := h.pageService.RestorePage(r.Context(), h.siteID, pageID, actor); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Page restored", nil)
}
