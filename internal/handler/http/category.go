package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	domain "github.com/talkweave/forum-backend-go/internal/domain/category"
	"github.com/talkweave/forum-backend-go/internal/handler/http/response"
	"github.com/talkweave/forum-backend-go/internal/service/category"
)

type CategoryHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	GetBySlug(w http.ResponseWriter, r *http.Request)
}

type CategoryHandlerImpl struct {
	categoryService category.Service
	siteID          string
}

func NewCategoryHandler(categoryService category.Service, siteID string) CategoryHandler {
	return &CategoryHandlerImpl{
		categoryService: categoryService,
		siteID:          siteID,
	}
}

// Create implements CategoryHandler.
func (h *CategoryHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Create category decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.categoryService.Create(r.Context(), h.siteID, req)
	if err != nil {
		slog.Error("Create category service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Category created", created)
}

// List implements CategoryHandler.
func (h *CategoryHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categoryService.List(r.Context(), h.siteID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, categories)
}

// GetBySlug implements CategoryHandler.
func (h *CategoryHandlerImpl) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	c, err := h.categoryService.GetBySlug(r.Context(), h.siteID, slug)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, c)
}
