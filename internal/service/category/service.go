package category

import (
	"context"
	"errors"
	"fmt"

	"github.com/talkweave/forum-backend-go/internal/domain/category"
	"github.com/talkweave/forum-backend-go/internal/pkg/validator"
)

// Service defines category operations.
type Service interface {
	Create(ctx context.Context, siteID string, req category.CreateCategoryRequest) (category.CategoryResponse, error)
	List(ctx context.Context, siteID string) ([]category.CategoryResponse, error)
	GetBySlug(ctx context.Context, siteID, slug string) (category.CategoryDetailResponse, error)
}

type CategoryServiceImpl struct {
	categoryRepo category.Repository
}

// NewCategoryService creates a new category service
func NewCategoryService(categoryRepo category.Repository) Service {
	return &CategoryServiceImpl{categoryRepo: categoryRepo}
}

// Create implements Service.
func (s *CategoryServiceImpl) Create(ctx context.Context, siteID string, req category.CreateCategoryRequest) (category.CategoryResponse, error) {
	var errs validator.ValidationErrors
	if validator.IsEmpty(req.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if !validator.IsValidSlug(req.Slug) {
		errs = append(errs, validator.ValidationError{Field: "slug", Message: "slug must be lowercase letters, numbers and hyphens"})
	}
	if len(errs) > 0 {
		return category.CategoryResponse{}, errs
	}

	if _, err := s.categoryRepo.GetBySlug(ctx, siteID, req.Slug); err == nil {
		return category.CategoryResponse{}, category.ErrSlugExists
	} else if !errors.Is(err, category.ErrCategoryNotFound) {
		return category.CategoryResponse{}, fmt.Errorf("failed to check category slug: %w", err)
	}

	if req.ParentID != nil {
		if _, err := s.categoryRepo.GetByID(ctx, siteID, *req.ParentID); err != nil {
			return category.CategoryResponse{}, err
		}
	}

	created, err := s.categoryRepo.Create(ctx, category.Category{
		SiteID:   siteID,
		ParentID: req.ParentID,
		Name:     req.Name,
		Slug:     req.Slug,
		Position: req.Position,
	})
	if err != nil {
		return category.CategoryResponse{}, err
	}

	return category.ToResponse(created), nil
}

// List implements Service.
func (s *CategoryServiceImpl) List(ctx context.Context, siteID string) ([]category.CategoryResponse, error) {
	categories, err := s.categoryRepo.ListBySite(ctx, siteID)
	if err != nil {
		return nil, err
	}

	responses := make([]category.CategoryResponse, len(categories))
	for i, c := range categories {
		responses[i] = category.ToResponse(c)
	}
	return responses, nil
}

// GetBySlug implements Service. The response carries the ancestor chain so
// clients can show which parent a category-level preference was inherited
// from.
func (s *CategoryServiceImpl) GetBySlug(ctx context.Context, siteID, slug string) (category.CategoryDetailResponse, error) {
	c, err := s.categoryRepo.GetBySlug(ctx, siteID, slug)
	if err != nil {
		return category.CategoryDetailResponse{}, err
	}

	var ancestors []category.Category
	if c.ParentID != nil {
		ancestors, err = s.categoryRepo.ListAncestors(ctx, siteID, c.ID)
		if err != nil {
			return category.CategoryDetailResponse{}, fmt.Errorf("failed to list category ancestors: %w", err)
		}
	}

	return category.ToDetailResponse(c, ancestors), nil
}
