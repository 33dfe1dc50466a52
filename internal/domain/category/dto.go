package category

// CategoryResponse represents a category in API responses.
type CategoryResponse struct {
	ID       string  `json:"id"`
	ParentID *string `json:"parent_id,omitempty"`
	Name     string  `json:"name"`
	Slug     string  `json:"slug"`
	Position int     `json:"position"`
}

// CategoryDetailResponse is a category with its ancestor chain, nearest
// parent first. The chain shows where an inherited preference came from.
type CategoryDetailResponse struct {
	CategoryResponse
	Ancestors []CategoryResponse `json:"ancestors"`
}

// CreateCategoryRequest creates a category.
type CreateCategoryRequest struct {
	ParentID *string `json:"parent_id,omitempty"`
	Name     string  `json:"name"`
	Slug     string  `json:"slug"`
	Position int     `json:"position"`
}

// ToResponse maps a category to its API shape.
func ToResponse(c Category) CategoryResponse {
	return CategoryResponse{
		ID:       c.ID,
		ParentID: c.ParentID,
		Name:     c.Name,
		Slug:     c.Slug,
		Position: c.Position,
	}
}

// ToDetailResponse maps a category and its ancestors to the detail shape.
func ToDetailResponse(c Category, ancestors []Category) CategoryDetailResponse {
	detail := CategoryDetailResponse{
		CategoryResponse: ToResponse(c),
		Ancestors:        make([]CategoryResponse, len(ancestors)),
	}
	for i, a := range ancestors {
		detail.Ancestors[i] = ToResponse(a)
	}
	return detail
}
