package category

import "errors"

// Category domain errors
var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrSlugExists       = errors.New("category slug already exists on this site")
)
