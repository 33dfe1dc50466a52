package category

import "time"

// Category groups pages. Categories form a tree via ParentID; the tree is
// only walked for display purposes, never during preference resolution.
type Category struct {
	ID        string
	SiteID    string
	ParentID  *string
	Name      string
	Slug      string
	Position  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// RootSlug is the slug of the default category a new site starts with.
const RootSlug = "general"
