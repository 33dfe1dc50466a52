package page

import "time"

// PageType distinguishes what kind of topic a page is.
type PageType string

const (
	TypeDiscussion PageType = "discussion"
	TypeQuestion   PageType = "question"
	TypeIdea       PageType = "idea"
	TypeAnnounce   PageType = "announcement"
)

// AllPageTypes returns every selectable page type.
func AllPageTypes() []PageType {
	return []PageType{TypeDiscussion, TypeQuestion, TypeIdea, TypeAnnounce}
}

// Page is one forum topic: a title plus an ordered sequence of posts.
type Page struct {
	ID         string
	SiteID     string
	CategoryID *string
	AuthorID   string
	Title      string
	Type       PageType
	CreatedAt  time.Time
	BumpedAt   time.Time
	DeletedAt  *time.Time
}

// IsDeleted reports whether the page has been deleted.
func (p *Page) IsDeleted() bool {
	return p.DeletedAt != nil
}

// Post is one post on a page. Nr 1 is the original post; replies count up
// from 2. Edits replace the current body in place; approval is a flag, not a
// revision chain.
type Post struct {
	ID         string
	PageID     string
	Nr         int
	AuthorID   string
	Body       string
	Approved   bool
	ApprovedBy *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  *time.Time
}

// IsDeleted reports whether the post has been deleted.
func (p *Post) IsDeleted() bool {
	return p.DeletedAt != nil
}

// OrigPostNr is the post number of a page's original post.
const OrigPostNr = 1
