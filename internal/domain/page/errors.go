package page

import "errors"

// Page domain errors
var (
	ErrPageNotFound    = errors.New("page not found")
	ErrPostNotFound    = errors.New("post not found")
	ErrPageDeleted     = errors.New("page has been deleted")
	ErrNotAuthor       = errors.New("only the author or staff may do this")
	ErrStaffOnly       = errors.New("staff privilege required")
	ErrInvalidPageType = errors.New("invalid page type")
	ErrOrigPost        = errors.New("the original post cannot be deleted on its own")
	ErrEmptyTitle      = errors.New("page title must not be empty")
	ErrEmptyBody       = errors.New("post body must not be empty")
)
