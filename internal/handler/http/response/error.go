package response

import (
	"errors"
	"net/http"

	"github.com/talkweave/forum-backend-go/internal/domain/auth"
	"github.com/talkweave/forum-backend-go/internal/domain/category"
	"github.com/talkweave/forum-backend-go/internal/domain/member"
	"github.com/talkweave/forum-backend-go/internal/domain/notfpref"
	"github.com/talkweave/forum-backend-go/internal/domain/page"
	"github.com/talkweave/forum-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrMemberNotFound):
		NotFound(w, "Member not found")

	// Member domain errors
	case errors.Is(err, member.ErrMemberNotFound):
		NotFound(w, "Member not found")
	case errors.Is(err, member.ErrGroupNotFound):
		NotFound(w, "Group not found")
	case errors.Is(err, member.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, member.ErrUsernameExists):
		Conflict(w, "Username already taken")

	// Preference domain errors
	case errors.Is(err, notfpref.ErrInvalidScope):
		BadRequest(w, "Exactly one of page_id, category_id or whole_site must be given", nil)
	case errors.Is(err, notfpref.ErrInvalidLevel):
		BadRequest(w, "Unknown notification level", nil)
	case errors.Is(err, notfpref.ErrLevelScopeMismatch):
		BadRequest(w, "This notification level cannot be used at this scope", nil)
	case errors.Is(err, notfpref.ErrBadResolveTarget):
		BadRequest(w, "Resolution target must be a page or the whole site", nil)

	// Page domain errors
	case errors.Is(err, page.ErrPageNotFound):
		NotFound(w, "Page not found")
	case errors.Is(err, page.ErrPostNotFound):
		NotFound(w, "Post not found")
	case errors.Is(err, page.ErrPageDeleted):
		NotFound(w, "Page has been deleted")
	case errors.Is(err, page.ErrNotAuthor):
		Forbidden(w, err.Error())
	case errors.Is(err, page.ErrStaffOnly):
		Forbidden(w, err.Error())
	case errors.Is(err, page.ErrOrigPost):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, page.ErrInvalidPageType):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, page.ErrEmptyTitle):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, page.ErrEmptyBody):
		BadRequest(w, err.Error(), nil)

	// Category domain errors
	case errors.Is(err, category.ErrCategoryNotFound):
		NotFound(w, "Category not found")
	case errors.Is(err, category.ErrSlugExists):
		Conflict(w, "Category slug already in use")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
