package notfpref

import "errors"

// Notification preference domain errors
var (
	ErrInvalidScope       = errors.New("preference scope must be exactly one of page, category or whole site")
	ErrInvalidLevel       = errors.New("invalid notification level")
	ErrLevelScopeMismatch = errors.New("watching-first only applies where new topics can appear, not to a single page")
	ErrBadResolveTarget   = errors.New("resolve target must be a page or the whole site")
)
