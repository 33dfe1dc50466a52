package member

import "errors"

// Member domain errors
var (
	ErrMemberNotFound = errors.New("member not found")
	ErrGroupNotFound  = errors.New("group not found")
	ErrEmailExists    = errors.New("email already registered on this site")
	ErrUsernameExists = errors.New("username already taken on this site")
)
