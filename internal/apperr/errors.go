package apperr

import "errors"

// Sentinel errors shared by services and mapped to HTTP status codes in the
// controllers. None of these are transient; callers never retry them.
var (
	ErrNotFound       = errors.New("resource not found")
	ErrForbidden      = errors.New("access to this resource is forbidden")
	ErrInvalidRequest = errors.New("invalid request")
)
