package client

import (
	"errors"
)

// ErrUnauthorized is returned when the backend rejects the bearer token.
// The configured auth-failure handler has already run by the time callers
// see this error.
var ErrUnauthorized = errors.New("unauthorized")

// ErrNotFound is returned for 404 responses, so callers can distinguish a
// missing resource from other failures (the profile autosave uses this to
// fall back from update to create).
var ErrNotFound = errors.New("not found")

// APIError carries the structured error message the backend returned for a
// non-2xx response
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}
