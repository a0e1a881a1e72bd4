// Package apperrors holds the sentinel errors shared across the core
// packages. Handlers translate these to HTTP statuses; nothing below the
// server layer knows about status codes.
package apperrors

import "errors"

var (
	// ErrValidation marks malformed or empty input caught at the boundary.
	ErrValidation = errors.New("validation error")

	// ErrUnauthenticated covers a missing, invalid or expired token, or a
	// token that references a user that no longer exists.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrForbidden means the caller is known but does not own the resource.
	ErrForbidden = errors.New("forbidden")

	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a username or email is already taken.
	ErrConflict = errors.New("already exists")

	// token-specific errors, both resolve to 401 at the boundary
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenMalformed = errors.New("token malformed")
)
