package dao

import "errors"

// Errors every repository returns, so callers can check them with errors.Is
// whatever the backing store.
var (
	// ErrNotFound is returned when no entity has the requested ID or name.
	ErrNotFound = errors.New("no such entity")

	// ErrConstraintViolation is returned when a write would duplicate a
	// unique value, such as a username, or refer to an entity that does not
	// exist.
	ErrConstraintViolation = errors.New("constraint violated")
)
