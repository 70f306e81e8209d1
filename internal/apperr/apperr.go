// Package apperr defines the error taxonomy shared by the service layer and
// the HTTP facade. Services return wrapped sentinel errors; handlers map them
// to status codes with errors.Is. Anything outside the taxonomy is treated as
// a store failure and surfaces as a 500.
package apperr

import (
	"errors"
)

var (
	// ErrValidation marks missing or unusable input. Maps to 400.
	ErrValidation = errors.New("validation failed")
	// ErrConflict marks an identity that already exists. Maps to 400.
	ErrConflict = errors.New("already exists")
	// ErrAuth marks a failed credential check. Maps to 400.
	ErrAuth = errors.New("invalid credentials")
	// ErrNotFound marks a missing entity. Maps to 404.
	ErrNotFound = errors.New("not found")
)
