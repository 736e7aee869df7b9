package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNotAuthenticated is returned when a mutation needs an active session.
	ErrNotAuthenticated = errors.New("not authenticated")
	// ErrForbidden is returned when a mutation is attempted by a non-owner.
	ErrForbidden = errors.New("forbidden")
	// ErrNotFound is returned when the target entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrNotReady is returned for mutations attempted before the first
	// session-resolution event.
	ErrNotReady = errors.New("session resolution in progress")
)

// ValidationError reports a single field constraint violation. It maps
// one-to-one to the form field that caused it.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is a field validation failure.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
