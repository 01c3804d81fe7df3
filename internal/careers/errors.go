package careers

import (
	"errors"

	"github.com/garnizeh/careerpages/internal/auth"
)

// ValidationError is a rejected input. Message is safe to show to clients.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// ConflictError is a write that clashes with existing data, such as a
// taken slug or a registered email.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

var (
	// ErrNotFound hides both missing rows and rows the caller may not see
	// on public paths.
	ErrNotFound = errors.New("not found")

	ErrUnauthenticated = auth.ErrUnauthenticated
	ErrUnauthorized    = auth.ErrUnauthorized
)

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

func conflict(msg string) error {
	return &ConflictError{Message: msg}
}
