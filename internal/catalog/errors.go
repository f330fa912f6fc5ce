package catalog

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a record does not exist for the user.
	ErrNotFound = errors.New("not found")
	// ErrUnauthenticated is returned for unknown emails and wrong passwords alike.
	ErrUnauthenticated = errors.New("invalid credentials")
	// ErrEmailTaken is returned when signing up with a registered email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrInUse is returned when deleting an inventory item that a dish still uses.
	ErrInUse = errors.New("record in use")
)

// ValidationError reports a rejected input field. Messages are user facing.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
