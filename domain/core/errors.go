package core

import (
	"errors"
	"fmt"
)

// ErrNotFound is the sentinel for missing stored resources. Validation
// failures use the coded errors in internal/errors instead.
var ErrNotFound = errors.New("resource not found")

// NewNotFoundError creates a not-found error with resource context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s %q", ErrNotFound, resource, id)
}

// IsNotFound reports whether err wraps ErrNotFound
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
