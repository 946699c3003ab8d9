package group

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCollision is returned under FailOnCollision when two legend labels
// derive the same identifier.
var ErrCollision = errors.New("identifier collision")

// CollisionError names the identifier and every label that produced it.
type CollisionError struct {
	Identifier string
	Labels     []string
}

// Error implements error.
func (e *CollisionError) Error() string {
	quoted := make([]string, len(e.Labels))
	for i, l := range e.Labels {
		quoted[i] = fmt.Sprintf("%q", l)
	}
	return fmt.Sprintf("identifier %q is derived from more than one status label: %s",
		e.Identifier, strings.Join(quoted, ", "))
}

// Unwrap returns ErrCollision so callers can use errors.Is.
func (e *CollisionError) Unwrap() error {
	return ErrCollision
}
