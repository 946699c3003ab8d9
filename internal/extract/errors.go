package extract

import (
	"errors"
	"fmt"
)

// ErrMalformed is returned under FailOnMalformed when a row or cell lacks the
// text the extractor needs.
var ErrMalformed = errors.New("malformed table content")

// MalformedError reports which row or cell was malformed.
type MalformedError struct {
	// Table is "legend" or "codes".
	Table string

	// Index is the zero-based position of the row (legend) or cell (codes)
	// in document order.
	Index int

	// Reason describes what was missing.
	Reason string
}

// Error implements error.
func (e *MalformedError) Error() string {
	return fmt.Sprintf("%s table: item %d: %s", e.Table, e.Index, e.Reason)
}

// Unwrap returns ErrMalformed so callers can use errors.Is.
func (e *MalformedError) Unwrap() error {
	return ErrMalformed
}
