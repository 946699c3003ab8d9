package extract

import "fmt"

// Policy decides what happens to malformed rows and cells.
type Policy int

const (
	// SkipMalformed drops malformed rows and cells and counts them.
	SkipMalformed Policy = iota
	// FailOnMalformed stops extraction at the first malformed row or cell.
	FailOnMalformed
)

// String returns the policy name used in configuration and logs.
func (p Policy) String() string {
	switch p {
	case SkipMalformed:
		return "skip"
	case FailOnMalformed:
		return "fail"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy converts a configuration value into a Policy.
// The empty string maps to SkipMalformed.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", "skip":
		return SkipMalformed, nil
	case "fail":
		return FailOnMalformed, nil
	default:
		return SkipMalformed, fmt.Errorf("unknown malformed policy %q (want skip or fail)", s)
	}
}

// Skipped counts what SkipMalformed dropped.
type Skipped struct {
	Statuses int
	Codes    int
}
