package group

import (
	"fmt"

	"github.com/nao1215/iso3166gen/internal/model"
)

// CollisionPolicy decides what happens when two labels derive the same
// identifier.
type CollisionPolicy int

const (
	// FailOnCollision stops with a *CollisionError before anything is emitted.
	FailOnCollision CollisionPolicy = iota
	// AllowCollision keeps both groups. The duplicate declaration then
	// surfaces as a verification failure of the generated file.
	AllowCollision
)

// String returns the policy name used in configuration and logs.
func (p CollisionPolicy) String() string {
	switch p {
	case FailOnCollision:
		return "fail"
	case AllowCollision:
		return "allow"
	default:
		return fmt.Sprintf("CollisionPolicy(%d)", int(p))
	}
}

// Options configures Build.
type Options struct {
	// Collisions decides what happens to colliding identifiers.
	Collisions CollisionPolicy
}

// Build produces one group per status entry, in legend order. Each group
// holds the alpha-2 codes whose class name equals the status class name,
// in the order they appear in codes. A status without codes yields an
// empty group.
func Build(statuses []model.StatusEntry, codes []model.CodeEntry, opts Options) ([]model.StatusGroup, error) {
	groups := make([]model.StatusGroup, 0, len(statuses))
	labelsByIdent := make(map[string][]string, len(statuses))

	for _, status := range statuses {
		ident := Identifier(status.Label)
		labelsByIdent[ident] = append(labelsByIdent[ident], status.Label)

		groups = append(groups, model.StatusGroup{
			Identifier: ident,
			ClassName:  status.ClassName,
			Label:      status.Label,
			Codes:      filterCodes(codes, status.ClassName),
		})
	}

	if opts.Collisions == FailOnCollision {
		// Report in legend order so the error is deterministic.
		for _, g := range groups {
			if labels := labelsByIdent[g.Identifier]; len(labels) > 1 {
				return nil, &CollisionError{Identifier: g.Identifier, Labels: labels}
			}
		}
	}

	return groups, nil
}

// filterCodes returns the alpha-2 values of codes with the given class name.
func filterCodes(codes []model.CodeEntry, className string) []string {
	out := make([]string, 0)
	for _, c := range codes {
		if c.ClassName == className {
			out = append(out, c.Alpha2)
		}
	}
	return out
}
