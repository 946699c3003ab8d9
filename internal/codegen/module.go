package codegen

import (
	"errors"
	"fmt"

	"github.com/nao1215/iso3166gen/internal/model"
)

// ErrInvalidIdentifier is returned when a group's identifier cannot be used
// as a declaration name.
var ErrInvalidIdentifier = errors.New("invalid identifier")

// Module is the document model of one generated file.
type Module struct {
	// Generator names the tool in the "Code generated" header.
	Generator string

	// SourceURL is the registry page the data came from.
	SourceURL string

	// Fingerprint is the digest of the groups (see model.Fingerprint).
	Fingerprint string

	// Decls holds one declaration pair per status group, in legend order.
	Decls []Decl
}

// Decl is the pair of declarations emitted for one status group.
type Decl struct {
	// Identifier is the group identifier the names are built from.
	Identifier string

	// Label is the legend label, used in doc comments.
	Label string

	// Values are the alpha-2 codes, in source order.
	Values []string
}

// ConstName is the name of the value list, e.g. "isoOfficiallyAssigned".
func (d Decl) ConstName() string {
	return "iso" + d.Identifier
}

// TypeName is the name of the element type, e.g. "IsoOfficiallyAssigned".
func (d Decl) TypeName() string {
	return "Iso" + d.Identifier
}

// ModuleOptions configures NewModule.
type ModuleOptions struct {
	// Generator names the tool in the header. Defaults to "iso3166gen".
	Generator string

	// SourceURL is recorded in the header.
	SourceURL string

	// ValidateNames rejects groups whose identifiers do not form valid
	// declaration names. When false, names are emitted as derived and
	// problems surface during verification.
	ValidateNames bool
}

// NewModule builds the document model for the given groups.
func NewModule(groups []model.StatusGroup, opts ModuleOptions) (*Module, error) {
	generator := opts.Generator
	if generator == "" {
		generator = "iso3166gen"
	}

	m := &Module{
		Generator:   generator,
		SourceURL:   opts.SourceURL,
		Fingerprint: model.Fingerprint(groups),
		Decls:       make([]Decl, 0, len(groups)),
	}

	for _, g := range groups {
		d := Decl{
			Identifier: g.Identifier,
			Label:      g.Label,
			Values:     append([]string{}, g.Codes...),
		}
		if opts.ValidateNames && !isIdentifier(d.ConstName()) {
			return nil, fmt.Errorf("%w: %q derived from label %q", ErrInvalidIdentifier, d.ConstName(), g.Label)
		}
		m.Decls = append(m.Decls, d)
	}

	return m, nil
}

// isIdentifier reports whether s is an ASCII identifier valid in both
// TypeScript and Go: a letter or underscore followed by letters, digits or
// underscores.
func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c == '_', 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
		case '0' <= c && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
