package verify

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Verifier names.
const (
	NameAuto    = "auto"
	NameESBuild = "esbuild"
	NameTSC     = "tsc"
	NameGoTypes = "gotypes"
	NameNone    = "none"
)

// ErrVerification is returned when a generated file fails its check.
var ErrVerification = errors.New("generated file failed verification")

// Verifier checks a generated file on disk.
type Verifier interface {
	// Verify checks the file at path and returns a *Error on failure.
	Verify(ctx context.Context, path string) error

	// Name returns the verifier name for logs and summaries.
	Name() string
}

// Diagnostic is one problem reported by a verifier.
type Diagnostic struct {
	// File is the file the problem was found in.
	File string

	// Line is 1-based; 0 when unknown.
	Line int

	// Column is 1-based; 0 when unknown.
	Column int

	// Code is the compiler's diagnostic code (e.g. "TS2451"), if any.
	Code string

	// Message is the diagnostic text.
	Message string
}

// String formats the diagnostic as file:line:col: [code] message.
func (d Diagnostic) String() string {
	var sb strings.Builder
	if d.File != "" {
		sb.WriteString(d.File)
		if d.Line > 0 {
			fmt.Fprintf(&sb, ":%d", d.Line)
			if d.Column > 0 {
				fmt.Fprintf(&sb, ":%d", d.Column)
			}
		}
		sb.WriteString(": ")
	}
	if d.Code != "" {
		sb.WriteString(d.Code)
		sb.WriteString(": ")
	}
	sb.WriteString(d.Message)
	return sb.String()
}

// Error carries the diagnostics of a failed verification.
type Error struct {
	// Verifier is the name of the verifier that failed.
	Verifier string

	// Path is the checked file.
	Path string

	// Diagnostics lists the reported problems.
	Diagnostics []Diagnostic
}

// Error implements error. All diagnostics are included, one per line.
func (e *Error) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s: %s reported %d problem(s)", e.Path, e.Verifier, len(e.Diagnostics))
	for _, d := range e.Diagnostics {
		sb.WriteString("\n  ")
		sb.WriteString(d.String())
	}
	return sb.String()
}

// Unwrap returns ErrVerification so callers can use errors.Is.
func (e *Error) Unwrap() error {
	return ErrVerification
}

// New returns the verifier with the given name for a target language.
// NameAuto selects GoTypes for Go output and ESBuild otherwise. tscPath is
// only used by TSC and may be empty to look tsc up on PATH.
func New(name, language, tscPath string) (Verifier, error) {
	switch name {
	case NameAuto, "":
		if language == "go" {
			return NewGoTypes(), nil
		}
		return NewESBuild(), nil
	case NameESBuild:
		if language == "go" {
			return nil, fmt.Errorf("verifier %q cannot check %s output", name, language)
		}
		return NewESBuild(), nil
	case NameTSC:
		if language == "go" {
			return nil, fmt.Errorf("verifier %q cannot check %s output", name, language)
		}
		return NewTSC(tscPath), nil
	case NameGoTypes:
		if language != "go" {
			return nil, fmt.Errorf("verifier %q cannot check %s output", name, language)
		}
		return NewGoTypes(), nil
	case NameNone:
		return None{}, nil
	default:
		return nil, fmt.Errorf("unknown verifier %q (want auto, esbuild, tsc, gotypes or none)", name)
	}
}

// None accepts every file. It is selected when verification is disabled.
type None struct{}

// Verify always returns nil.
func (None) Verify(context.Context, string) error {
	return nil
}

// Name returns "none".
func (None) Name() string {
	return NameNone
}
