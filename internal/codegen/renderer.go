package codegen

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Target language names.
const (
	LanguageTypeScript = "typescript"
	LanguageGo         = "go"
)

// Renderer prints a Module as source text in one target language.
type Renderer interface {
	// Render returns the complete source file for m.
	Render(m *Module) ([]byte, error)

	// Language returns the target language name.
	Language() string

	// Extension returns the file extension without the dot.
	Extension() string
}

// NewRenderer returns the renderer for a language name.
// "ts" is accepted as a short form of "typescript". goPackage is only used by
// the Go renderer.
func NewRenderer(language, goPackage string) (Renderer, error) {
	switch strings.ToLower(language) {
	case LanguageTypeScript, "ts":
		return NewTypeScriptRenderer(), nil
	case LanguageGo:
		return NewGoRenderer(goPackage), nil
	default:
		return nil, fmt.Errorf("unsupported language %q (want typescript or go)", language)
	}
}

// headerLines returns the "Code generated" header shared by all renderers.
// The first line follows the convention recognised by Go tooling and linters.
func headerLines(m *Module) []string {
	first := fmt.Sprintf("Code generated by %s. DO NOT EDIT.", m.Generator)
	lines := []string{first}
	if m.SourceURL != "" {
		lines = append(lines, "Source: "+m.SourceURL)
	}
	if m.Fingerprint != "" {
		lines = append(lines, "Fingerprint: sha3-256:"+m.Fingerprint)
	}
	return lines
}

// quoteString returns a double-quoted string literal that is valid in both
// TypeScript and Go.
func quoteString(s string) string {
	b, err := json.Marshal(s)
	if err != nil {
		// json.Marshal never fails for a string.
		return fmt.Sprintf("%q", s)
	}
	return string(b)
}

// joinQuoted quotes every value and joins them with ", ".
func joinQuoted(values []string) string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = quoteString(v)
	}
	return strings.Join(quoted, ", ")
}
