package codegen

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
)

// tsTemplate prints one const tuple and one element type per declaration.
var tsTemplate = template.Must(template.New("typescript").Funcs(template.FuncMap{
	"values":  joinQuoted,
	"comment": jsdocText,
}).Parse(`{{range .Header}}// {{.}}
{{end}}{{range .Decls}}
/** {{comment .Label}} */
export const {{.ConstName}} = [{{values .Values}}] as const;
export type {{.TypeName}} = (typeof {{.ConstName}})[number];
{{end}}`))

// TypeScriptRenderer renders a Module as a TypeScript module.
type TypeScriptRenderer struct{}

// NewTypeScriptRenderer creates a TypeScriptRenderer.
func NewTypeScriptRenderer() *TypeScriptRenderer {
	return &TypeScriptRenderer{}
}

// Language returns "typescript".
func (r *TypeScriptRenderer) Language() string {
	return LanguageTypeScript
}

// Extension returns "ts".
func (r *TypeScriptRenderer) Extension() string {
	return "ts"
}

// Render returns the TypeScript source for m. Declarations appear in the
// order of m.Decls; an empty value list renders as an empty tuple.
func (r *TypeScriptRenderer) Render(m *Module) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		Header []string
		Decls  []Decl
	}{
		Header: headerLines(m),
		Decls:  m.Decls,
	}
	if err := tsTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render typescript: %w", err)
	}
	return buf.Bytes(), nil
}

// jsdocText keeps a label from closing the surrounding doc comment.
func jsdocText(s string) string {
	return strings.ReplaceAll(s, "*/", "*\\/")
}
