package codegen

import (
	"bytes"
	"fmt"
	"go/format"
	"text/template"
)

// DefaultGoPackage is the package name used when none is configured.
const DefaultGoPackage = "isoalpha2"

// goTemplate prints a named string type, its value array and a validity
// check per declaration. Output is passed through go/format afterwards.
var goTemplate = template.Must(template.New("go").Funcs(template.FuncMap{
	"values": joinQuoted,
	"quote":  quoteString,
}).Parse(`{{range .Header}}// {{.}}
{{end}}
// Package {{.Package}} lists ISO 3166-1 alpha-2 codes by assignment status.
package {{.Package}}
{{range .Decls}}
// {{.TypeName}} is an alpha-2 code listed under {{quote .Label}}.
type {{.TypeName}} string

// {{.TypeName}}Codes lists every {{.TypeName}} in registry order.
var {{.TypeName}}Codes = [...]{{.TypeName}}{ {{values .Values}} }

// IsValid reports whether c is listed in {{.TypeName}}Codes.
func (c {{.TypeName}}) IsValid() bool {
	for _, v := range {{.TypeName}}Codes {
		if v == c {
			return true
		}
	}
	return false
}
{{end}}`))

// GoRenderer renders a Module as a Go source file.
type GoRenderer struct {
	// pkg is the package clause of the generated file.
	pkg string
}

// NewGoRenderer creates a GoRenderer for the given package name.
// An empty name selects DefaultGoPackage.
func NewGoRenderer(pkg string) *GoRenderer {
	if pkg == "" {
		pkg = DefaultGoPackage
	}
	return &GoRenderer{pkg: pkg}
}

// Language returns "go".
func (r *GoRenderer) Language() string {
	return LanguageGo
}

// Extension returns "go".
func (r *GoRenderer) Extension() string {
	return "go"
}

// Render returns the gofmt-formatted Go source for m.
// A declaration name that is not a valid Go identifier makes formatting fail.
func (r *GoRenderer) Render(m *Module) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		Header  []string
		Package string
		Decls   []Decl
	}{
		Header:  headerLines(m),
		Package: r.pkg,
		Decls:   m.Decls,
	}
	if err := goTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render go: %w", err)
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to format generated go source: %w", err)
	}
	return src, nil
}
