package verify

import (
	"context"
	"fmt"
	"os"

	"github.com/evanw/esbuild/pkg/api"
)

// ESBuild verifies TypeScript by running it through esbuild's transform.
// esbuild does not type-check, but it rejects syntax errors and lexical
// redeclarations, which is how colliding identifiers show up.
type ESBuild struct{}

// NewESBuild creates an ESBuild verifier.
func NewESBuild() *ESBuild {
	return &ESBuild{}
}

// Name returns "esbuild".
func (v *ESBuild) Name() string {
	return NameESBuild
}

// Verify transforms the file as an ES2020 module and discards the output.
func (v *ESBuild) Verify(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	src, err := os.ReadFile(path) //nolint:gosec // path is the file we just generated
	if err != nil {
		return fmt.Errorf("failed to read generated file: %w", err)
	}

	result := api.Transform(string(src), api.TransformOptions{
		Loader:     api.LoaderTS,
		Format:     api.FormatESModule,
		Target:     api.ES2020,
		Sourcefile: path,
		LogLevel:   api.LogLevelSilent,
	})
	if len(result.Errors) == 0 {
		return nil
	}

	diags := make([]Diagnostic, 0, len(result.Errors))
	for _, msg := range result.Errors {
		d := Diagnostic{File: path, Message: msg.Text}
		if msg.Location != nil {
			d.Line = msg.Location.Line
			d.Column = msg.Location.Column + 1
		}
		diags = append(diags, d)
	}
	return &Error{Verifier: v.Name(), Path: path, Diagnostics: diags}
}
