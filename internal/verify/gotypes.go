package verify

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/importer"
	"go/parser"
	"go/scanner"
	"go/token"
	"go/types"
)

// GoTypes verifies Go output by parsing and type-checking it in-process.
type GoTypes struct{}

// NewGoTypes creates a GoTypes verifier.
func NewGoTypes() *GoTypes {
	return &GoTypes{}
}

// Name returns "gotypes".
func (v *GoTypes) Name() string {
	return NameGoTypes
}

// Verify type-checks the file as a single-file package.
func (v *GoTypes) Verify(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, nil, parser.AllErrors)
	if err != nil {
		var list scanner.ErrorList
		if errors.As(err, &list) {
			diags := make([]Diagnostic, 0, len(list))
			for _, e := range list {
				diags = append(diags, Diagnostic{
					File:    path,
					Line:    e.Pos.Line,
					Column:  e.Pos.Column,
					Message: e.Msg,
				})
			}
			return &Error{Verifier: v.Name(), Path: path, Diagnostics: diags}
		}
		return fmt.Errorf("failed to parse generated file: %w", err)
	}

	diags := make([]Diagnostic, 0)
	conf := types.Config{
		Importer: importer.Default(),
		Error: func(err error) {
			var terr types.Error
			if errors.As(err, &terr) {
				pos := terr.Fset.Position(terr.Pos)
				diags = append(diags, Diagnostic{
					File:    path,
					Line:    pos.Line,
					Column:  pos.Column,
					Message: terr.Msg,
				})
				return
			}
			diags = append(diags, Diagnostic{File: path, Message: err.Error()})
		},
	}

	// Check reports every problem through conf.Error; its return value only
	// repeats the first one.
	_, _ = conf.Check(file.Name.Name, fset, []*ast.File{file}, nil)
	if len(diags) > 0 {
		return &Error{Verifier: v.Name(), Path: path, Diagnostics: diags}
	}
	return nil
}
