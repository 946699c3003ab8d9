// Package verify checks that a generated file compiles.
//
// Three verifiers are available:
//
//   - ESBuild parses and transforms TypeScript in-process. It catches syntax
//     errors and redeclared constants without needing Node.js.
//   - TSC runs the TypeScript compiler with strict options and no emit. It
//     is the most thorough check for TypeScript output but needs tsc on PATH.
//   - GoTypes parses and type-checks Go output with go/parser and go/types.
//
// A failing check returns a *Error holding the diagnostics, which unwraps to
// ErrVerification. The verifiers never keep compiler output.
package verify
