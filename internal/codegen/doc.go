// Package codegen renders status groups into a generated source file.
//
// Generation happens in two steps. NewModule builds a small typed document
// (a Module holding one Decl per status group) and Renderer implementations
// print that document in a target language:
//
//   - TypeScriptRenderer: `export const isoX = [...] as const;` plus
//     `export type IsoX = (typeof isoX)[number];`
//   - GoRenderer: a named string type per group plus a fixed-size array of
//     its values, formatted with go/format.
//
// WriteFile writes the result, creating the parent directory when needed and
// replacing any previous file.
package codegen
