// Package model defines the data structures shared by the iso3166gen pipeline.
//
// This package contains the following main types:
//   - Tables: The raw HTML of the legend and codes tables as fetched
//   - StatusEntry: One row of the legend table (status class name and label)
//   - CodeEntry: One cell of the codes table (alpha-2 code and metadata)
//   - StatusGroup: The alpha-2 codes sharing one assignment status
//   - Run: The state carried through one generation run
//
// Models live in their own package so that the browser, extract, group,
// codegen and report packages can share them without import cycles.
// Everything here is ephemeral: it exists for the duration of one run and
// only the generated source file outlives it.
package model
