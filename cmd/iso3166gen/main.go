// Package main provides the entry point for the iso3166gen CLI.
//
// iso3166gen renders the ISO 3166 Online Browsing Platform in a headless
// browser, reads the alpha-2 code table and its status legend, and writes
// a source file with one typed constant list per assignment status.
//
// Usage:
//
//	iso3166gen generate
//	iso3166gen generate --lang go --output internal/isoalpha2/iso_alpha2.go
//	iso3166gen fetch && iso3166gen generate --from-file ~/.cache/iso3166gen/registry.html
//
// See --help for all available options.
package main

func main() {
	Execute()
}
