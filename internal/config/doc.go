// Package config holds the settings of one iso3166gen run: where the
// registry page comes from, which language is generated and where it goes,
// how rows and collisions are treated, and how the result is verified.
//
// Values are layered. NewConfig supplies defaults, an optional YAML file
// (see FindConfigFile) overrides them, and command-line flags that were set
// explicitly override both.
package config
