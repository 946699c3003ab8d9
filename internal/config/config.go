package config

import (
	"go/token"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"

	"github.com/nao1215/iso3166gen/internal/browser"
	"github.com/nao1215/iso3166gen/internal/codegen"
	"github.com/nao1215/iso3166gen/internal/verify"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "iso3166gen"

	// DefaultLanguage is the generated artifact language.
	DefaultLanguage = codegen.LanguageTypeScript

	// DefaultTypeScriptOutput is where the TypeScript module is written.
	DefaultTypeScriptOutput = "dist/iso-alpha2.ts"

	// DefaultGoOutput is where the Go package file is written.
	DefaultGoOutput = "dist/isoalpha2/iso_alpha2.go"

	// DefaultSummary prints a plain text summary to stderr.
	DefaultSummary = "text"

	// SnapshotFile is the file name fetch uses inside the cache directory.
	SnapshotFile = "registry.html"
)

// Summary formats.
const (
	SummaryText     = "text"
	SummaryMarkdown = "markdown"
	SummaryJSON     = "json"
	SummaryNone     = "none"
)

// Config holds all options for one run.
type Config struct {
	// URL is the registry page rendered by the browser.
	URL string

	// OutputPath is the generated file. Empty means the default for Language.
	OutputPath string

	// Language is the target language, normalized by Validate to
	// "typescript" or "go".
	Language string

	// GoPackage is the package clause of Go output.
	GoPackage string

	// FromFile reads a saved page instead of launching a browser.
	FromFile string

	// BrowserBin is the Chromium executable. Empty lets rod find one.
	BrowserBin string

	// ControlURL connects to a running browser's DevTools endpoint.
	ControlURL string

	// Headless runs a launched browser without a window.
	Headless bool

	// Timeout bounds navigation and both table waits.
	Timeout time.Duration

	// Verifier selects the post-write check (auto, esbuild, tsc, gotypes, none).
	Verifier string

	// TSCPath is the TypeScript compiler used by the tsc verifier.
	TSCPath string

	// StrictRows fails on malformed legend rows and code cells instead of
	// skipping them.
	StrictRows bool

	// AllowCollisions lets two statuses share an identifier. The verifier
	// is then left to reject the output.
	AllowCollisions bool

	// Summary is the run summary format (text, markdown, json, none).
	Summary string

	// SummaryFile writes the summary to a file instead of stderr.
	SummaryFile string

	// Verbose enables debug logging.
	Verbose bool

	// ConfigFilePath is the configuration file given with --config.
	ConfigFilePath string
}

// NewConfig creates a Config with default values.
func NewConfig() *Config {
	return &Config{
		URL:       browser.DefaultURL,
		Language:  DefaultLanguage,
		GoPackage: codegen.DefaultGoPackage,
		Headless:  true,
		Timeout:   browser.DefaultTimeout,
		Verifier:  verify.NameAuto,
		Summary:   DefaultSummary,
	}
}

// XDGConfigDir returns the XDG config directory for iso3166gen.
// On Linux: ~/.config/iso3166gen
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// XDGCacheDir returns the XDG cache directory for iso3166gen.
// On Linux: ~/.cache/iso3166gen
func XDGCacheDir() string {
	return filepath.Join(xdg.CacheHome, AppName)
}

// DefaultSnapshotPath is where fetch saves the rendered page by default.
func DefaultSnapshotPath() string {
	return filepath.Join(XDGCacheDir(), SnapshotFile)
}

// Output returns the generated file path, falling back to the default for
// the configured language.
func (c *Config) Output() string {
	if c.OutputPath != "" {
		return c.OutputPath
	}
	if c.Language == codegen.LanguageGo {
		return DefaultGoOutput
	}
	return DefaultTypeScriptOutput
}

// Validate checks the configuration and normalizes Language. It returns
// the first problem found.
func (c *Config) Validate() error {
	if c.URL == "" && c.FromFile == "" {
		return ErrNoURL
	}

	if c.FromFile != "" && c.ControlURL != "" {
		return ErrConflictingSources
	}

	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	switch strings.ToLower(c.Language) {
	case "ts", codegen.LanguageTypeScript:
		c.Language = codegen.LanguageTypeScript
	case codegen.LanguageGo:
		c.Language = codegen.LanguageGo
	default:
		return ErrUnknownLanguage
	}

	if c.Language == codegen.LanguageGo && !token.IsIdentifier(c.GoPackage) {
		return ErrInvalidPackageName
	}

	switch c.Verifier {
	case verify.NameAuto, verify.NameNone:
	case verify.NameESBuild, verify.NameTSC:
		if c.Language != codegen.LanguageTypeScript {
			return ErrVerifierLanguage
		}
	case verify.NameGoTypes:
		if c.Language != codegen.LanguageGo {
			return ErrVerifierLanguage
		}
	default:
		return ErrUnknownVerifier
	}

	switch c.Summary {
	case SummaryText, SummaryMarkdown, SummaryJSON, SummaryNone:
	default:
		return ErrUnknownSummaryFormat
	}

	return nil
}
