package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the configuration file looked up in the current directory.
const DefaultConfigFile = ".iso3166gen.yaml"

// XDGConfigFile is the configuration file name inside XDGConfigDir.
const XDGConfigFile = "config.yaml"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File is the YAML configuration file. Unset keys leave the corresponding
// Config value alone.
type File struct {
	URL      string `yaml:"url,omitempty"`
	Output   string `yaml:"output,omitempty"`
	Language string `yaml:"language,omitempty"`
	Package  string `yaml:"package,omitempty"`

	Browser BrowserFile `yaml:"browser,omitempty"`
	Verify  VerifyFile  `yaml:"verify,omitempty"`

	// StrictRows fails on malformed rows instead of skipping them.
	StrictRows *bool `yaml:"strict_rows,omitempty"`

	// AllowCollisions lets two statuses share an identifier.
	AllowCollisions *bool `yaml:"allow_collisions,omitempty"`

	Summary SummaryFile `yaml:"summary,omitempty"`
}

// BrowserFile is the browser section of the configuration file.
type BrowserFile struct {
	Bin        string        `yaml:"bin,omitempty"`
	ControlURL string        `yaml:"control_url,omitempty"`
	Headless   *bool         `yaml:"headless,omitempty"`
	Timeout    time.Duration `yaml:"timeout,omitempty"`
}

// VerifyFile is the verify section of the configuration file.
type VerifyFile struct {
	Compiler string `yaml:"compiler,omitempty"`
	TSCPath  string `yaml:"tsc_path,omitempty"`
}

// SummaryFile is the summary section of the configuration file.
type SummaryFile struct {
	Format string `yaml:"format,omitempty"`
	File   string `yaml:"file,omitempty"`
}

// LoadConfigFile loads a YAML configuration file.
// If the file does not exist, it returns ErrConfigNotFound.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &f, nil
}

// Apply copies every key set in the file onto cfg.
func (f *File) Apply(cfg *Config) {
	setString(&cfg.URL, f.URL)
	setString(&cfg.OutputPath, f.Output)
	setString(&cfg.Language, f.Language)
	setString(&cfg.GoPackage, f.Package)

	setString(&cfg.BrowserBin, f.Browser.Bin)
	setString(&cfg.ControlURL, f.Browser.ControlURL)
	if f.Browser.Headless != nil {
		cfg.Headless = *f.Browser.Headless
	}
	if f.Browser.Timeout != 0 {
		cfg.Timeout = f.Browser.Timeout
	}

	setString(&cfg.Verifier, f.Verify.Compiler)
	setString(&cfg.TSCPath, f.Verify.TSCPath)

	if f.StrictRows != nil {
		cfg.StrictRows = *f.StrictRows
	}
	if f.AllowCollisions != nil {
		cfg.AllowCollisions = *f.AllowCollisions
	}

	setString(&cfg.Summary, f.Summary.Format)
	setString(&cfg.SummaryFile, f.Summary.File)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .iso3166gen.yaml in the current directory
// 3. Look for config.yaml in XDGConfigDir
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	xdgConfig := filepath.Join(XDGConfigDir(), XDGConfigFile)
	if _, err := os.Stat(xdgConfig); err == nil {
		return xdgConfig
	}

	return ""
}
