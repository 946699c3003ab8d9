package config

import "errors"

// Configuration validation errors returned by Config.Validate.
var (
	// ErrNoURL is returned when neither a registry URL nor a saved page is
	// configured.
	ErrNoURL = errors.New("no source: provide --url or --from-file")

	// ErrInvalidTimeout is returned when the browser wait timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrUnknownLanguage is returned for a target language other than
	// typescript or go.
	ErrUnknownLanguage = errors.New("unknown language: must be ts, typescript or go")

	// ErrInvalidPackageName is returned when the Go package name is not an
	// identifier.
	ErrInvalidPackageName = errors.New("invalid package name: must be a Go identifier")

	// ErrUnknownVerifier is returned for an unrecognised verifier name.
	ErrUnknownVerifier = errors.New("unknown verifier: must be auto, esbuild, tsc, gotypes or none")

	// ErrVerifierLanguage is returned when the verifier cannot check the
	// selected language, e.g. tsc with Go output.
	ErrVerifierLanguage = errors.New("verifier does not support the selected language")

	// ErrUnknownSummaryFormat is returned for a summary format other than
	// text, markdown, json or none.
	ErrUnknownSummaryFormat = errors.New("unknown summary format: must be text, markdown, json or none")

	// ErrConflictingSources is returned when a saved page and a remote
	// browser are both configured.
	ErrConflictingSources = errors.New("conflicting sources: --from-file and --control-url cannot be used together")
)
