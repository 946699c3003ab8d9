package model

import "time"

// Run carries the state of one generation run through the pipeline.
// Each step reads what earlier steps produced and fills in its own part.
type Run struct {
	// SourceURL is the registry page the tables come from.
	SourceURL string `json:"source_url"`

	// StartedAt is when the run was created.
	StartedAt time.Time `json:"started_at"`

	// Tables is the raw table HTML produced by the fetch step.
	Tables *Tables `json:"-"`

	// Statuses is the legend table content in row order.
	Statuses []StatusEntry `json:"statuses,omitempty"`

	// Codes is the codes table content in document order.
	Codes []CodeEntry `json:"codes,omitempty"`

	// SkippedStatuses counts legend rows dropped as malformed.
	SkippedStatuses int `json:"skipped_statuses"`

	// SkippedCodes counts code cells dropped as malformed.
	SkippedCodes int `json:"skipped_codes"`

	// Groups is the status groups in legend order.
	Groups []StatusGroup `json:"groups,omitempty"`

	// Fingerprint is the digest of Groups (see Fingerprint).
	Fingerprint string `json:"fingerprint,omitempty"`

	// Language is the target language of the generated file.
	Language string `json:"language,omitempty"`

	// Generated is the rendered source text.
	Generated []byte `json:"-"`

	// OutputPath is where the generated file was written.
	OutputPath string `json:"output_path,omitempty"`

	// Verified is true once the written file passed verification.
	Verified bool `json:"verified"`

	// Verifier names the verifier that checked the file.
	Verifier string `json:"verifier,omitempty"`

	// PerformedSteps lists the pipeline steps that completed, in order.
	PerformedSteps []string `json:"performed_steps,omitempty"`

	// Cancelled is true if the run stopped because its context ended.
	Cancelled bool `json:"cancelled"`

	// Error is the error that stopped the run, if any.
	Error error `json:"-"`

	// ErrorMessage is the string form of Error for serialization.
	ErrorMessage string `json:"error,omitempty"` //nolint:tagliatelle // error is conventional
}

// NewRun creates an empty Run for the given registry URL.
func NewRun(sourceURL string) *Run {
	return &Run{
		SourceURL:      sourceURL,
		StartedAt:      time.Now(),
		Statuses:       make([]StatusEntry, 0),
		Codes:          make([]CodeEntry, 0),
		Groups:         make([]StatusGroup, 0),
		PerformedSteps: make([]string, 0),
	}
}

// Succeeded reports whether the run wrote its file and no step failed.
// A failed verification is a step failure, so a succeeded run is either
// verified or ran with verification disabled.
func (r *Run) Succeeded() bool {
	return r.Error == nil && !r.Cancelled && r.OutputPath != ""
}
