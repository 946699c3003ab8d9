package model

import "time"

// Summary is a condensed, presentation-ready view of a Run.
// Report writers render it; it never holds raw HTML or generated source.
type Summary struct {
	// SourceURL is the registry page the tables come from.
	SourceURL string `json:"source_url"`

	// GeneratedAt is when the run started.
	GeneratedAt time.Time `json:"generated_at"`

	// OutputPath is the path of the generated file.
	OutputPath string `json:"output_path"`

	// Language is the target language of the generated file.
	Language string `json:"language"`

	// Fingerprint is the digest of the emitted groups.
	Fingerprint string `json:"fingerprint"`

	// Verifier names the verifier that checked the file, "none" if skipped.
	Verifier string `json:"verifier"`

	// Verified is true if the generated file passed verification.
	Verified bool `json:"verified"`

	// Groups has one line per status group, in legend order.
	Groups []GroupSummary `json:"groups"`

	// TotalCodes is the number of codes across all groups.
	TotalCodes int `json:"total_codes"`

	// UngroupedCodes counts extracted codes whose class name matched no status.
	UngroupedCodes int `json:"ungrouped_codes"`

	// SkippedStatuses counts legend rows dropped as malformed.
	SkippedStatuses int `json:"skipped_statuses"`

	// SkippedCodes counts code cells dropped as malformed.
	SkippedCodes int `json:"skipped_codes"`

	// Error contains the error message if the run failed.
	Error string `json:"error,omitempty"`
}

// GroupSummary describes one status group.
type GroupSummary struct {
	Identifier string `json:"identifier"`
	Label      string `json:"label"`
	Count      int    `json:"count"`
}

// NewSummary builds a Summary from a Run.
func NewSummary(run *Run) *Summary {
	s := &Summary{
		SourceURL:       run.SourceURL,
		GeneratedAt:     run.StartedAt,
		OutputPath:      run.OutputPath,
		Language:        run.Language,
		Fingerprint:     run.Fingerprint,
		Verifier:        run.Verifier,
		Verified:        run.Verified,
		Groups:          make([]GroupSummary, 0, len(run.Groups)),
		TotalCodes:      TotalCodes(run.Groups),
		SkippedStatuses: run.SkippedStatuses,
		SkippedCodes:    run.SkippedCodes,
		Error:           run.ErrorMessage,
	}
	if s.Verifier == "" {
		s.Verifier = "none"
	}

	known := make(map[string]bool, len(run.Statuses))
	for _, st := range run.Statuses {
		known[st.ClassName] = true
	}
	for _, c := range run.Codes {
		if !known[c.ClassName] {
			s.UngroupedCodes++
		}
	}

	for _, g := range run.Groups {
		s.Groups = append(s.Groups, GroupSummary{
			Identifier: g.Identifier,
			Label:      g.Label,
			Count:      len(g.Codes),
		})
	}
	return s
}
