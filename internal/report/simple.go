package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/iso3166gen/internal/model"
)

// SimpleWriter outputs a plain text summary.
type SimpleWriter struct {
	baseWriter
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer) *SimpleWriter {
	return &SimpleWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the summary as aligned text.
func (w *SimpleWriter) Write(s *model.Summary) (int, error) {
	var sb strings.Builder

	sb.WriteString("ISO 3166-1 alpha-2 generation\n")
	sb.WriteString(strings.Repeat("=", 40))
	sb.WriteString("\n")
	fmt.Fprintf(&sb, "Source:       %s\n", s.SourceURL)
	if s.OutputPath != "" {
		fmt.Fprintf(&sb, "Output:       %s (%s)\n", s.OutputPath, s.Language)
	}
	if s.Fingerprint != "" {
		fmt.Fprintf(&sb, "Fingerprint:  sha3-256:%s\n", s.Fingerprint)
	}
	fmt.Fprintf(&sb, "Verifier:     %s\n", verifierText(s))
	fmt.Fprintf(&sb, "Status:       %s\n", statusText(s))

	if len(s.Groups) > 0 {
		sb.WriteString("\n")
		w.writeGroups(&sb, s)
	}

	if s.SkippedStatuses > 0 || s.SkippedCodes > 0 {
		fmt.Fprintf(&sb, "\nSkipped %d malformed legend row(s) and %d code cell(s)\n", s.SkippedStatuses, s.SkippedCodes)
	}
	if s.UngroupedCodes > 0 {
		fmt.Fprintf(&sb, "%d code(s) matched no legend status\n", s.UngroupedCodes)
	}

	return io.WriteString(w.output, sb.String())
}

// writeGroups writes one line per group with the identifier column padded
// to the longest identifier.
func (w *SimpleWriter) writeGroups(sb *strings.Builder, s *model.Summary) {
	width := len("Total")
	for _, g := range s.Groups {
		width = max(width, len(g.Identifier))
	}

	for _, g := range s.Groups {
		fmt.Fprintf(sb, "  %-*s  %4d  %s\n", width, g.Identifier, g.Count, displayLabel(g.Label))
	}
	fmt.Fprintf(sb, "  %-*s  %4d\n", width, "Total", s.TotalCodes)
}
