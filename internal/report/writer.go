package report

import (
	"fmt"
	"io"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nao1215/iso3166gen/internal/model"
)

// Summary formats accepted by New.
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

// Writer renders a run summary.
type Writer interface {
	// Write outputs the summary and returns the number of bytes written.
	Write(summary *model.Summary) (int, error)
}

// New returns the writer for format.
func New(format string, output io.Writer) (Writer, error) {
	switch format {
	case FormatText, "":
		return NewSimpleWriter(output), nil
	case FormatMarkdown:
		return NewMarkdownWriter(output), nil
	case FormatJSON:
		return NewJSONWriter(output, WithPrettyPrint()), nil
	default:
		return nil, fmt.Errorf("unknown summary format %q", format)
	}
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}

// titleCaser capitalises legend labels for display.
var titleCaser = cases.Title(language.English)

// displayLabel returns a status label in title case,
// e.g. "Officially Assigned Code Elements".
func displayLabel(label string) string {
	return titleCaser.String(label)
}

// verifierText describes how the generated file was checked.
func verifierText(s *model.Summary) string {
	switch {
	case s.Verified:
		return s.Verifier + " (passed)"
	case s.Verifier == "none":
		return "none (skipped)"
	default:
		return s.Verifier + " (failed)"
	}
}

// statusText is "Complete" or the run's error.
func statusText(s *model.Summary) string {
	if s.Error != "" {
		return "ERROR - " + s.Error
	}
	return "Complete"
}
