package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/nao1215/iso3166gen/internal/model"
)

// MarkdownWriter outputs the summary as GitHub Flavored Markdown.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the summary in Markdown format.
func (w *MarkdownWriter) Write(s *model.Summary) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, s)
	w.writeGroups(md, s)
	w.writeAlert(md, s)

	return len(md.String()), md.Build()
}

// writeHeader writes the run properties table.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, s *model.Summary) {
	md.H1("ISO 3166-1 alpha-2 generation")
	md.PlainText("")

	rows := [][]string{
		{"Source", s.SourceURL},
		{"Generated", s.GeneratedAt.Format("2006-01-02 15:04:05 MST")},
	}
	if s.OutputPath != "" {
		rows = append(rows, []string{"Output", "`" + s.OutputPath + "` (" + s.Language + ")"})
	}
	if s.Fingerprint != "" {
		rows = append(rows, []string{"Fingerprint", "`sha3-256:" + s.Fingerprint + "`"})
	}
	rows = append(rows,
		[]string{"Verifier", verifierText(s)},
		[]string{"Status", statusText(s)},
	)

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeGroups writes the per-status table and, when there are codes, a
// distribution chart.
func (w *MarkdownWriter) writeGroups(md *markdown.Markdown, s *model.Summary) {
	md.H2("Status groups")
	md.PlainText("")

	if len(s.Groups) == 0 {
		md.PlainText("No status groups were produced.")
		md.PlainText("")
		return
	}

	rows := make([][]string, 0, len(s.Groups)+1)
	for _, g := range s.Groups {
		rows = append(rows, []string{"`" + g.Identifier + "`", displayLabel(g.Label), strconv.Itoa(g.Count)})
	}
	rows = append(rows, []string{"**Total**", "", "**" + strconv.Itoa(s.TotalCodes) + "**"})

	md.Table(markdown.TableSet{
		Header: []string{"Identifier", "Status", "Codes"},
		Rows:   rows,
	})
	md.PlainText("")

	if s.TotalCodes > 0 {
		chart := piechart.NewPieChart(
			io.Discard,
			piechart.WithTitle("Codes by status"),
			piechart.WithShowData(true),
		)
		for _, g := range s.Groups {
			if g.Count > 0 {
				chart.LabelAndIntValue(g.Identifier, uint64(g.Count))
			}
		}
		md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
		md.PlainText("")
	}
}

// writeAlert closes the summary with the most relevant notice.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, s *model.Summary) {
	switch {
	case s.Error != "":
		md.Cautionf("Generation failed: %s", s.Error)
	case s.SkippedStatuses > 0 || s.SkippedCodes > 0:
		md.Warningf("Skipped %d malformed legend row(s) and %d code cell(s).", s.SkippedStatuses, s.SkippedCodes)
	case s.UngroupedCodes > 0:
		md.Importantf("%d code(s) matched no legend status.", s.UngroupedCodes)
	case !s.Verified:
		md.Note("The generated file was not verified.")
	default:
		md.Tip("Generated file verified.")
	}
}
