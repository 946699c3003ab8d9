// Package report prints the summary of a generation run.
//
// Writers render a *model.Summary:
//   - SimpleWriter: plain text for the terminal (the default)
//   - MarkdownWriter: GitHub Flavored Markdown, e.g. for a CI job summary
//   - JSONWriter: structured output for other tools
package report
