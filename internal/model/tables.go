package model

// Tables holds the outer HTML of the two registry tables.
// Sources produce it; the extractor consumes it. Keeping the raw HTML as the
// boundary lets the same extraction run against a live browser session or a
// saved snapshot.
type Tables struct {
	// LegendHTML is the outer HTML of the legend table.
	LegendHTML string

	// CodesHTML is the outer HTML of the codes table.
	CodesHTML string

	// BaseURL is the URL of the page the tables were read from.
	// Relative anchor hrefs are resolved against it.
	BaseURL string
}
