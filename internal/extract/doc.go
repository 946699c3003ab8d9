// Package extract reads the legend and codes tables of the ISO 3166 registry
// page into model values.
//
// Both tables arrive as raw HTML (see model.Tables). The extractor selects
// rows and cells with goquery and reads text and attributes from the
// underlying golang.org/x/net/html nodes, so it behaves the same for a live
// browser session and for a saved snapshot.
//
// # Malformed rows and cells
//
// A legend row with exactly two cells but no label text, or a code cell with
// no text, is malformed. What happens to it is an explicit Policy:
//
//	extract.SkipMalformed   // drop it and count it in Skipped (default)
//	extract.FailOnMalformed // stop with a *MalformedError
//
// Legend rows with a cell count other than two (headers, spacers) are not
// legend entries at all and are ignored under both policies.
package extract
