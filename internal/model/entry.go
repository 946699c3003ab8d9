package model

// StatusEntry is one row of the legend table.
// The legend maps the class name used to tag cells in the codes table to a
// human-readable status label such as "Officially assigned code elements".
type StatusEntry struct {
	// ClassName is the class attribute of the row's first cell.
	// It is used only as a join key against CodeEntry.ClassName.
	ClassName string `json:"class_name"`

	// Label is the text content of the row's second cell, whitespace trimmed.
	// Never empty for an extracted entry.
	Label string `json:"label"`
}

// CodeEntry is one cell of the codes table.
type CodeEntry struct {
	// Alpha2 is the two-letter code (the cell's text content, trimmed).
	// Never empty for an extracted entry.
	Alpha2 string `json:"alpha2"`

	// Name is the country name taken from the cell's title attribute.
	Name string `json:"name,omitempty"`

	// Href is the absolute URL of the first anchor inside the cell.
	// Empty when the cell has no anchor.
	Href string `json:"href,omitempty"`

	// ClassName is the class attribute of the cell, naming its status.
	ClassName string `json:"class_name"`
}

// HasLink reports whether the code cell carried an anchor.
func (c CodeEntry) HasLink() bool {
	return c.Href != ""
}
