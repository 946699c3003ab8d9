package extract

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/nao1215/iso3166gen/internal/model"
)

// Extractor reads the registry tables.
type Extractor struct {
	// baseURL resolves relative anchor hrefs in the codes table.
	baseURL *url.URL

	// policy decides what happens to malformed rows and cells.
	policy Policy
}

// Result holds everything extracted from both tables.
type Result struct {
	// Statuses is the legend content in row order.
	Statuses []model.StatusEntry

	// Codes is the codes table content in document order.
	Codes []model.CodeEntry

	// Skipped counts what SkipMalformed dropped.
	Skipped Skipped
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithPolicy sets the malformed row and cell policy.
func WithPolicy(p Policy) Option {
	return func(e *Extractor) {
		e.policy = p
	}
}

// New creates an Extractor. The base URL is used to resolve relative links
// in the codes table and may be empty.
func New(baseURL string, opts ...Option) (*Extractor, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}

	e := &Extractor{
		baseURL: u,
		policy:  SkipMalformed,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Extract reads both tables of a fetched page.
func Extract(tables *model.Tables, policy Policy) (*Result, error) {
	e, err := New(tables.BaseURL, WithPolicy(policy))
	if err != nil {
		return nil, err
	}
	return e.Extract(tables)
}

// Extract reads both tables. The legend is read first; a malformed legend
// under FailOnMalformed stops before the codes table is touched.
func (e *Extractor) Extract(tables *model.Tables) (*Result, error) {
	statuses, skippedStatuses, err := e.Legend(strings.NewReader(tables.LegendHTML))
	if err != nil {
		return nil, err
	}

	codes, skippedCodes, err := e.Codes(strings.NewReader(tables.CodesHTML))
	if err != nil {
		return nil, err
	}

	return &Result{
		Statuses: statuses,
		Codes:    codes,
		Skipped: Skipped{
			Statuses: skippedStatuses,
			Codes:    skippedCodes,
		},
	}, nil
}

// Legend reads the legend table. Every row with exactly two td cells yields
// (class of the first cell, text of the second cell). It returns the entries
// in row order and the number of rows dropped as malformed.
func (e *Extractor) Legend(r io.Reader) ([]model.StatusEntry, int, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to parse legend table: %w", err)
	}

	entries := make([]model.StatusEntry, 0)
	skipped := 0
	var failure error

	doc.Find("tr").EachWithBreak(func(i int, tr *goquery.Selection) bool {
		cells := tr.Find("td").Nodes
		if len(cells) != 2 {
			return true
		}

		label := textContent(cells[1])
		if label == "" {
			if e.policy == FailOnMalformed {
				failure = &MalformedError{Table: "legend", Index: i, Reason: "status label is empty"}
				return false
			}
			skipped++
			return true
		}

		entries = append(entries, model.StatusEntry{
			ClassName: getAttr(cells[0], "class"),
			Label:     label,
		})
		return true
	})

	if failure != nil {
		return nil, skipped, failure
	}
	return entries, skipped, nil
}

// Codes reads the codes table. Every td cell yields (text, title attribute,
// first anchor href, class). It returns the entries in document order and
// the number of cells dropped as malformed.
func (e *Extractor) Codes(r io.Reader) ([]model.CodeEntry, int, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to parse codes table: %w", err)
	}

	entries := make([]model.CodeEntry, 0)
	skipped := 0
	var failure error

	doc.Find("td").EachWithBreak(func(i int, td *goquery.Selection) bool {
		cell := td.Get(0)

		alpha2 := textContent(cell)
		if alpha2 == "" {
			if e.policy == FailOnMalformed {
				failure = &MalformedError{Table: "codes", Index: i, Reason: "cell has no code"}
				return false
			}
			skipped++
			return true
		}

		entry := model.CodeEntry{
			Alpha2:    alpha2,
			Name:      getAttr(cell, "title"),
			ClassName: getAttr(cell, "class"),
		}
		if a := td.Find("a").First(); a.Length() > 0 {
			entry.Href = e.resolveURL(getAttr(a.Get(0), "href"))
		}

		entries = append(entries, entry)
		return true
	})

	if failure != nil {
		return nil, skipped, failure
	}
	return entries, skipped, nil
}

// resolveURL resolves an href against the base URL the way a browser's
// anchor.href property does. Unparseable hrefs resolve to the empty string.
func (e *Extractor) resolveURL(href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}

	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return e.baseURL.ResolveReference(u).String()
}

// textContent returns the concatenated text of all descendant text nodes,
// with surrounding whitespace trimmed.
func textContent(n *html.Node) string {
	var sb strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)

	return strings.TrimSpace(sb.String())
}

// getAttr retrieves an attribute value from an HTML node.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
