package browser

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/PuerkitoBio/goquery"

	"github.com/nao1215/iso3166gen/internal/model"
)

// FileSource reads the registry tables from a saved page.
type FileSource struct {
	// path is the saved HTML document.
	path string

	// baseURL is reported as the page URL so relative links resolve the
	// same way they do in a live session.
	baseURL string
}

// NewFileSource creates a FileSource for path. An empty baseURL means
// DefaultURL.
func NewFileSource(path, baseURL string) *FileSource {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	return &FileSource{path: path, baseURL: baseURL}
}

// Tables parses the saved page and returns both tables.
func (s *FileSource) Tables(ctx context.Context) (*model.Tables, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read saved page: %w", err)
	}
	return TablesFromHTML(data, s.baseURL)
}

// TablesFromHTML locates both registry tables in a full HTML document.
func TablesFromHTML(data []byte, baseURL string) (*model.Tables, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse saved page: %w", err)
	}

	legend, err := outerHTML(doc, LegendSelector)
	if err != nil {
		return nil, err
	}
	codes, err := outerHTML(doc, CodesSelector)
	if err != nil {
		return nil, err
	}

	return &model.Tables{
		LegendHTML: legend,
		CodesHTML:  codes,
		BaseURL:    baseURL,
	}, nil
}

func outerHTML(doc *goquery.Document, selector string) (string, error) {
	sel := doc.Find(selector).First()
	if sel.Length() == 0 {
		return "", fmt.Errorf("%w: %s", ErrTableNotFound, selector)
	}
	out, err := goquery.OuterHtml(sel)
	if err != nil {
		return "", fmt.Errorf("failed to render %s: %w", selector, err)
	}
	return out, nil
}
