package browser

import (
	"context"
	"errors"

	"github.com/nao1215/iso3166gen/internal/model"
)

// DefaultURL is the ISO Online Browsing Platform page listing every
// alpha-2 code element.
const DefaultURL = "https://www.iso.org/obp/ui/#iso:pub:PUB500001:en"

// Selectors for the two tables on the registry page. The class attribute is
// matched exactly.
const (
	LegendSelector = `table[class="grs-grid-legend"]`
	CodesSelector  = `table[class="grs-grid"]`
)

// ErrTableNotFound is returned when a registry table is not on the page.
var ErrTableNotFound = errors.New("registry table not found")

// Source provides the raw registry tables.
type Source interface {
	// Tables returns the outer HTML of the legend and codes tables.
	Tables(ctx context.Context) (*model.Tables, error)
}
