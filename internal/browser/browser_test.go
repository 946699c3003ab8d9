package browser

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-rod/rod/lib/launcher/flags"
)

// TestFileSource tests reading tables from a saved page.
func TestFileSource(t *testing.T) {
	t.Parallel()

	t.Run("finds both tables by exact class", func(t *testing.T) {
		t.Parallel()

		src := NewFileSource(filepath.Join("testdata", "registry.html"), "")
		tables, err := src.Tables(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if tables.BaseURL != DefaultURL {
			t.Errorf("expected base URL %q, got %q", DefaultURL, tables.BaseURL)
		}
		if !strings.HasPrefix(tables.LegendHTML, `<table class="grs-grid-legend">`) {
			t.Errorf("unexpected legend HTML: %q", tables.LegendHTML)
		}
		if !strings.Contains(tables.CodesHTML, "AD") || strings.Contains(tables.CodesHTML, "ZZ") {
			t.Errorf("expected the exact grs-grid table, got %q", tables.CodesHTML)
		}
	})

	t.Run("missing codes table", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "page.html")
		page := `<html><body><table class="grs-grid-legend"><tr><td></td></tr></table></body></html>`
		if err := os.WriteFile(path, []byte(page), 0600); err != nil {
			t.Fatal(err)
		}

		_, err := NewFileSource(path, "").Tables(context.Background())
		if !errors.Is(err, ErrTableNotFound) {
			t.Fatalf("expected ErrTableNotFound, got %v", err)
		}
		if !strings.Contains(err.Error(), CodesSelector) {
			t.Errorf("expected error to name the selector, got %q", err.Error())
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := NewFileSource(filepath.Join(t.TempDir(), "nope.html"), "").Tables(context.Background())
		if err == nil || errors.Is(err, ErrTableNotFound) {
			t.Errorf("expected read error, got %v", err)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := NewFileSource(filepath.Join("testdata", "registry.html"), "").Tables(ctx)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})
}

// TestNewFetcher tests Fetcher defaults and options.
func TestNewFetcher(t *testing.T) {
	t.Parallel()

	f := NewFetcher()
	if f.URL() != DefaultURL {
		t.Errorf("expected default URL, got %q", f.URL())
	}
	if f.timeout != DefaultTimeout {
		t.Errorf("expected default timeout, got %v", f.timeout)
	}
	if !f.headless {
		t.Error("expected headless by default")
	}

	f = NewFetcher(
		WithURL("http://127.0.0.1/registry"),
		WithTimeout(5*time.Second),
		WithHeadless(false),
		WithBrowserBin("/usr/bin/chromium"),
	)
	if f.URL() != "http://127.0.0.1/registry" || f.timeout != 5*time.Second || f.headless || f.bin != "/usr/bin/chromium" {
		t.Errorf("options not applied: %+v", f)
	}

	f = NewFetcher(WithTimeout(0))
	if f.timeout != DefaultTimeout {
		t.Errorf("expected zero timeout to keep default, got %v", f.timeout)
	}
}

// TestLauncherFlags tests that the sandbox is disabled on launch.
func TestLauncherFlags(t *testing.T) {
	t.Parallel()

	l := NewFetcher().newLauncher()
	for _, name := range []string{"no-sandbox", "disable-setuid-sandbox", "disable-dev-shm-usage", "headless"} {
		if !l.Has(flags.Flag(name)) {
			t.Errorf("expected launcher flag --%s", name)
		}
	}
}

// TestFetcherTables drives a real Chromium against a local copy of the
// registry page. It only runs when ISO3166GEN_BROWSER_TEST=1.
func TestFetcherTables(t *testing.T) {
	if os.Getenv("ISO3166GEN_BROWSER_TEST") != "1" {
		t.Skip("set ISO3166GEN_BROWSER_TEST=1 to run browser tests")
	}

	page, err := os.ReadFile(filepath.Join("testdata", "registry.html"))
	if err != nil {
		t.Fatal(err)
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(page)
	}))
	t.Cleanup(srv.Close)

	t.Run("reads both tables", func(t *testing.T) {
		f := NewFetcher(WithURL(srv.URL), WithTimeout(30*time.Second))
		tables, err := f.Tables(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tables.BaseURL != srv.URL {
			t.Errorf("expected base URL %q, got %q", srv.URL, tables.BaseURL)
		}
		if !strings.Contains(tables.LegendHTML, "Formerly used code elements") {
			t.Errorf("unexpected legend HTML: %q", tables.LegendHTML)
		}
		if !strings.Contains(tables.CodesHTML, "AE") {
			t.Errorf("unexpected codes HTML: %q", tables.CodesHTML)
		}
	})

	t.Run("page snapshot round-trips through FileSource", func(t *testing.T) {
		f := NewFetcher(WithURL(srv.URL), WithTimeout(30*time.Second))
		doc, err := f.Page(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := TablesFromHTML([]byte(doc), srv.URL); err != nil {
			t.Errorf("snapshot is missing tables: %v", err)
		}
	})

	t.Run("missing table times out as not found", func(t *testing.T) {
		empty := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("<html><body>maintenance</body></html>"))
		}))
		defer empty.Close()

		f := NewFetcher(WithURL(empty.URL), WithTimeout(3*time.Second))
		if _, err := f.Tables(context.Background()); !errors.Is(err, ErrTableNotFound) {
			t.Errorf("expected ErrTableNotFound, got %v", err)
		}
	})
}
