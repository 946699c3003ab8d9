package extract

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nao1215/iso3166gen/internal/model"
)

const testBaseURL = "https://www.iso.org/obp/ui/#iso:pub:PUB500001:en"

// readFixture loads a file from testdata.
func readFixture(t *testing.T, name string) string {
	t.Helper()

	data, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("failed to read fixture %s: %v", name, err)
	}
	return string(data)
}

// TestLegend tests legend table extraction.
func TestLegend(t *testing.T) {
	t.Parallel()

	legend := readFixture(t, "legend.html")

	t.Run("extracts two-cell rows in order and skips empty labels", func(t *testing.T) {
		t.Parallel()

		e, err := New(testBaseURL)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got, skipped, err := e.Legend(strings.NewReader(legend))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := []model.StatusEntry{
			{ClassName: "a", Label: "Officially assigned code elements"},
			{ClassName: "b", Label: "Exceptionally reserved code elements"},
			{ClassName: "e", Label: "Indeterminately reserved code elements"},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("legend mismatch (-want +got):\n%s", diff)
		}
		if skipped != 1 {
			t.Errorf("expected 1 skipped row, got %d", skipped)
		}
	})

	t.Run("fails on empty label with FailOnMalformed", func(t *testing.T) {
		t.Parallel()

		e, err := New(testBaseURL, WithPolicy(FailOnMalformed))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		_, _, err = e.Legend(strings.NewReader(legend))
		if !errors.Is(err, ErrMalformed) {
			t.Fatalf("expected ErrMalformed, got %v", err)
		}

		var me *MalformedError
		if !errors.As(err, &me) {
			t.Fatalf("expected *MalformedError, got %T", err)
		}
		if me.Table != "legend" || me.Index != 3 {
			t.Errorf("unexpected error location: table=%q index=%d", me.Table, me.Index)
		}
	})

	t.Run("rows without exactly two cells are not malformed", func(t *testing.T) {
		t.Parallel()

		e, err := New("", WithPolicy(FailOnMalformed))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		html := `<table><tr><td class="a"></td><td>Label</td><td>3rd</td></tr><tr><th>x</th></tr></table>`
		got, skipped, err := e.Legend(strings.NewReader(html))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 0 || skipped != 0 {
			t.Errorf("expected no entries and no skips, got %d entries and %d skips", len(got), skipped)
		}
	})
}

// TestCodes tests codes table extraction.
func TestCodes(t *testing.T) {
	t.Parallel()

	codes := readFixture(t, "codes.html")

	t.Run("extracts cells in document order", func(t *testing.T) {
		t.Parallel()

		e, err := New(testBaseURL)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got, skipped, err := e.Codes(strings.NewReader(codes))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		want := []model.CodeEntry{
			{Alpha2: "US", Name: "United States", Href: "https://www.iso.org/obp/ui/#iso:code:3166:US", ClassName: "a"},
			{Alpha2: "UK", Name: "United Kingdom", ClassName: "a"},
			{Alpha2: "XX", Name: "Test", Href: "https://www.iso.org/obp/ui/#search", ClassName: "b"},
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("codes mismatch (-want +got):\n%s", diff)
		}
		if skipped != 1 {
			t.Errorf("expected 1 skipped cell, got %d", skipped)
		}
		if !got[0].HasLink() || got[1].HasLink() {
			t.Error("expected only linked cells to report HasLink")
		}
	})

	t.Run("fails on empty cell with FailOnMalformed", func(t *testing.T) {
		t.Parallel()

		e, err := New(testBaseURL, WithPolicy(FailOnMalformed))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		_, _, err = e.Codes(strings.NewReader(codes))
		var me *MalformedError
		if !errors.As(err, &me) {
			t.Fatalf("expected *MalformedError, got %v", err)
		}
		if me.Table != "codes" || me.Index != 3 {
			t.Errorf("unexpected error location: table=%q index=%d", me.Table, me.Index)
		}
	})

	t.Run("table without cells yields no entries", func(t *testing.T) {
		t.Parallel()

		e, err := New(testBaseURL, WithPolicy(FailOnMalformed))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got, skipped, err := e.Codes(strings.NewReader(`<table class="grs-grid"><tr><th>A</th></tr></table>`))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 0 || skipped != 0 {
			t.Errorf("expected no entries, got %d entries and %d skips", len(got), skipped)
		}
	})
}

// TestExtract tests extraction of both tables at once.
func TestExtract(t *testing.T) {
	t.Parallel()

	tables := &model.Tables{
		LegendHTML: readFixture(t, "legend.html"),
		CodesHTML:  readFixture(t, "codes.html"),
		BaseURL:    testBaseURL,
	}

	t.Run("skip policy counts both tables", func(t *testing.T) {
		t.Parallel()

		result, err := Extract(tables, SkipMalformed)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(result.Statuses) != 3 {
			t.Errorf("expected 3 statuses, got %d", len(result.Statuses))
		}
		if len(result.Codes) != 3 {
			t.Errorf("expected 3 codes, got %d", len(result.Codes))
		}
		if result.Skipped != (Skipped{Statuses: 1, Codes: 1}) {
			t.Errorf("unexpected skip counts: %+v", result.Skipped)
		}
	})

	t.Run("fail policy stops at the legend", func(t *testing.T) {
		t.Parallel()

		_, err := Extract(tables, FailOnMalformed)
		var me *MalformedError
		if !errors.As(err, &me) {
			t.Fatalf("expected *MalformedError, got %v", err)
		}
		if me.Table != "legend" {
			t.Errorf("expected legend failure first, got %q", me.Table)
		}
	})

	t.Run("invalid base URL is rejected", func(t *testing.T) {
		t.Parallel()

		_, err := Extract(&model.Tables{BaseURL: "http://[::1"}, SkipMalformed)
		if err == nil {
			t.Error("expected error for invalid base URL")
		}
	})
}

// TestParsePolicy tests policy parsing.
func TestParsePolicy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Policy
		wantErr bool
	}{
		{in: "", want: SkipMalformed},
		{in: "skip", want: SkipMalformed},
		{in: "fail", want: FailOnMalformed},
		{in: "ignore", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := ParsePolicy(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParsePolicy(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParsePolicy(%q) = %v, want %v", tt.in, got, tt.want)
			}
			if !tt.wantErr && got.String() == "" {
				t.Error("expected non-empty policy name")
			}
		})
	}
}
