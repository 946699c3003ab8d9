package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nao1215/iso3166gen/internal/browser"
	"github.com/nao1215/iso3166gen/internal/codegen"
	"github.com/nao1215/iso3166gen/internal/extract"
	"github.com/nao1215/iso3166gen/internal/group"
	"github.com/nao1215/iso3166gen/internal/model"
	"github.com/nao1215/iso3166gen/internal/verify"
)

// staticSource serves fixed tables.
type staticSource struct {
	tables *model.Tables
	err    error
}

func (s staticSource) Tables(context.Context) (*model.Tables, error) {
	return s.tables, s.err
}

// generateSteps assembles the full step list the generate command uses.
func generateSteps(t *testing.T, src browser.Source, language, output string, collisions group.CollisionPolicy) []Step {
	t.Helper()

	renderer, err := codegen.NewRenderer(language, "")
	if err != nil {
		t.Fatal(err)
	}
	verifier, err := verify.New(verify.NameAuto, renderer.Language(), "")
	if err != nil {
		t.Fatal(err)
	}

	return []Step{
		NewFetchStep(src, nil),
		NewExtractStep(extract.SkipMalformed, nil),
		NewGroupStep(group.Options{Collisions: collisions}, nil),
		NewRenderStep(renderer, collisions == group.FailOnCollision, nil),
		NewWriteStep(output, nil),
		NewVerifyStep(verifier, nil),
	}
}

// TestGenerateTypeScript runs every step against the saved registry page.
func TestGenerateTypeScript(t *testing.T) {
	t.Parallel()

	output := filepath.Join(t.TempDir(), "dist", "iso-alpha2.ts")
	src := browser.NewFileSource(filepath.Join("testdata", "registry.html"), "")
	run := model.NewRun(browser.DefaultURL)

	p := New(generateSteps(t, src, "ts", output, group.FailOnCollision))
	if err := p.Execute(context.Background(), run); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !run.Succeeded() || !run.Verified || run.Verifier != verify.NameESBuild {
		t.Errorf("unexpected run state: succeeded=%v verified=%v verifier=%q", run.Succeeded(), run.Verified, run.Verifier)
	}
	wantSteps := []string{StepFetch, StepExtract, StepGroup, StepRender, StepWrite, StepVerify}
	if diff := cmp.Diff(wantSteps, run.PerformedSteps); diff != "" {
		t.Errorf("PerformedSteps mismatch (-want +got):\n%s", diff)
	}

	got, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}

	want := "// Code generated by iso3166gen. DO NOT EDIT.\n" +
		"// Source: " + browser.DefaultURL + "\n" +
		"// Fingerprint: sha3-256:" + run.Fingerprint + "\n" +
		"\n" +
		"/** Officially assigned code elements */\n" +
		"export const isoOfficiallyAssigned = [\"AD\", \"AE\"] as const;\n" +
		"export type IsoOfficiallyAssigned = (typeof isoOfficiallyAssigned)[number];\n" +
		"\n" +
		"/** Exceptionally reserved code elements */\n" +
		"export const isoExceptionallyReserved = [\"AC\"] as const;\n" +
		"export type IsoExceptionallyReserved = (typeof isoExceptionallyReserved)[number];\n" +
		"\n" +
		"/** Formerly used code elements */\n" +
		"export const isoFormerlyUsed = [] as const;\n" +
		"export type IsoFormerlyUsed = (typeof isoFormerlyUsed)[number];\n"
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Errorf("generated file mismatch (-want +got):\n%s", diff)
	}

	t.Run("rerun is byte-identical", func(t *testing.T) {
		run2 := model.NewRun(browser.DefaultURL)
		if err := New(generateSteps(t, src, "ts", output, group.FailOnCollision)).Execute(context.Background(), run2); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		again, err := os.ReadFile(output)
		if err != nil {
			t.Fatal(err)
		}
		if string(again) != string(got) {
			t.Error("expected identical output on rerun")
		}
	})
}

// TestGenerateGo runs the pipeline with the Go target.
func TestGenerateGo(t *testing.T) {
	t.Parallel()

	output := filepath.Join(t.TempDir(), "isoalpha2", "iso_alpha2.go")
	src := browser.NewFileSource(filepath.Join("testdata", "registry.html"), "")
	run := model.NewRun(browser.DefaultURL)

	if err := New(generateSteps(t, src, "go", output, group.FailOnCollision)).Execute(context.Background(), run); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if run.Verifier != verify.NameGoTypes || !run.Verified {
		t.Errorf("expected gotypes verification, got %q verified=%v", run.Verifier, run.Verified)
	}
	if run.Language != codegen.LanguageGo {
		t.Errorf("expected go language, got %q", run.Language)
	}

	got, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(got), `var IsoOfficiallyAssignedCodes = [...]IsoOfficiallyAssigned{"AD", "AE"}`) {
		t.Errorf("unexpected Go output:\n%s", got)
	}
}

// TestGenerateEdgeCases covers registry contents the generator must survive.
func TestGenerateEdgeCases(t *testing.T) {
	t.Parallel()

	legend := `<table class="grs-grid-legend"><tbody>` +
		`<tr><td class="a"></td><td>Officially assigned code elements</td></tr>` +
		`<tr><td class="b"></td><td>Exceptionally reserved code elements</td></tr>` +
		`</tbody></table>`

	t.Run("empty codes table still verifies", func(t *testing.T) {
		t.Parallel()

		src := staticSource{tables: &model.Tables{
			LegendHTML: legend,
			CodesHTML:  `<table class="grs-grid"><tbody></tbody></table>`,
			BaseURL:    browser.DefaultURL,
		}}
		output := filepath.Join(t.TempDir(), "iso-alpha2.ts")
		run := model.NewRun(browser.DefaultURL)

		if err := New(generateSteps(t, src, "ts", output, group.FailOnCollision)).Execute(context.Background(), run); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(run.Groups) != 2 || model.TotalCodes(run.Groups) != 0 {
			t.Errorf("expected two empty groups, got %+v", run.Groups)
		}
	})

	collidingLegend := `<table class="grs-grid-legend"><tbody>` +
		`<tr><td class="a"></td><td>Reserved code elements</td></tr>` +
		`<tr><td class="b"></td><td>Reserved code elements</td></tr>` +
		`</tbody></table>`
	collidingCodes := `<table class="grs-grid"><tbody><tr>` +
		`<td class="a">AA</td><td class="b">BB</td>` +
		`</tr></tbody></table>`

	t.Run("collision fails in group step", func(t *testing.T) {
		t.Parallel()

		src := staticSource{tables: &model.Tables{LegendHTML: collidingLegend, CodesHTML: collidingCodes}}
		output := filepath.Join(t.TempDir(), "iso-alpha2.ts")
		run := model.NewRun("")

		err := New(generateSteps(t, src, "ts", output, group.FailOnCollision)).Execute(context.Background(), run)
		if !errors.Is(err, group.ErrCollision) {
			t.Fatalf("expected ErrCollision, got %v", err)
		}
		if _, statErr := os.Stat(output); !os.IsNotExist(statErr) {
			t.Error("expected no file to be written")
		}
	})

	t.Run("allowed collision is caught by the verifier", func(t *testing.T) {
		t.Parallel()

		src := staticSource{tables: &model.Tables{LegendHTML: collidingLegend, CodesHTML: collidingCodes}}
		output := filepath.Join(t.TempDir(), "iso-alpha2.ts")
		run := model.NewRun("")

		err := New(generateSteps(t, src, "ts", output, group.AllowCollision)).Execute(context.Background(), run)
		if !errors.Is(err, verify.ErrVerification) {
			t.Fatalf("expected ErrVerification, got %v", err)
		}
		if run.Verified {
			t.Error("expected run to be unverified")
		}
		if _, statErr := os.Stat(output); statErr != nil {
			t.Errorf("expected the rejected file to remain for inspection: %v", statErr)
		}
	})

	t.Run("missing table aborts before writing", func(t *testing.T) {
		t.Parallel()

		src := staticSource{err: browser.ErrTableNotFound}
		output := filepath.Join(t.TempDir(), "iso-alpha2.ts")
		run := model.NewRun("")

		err := New(generateSteps(t, src, "ts", output, group.FailOnCollision)).Execute(context.Background(), run)
		if !errors.Is(err, browser.ErrTableNotFound) {
			t.Fatalf("expected ErrTableNotFound, got %v", err)
		}
		if diff := cmp.Diff([]string{}, run.PerformedSteps); diff != "" {
			t.Errorf("PerformedSteps mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("strict rows reject empty code cells", func(t *testing.T) {
		t.Parallel()

		src := staticSource{tables: &model.Tables{
			LegendHTML: legend,
			CodesHTML:  `<table class="grs-grid"><tbody><tr><td class="a">AD</td><td class="a"> </td></tr></tbody></table>`,
		}}
		run := model.NewRun("")

		p := New([]Step{NewFetchStep(src, nil), NewExtractStep(extract.FailOnMalformed, nil)})
		if err := p.Execute(context.Background(), run); !errors.Is(err, extract.ErrMalformed) {
			t.Fatalf("expected ErrMalformed, got %v", err)
		}
	})
}

// TestStepPreconditions tests steps run out of order.
func TestStepPreconditions(t *testing.T) {
	t.Parallel()

	if err := NewExtractStep(extract.SkipMalformed, nil).Do(context.Background(), model.NewRun("")); err == nil {
		t.Error("expected extract without tables to fail")
	}
	if err := NewWriteStep(filepath.Join(t.TempDir(), "x.ts"), nil).Do(context.Background(), model.NewRun("")); err == nil {
		t.Error("expected write without rendered source to fail")
	}

	run := model.NewRun("")
	run.OutputPath = "unused"
	if err := NewVerifyStep(verify.None{}, nil).Do(context.Background(), run); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if run.Verified || run.Verifier != verify.NameNone {
		t.Errorf("expected unverified run with verifier none, got verified=%v verifier=%q", run.Verified, run.Verifier)
	}
}
