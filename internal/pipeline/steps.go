package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nao1215/iso3166gen/internal/browser"
	"github.com/nao1215/iso3166gen/internal/codegen"
	"github.com/nao1215/iso3166gen/internal/extract"
	"github.com/nao1215/iso3166gen/internal/group"
	"github.com/nao1215/iso3166gen/internal/model"
	"github.com/nao1215/iso3166gen/internal/verify"
)

// Step names, in execution order.
const (
	StepFetch   = "fetch"
	StepExtract = "extract"
	StepGroup   = "group"
	StepRender  = "render"
	StepWrite   = "write"
	StepVerify  = "verify"
)

// FetchStep obtains the raw registry tables.
type FetchStep struct {
	source browser.Source
	logger *slog.Logger
}

// NewFetchStep creates a FetchStep reading from source.
func NewFetchStep(source browser.Source, logger *slog.Logger) *FetchStep {
	return &FetchStep{source: source, logger: defaultLogger(logger)}
}

// Name returns the step name.
func (s *FetchStep) Name() string {
	return StepFetch
}

// Do fetches the tables and records the page URL as the run's source.
func (s *FetchStep) Do(ctx context.Context, run *model.Run) error {
	tables, err := s.source.Tables(ctx)
	if err != nil {
		return err
	}
	run.Tables = tables
	if tables.BaseURL != "" {
		run.SourceURL = tables.BaseURL
	}

	s.logger.Debug("fetched tables",
		"legend_bytes", len(tables.LegendHTML),
		"codes_bytes", len(tables.CodesHTML),
	)
	return nil
}

// ExtractStep reads statuses and codes out of the fetched tables.
type ExtractStep struct {
	policy extract.Policy
	logger *slog.Logger
}

// NewExtractStep creates an ExtractStep with the given malformed-row policy.
func NewExtractStep(policy extract.Policy, logger *slog.Logger) *ExtractStep {
	return &ExtractStep{policy: policy, logger: defaultLogger(logger)}
}

// Name returns the step name.
func (s *ExtractStep) Name() string {
	return StepExtract
}

// Do extracts both tables.
func (s *ExtractStep) Do(_ context.Context, run *model.Run) error {
	if run.Tables == nil {
		return fmt.Errorf("no tables to extract")
	}

	res, err := extract.Extract(run.Tables, s.policy)
	if err != nil {
		return err
	}
	run.Statuses = res.Statuses
	run.Codes = res.Codes
	run.SkippedStatuses = res.Skipped.Statuses
	run.SkippedCodes = res.Skipped.Codes

	if res.Skipped.Statuses > 0 || res.Skipped.Codes > 0 {
		s.logger.Warn("skipped malformed entries",
			"statuses", res.Skipped.Statuses,
			"codes", res.Skipped.Codes,
		)
	}
	s.logger.Debug("extracted tables", "statuses", len(res.Statuses), "codes", len(res.Codes))
	return nil
}

// GroupStep groups codes by status and derives identifiers.
type GroupStep struct {
	opts   group.Options
	logger *slog.Logger
}

// NewGroupStep creates a GroupStep.
func NewGroupStep(opts group.Options, logger *slog.Logger) *GroupStep {
	return &GroupStep{opts: opts, logger: defaultLogger(logger)}
}

// Name returns the step name.
func (s *GroupStep) Name() string {
	return StepGroup
}

// Do builds the groups and their fingerprint.
func (s *GroupStep) Do(_ context.Context, run *model.Run) error {
	groups, err := group.Build(run.Statuses, run.Codes, s.opts)
	if err != nil {
		return err
	}
	run.Groups = groups
	run.Fingerprint = model.Fingerprint(groups)

	for _, g := range groups {
		s.logger.Debug("status group", "identifier", g.Identifier, "codes", g.Len())
	}
	return nil
}

// RenderStep renders the groups into source text.
type RenderStep struct {
	renderer      codegen.Renderer
	validateNames bool
	logger        *slog.Logger
}

// NewRenderStep creates a RenderStep. validateNames rejects identifiers
// that are not valid declaration names before rendering.
func NewRenderStep(renderer codegen.Renderer, validateNames bool, logger *slog.Logger) *RenderStep {
	return &RenderStep{renderer: renderer, validateNames: validateNames, logger: defaultLogger(logger)}
}

// Name returns the step name.
func (s *RenderStep) Name() string {
	return StepRender
}

// Do renders run.Groups.
func (s *RenderStep) Do(_ context.Context, run *model.Run) error {
	m, err := codegen.NewModule(run.Groups, codegen.ModuleOptions{
		SourceURL:     run.SourceURL,
		ValidateNames: s.validateNames,
	})
	if err != nil {
		return err
	}

	out, err := s.renderer.Render(m)
	if err != nil {
		return err
	}
	run.Generated = out
	run.Language = s.renderer.Language()

	s.logger.Debug("rendered module", "language", run.Language, "bytes", len(out))
	return nil
}

// WriteStep writes the rendered source to disk.
type WriteStep struct {
	path   string
	logger *slog.Logger
}

// NewWriteStep creates a WriteStep for path.
func NewWriteStep(path string, logger *slog.Logger) *WriteStep {
	return &WriteStep{path: path, logger: defaultLogger(logger)}
}

// Name returns the step name.
func (s *WriteStep) Name() string {
	return StepWrite
}

// Do writes run.Generated, replacing any existing file.
func (s *WriteStep) Do(_ context.Context, run *model.Run) error {
	if run.Generated == nil {
		return fmt.Errorf("nothing rendered to write")
	}
	if err := codegen.WriteFile(s.path, run.Generated); err != nil {
		return err
	}
	run.OutputPath = s.path

	s.logger.Debug("wrote generated file", "output", s.path)
	return nil
}

// VerifyStep checks the written file.
type VerifyStep struct {
	verifier verify.Verifier
	logger   *slog.Logger
}

// NewVerifyStep creates a VerifyStep.
func NewVerifyStep(verifier verify.Verifier, logger *slog.Logger) *VerifyStep {
	return &VerifyStep{verifier: verifier, logger: defaultLogger(logger)}
}

// Name returns the step name.
func (s *VerifyStep) Name() string {
	return StepVerify
}

// Do runs the verifier on run.OutputPath. The none verifier records the
// run as unverified.
func (s *VerifyStep) Do(ctx context.Context, run *model.Run) error {
	run.Verifier = s.verifier.Name()
	if err := s.verifier.Verify(ctx, run.OutputPath); err != nil {
		return err
	}
	run.Verified = s.verifier.Name() != verify.NameNone

	s.logger.Debug("verified generated file", "verifier", run.Verifier, "output", run.OutputPath)
	return nil
}

func defaultLogger(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}
	return logger
}
