package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/iso3166gen/internal/browser"
	"github.com/nao1215/iso3166gen/internal/codegen"
	"github.com/nao1215/iso3166gen/internal/config"
	"github.com/nao1215/iso3166gen/internal/extract"
	"github.com/nao1215/iso3166gen/internal/group"
	"github.com/nao1215/iso3166gen/internal/log"
	"github.com/nao1215/iso3166gen/internal/model"
	"github.com/nao1215/iso3166gen/internal/pipeline"
	"github.com/nao1215/iso3166gen/internal/report"
	"github.com/nao1215/iso3166gen/internal/verify"
)

// NewGenerateCmd creates the generate command.
func NewGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate the alpha-2 code lists",
		Long: `Generate renders the ISO registry page, groups every alpha-2 code element by
its status and writes one typed list per status.

TypeScript output (default) has one pair per status:
  export const isoOfficiallyAssigned = ["AD", "AE", ...] as const;
  export type IsoOfficiallyAssigned = (typeof isoOfficiallyAssigned)[number];

The written file is verified (esbuild for TypeScript, go/types for Go)
before the command succeeds.

Examples:
  # Generate dist/iso-alpha2.ts from the live registry
  iso3166gen generate

  # Generate a Go package instead
  iso3166gen generate --lang go --package isoalpha2

  # Work from a page saved with "iso3166gen fetch"
  iso3166gen generate --from-file ~/.cache/iso3166gen/registry.html

  # Check with the TypeScript compiler and write a Markdown summary
  iso3166gen generate --verifier tsc --summary markdown --summary-file summary.md`,
		Args: cobra.NoArgs,
		RunE: runGenerateCmd,
	}

	addSourceFlags(cmd)

	cmd.Flags().StringP("output", "o", "",
		"Generated file path (default: dist/iso-alpha2.ts, or dist/isoalpha2/iso_alpha2.go for go)")
	cmd.Flags().StringP("lang", "l", config.DefaultLanguage,
		"Target language: ts or go")
	cmd.Flags().String("package", codegen.DefaultGoPackage,
		"Package name for Go output")
	cmd.Flags().String("from-file", "",
		"Read a saved registry page instead of launching a browser")
	cmd.Flags().String("verifier", verify.NameAuto,
		"Verifier: auto, esbuild, tsc, gotypes or none")
	cmd.Flags().String("tsc", "",
		"TypeScript compiler used by --verifier tsc (default: tsc on PATH)")
	cmd.Flags().Bool("strict-rows", false,
		"Fail on malformed legend rows or empty code cells instead of skipping them")
	cmd.Flags().Bool("allow-collisions", false,
		"Allow two statuses to map to the same identifier (the verifier will reject the file)")
	cmd.Flags().String("summary", config.DefaultSummary,
		"Run summary format: text, markdown, json or none")
	cmd.Flags().String("summary-file", "",
		"Write the summary to a file instead of stderr")

	return cmd
}

// addSourceFlags registers the flags shared by generate and fetch.
func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().String("url", browser.DefaultURL,
		"Registry page URL")
	cmd.Flags().String("browser", "",
		"Chromium executable (default: found or downloaded automatically)")
	cmd.Flags().String("control-url", "",
		"DevTools WebSocket URL of a running browser to use instead of launching one")
	cmd.Flags().Bool("headless", true,
		"Run the launched browser headless")
	cmd.Flags().DurationP("timeout", "t", browser.DefaultTimeout,
		"Upper bound for loading the page and waiting for both tables")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .iso3166gen.yaml or $XDG_CONFIG_HOME/iso3166gen/config.yaml)")
}

// runGenerateCmd executes the generate command.
func runGenerateCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := log.NewLogger(cmd.ErrOrStderr(), cfg.Verbose)
	slog.SetDefault(logger)

	ctx, cancel := signalContext(logger)
	defer cancel()

	return runGenerate(ctx, cfg, logger, cmd.ErrOrStderr())
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext(logger *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-sigCh:
			logger.Info("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sigCh)
		cancel()
	}
}

// buildConfig layers defaults, the configuration file and explicitly set
// flags, in that order.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error
	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	if err := applyConfigFile(cfg); err != nil {
		return nil, err
	}

	cfg.Verbose = getVerboseFlag(cmd)

	flags := cmd.Flags()
	stringFlags := map[string]*string{
		"url":          &cfg.URL,
		"browser":      &cfg.BrowserBin,
		"control-url":  &cfg.ControlURL,
		"output":       &cfg.OutputPath,
		"lang":         &cfg.Language,
		"package":      &cfg.GoPackage,
		"from-file":    &cfg.FromFile,
		"verifier":     &cfg.Verifier,
		"tsc":          &cfg.TSCPath,
		"summary":      &cfg.Summary,
		"summary-file": &cfg.SummaryFile,
	}
	for name, dst := range stringFlags {
		if flags.Lookup(name) == nil || !flags.Changed(name) {
			continue
		}
		if *dst, err = flags.GetString(name); err != nil {
			return nil, err
		}
	}

	boolFlags := map[string]*bool{
		"headless":         &cfg.Headless,
		"strict-rows":      &cfg.StrictRows,
		"allow-collisions": &cfg.AllowCollisions,
	}
	for name, dst := range boolFlags {
		if flags.Lookup(name) == nil || !flags.Changed(name) {
			continue
		}
		if *dst, err = flags.GetBool(name); err != nil {
			return nil, err
		}
	}

	if flags.Changed("timeout") {
		if cfg.Timeout, err = flags.GetDuration("timeout"); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// applyConfigFile loads the configuration file, if any, onto cfg. A file
// named with --config must exist.
func applyConfigFile(cfg *config.Config) error {
	path := config.FindConfigFile(cfg.ConfigFilePath)
	if path == "" {
		if cfg.ConfigFilePath != "" {
			return fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
		}
		return nil
	}

	file, err := config.LoadConfigFile(path)
	if err != nil {
		return fmt.Errorf("failed to load config file %s: %w", path, err)
	}
	file.Apply(cfg)
	return nil
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// newSource returns the saved page reader or a browser fetcher.
func newSource(cfg *config.Config, logger *slog.Logger) browser.Source {
	if cfg.FromFile != "" {
		return browser.NewFileSource(cfg.FromFile, cfg.URL)
	}
	return newFetcher(cfg, logger)
}

func newFetcher(cfg *config.Config, logger *slog.Logger) *browser.Fetcher {
	return browser.NewFetcher(
		browser.WithURL(cfg.URL),
		browser.WithBrowserBin(cfg.BrowserBin),
		browser.WithControlURL(cfg.ControlURL),
		browser.WithHeadless(cfg.Headless),
		browser.WithTimeout(cfg.Timeout),
		browser.WithLogger(logger),
	)
}

// newPipeline assembles the generate steps for cfg.
func newPipeline(cfg *config.Config, logger *slog.Logger) (*pipeline.Pipeline, error) {
	renderer, err := codegen.NewRenderer(cfg.Language, cfg.GoPackage)
	if err != nil {
		return nil, err
	}

	verifier, err := verify.New(cfg.Verifier, renderer.Language(), cfg.TSCPath)
	if err != nil {
		return nil, err
	}

	rows := extract.SkipMalformed
	if cfg.StrictRows {
		rows = extract.FailOnMalformed
	}

	collisions := group.FailOnCollision
	if cfg.AllowCollisions {
		collisions = group.AllowCollision
	}

	steps := []pipeline.Step{
		pipeline.NewFetchStep(newSource(cfg, logger), logger),
		pipeline.NewExtractStep(rows, logger),
		pipeline.NewGroupStep(group.Options{Collisions: collisions}, logger),
		pipeline.NewRenderStep(renderer, !cfg.AllowCollisions, logger),
		pipeline.NewWriteStep(cfg.Output(), logger),
		pipeline.NewVerifyStep(verifier, logger),
	}
	return pipeline.New(steps, pipeline.WithLogger(logger)), nil
}

// runGenerate executes the pipeline and writes the summary whether or not
// the run succeeded.
func runGenerate(ctx context.Context, cfg *config.Config, logger *slog.Logger, stderr io.Writer) error {
	p, err := newPipeline(cfg, logger)
	if err != nil {
		return err
	}

	logger.Info("starting generation",
		"url", cfg.URL,
		"from_file", cfg.FromFile,
		"language", cfg.Language,
		"output", cfg.Output(),
	)

	run := model.NewRun(cfg.URL)
	runErr := p.Execute(ctx, run)

	if err := writeSummary(cfg, model.NewSummary(run), stderr); err != nil {
		if runErr != nil {
			logger.Error("failed to write summary", "error", err)
			return runErr
		}
		return err
	}
	return runErr
}

// writeSummary writes the run summary in the configured format.
func writeSummary(cfg *config.Config, summary *model.Summary, stderr io.Writer) error {
	if cfg.Summary == config.SummaryNone {
		return nil
	}

	output := stderr
	if cfg.SummaryFile != "" {
		dir := filepath.Dir(cfg.SummaryFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create summary directory: %w", err)
			}
		}

		f, err := os.Create(cfg.SummaryFile)
		if err != nil {
			return fmt.Errorf("failed to create summary file: %w", err)
		}
		defer f.Close()
		output = f
	}

	w, err := report.New(cfg.Summary, output)
	if err != nil {
		return err
	}
	_, err = w.Write(summary)
	return err
}
