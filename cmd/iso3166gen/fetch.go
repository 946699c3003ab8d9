package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nao1215/iso3166gen/internal/browser"
	"github.com/nao1215/iso3166gen/internal/config"
	"github.com/nao1215/iso3166gen/internal/log"
)

// NewFetchCmd creates the fetch command.
func NewFetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Save the rendered registry page for offline generation",
		Long: `Fetch renders the registry page once, waits until both tables are present
and saves the whole document. Feed it back with "generate --from-file".

Examples:
  # Save to $XDG_CACHE_HOME/iso3166gen/registry.html
  iso3166gen fetch

  # Save next to the project
  iso3166gen fetch -o testdata/registry.html`,
		Args: cobra.NoArgs,
		RunE: runFetchCmd,
	}

	addSourceFlags(cmd)
	cmd.Flags().StringP("output", "o", "",
		"Snapshot path (default: $XDG_CACHE_HOME/iso3166gen/registry.html)")

	return cmd
}

// runFetchCmd executes the fetch command.
func runFetchCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	output, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	if output == "" {
		output = config.DefaultSnapshotPath()
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := log.NewLogger(cmd.ErrOrStderr(), cfg.Verbose)
	slog.SetDefault(logger)

	ctx, cancel := signalContext(logger)
	defer cancel()

	doc, err := newFetcher(cfg, logger).Page(ctx)
	if err != nil {
		return err
	}

	// Refuse to save a page the generator could not use.
	if _, err := browser.TablesFromHTML([]byte(doc), cfg.URL); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(output), 0750); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}
	if err := os.WriteFile(output, []byte(doc), 0600); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Saved registry page: %s\n", output)
	return nil
}
