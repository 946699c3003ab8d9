package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for iso3166gen.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "iso3166gen",
		Short: "Generate ISO 3166-1 alpha-2 code lists from the ISO registry",
		Long: `iso3166gen scrapes the ISO 3166 Online Browsing Platform and generates a
source file listing every alpha-2 code element grouped by its assignment
status (officially assigned, exceptionally reserved, ...).

The registry page is rendered with a headless Chromium. Use "fetch" to save
the rendered page once and "generate --from-file" to work from the copy.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(NewGenerateCmd())
	cmd.AddCommand(NewFetchCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
