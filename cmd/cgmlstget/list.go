package main

import (
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/bajicv/cgmlstget/internal/log"
	"github.com/bajicv/cgmlstget/internal/model"
)

// NewListCmd creates the list command.
func NewListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all published cgMLST schemes",
		Long: `List fetches the cgMLST.org registry index and prints every published
scheme with its stable id, name, target count, and complex type count.

Examples:
  # Terminal table (default)
  cgmlstget list

  # JSON for tool integration
  cgmlstget list --json

  # Markdown written to a file
  cgmlstget list --markdown --output schemes.md`,
		Args: cobra.NoArgs,
		RunE: runListCmd,
	}

	addReportFlags(cmd)

	return cmd
}

// runListCmd executes the list command. It also backs the bare root
// invocation.
func runListCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := log.NewLogger(cmd.ErrOrStderr(), cfg.Verbose)
	slog.SetDefault(logger)

	ctx, cancel := signalContext(logger)
	defer cancel()

	client := newRegistryClient(cfg, logger)
	schemes, err := client.ListSchemes(ctx)
	if err != nil {
		return err
	}

	listing := &model.SchemeListing{
		FetchedAt: time.Now(),
		Schemes:   schemes,
	}

	out, cleanup, err := openOutput(cmd, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	return newReportWriter(cfg, out).WriteListing(listing)
}
