package main

import (
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/bajicv/cgmlstget/internal/log"
	"github.com/bajicv/cgmlstget/internal/model"
	"github.com/bajicv/cgmlstget/internal/registry"
)

// NewLastChangeCmd creates the last-change command.
func NewLastChangeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "last-change <scheme-id>",
		Short: "Show the current version and last change of a scheme",
		Long: `Last-change validates the scheme id against the live registry listing,
fetches the scheme's detail page, and reports its name, version, and
last-change timestamp. Fields the registry does not publish for a
scheme are omitted.

Examples:
  cgmlstget last-change Abaumannii
  cgmlstget last-change Abaumannii --json`,
		Args: cobra.ExactArgs(1),
		RunE: runLastChangeCmd,
	}

	addReportFlags(cmd)

	return cmd
}

// runLastChangeCmd executes the last-change command.
func runLastChangeCmd(cmd *cobra.Command, args []string) error {
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

	id := args[0]
	client := newRegistryClient(cfg, logger)

	schemes, err := client.ListSchemes(ctx)
	if err != nil {
		return err
	}
	listing := &model.SchemeListing{FetchedAt: time.Now(), Schemes: schemes}
	if err := requireScheme(cmd, listing, id); err != nil {
		return err
	}

	detail, err := client.FetchDetail(ctx, id)
	if err != nil {
		return err
	}
	info := registry.Resolve(detail)
	lastChange := model.NewLastChangeReport(id, info)

	out, cleanup, err := openOutput(cmd, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	return newReportWriter(cfg, out).WriteLastChange(&lastChange)
}
