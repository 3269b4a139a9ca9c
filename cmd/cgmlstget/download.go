package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/bajicv/cgmlstget/internal/archive"
	"github.com/bajicv/cgmlstget/internal/log"
	"github.com/bajicv/cgmlstget/internal/model"
	"github.com/bajicv/cgmlstget/internal/registry"
)

// NewDownloadCmd creates the download command.
func NewDownloadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "download <scheme-id>",
		Short: "Download and unpack a scheme's allele archive",
		Long: `Download validates the scheme id against the live registry listing,
resolves the scheme's current version and last-change timestamp, and
downloads the allele archive to

  <id>_v<version>_LastChange_<YYYY-MM-DD-HH-MM>.zip

before extracting it into a directory of the same name. If the zip or
the directory already exists the run is skipped without any download:
nothing is ever overwritten.

Examples:
  cgmlstget download Abaumannii
  cgmlstget download Abaumannii --dir /data/schemes`,
		Args: cobra.ExactArgs(1),
		RunE: runDownloadCmd,
	}

	cmd.Flags().StringP("dir", "d", ".",
		"Directory that receives the archive and its extracted contents")

	return cmd
}

// runDownloadCmd executes the download command.
func runDownloadCmd(cmd *cobra.Command, args []string) error {
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

	fetcher := archive.NewFetcher(
		archive.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		archive.WithUserAgent(cfg.UserAgent),
		archive.WithOutputDir(cfg.OutputDir),
		archive.WithLogger(logger),
	)

	result, err := fetcher.FetchAndExtract(ctx, client.ArchiveURL(id), id, info)
	if err != nil {
		return err
	}

	if result.AlreadyExists {
		fmt.Fprintf(cmd.OutOrStdout(), "%s already exists, skipping download\n", result.BaseName)
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Downloaded %s\n", result.ZipPath)
	fmt.Fprintf(cmd.OutOrStdout(), "Extracted %d files into %s\n", result.ExtractedFiles, result.Dir)
	return nil
}
