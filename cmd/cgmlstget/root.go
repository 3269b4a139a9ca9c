package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bajicv/cgmlstget/internal/config"
	"github.com/bajicv/cgmlstget/internal/model"
	"github.com/bajicv/cgmlstget/internal/registry"
	"github.com/bajicv/cgmlstget/internal/report"
)

// NewRootCmd creates the root command for cgmlstget.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cgmlstget",
		Short: "Client for the cgMLST.org genotyping scheme registry",
		Long: `cgmlstget is a command-line client for the cgMLST.org scheme registry.
It lists published cgMLST typing schemes, reports when a named scheme
last changed, and downloads and unpacks a scheme's allele archive.

Running cgmlstget without a subcommand prints the full scheme listing.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runListCmd,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .cgmlstget in current, XDG config, or home directory)")
	cmd.PersistentFlags().DurationP("timeout", "t", config.DefaultTimeout,
		"HTTP timeout for registry requests")
	cmd.PersistentFlags().String("base-url", config.DefaultBaseURL,
		"Registry base URL (override to target a mirror)")

	// Add subcommands
	cmd.AddCommand(NewListCmd())
	cmd.AddCommand(NewLastChangeCmd())
	cmd.AddCommand(NewDownloadCmd())
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

// buildConfig creates a Config from defaults, the optional config
// file, and cobra flags, in that precedence order. Flags that a
// command does not define are simply skipped.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error
	if cmd.Flags().Lookup("verbose") != nil {
		if cfg.Verbose, err = cmd.Flags().GetBool("verbose"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Lookup("config") != nil {
		if cfg.ConfigFilePath, err = cmd.Flags().GetString("config"); err != nil {
			return nil, err
		}
	}

	// Apply the config file before flags so explicit flags win.
	// If the user explicitly specified a config file path, error if it
	// is not found; an absent default file is fine.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	if configPath != "" {
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		if err := file.Apply(cfg); err != nil {
			return nil, err
		}
	} else if explicitConfigPath {
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	if cmd.Flags().Changed("timeout") {
		if cfg.Timeout, err = cmd.Flags().GetDuration("timeout"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("base-url") {
		if cfg.BaseURL, err = cmd.Flags().GetString("base-url"); err != nil {
			return nil, err
		}
	}

	// Per-command flags: present only on the commands that render
	// reports or download archives.
	if cmd.Flags().Lookup("json") != nil {
		if cfg.JSONOutput, err = cmd.Flags().GetBool("json"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Lookup("markdown") != nil {
		if cfg.MarkdownOutput, err = cmd.Flags().GetBool("markdown"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Lookup("output") != nil {
		if cfg.OutputFile, err = cmd.Flags().GetString("output"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Lookup("dir") != nil && cmd.Flags().Changed("dir") {
		if cfg.OutputDir, err = cmd.Flags().GetString("dir"); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// addReportFlags registers the output-format flags shared by the
// report-producing commands.
func addReportFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown (mutually exclusive with --json)")
	cmd.Flags().StringP("output", "o", "",
		"Write output to the specified file path instead of stdout")
}

// signalContext returns a context cancelled on SIGINT/SIGTERM.
func signalContext(logger *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return ctx, cancel
}

// newRegistryClient builds the registry client for the run.
func newRegistryClient(cfg *config.Config, logger *slog.Logger) *registry.Client {
	return registry.NewClient(cfg.BaseURL,
		registry.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		registry.WithUserAgent(cfg.UserAgent),
		registry.WithMaxBodySize(cfg.MaxBodySize),
		registry.WithLogger(logger),
	)
}

// openOutput returns the report destination and a cleanup function.
// With no --output flag the command's stdout is used.
func openOutput(cmd *cobra.Command, cfg *config.Config) (io.Writer, func(), error) {
	if cfg.OutputFile == "" {
		return cmd.OutOrStdout(), func() {}, nil
	}

	if dir := filepath.Dir(cfg.OutputFile); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	f, err := os.Create(cfg.OutputFile) //nolint:gosec // User-provided output path is intentional
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil //nolint:errcheck // Best effort close
}

// newReportWriter selects the report format from the configuration.
func newReportWriter(cfg *config.Config, out io.Writer) report.Writer {
	switch {
	case cfg.JSONOutput:
		return report.NewJSONWriter(out)
	case cfg.MarkdownOutput:
		return report.NewMarkdownWriter(out)
	default:
		return report.NewTableWriter(out)
	}
}

// requireScheme validates the requested id against the live listing.
// On an unknown id it prints a message plus the valid-id listing and
// returns registry.ErrUnknownScheme; no detail or download request is
// made for an id that failed validation.
func requireScheme(cmd *cobra.Command, listing *model.SchemeListing, id string) error {
	if _, ok := listing.Find(id); ok {
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Scheme id %q is not in the registry. Valid schemes:\n\n", id)
	if err := report.NewTableWriter(cmd.OutOrStdout()).WriteListing(listing); err != nil {
		return err
	}
	return fmt.Errorf("%w: %s", registry.ErrUnknownScheme, id)
}
