// Package cmd provides the CLI commands for shebe.
package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/shebe-oss/shebe/internal/cliutil"
	"github.com/shebe-oss/shebe/internal/config"
	"github.com/shebe-oss/shebe/internal/logging"
	"github.com/shebe-oss/shebe/internal/session"
	"github.com/shebe-oss/shebe/internal/toolops"
	"github.com/shebe-oss/shebe/pkg/version"
)

var (
	cfgFile   string
	debugMode bool

	cfg            config.Config
	logger         *slog.Logger
	loggingCleanup func()
)

// NewRootCmd creates the root command for the shebe CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shebe",
		Short: "Local BM25 full-text code search",
		Long: `Shebe indexes a codebase into a local BM25 full-text search index and
serves search, reference-finding, and file-browsing tools over MCP for
AI coding assistants, or directly from the command line.

Run 'shebe index <path>' to create a session, then 'shebe search' to
query it, or 'shebe serve' to expose the tools over MCP stdio.`,
		Version:      version.Version,
		SilenceUsage: true,
	}

	cmd.SetVersionTemplate("shebe version {{.Version}}\n")

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to a shebe.toml config file")
	cmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "enable debug logging to ~/.shebe/logs/")

	cmd.PersistentPreRunE = setupConfigAndLogging
	cmd.PersistentPostRunE = teardownLogging

	cmd.AddCommand(newIndexCmd())
	cmd.AddCommand(newSearchCmd())
	cmd.AddCommand(newRefsCmd())
	cmd.AddCommand(newSessionsCmd())
	cmd.AddCommand(newDoctorCmd())
	cmd.AddCommand(newUpgradeCmd())
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// setupConfigAndLogging resolves the configuration surface and wires the
// process-wide logger before any subcommand runs.
func setupConfigAndLogging(_ *cobra.Command, _ []string) error {
	loaded, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg = loaded

	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.LogLevel
	if debugMode {
		logCfg = logging.DebugConfig()
	}

	l, cleanup, err := logging.Setup(logCfg)
	if err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}
	logger = l
	loggingCleanup = cleanup
	slog.SetDefault(logger)
	return nil
}

func teardownLogging(_ *cobra.Command, _ []string) error {
	if loggingCleanup != nil {
		loggingCleanup()
		loggingCleanup = nil
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}

// getSessionManager builds a session manager rooted at the resolved
// config's index_dir.
func getSessionManager() (*session.Manager, error) {
	return session.NewManager(cfg.IndexDir, logger)
}

// getDeps builds the toolops.Deps the tool operations need from the
// resolved config, the same narrowing internal/toolserve performs when
// wiring the MCP transport.
func getDeps() toolops.Deps {
	return toolops.Deps{
		IndexRoot: cfg.IndexDir,
		Config: toolops.Limits{
			DefaultK:             cfg.DefaultK,
			MaxK:                 cfg.MaxK,
			MaxQueryLength:       cfg.MaxQueryLength,
			MaxFileBytes:         cfg.MaxFileBytes(),
			MaxConcurrentIndexes: cfg.MaxConcurrentIndexes,
			RequestTimeoutSec:    cfg.RequestTimeoutSec,
		},
	}
}

// outWriter returns a cliutil.Writer over cmd's configured stdout, so
// commands honor SetOut the same way cmd.OutOrStdout() does.
func outWriter(cmd *cobra.Command) *cliutil.Writer {
	return cliutil.New(cmd.OutOrStdout())
}
