package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/shebe-oss/shebe/internal/toolserve"
)

func newServeCmd() *cobra.Command {
	var transport string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the MCP tool surface over stdio",
		Long: `Serve starts an MCP server exposing search_code, find_references,
and the rest of Shebe's tool surface to a connected client.

The stdio transport requires stdout to carry nothing but JSON-RPC
messages, so all status logging goes to stderr.

Example:
  shebe serve`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, transport)
		},
	}

	cmd.Flags().StringVar(&transport, "transport", "stdio", "MCP transport to serve on")
	return cmd
}

func runServe(cmd *cobra.Command, transport string) error {
	mgr, err := getSessionManager()
	if err != nil {
		return err
	}

	srv, err := toolserve.NewServer(mgr, cfg, logger)
	if err != nil {
		return fmt.Errorf("building MCP server: %w", err)
	}

	slog.Info("shebe serving", slog.String("transport", transport), slog.String("index_dir", cfg.IndexDir))
	return srv.Serve(cmd.Context(), transport)
}
