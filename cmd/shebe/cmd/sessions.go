package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/shebe-oss/shebe/internal/toolops"
)

func newSessionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Manage indexed sessions",
		Long: `List, inspect, reindex, and delete sessions.

Examples:
  shebe sessions
  shebe sessions info widget
  shebe sessions delete widget --confirm`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSessionsList(cmd)
		},
	}

	cmd.AddCommand(newSessionsInfoCmd())
	cmd.AddCommand(newSessionsDeleteCmd())
	cmd.AddCommand(newSessionsReindexCmd())

	return cmd
}

func runSessionsList(cmd *cobra.Command) error {
	mgr, err := getSessionManager()
	if err != nil {
		return err
	}

	resp, err := toolops.ListSessions(mgr)
	if err != nil {
		return err
	}

	if len(resp.Sessions) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no sessions found.")
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "create one with: shebe index PATH --session NAME")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "SESSION\tSTATE\tFILES\tCHUNKS\tREPOSITORY")
	for _, s := range resp.Sessions {
		repo := "-"
		if s.RepositoryPath != nil {
			repo = *s.RepositoryPath
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n", s.SessionID, s.State, s.FilesIndexed, s.ChunksCreated, repo)
	}
	return w.Flush()
}

func newSessionsInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info SESSION",
		Short: "Show detailed information about a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := getSessionManager()
			if err != nil {
				return err
			}
			d, err := toolops.GetSessionInfo(mgr, args[0])
			if err != nil {
				return err
			}
			out := outWriter(cmd)
			out.Statusf("session:            %s", d.SessionID)
			out.Statusf("state:              %s", d.State)
			out.Statusf("schema version:     %d", d.SchemaVersion)
			out.Statusf("files indexed:      %d", d.FilesIndexed)
			out.Statusf("chunks created:     %d", d.ChunksCreated)
			out.Statusf("size bytes:         %d", d.SizeBytes)
			out.Statusf("chunk size/overlap: %d/%d", d.ChunkSize, d.Overlap)
			out.Statusf("avg chunks/file:    %.2f", d.AvgChunksPerFile)
			out.Statusf("avg chunk bytes:    %.2f", d.AvgChunkBytes)
			return nil
		},
	}
}

func newSessionsDeleteCmd() *cobra.Command {
	var confirm bool
	cmd := &cobra.Command{
		Use:   "delete SESSION",
		Short: "Delete a session and its index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := getSessionManager()
			if err != nil {
				return err
			}
			if err := toolops.DeleteSession(mgr, toolops.DeleteSessionRequest{
				SessionID: args[0],
				Confirm:   confirm,
			}); err != nil {
				return err
			}
			outWriter(cmd).Successf("deleted session %q", args[0])
			return nil
		},
	}
	cmd.Flags().BoolVar(&confirm, "confirm", false, "confirm the delete (required)")
	return cmd
}

func newSessionsReindexCmd() *cobra.Command {
	var (
		chunkSize int
		overlap   int
		force     bool
	)
	cmd := &cobra.Command{
		Use:   "reindex SESSION",
		Short: "Re-run the indexing pipeline for an existing session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := getSessionManager()
			if err != nil {
				return err
			}
			req := toolops.ReindexSessionRequest{SessionID: args[0], Force: force}
			if cmd.Flags().Changed("chunk-size") {
				req.ChunkSize = &chunkSize
			}
			if cmd.Flags().Changed("overlap") {
				req.Overlap = &overlap
			}
			stats, err := toolops.ReindexSession(cmd.Context(), mgr, req)
			if err != nil {
				return err
			}
			outWriter(cmd).Successf("reindexed %d files (%d failed), %d chunks in %.2fs",
				stats.FilesIndexed, stats.FilesFailed, stats.ChunksCreated, stats.DurationSeconds)
			return nil
		},
	}
	cmd.Flags().IntVar(&chunkSize, "chunk-size", 0, "override the stored chunk size")
	cmd.Flags().IntVar(&overlap, "overlap", 0, "override the stored chunk overlap")
	cmd.Flags().BoolVar(&force, "force", false, "reindex even if configuration is unchanged")
	return cmd
}
