package cmd

import (
	"github.com/spf13/cobra"

	"github.com/shebe-oss/shebe/internal/toolops"
)

func newUpgradeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upgrade SESSION",
		Short: "Migrate a session's index to the current schema version",
		Long: `Upgrade re-runs the indexing pipeline over a session's stored
repository path when its schema version is behind the binary's. A
session already on the current schema is a no-op.

Example:
  shebe upgrade widget`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := getSessionManager()
			if err != nil {
				return err
			}
			stats, err := toolops.UpgradeSession(cmd.Context(), mgr, args[0])
			if err != nil {
				return err
			}
			out := outWriter(cmd)
			if stats.FilesIndexed == 0 && stats.ChunksCreated == 0 {
				out.Status("session is already on the current schema; nothing to do.")
				return nil
			}
			out.Successf("upgraded: %d files, %d chunks, %.2fs", stats.FilesIndexed, stats.ChunksCreated, stats.DurationSeconds)
			return nil
		},
	}
}
