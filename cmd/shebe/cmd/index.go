package cmd

import (
	"github.com/spf13/cobra"

	"github.com/shebe-oss/shebe/internal/toolops"
)

func newIndexCmd() *cobra.Command {
	var (
		sessionID string
		include   []string
		exclude   []string
		chunkSize int
		overlap   int
		force     bool
	)

	cmd := &cobra.Command{
		Use:   "index PATH",
		Short: "Index a repository into a new session",
		Long: `Walk PATH, chunk every included file, and build a BM25 index for it
under a new session.

Examples:
  shebe index . --session myrepo
  shebe index ~/code/widget --session widget --exclude "**/testdata/**"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIndex(cmd, args[0], sessionID, include, exclude, chunkSize, overlap, force)
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "session id to create (required)")
	cmd.Flags().StringSliceVar(&include, "include", nil, "glob patterns to include (repeatable)")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "glob patterns to exclude in addition to the defaults (repeatable)")
	cmd.Flags().IntVar(&chunkSize, "chunk-size", 0, "override the configured chunk size in characters (0 uses the default)")
	cmd.Flags().IntVar(&overlap, "overlap", 0, "override the configured chunk overlap in characters (0 uses the default)")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing session with the same id")
	_ = cmd.MarkFlagRequired("session")

	return cmd
}

func runIndex(cmd *cobra.Command, root, sessionID string, include, exclude []string, chunkSize, overlap int, force bool) error {
	out := outWriter(cmd)
	mgr, err := getSessionManager()
	if err != nil {
		return err
	}

	if chunkSize == 0 {
		chunkSize = cfg.ChunkSize
	}
	if overlap == 0 {
		overlap = cfg.Overlap
	}
	exclude = append(append([]string{}, cfg.ExcludePatterns...), exclude...)

	out.Statusf("indexing %s as session %q...", root, sessionID)
	stats, err := toolops.IndexRepository(cmd.Context(), mgr, getDeps(), toolops.IndexRepositoryRequest{
		SessionID: sessionID,
		Root:      root,
		Include:   include,
		Exclude:   exclude,
		ChunkSize: chunkSize,
		Overlap:   overlap,
		Force:     force,
	})
	if err != nil {
		return err
	}

	out.Successf("indexed %d files (%d failed), %d chunks in %.2fs (%.1f files/s)",
		stats.FilesIndexed, stats.FilesFailed, stats.ChunksCreated,
		stats.DurationSeconds, stats.ThroughputFilesPerSecond)
	if stats.FilesFailed > 0 {
		out.Warningf("%d file(s) could not be indexed; run with --debug for details", stats.FilesFailed)
	}
	return nil
}
