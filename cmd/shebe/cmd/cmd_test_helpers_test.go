package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shebe-oss/shebe/internal/indexpipeline"
	"github.com/shebe-oss/shebe/internal/session"
)

// setTestConfig points the package-level cfg/logger state (normally set
// by PersistentPreRunE) at a throwaway index directory, restoring the
// previous values afterward. Every CLI command reads cfg directly, so
// subcommand tests need this instead of running the whole root command.
func setTestConfig(t *testing.T, indexDir string) {
	t.Helper()
	origCfg, origLogger := cfg, logger
	cfg.IndexDir = indexDir
	cfg.ChunkSize = 512
	cfg.Overlap = 64
	cfg.DefaultK = 10
	cfg.MaxK = 100
	cfg.MaxQueryLength = 500
	cfg.MaxFileSizeMB = 10
	cfg.MaxConcurrentIndexes = 1
	cfg.RequestTimeoutSec = 300
	cfg.LogLevel = "error"
	t.Cleanup(func() { cfg, logger = origCfg, origLogger })
}

// seedSession creates an indexed session over a tiny one-file repo so
// search/refs/sessions/doctor commands have something real to act on.
func seedSession(t *testing.T, indexDir, sessionID string) string {
	t.Helper()
	repoRoot := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(repoRoot, "main.go"), []byte(
		"package main\n\nfunc ParseConfig() error {\n\treturn nil\n}\n"), 0o644))

	mgr, err := session.NewManager(indexDir, nil)
	require.NoError(t, err)

	_, err = mgr.Create(context.Background(), indexpipeline.Options{
		SessionID:    sessionID,
		Root:         repoRoot,
		ChunkSize:    512,
		Overlap:      64,
		MaxFileBytes: 10 * 1024 * 1024,
	})
	require.NoError(t, err)
	return repoRoot
}
