package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	shebeerrors "github.com/shebe-oss/shebe/internal/errors"
	"github.com/shebe-oss/shebe/internal/indexpipeline"
	"github.com/shebe-oss/shebe/internal/store"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestManager_CreateThenListThenInfo(t *testing.T) {
	indexRoot := t.TempDir()
	repoDir := t.TempDir()
	writeFile(t, repoDir, "main.go", "package main\n\nfunc main() {}\n")

	mgr, err := NewManager(indexRoot, nil)
	require.NoError(t, err)

	_, err = mgr.Create(context.Background(), indexpipeline.Options{
		SessionID: "sess1", Root: repoDir, ChunkSize: 500, Overlap: 50, MaxFileBytes: 1 << 20,
	})
	require.NoError(t, err)

	list, err := mgr.List()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "sess1", list[0].SessionID)
	assert.Equal(t, StateReady, list[0].State)

	detail, err := mgr.Info("sess1")
	require.NoError(t, err)
	assert.Equal(t, 1, detail.FilesIndexed)
	assert.Greater(t, detail.ChunksCreated, 0)
	assert.Greater(t, detail.AvgChunksPerFile, 0.0)
}

func TestManager_List_SortedByLastIndexedDescending(t *testing.T) {
	indexRoot := t.TempDir()

	older := store.Meta{
		SessionID: "old", SchemaVersion: store.CurrentSchema,
		CreatedAt: time.Now().UTC().Add(-time.Hour), LastIndexedAt: time.Now().UTC().Add(-time.Hour),
		ChunkSize: 500, Overlap: 50,
	}
	newer := store.Meta{
		SessionID: "new", SchemaVersion: store.CurrentSchema,
		CreatedAt: time.Now().UTC(), LastIndexedAt: time.Now().UTC(),
		ChunkSize: 500, Overlap: 50,
	}
	for _, m := range []store.Meta{older, newer} {
		s, err := store.Create(indexRoot, m.SessionID, m)
		require.NoError(t, err)
		require.NoError(t, s.Close())
	}

	mgr, err := NewManager(indexRoot, nil)
	require.NoError(t, err)
	list, err := mgr.List()
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "new", list[0].SessionID)
	assert.Equal(t, "old", list[1].SessionID)
}

func TestManager_Reindex_ConfigUnchangedWithoutForce(t *testing.T) {
	indexRoot := t.TempDir()
	repoDir := t.TempDir()
	writeFile(t, repoDir, "a.go", "package a\n")

	mgr, err := NewManager(indexRoot, nil)
	require.NoError(t, err)
	_, err = mgr.Create(context.Background(), indexpipeline.Options{
		SessionID: "sess1", Root: repoDir, ChunkSize: 500, Overlap: 50, MaxFileBytes: 1 << 20,
	})
	require.NoError(t, err)

	_, err = mgr.Reindex(context.Background(), "sess1", ReindexOptions{})
	require.Error(t, err)
	assert.Equal(t, shebeerrors.ConfigUnchanged, shebeerrors.CodeOf(err))
}

func TestManager_Reindex_OverrideProceedsWithoutForce(t *testing.T) {
	indexRoot := t.TempDir()
	repoDir := t.TempDir()
	writeFile(t, repoDir, "a.go", "package a\n")

	mgr, err := NewManager(indexRoot, nil)
	require.NoError(t, err)
	_, err = mgr.Create(context.Background(), indexpipeline.Options{
		SessionID: "sess1", Root: repoDir, ChunkSize: 500, Overlap: 50, MaxFileBytes: 1 << 20,
	})
	require.NoError(t, err)

	newChunkSize := 600
	stats, err := mgr.Reindex(context.Background(), "sess1", ReindexOptions{ChunkSize: &newChunkSize})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.FilesIndexed)

	detail, err := mgr.Info("sess1")
	require.NoError(t, err)
	assert.Equal(t, 600, detail.ChunkSize)
}

func TestManager_Reindex_RepositoryPathMissing(t *testing.T) {
	indexRoot := t.TempDir()
	m := store.Meta{
		SessionID: "sess1", SchemaVersion: store.CurrentSchema,
		CreatedAt: time.Now().UTC(), LastIndexedAt: time.Now().UTC(),
		ChunkSize: 500, Overlap: 50, RepositoryPath: nil,
	}
	s, err := store.Create(indexRoot, m.SessionID, m)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	mgr, err := NewManager(indexRoot, nil)
	require.NoError(t, err)
	_, err = mgr.Reindex(context.Background(), "sess1", ReindexOptions{Force: true})
	require.Error(t, err)
	assert.Equal(t, shebeerrors.RepositoryPathMissing, shebeerrors.CodeOf(err))
}

func TestManager_Reindex_RejectsStaleSchema(t *testing.T) {
	indexRoot := t.TempDir()
	repoDir := t.TempDir()
	repoPath := repoDir
	m := store.Meta{
		SessionID: "sess1", SchemaVersion: store.CurrentSchema - 1, RepositoryPath: &repoPath,
		CreatedAt: time.Now().UTC(), LastIndexedAt: time.Now().UTC(),
		ChunkSize: 500, Overlap: 50,
	}
	s, err := store.Create(indexRoot, m.SessionID, m)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	mgr, err := NewManager(indexRoot, nil)
	require.NoError(t, err)
	_, err = mgr.Reindex(context.Background(), "sess1", ReindexOptions{Force: true})
	require.Error(t, err)
	assert.Equal(t, shebeerrors.SchemaMismatch, shebeerrors.CodeOf(err))
}

func TestManager_Upgrade_NoopAtCurrentSchema(t *testing.T) {
	indexRoot := t.TempDir()
	repoDir := t.TempDir()
	repoPath := repoDir
	m := store.Meta{
		SessionID: "sess1", SchemaVersion: store.CurrentSchema, RepositoryPath: &repoPath,
		CreatedAt: time.Now().UTC(), LastIndexedAt: time.Now().UTC(),
		ChunkSize: 500, Overlap: 50,
	}
	s, err := store.Create(indexRoot, m.SessionID, m)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	mgr, err := NewManager(indexRoot, nil)
	require.NoError(t, err)
	stats, err := mgr.Upgrade(context.Background(), "sess1")
	require.NoError(t, err)
	assert.Equal(t, indexpipeline.Stats{}, stats)
}

func TestManager_Upgrade_MigratesStaleSchema(t *testing.T) {
	indexRoot := t.TempDir()
	repoDir := t.TempDir()
	writeFile(t, repoDir, "a.go", "package a\n")
	repoPath := repoDir

	m := store.Meta{
		SessionID: "sess1", SchemaVersion: 0, RepositoryPath: &repoPath,
		CreatedAt: time.Now().UTC(), LastIndexedAt: time.Now().UTC(),
		ChunkSize: 500, Overlap: 50,
	}
	s, err := store.Create(indexRoot, m.SessionID, m)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	mgr, err := NewManager(indexRoot, nil)
	require.NoError(t, err)

	list, err := mgr.List()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, StateStaleSchema, list[0].State)

	stats, err := mgr.Upgrade(context.Background(), "sess1")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.FilesIndexed)

	detail, err := mgr.Info("sess1")
	require.NoError(t, err)
	assert.Equal(t, store.CurrentSchema, detail.SchemaVersion)
	assert.Equal(t, StateReady, detail.State)
}

func TestManager_Delete_RequiresConfirm(t *testing.T) {
	indexRoot := t.TempDir()
	mgr, err := NewManager(indexRoot, nil)
	require.NoError(t, err)
	err = mgr.Delete("sess1", false)
	require.Error(t, err)
	assert.Equal(t, shebeerrors.InvalidArgument, shebeerrors.CodeOf(err))
}

func TestManager_Delete_RemovesSession(t *testing.T) {
	indexRoot := t.TempDir()
	m := store.Meta{
		SessionID: "sess1", SchemaVersion: store.CurrentSchema,
		CreatedAt: time.Now().UTC(), LastIndexedAt: time.Now().UTC(),
		ChunkSize: 500, Overlap: 50,
	}
	s, err := store.Create(indexRoot, m.SessionID, m)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	mgr, err := NewManager(indexRoot, nil)
	require.NoError(t, err)
	require.NoError(t, mgr.Delete("sess1", true))
	assert.False(t, store.Exists(indexRoot, "sess1"))
}

func TestManager_ValidateAndRepair(t *testing.T) {
	indexRoot := t.TempDir()
	repoDir := t.TempDir()
	writeFile(t, repoDir, "a.go", "package a\n")

	mgr, err := NewManager(indexRoot, nil)
	require.NoError(t, err)
	_, err = mgr.Create(context.Background(), indexpipeline.Options{
		SessionID: "sess1", Root: repoDir, ChunkSize: 500, Overlap: 50, MaxFileBytes: 1 << 20,
	})
	require.NoError(t, err)

	report, err := mgr.Validate("sess1")
	require.NoError(t, err)
	assert.True(t, report.Valid)

	require.NoError(t, mgr.Repair("sess1"))
}
