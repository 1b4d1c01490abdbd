// Package session implements the SessionManager (C8): list, info,
// reindex, upgrade, delete, validate and repair operations layered over
// the Storage (C3) and Indexing Pipeline (C4) components, plus the
// cross-process locking that serializes index-mutating operations on a
// single session.
package session

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	shebeerrors "github.com/shebe-oss/shebe/internal/errors"
	"github.com/shebe-oss/shebe/internal/indexpipeline"
	"github.com/shebe-oss/shebe/internal/store"
)

// Manager handles the full lifecycle of sessions rooted under one
// index_root directory.
type Manager struct {
	indexRoot string
	logger    *slog.Logger
}

// NewManager creates a session manager rooted at indexRoot, creating the
// directory if it does not already exist.
func NewManager(indexRoot string, logger *slog.Logger) (*Manager, error) {
	if indexRoot == "" {
		return nil, shebeerrors.New(shebeerrors.InvalidArgument, "index_root is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(indexRoot, 0o755); err != nil {
		return nil, shebeerrors.Wrap(shebeerrors.Internal, err)
	}
	return &Manager{indexRoot: indexRoot, logger: logger}, nil
}

// List returns a summary of every session under index_root, sorted by
// last_indexed_at descending. Sessions whose meta.json fails to parse are
// reported as BROKEN rather than omitted, so delete/list still work.
func (m *Manager) List() ([]Summary, error) {
	entries, err := os.ReadDir(m.indexRoot)
	if err != nil {
		if os.IsNotExist(err) {
			return []Summary{}, nil
		}
		return nil, shebeerrors.Wrap(shebeerrors.Internal, err)
	}

	summaries := make([]Summary, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		sum, err := m.summarize(entry.Name())
		if err != nil {
			sum = Summary{SessionID: entry.Name(), State: StateBroken}
		}
		summaries = append(summaries, sum)
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].LastIndexedAt.After(summaries[j].LastIndexedAt)
	})
	return summaries, nil
}

func (m *Manager) summarize(sessionID string) (Summary, error) {
	meta, report, err := m.readMetaAndValidate(sessionID)
	if err != nil {
		return Summary{}, err
	}

	sum := Summary{
		SessionID:      sessionID,
		SchemaVersion:  meta.SchemaVersion,
		RepositoryPath: meta.RepositoryPath,
		CreatedAt:      meta.CreatedAt,
		LastIndexedAt:  meta.LastIndexedAt,
		FilesIndexed:   meta.FilesIndexed,
		ChunksCreated:  meta.ChunksCreated,
		SizeBytes:      meta.SizeBytes,
		State:          stateFor(meta, report),
	}
	return sum, nil
}

// readMetaAndValidate reads meta.json and runs the C3 consistency check,
// as two sequential open/close passes over the session's index (never
// concurrent). It fails if the index cannot be opened or meta.json cannot
// be read; List reports such a session as BROKEN, Info returns the error.
func (m *Manager) readMetaAndValidate(sessionID string) (store.Meta, store.ValidationReport, error) {
	meta, err := readMetaOrZero(m.indexRoot, sessionID)
	if err != nil {
		return store.Meta{}, store.ValidationReport{}, err
	}

	report, err := store.Validate(m.indexRoot, sessionID)
	if err != nil {
		return meta, store.ValidationReport{}, err
	}
	return meta, report, nil
}

func readMetaOrZero(indexRoot, sessionID string) (store.Meta, error) {
	if !store.Exists(indexRoot, sessionID) {
		return store.Meta{}, shebeerrors.Newf(shebeerrors.NotFound, "session %q not found", sessionID)
	}
	s, err := store.OpenIgnoringSchema(indexRoot, sessionID)
	if err == nil {
		defer func() { _ = s.Close() }()
		return s.ReadMeta()
	}
	return store.Meta{}, err
}

func stateFor(meta store.Meta, report store.ValidationReport) State {
	if !report.Valid {
		return StateBroken
	}
	if meta.SchemaVersion < store.CurrentSchema {
		return StateStaleSchema
	}
	return StateReady
}

// Info returns the full detail view for one session, including derived
// per-file/per-chunk averages.
func (m *Manager) Info(sessionID string) (Detail, error) {
	if err := store.ValidateSessionID(sessionID); err != nil {
		return Detail{}, err
	}
	meta, report, err := m.readMetaAndValidate(sessionID)
	if err != nil {
		return Detail{}, err
	}

	d := Detail{
		Summary: Summary{
			SessionID:      sessionID,
			SchemaVersion:  meta.SchemaVersion,
			RepositoryPath: meta.RepositoryPath,
			CreatedAt:      meta.CreatedAt,
			LastIndexedAt:  meta.LastIndexedAt,
			FilesIndexed:   meta.FilesIndexed,
			ChunksCreated:  meta.ChunksCreated,
			SizeBytes:      meta.SizeBytes,
			State:          stateFor(meta, report),
		},
		ChunkSize:       meta.ChunkSize,
		Overlap:         meta.Overlap,
		IncludePatterns: meta.IncludePatterns,
		ExcludePatterns: meta.ExcludePatterns,
	}
	if meta.FilesIndexed > 0 {
		d.AvgChunksPerFile = float64(meta.ChunksCreated) / float64(meta.FilesIndexed)
	}
	if meta.ChunksCreated > 0 {
		d.AvgChunkBytes = float64(meta.SizeBytes) / float64(meta.ChunksCreated)
	}
	return d, nil
}

// Validate delegates to the C3 validator.
func (m *Manager) Validate(sessionID string) (store.ValidationReport, error) {
	if err := store.ValidateSessionID(sessionID); err != nil {
		return store.ValidationReport{}, err
	}
	return store.Validate(m.indexRoot, sessionID)
}

// Repair delegates to the C3 validator's auto-repair.
func (m *Manager) Repair(sessionID string) error {
	if err := store.ValidateSessionID(sessionID); err != nil {
		return err
	}
	return store.AutoRepair(m.indexRoot, sessionID)
}

// Delete removes a session directory. confirm must be true; this mirrors
// the destructive nature of the operation at the tool-call boundary.
func (m *Manager) Delete(sessionID string, confirm bool) error {
	if !confirm {
		return shebeerrors.New(shebeerrors.InvalidArgument, "delete_session requires confirm=true")
	}
	if err := store.ValidateSessionID(sessionID); err != nil {
		return err
	}

	lock := newSessionLock(m.indexRoot, sessionID)
	acquired, err := lock.TryLock()
	if err != nil {
		return err
	}
	if !acquired {
		return shebeerrors.Newf(shebeerrors.Internal, "session %q is busy (reindex or upgrade in progress)", sessionID)
	}
	defer func() { _ = lock.Unlock() }()

	return store.DeleteSession(m.indexRoot, sessionID)
}

// ReindexOptions overrides the stored chunking configuration for a
// reindex call. A nil field retains the value currently in meta.json.
type ReindexOptions struct {
	ChunkSize    *int
	Overlap      *int
	MaxFileBytes int64
	Force        bool
}

// Reindex re-runs the indexing pipeline over a session's stored
// repository path. With no config overrides and force=false, fails with
// ConfigUnchanged rather than redoing identical work; an explicit
// override that actually differs from the stored config proceeds without
// requiring force.
func (m *Manager) Reindex(ctx context.Context, sessionID string, opts ReindexOptions) (indexpipeline.Stats, error) {
	if err := store.ValidateSessionID(sessionID); err != nil {
		return indexpipeline.Stats{}, err
	}
	meta, err := readMetaOrZero(m.indexRoot, sessionID)
	if err != nil {
		return indexpipeline.Stats{}, err
	}
	if meta.SchemaVersion < store.CurrentSchema {
		return indexpipeline.Stats{}, shebeerrors.Newf(shebeerrors.SchemaMismatch,
			"session %q is on a stale schema version; run upgrade before reindexing", sessionID)
	}
	if meta.RepositoryPath == nil {
		return indexpipeline.Stats{}, shebeerrors.Newf(shebeerrors.RepositoryPathMissing,
			"session %q has no stored repository_path", sessionID)
	}

	chunkSize := meta.ChunkSize
	overlap := meta.Overlap
	overridden := false
	if opts.ChunkSize != nil && *opts.ChunkSize != chunkSize {
		chunkSize = *opts.ChunkSize
		overridden = true
	}
	if opts.Overlap != nil && *opts.Overlap != overlap {
		overlap = *opts.Overlap
		overridden = true
	}
	if !overridden && !opts.Force {
		return indexpipeline.Stats{}, shebeerrors.Newf(shebeerrors.ConfigUnchanged,
			"session %q configuration is unchanged; pass force to reindex anyway", sessionID)
	}

	lock := newSessionLock(m.indexRoot, sessionID)
	acquired, err := lock.TryLock()
	if err != nil {
		return indexpipeline.Stats{}, err
	}
	if !acquired {
		return indexpipeline.Stats{}, shebeerrors.Newf(shebeerrors.Internal, "session %q is busy (reindex or upgrade in progress)", sessionID)
	}
	defer func() { _ = lock.Unlock() }()

	maxFileBytes := opts.MaxFileBytes
	if maxFileBytes <= 0 {
		maxFileBytes = defaultMaxFileBytes
	}

	return indexpipeline.Run(ctx, indexpipeline.Options{
		IndexRoot:    m.indexRoot,
		SessionID:    sessionID,
		Root:         *meta.RepositoryPath,
		Include:      meta.IncludePatterns,
		Exclude:      meta.ExcludePatterns,
		ChunkSize:    chunkSize,
		Overlap:      overlap,
		MaxFileBytes: maxFileBytes,
		Force:        true, // the session already exists; Reindex always replaces it
	}, m.logger)
}

// defaultMaxFileBytes matches the configuration surface's max_file_size_mb
// default of 10 MiB, used when Reindex/Upgrade callers don't supply one.
const defaultMaxFileBytes = 10 * 1024 * 1024

// Upgrade migrates a session to CurrentSchema. A session already at
// CurrentSchema is a no-op. Otherwise the session is deleted and
// recreated from its stored repository path and chunking configuration.
func (m *Manager) Upgrade(ctx context.Context, sessionID string) (indexpipeline.Stats, error) {
	if err := store.ValidateSessionID(sessionID); err != nil {
		return indexpipeline.Stats{}, err
	}
	meta, err := readMetaOrZero(m.indexRoot, sessionID)
	if err != nil {
		return indexpipeline.Stats{}, err
	}
	if meta.SchemaVersion >= store.CurrentSchema {
		return indexpipeline.Stats{}, nil
	}
	if meta.RepositoryPath == nil {
		return indexpipeline.Stats{}, shebeerrors.Newf(shebeerrors.RepositoryPathMissing,
			"session %q has no stored repository_path; cannot upgrade", sessionID)
	}

	lock := newSessionLock(m.indexRoot, sessionID)
	acquired, err := lock.TryLock()
	if err != nil {
		return indexpipeline.Stats{}, err
	}
	if !acquired {
		return indexpipeline.Stats{}, shebeerrors.Newf(shebeerrors.Internal, "session %q is busy (reindex or upgrade in progress)", sessionID)
	}
	defer func() { _ = lock.Unlock() }()

	return indexpipeline.Run(ctx, indexpipeline.Options{
		IndexRoot:    m.indexRoot,
		SessionID:    sessionID,
		Root:         *meta.RepositoryPath,
		Include:      meta.IncludePatterns,
		Exclude:      meta.ExcludePatterns,
		ChunkSize:    meta.ChunkSize,
		Overlap:      meta.Overlap,
		MaxFileBytes: defaultMaxFileBytes,
		Force:        true,
	}, m.logger)
}

// Create runs the indexing pipeline for a brand-new session, serialized
// through the same per-session lock used by Reindex/Upgrade.
func (m *Manager) Create(ctx context.Context, opts indexpipeline.Options) (indexpipeline.Stats, error) {
	if err := store.ValidateSessionID(opts.SessionID); err != nil {
		return indexpipeline.Stats{}, err
	}
	lock := newSessionLock(m.indexRoot, opts.SessionID)
	acquired, err := lock.TryLock()
	if err != nil {
		return indexpipeline.Stats{}, err
	}
	if !acquired {
		return indexpipeline.Stats{}, shebeerrors.Newf(shebeerrors.Internal, "session %q is busy (reindex or upgrade in progress)", opts.SessionID)
	}
	defer func() { _ = lock.Unlock() }()

	opts.IndexRoot = m.indexRoot
	return indexpipeline.Run(ctx, opts, m.logger)
}
