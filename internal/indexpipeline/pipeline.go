// Package indexpipeline implements the Indexing Pipeline (C4): walks a
// repository, chunks each text file, and stages the chunks into a
// session's storage, committing periodically.
package indexpipeline

import (
	"context"
	"log/slog"
	"os"
	"time"
	"unicode/utf8"

	"github.com/shebe-oss/shebe/internal/chunk"
	shebeerrors "github.com/shebe-oss/shebe/internal/errors"
	"github.com/shebe-oss/shebe/internal/store"
	"github.com/shebe-oss/shebe/internal/walker"
)

// commitEvery bounds the number of files staged in memory between commits.
const commitEvery = 100

// Options configures one indexing run.
type Options struct {
	IndexRoot    string
	SessionID    string
	Root         string
	Include      []string
	Exclude      []string
	ChunkSize    int
	Overlap      int
	MaxFileBytes int64
	Force        bool
}

// Stats reports the outcome of an indexing run.
type Stats struct {
	FilesIndexed             int
	FilesFailed              int
	ChunksCreated            int
	DurationSeconds          float64
	ThroughputFilesPerSecond float64
}

// Run executes the indexing pipeline: walk, chunk, stage, commit.
func Run(ctx context.Context, opts Options, logger *slog.Logger) (Stats, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if store.Exists(opts.IndexRoot, opts.SessionID) {
		if !opts.Force {
			return Stats{}, shebeerrors.Newf(shebeerrors.AlreadyExists,
				"session %q already exists; pass force to reindex", opts.SessionID)
		}
		if err := store.DeleteSession(opts.IndexRoot, opts.SessionID); err != nil {
			return Stats{}, err
		}
	}

	repoPath := opts.Root
	meta := store.Meta{
		SessionID:       opts.SessionID,
		SchemaVersion:   store.CurrentSchema,
		RepositoryPath:  &repoPath,
		CreatedAt:       time.Now().UTC(),
		LastIndexedAt:   time.Now().UTC(),
		ChunkSize:       opts.ChunkSize,
		Overlap:         opts.Overlap,
		IncludePatterns: opts.Include,
		ExcludePatterns: opts.Exclude,
	}

	s, err := store.Create(opts.IndexRoot, opts.SessionID, meta)
	if err != nil {
		return Stats{}, err
	}
	defer func() { _ = s.Close() }()

	start := time.Now()

	results, err := walker.Walk(ctx, walker.Options{
		Root:         opts.Root,
		Include:      opts.Include,
		Exclude:      opts.Exclude,
		MaxFileBytes: opts.MaxFileBytes,
	})
	if err != nil {
		return Stats{}, err
	}

	stats := Stats{}
	sinceCommit := 0

	for r := range results {
		if r.Err != nil {
			logger.Warn("indexpipeline_walk_error", slog.String("path", r.ErrPath), slog.String("error", r.Err.Error()))
			continue
		}

		select {
		case <-ctx.Done():
			return Stats{}, shebeerrors.Wrap(shebeerrors.Cancelled, ctx.Err())
		default:
		}

		data, err := os.ReadFile(r.Path)
		if err != nil {
			stats.FilesFailed++
			logger.Warn("indexpipeline_read_failed", slog.String("path", r.Path), slog.String("error", err.Error()))
			continue
		}
		if !utf8.Valid(data) {
			stats.FilesFailed++
			logger.Debug("indexpipeline_binary_skipped", slog.String("path", r.Path))
			continue
		}

		chunks, err := chunk.Split(string(data), opts.ChunkSize, opts.Overlap)
		if err != nil {
			stats.FilesFailed++
			logger.Warn("indexpipeline_chunk_failed", slog.String("path", r.Path), slog.String("error", err.Error()))
			continue
		}

		for _, c := range chunks {
			if err := s.AddChunk(store.ChunkDoc{
				FilePath:   r.Path,
				ChunkIndex: c.Index,
				ByteStart:  c.ByteStart,
				ByteEnd:    c.ByteEnd,
				Content:    c.Content,
			}); err != nil {
				return Stats{}, err
			}
		}

		stats.FilesIndexed++
		stats.ChunksCreated += len(chunks)
		sinceCommit++

		if sinceCommit >= commitEvery {
			if err := s.Commit(); err != nil {
				return Stats{}, err
			}
			sinceCommit = 0
		}
	}

	if err := s.Commit(); err != nil {
		return Stats{}, err
	}

	duration := time.Since(start)
	stats.DurationSeconds = duration.Seconds()
	if stats.DurationSeconds > 0 {
		stats.ThroughputFilesPerSecond = float64(stats.FilesIndexed) / stats.DurationSeconds
	}

	size, err := store.SizeOnDisk(opts.IndexRoot, opts.SessionID)
	if err != nil {
		return Stats{}, err
	}

	meta.FilesIndexed = stats.FilesIndexed
	meta.ChunksCreated = stats.ChunksCreated
	meta.SizeBytes = size
	meta.LastIndexedAt = time.Now().UTC()
	if err := s.WriteMeta(meta); err != nil {
		return Stats{}, err
	}

	return stats, nil
}
