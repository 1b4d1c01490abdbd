package toolops

import (
	"context"

	"github.com/shebe-oss/shebe/internal/indexpipeline"
	"github.com/shebe-oss/shebe/internal/session"
)

// IndexRepository wraps the SessionManager's Create for the
// index_repository tool, which runs the indexing pipeline (C4) to
// populate a brand-new session.
func IndexRepository(ctx context.Context, mgr *session.Manager, d Deps, req IndexRepositoryRequest) (IndexStatsResponse, error) {
	if err := requireSessionID(req.SessionID); err != nil {
		return IndexStatsResponse{}, err
	}

	maxFileBytes := d.Config.MaxFileBytes
	if maxFileBytes <= 0 {
		maxFileBytes = 10 * 1024 * 1024
	}

	stats, err := mgr.Create(ctx, indexpipeline.Options{
		SessionID:    req.SessionID,
		Root:         req.Root,
		Include:      req.Include,
		Exclude:      req.Exclude,
		ChunkSize:    req.ChunkSize,
		Overlap:      req.Overlap,
		MaxFileBytes: maxFileBytes,
		Force:        req.Force,
	})
	if err != nil {
		return IndexStatsResponse{}, err
	}
	return toIndexStatsResponse(stats), nil
}

// ReindexSession wraps the SessionManager's Reindex for the
// reindex_session tool.
func ReindexSession(ctx context.Context, mgr *session.Manager, req ReindexSessionRequest) (IndexStatsResponse, error) {
	if err := requireSessionID(req.SessionID); err != nil {
		return IndexStatsResponse{}, err
	}
	stats, err := mgr.Reindex(ctx, req.SessionID, session.ReindexOptions{
		ChunkSize: req.ChunkSize,
		Overlap:   req.Overlap,
		Force:     req.Force,
	})
	if err != nil {
		return IndexStatsResponse{}, err
	}
	return toIndexStatsResponse(stats), nil
}

// UpgradeSession wraps the SessionManager's Upgrade for the
// upgrade_session tool.
func UpgradeSession(ctx context.Context, mgr *session.Manager, sessionID string) (IndexStatsResponse, error) {
	if err := requireSessionID(sessionID); err != nil {
		return IndexStatsResponse{}, err
	}
	stats, err := mgr.Upgrade(ctx, sessionID)
	if err != nil {
		return IndexStatsResponse{}, err
	}
	return toIndexStatsResponse(stats), nil
}

func toIndexStatsResponse(s indexpipeline.Stats) IndexStatsResponse {
	return IndexStatsResponse{
		FilesIndexed:             s.FilesIndexed,
		FilesFailed:              s.FilesFailed,
		ChunksCreated:            s.ChunksCreated,
		DurationSeconds:          s.DurationSeconds,
		ThroughputFilesPerSecond: s.ThroughputFilesPerSecond,
	}
}
