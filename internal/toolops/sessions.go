package toolops

import "github.com/shebe-oss/shebe/internal/session"

// ListSessions wraps the SessionManager's List for the list_sessions
// tool.
func ListSessions(mgr *session.Manager) (ListSessionsResponse, error) {
	summaries, err := mgr.List()
	if err != nil {
		return ListSessionsResponse{}, err
	}
	out := ListSessionsResponse{Sessions: make([]SessionSummary, len(summaries))}
	for i, s := range summaries {
		out.Sessions[i] = toSessionSummary(s)
	}
	return out, nil
}

// GetSessionInfo wraps the SessionManager's Info for the
// get_session_info tool.
func GetSessionInfo(mgr *session.Manager, sessionID string) (SessionDetailResponse, error) {
	if err := requireSessionID(sessionID); err != nil {
		return SessionDetailResponse{}, err
	}
	detail, err := mgr.Info(sessionID)
	if err != nil {
		return SessionDetailResponse{}, err
	}
	return SessionDetailResponse{
		SessionSummary:   toSessionSummary(detail.Summary),
		ChunkSize:        detail.ChunkSize,
		Overlap:          detail.Overlap,
		IncludePatterns:  detail.IncludePatterns,
		ExcludePatterns:  detail.ExcludePatterns,
		AvgChunksPerFile: detail.AvgChunksPerFile,
		AvgChunkBytes:    detail.AvgChunkBytes,
	}, nil
}

// DeleteSession wraps the SessionManager's Delete for the
// delete_session tool.
func DeleteSession(mgr *session.Manager, req DeleteSessionRequest) error {
	if err := requireSessionID(req.SessionID); err != nil {
		return err
	}
	return mgr.Delete(req.SessionID, req.Confirm)
}

func toSessionSummary(s session.Summary) SessionSummary {
	return SessionSummary{
		SessionID:      s.SessionID,
		State:          string(s.State),
		SchemaVersion:  s.SchemaVersion,
		RepositoryPath: s.RepositoryPath,
		CreatedAt:      s.CreatedAt,
		LastIndexedAt:  s.LastIndexedAt,
		FilesIndexed:   s.FilesIndexed,
		ChunksCreated:  s.ChunksCreated,
		SizeBytes:      s.SizeBytes,
	}
}
