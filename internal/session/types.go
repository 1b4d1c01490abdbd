package session

import "time"

// State is a session's position in the C8 state machine.
type State string

const (
	StateReady       State = "READY"
	StateStaleSchema State = "READY_STALE_SCHEMA" // READY sub-state: query/upgrade only
	StateBroken      State = "BROKEN"
	StateIndexing    State = "INDEXING"
)

// Summary is one row of ListSessions, sorted by LastIndexedAt descending.
type Summary struct {
	SessionID      string
	State          State
	SchemaVersion  int
	RepositoryPath *string
	CreatedAt      time.Time
	LastIndexedAt  time.Time
	FilesIndexed   int
	ChunksCreated  int
	SizeBytes      int64
}

// Detail is the full GetSessionInfo payload: a Summary plus the stored
// chunking configuration and derived statistics.
type Detail struct {
	Summary
	ChunkSize        int
	Overlap          int
	IncludePatterns  []string
	ExcludePatterns  []string
	AvgChunksPerFile float64
	AvgChunkBytes    float64
}
