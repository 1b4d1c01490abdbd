// Package toolops implements the Tool Operations (C9): thin,
// input-validating wrappers around the core components (store, search,
// reference, indexpipeline, session, config) that shape their results
// into the response envelopes a tool-call transport hands back verbatim.
package toolops

import "time"

// Deps bundles the dependencies every operation needs: where sessions
// live and the resolved configuration surface governing their limits.
type Deps struct {
	IndexRoot string
	Config    Limits
}

// Limits is the subset of internal/config.Config the tool layer
// enforces; kept narrow so every operation except GetConfig works
// without an internal/config.Config and stays easy to unit test with
// ad hoc values.
type Limits struct {
	DefaultK             int
	MaxK                 int
	MaxQueryLength       int
	MaxFileBytes         int64
	MaxConcurrentIndexes int
	RequestTimeoutSec    int
}

// SearchCodeRequest is the search_code operation's input.
type SearchCodeRequest struct {
	SessionID string
	Query     string
	K         int
	Literal   bool
}

// SearchCodeResult is one ranked hit in a search_code response.
type SearchCodeResult struct {
	FilePath   string  `json:"file_path"`
	ChunkIndex int     `json:"chunk_index"`
	ByteStart  int     `json:"byte_start"`
	ByteEnd    int     `json:"byte_end"`
	Content    string  `json:"content"`
	Score      float64 `json:"score"`
	Language   string  `json:"language"`
}

// SearchCodeResponse is the search_code operation's output.
type SearchCodeResponse struct {
	Results      []SearchCodeResult `json:"results"`
	ElapsedMs    float64            `json:"elapsed_ms"`
	TotalQueried int                `json:"total_queried"`
}

// FindReferencesRequest is the find_references operation's input.
type FindReferencesRequest struct {
	SessionID         string
	Symbol            string
	SymbolType        string
	DefinedIn         string
	IncludeDefinition bool
	ContextLines      int
	MaxResults        int
}

// ReferenceMatch is one discovered reference in a find_references response.
type ReferenceMatch struct {
	FilePath      string   `json:"file_path"`
	LineNumber    int      `json:"line_number"`
	LineContent   string   `json:"line_content"`
	ContextBefore []string `json:"context_before,omitempty"`
	ContextAfter  []string `json:"context_after,omitempty"`
	PatternKind   string   `json:"pattern_kind"`
	Confidence    float64  `json:"confidence"`
	Bucket        string   `json:"bucket"`
}

// FindReferencesResponse is the find_references operation's output.
type FindReferencesResponse struct {
	Matches []ReferenceMatch `json:"matches"`
}

// IndexRepositoryRequest is the index_repository operation's input.
type IndexRepositoryRequest struct {
	SessionID string
	Root      string
	Include   []string
	Exclude   []string
	ChunkSize int
	Overlap   int
	Force     bool
}

// IndexStatsResponse reports the outcome of index_repository, reindex_session,
// or upgrade_session.
type IndexStatsResponse struct {
	FilesIndexed             int     `json:"files_indexed"`
	FilesFailed              int     `json:"files_failed"`
	ChunksCreated            int     `json:"chunks_created"`
	DurationSeconds          float64 `json:"duration_seconds"`
	ThroughputFilesPerSecond float64 `json:"throughput_files_per_second"`
}

// ReindexSessionRequest is the reindex_session operation's input.
type ReindexSessionRequest struct {
	SessionID string
	ChunkSize *int
	Overlap   *int
	Force     bool
}

// SessionSummary is one row of a list_sessions response.
type SessionSummary struct {
	SessionID      string    `json:"session_id"`
	State          string    `json:"state"`
	SchemaVersion  int       `json:"schema_version"`
	RepositoryPath *string   `json:"repository_path"`
	CreatedAt      time.Time `json:"created_at"`
	LastIndexedAt  time.Time `json:"last_indexed_at"`
	FilesIndexed   int       `json:"files_indexed"`
	ChunksCreated  int       `json:"chunks_created"`
	SizeBytes      int64     `json:"size_bytes"`
}

// ListSessionsResponse is the list_sessions operation's output.
type ListSessionsResponse struct {
	Sessions []SessionSummary `json:"sessions"`
}

// SessionDetailResponse is the get_session_info operation's output.
type SessionDetailResponse struct {
	SessionSummary
	ChunkSize        int      `json:"chunk_size"`
	Overlap          int      `json:"overlap"`
	IncludePatterns  []string `json:"include_patterns"`
	ExcludePatterns  []string `json:"exclude_patterns"`
	AvgChunksPerFile float64  `json:"avg_chunks_per_file"`
	AvgChunkBytes    float64  `json:"avg_chunk_bytes"`
}

// DeleteSessionRequest is the delete_session operation's input.
type DeleteSessionRequest struct {
	SessionID string
	Confirm   bool
}

// ReadFileRequest is the read_file operation's input.
type ReadFileRequest struct {
	SessionID string
	FilePath  string
}

// ReadFileResponse is the read_file operation's output.
type ReadFileResponse struct {
	Content    string  `json:"content"`
	Truncated  bool    `json:"truncated"`
	ShownChars int     `json:"shown_chars"`
	TotalChars int     `json:"total_chars"`
	ShownRatio float64 `json:"shown_ratio"`
	Suggestion string  `json:"suggestion,omitempty"`
}

// ListDirRequest is the list_dir operation's input.
type ListDirRequest struct {
	SessionID string
	Limit     int
	Sort      string // alphabetical (default) | size | insertion
}

// ListDirResponse is the list_dir operation's output.
type ListDirResponse struct {
	Files      []string `json:"files"`
	Total      int      `json:"total"`
	Truncated  bool     `json:"truncated"`
	Suggestion string   `json:"suggestion,omitempty"`
}

// FindFileRequest is the find_file operation's input.
type FindFileRequest struct {
	SessionID   string
	Pattern     string
	PatternType string // glob (default) | regex
	Limit       int
}

// FindFileResponse is the find_file operation's output.
type FindFileResponse struct {
	Files []string `json:"files"`
	Total int      `json:"total"`
}

// PreviewChunkRequest is the preview_chunk operation's input.
type PreviewChunkRequest struct {
	SessionID    string
	FilePath     string
	ChunkIndex   int
	ContextLines int
}

// PreviewChunkResponse is the preview_chunk operation's output.
type PreviewChunkResponse struct {
	FilePath   string   `json:"file_path"`
	ChunkIndex int      `json:"chunk_index"`
	StartLine  int      `json:"start_line"`
	EndLine    int      `json:"end_line"`
	Lines      []string `json:"lines"`
}

// ServerInfoResponse is the get_server_info operation's output.
type ServerInfoResponse struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// ConfigResponse is the get_config operation's output: the resolved,
// non-secret configuration surface.
type ConfigResponse struct {
	ChunkSize            int      `json:"chunk_size"`
	Overlap              int      `json:"overlap"`
	MaxFileSizeMB        int      `json:"max_file_size_mb"`
	IncludePatterns      []string `json:"include_patterns"`
	ExcludePatterns      []string `json:"exclude_patterns"`
	IndexDir             string   `json:"index_dir"`
	DefaultK             int      `json:"default_k"`
	MaxK                 int      `json:"max_k"`
	MaxQueryLength       int      `json:"max_query_length"`
	MaxConcurrentIndexes int      `json:"max_concurrent_indexes"`
	RequestTimeoutSec    int      `json:"request_timeout_sec"`
	LogLevel             string   `json:"log_level"`
}
