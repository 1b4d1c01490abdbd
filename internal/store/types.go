package store

import "time"

// CurrentSchema is the current document schema version. Any change to the
// set or typing of indexed fields must bump this constant; sessions whose
// stored schema_version is lower are treated as incompatible.
const CurrentSchema = 1

// Meta is the per-session metadata persisted to meta.json.
type Meta struct {
	SessionID       string    `json:"session_id"`
	SchemaVersion   int       `json:"schema_version"`
	RepositoryPath  *string   `json:"repository_path"`
	CreatedAt       time.Time `json:"created_at"`
	LastIndexedAt   time.Time `json:"last_indexed_at"`
	ChunkSize       int       `json:"chunk_size"`
	Overlap         int       `json:"overlap"`
	FilesIndexed    int       `json:"files_indexed"`
	ChunksCreated   int       `json:"chunks_created"`
	SizeBytes       int64     `json:"size_bytes"`
	IncludePatterns []string  `json:"include_patterns"`
	ExcludePatterns []string  `json:"exclude_patterns"`
}

// ChunkDoc is one chunk staged for indexing via AddChunk.
type ChunkDoc struct {
	FilePath   string
	ChunkIndex int
	ByteStart  int
	ByteEnd    int
	Content    string
}

// SearchHit is one ranked result returned by Search.
type SearchHit struct {
	FilePath   string
	ChunkIndex int
	ByteStart  int
	ByteEnd    int
	Content    string
	Score      float64
}

// ValidationReport is the result of Validate.
type ValidationReport struct {
	Valid              bool
	MetaParses         bool
	FilesIndexedOK     bool
	ChunksCreatedOK    bool
	SizeBytesOK        bool
	ActualFilesIndexed int
	ActualChunksCount  int
	ActualSizeBytes    int64
	Problems           []string
}

// indexedDocument is the shape persisted to the Bleve index for one chunk.
// Field names and json tags are load-bearing: they are the Bleve field
// names queried by Search.
type indexedDocument struct {
	FilePath   string `json:"file_path"`
	Content    string `json:"content"`
	ChunkIndex int    `json:"chunk_index"`
	ByteStart  int    `json:"byte_start"`
	ByteEnd    int    `json:"byte_end"`
}
