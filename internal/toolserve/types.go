// Package toolserve wires internal/toolops's SDK-agnostic tool
// operations into github.com/modelcontextprotocol/go-sdk's mcp.Server,
// the way AmanMCP's internal/mcp package wires its own handlers: a
// jsonschema-tagged Input struct and a thin handler per tool,
// registered via mcp.AddTool.
package toolserve

// SearchCodeInput is the search_code tool's input schema.
type SearchCodeInput struct {
	SessionID string `json:"session_id" jsonschema:"the session to search"`
	Query     string `json:"query" jsonschema:"the search query"`
	K         int    `json:"k,omitempty" jsonschema:"maximum number of results, defaults to the server's default_k"`
	Literal   bool   `json:"literal,omitempty" jsonschema:"match the query as a literal phrase instead of a BM25 query string"`
}

// FindReferencesInput is the find_references tool's input schema.
type FindReferencesInput struct {
	SessionID         string `json:"session_id" jsonschema:"the session to search"`
	Symbol            string `json:"symbol" jsonschema:"the symbol name to find references to"`
	SymbolType        string `json:"symbol_type,omitempty" jsonschema:"restrict to a symbol kind: function, type, variable"`
	DefinedIn         string `json:"defined_in,omitempty" jsonschema:"indexed path of the file defining the symbol; when include_definition is false, matches in this file are skipped"`
	IncludeDefinition bool   `json:"include_definition,omitempty" jsonschema:"include the defining occurrence in results"`
	ContextLines      int    `json:"context_lines,omitempty" jsonschema:"lines of context to include before and after each match"`
	MaxResults        int    `json:"max_results,omitempty" jsonschema:"maximum number of matches, defaults to 50"`
}

// IndexRepositoryInput is the index_repository tool's input schema.
type IndexRepositoryInput struct {
	SessionID string   `json:"session_id" jsonschema:"a new, unique session identifier"`
	Root      string   `json:"root" jsonschema:"absolute path to the repository to index"`
	Include   []string `json:"include,omitempty" jsonschema:"glob patterns to include; defaults to everything not excluded"`
	Exclude   []string `json:"exclude,omitempty" jsonschema:"glob patterns to exclude, in addition to the server defaults"`
	ChunkSize int      `json:"chunk_size,omitempty" jsonschema:"override the configured chunk size in characters; 0 uses the server default"`
	Overlap   int      `json:"overlap,omitempty" jsonschema:"override the configured chunk overlap in characters; 0 uses the server default"`
	Force     bool     `json:"force,omitempty" jsonschema:"recreate the session if one with this id already exists"`
}

// ReindexSessionInput is the reindex_session tool's input schema.
type ReindexSessionInput struct {
	SessionID string `json:"session_id" jsonschema:"the session to reindex"`
	ChunkSize *int   `json:"chunk_size,omitempty" jsonschema:"override the session's stored chunk size"`
	Overlap   *int   `json:"overlap,omitempty" jsonschema:"override the session's stored chunk overlap"`
	Force     bool   `json:"force,omitempty" jsonschema:"reindex even if the effective config is unchanged"`
}

// UpgradeSessionInput is the upgrade_session tool's input schema.
type UpgradeSessionInput struct {
	SessionID string `json:"session_id" jsonschema:"the session to upgrade to the current schema version"`
}

// ListSessionsInput is the list_sessions tool's input schema (no
// parameters; kept as a named type so mcp.AddTool has something to
// bind against).
type ListSessionsInput struct{}

// GetSessionInfoInput is the get_session_info tool's input schema.
type GetSessionInfoInput struct {
	SessionID string `json:"session_id" jsonschema:"the session to describe"`
}

// DeleteSessionInput is the delete_session tool's input schema.
type DeleteSessionInput struct {
	SessionID string `json:"session_id" jsonschema:"the session to delete"`
	Confirm   bool   `json:"confirm" jsonschema:"must be true; guards against accidental deletion"`
}

// ReadFileInput is the read_file tool's input schema.
type ReadFileInput struct {
	SessionID string `json:"session_id" jsonschema:"the session whose repository to read from"`
	FilePath  string `json:"file_path" jsonschema:"absolute path to the file, as stored in the index"`
}

// ListDirInput is the list_dir tool's input schema.
type ListDirInput struct {
	SessionID string `json:"session_id" jsonschema:"the session whose indexed files to list"`
	Limit     int    `json:"limit,omitempty" jsonschema:"maximum number of files to return, up to 500"`
	Sort      string `json:"sort,omitempty" jsonschema:"alphabetical (default), size, or insertion"`
}

// FindFileInput is the find_file tool's input schema.
type FindFileInput struct {
	SessionID   string `json:"session_id" jsonschema:"the session whose indexed files to search"`
	Pattern     string `json:"pattern" jsonschema:"a glob or regex pattern to match file paths against"`
	PatternType string `json:"pattern_type,omitempty" jsonschema:"glob (default) or regex"`
	Limit       int    `json:"limit,omitempty" jsonschema:"maximum number of matches to return, up to 500"`
}

// PreviewChunkInput is the preview_chunk tool's input schema.
type PreviewChunkInput struct {
	SessionID    string `json:"session_id" jsonschema:"the session the chunk was indexed under"`
	FilePath     string `json:"file_path" jsonschema:"path to the file the chunk belongs to"`
	ChunkIndex   int    `json:"chunk_index" jsonschema:"the chunk's index within the file"`
	ContextLines int    `json:"context_lines,omitempty" jsonschema:"lines of surrounding context per side, up to 100"`
}

// GetServerInfoInput is the get_server_info tool's input schema (no
// parameters).
type GetServerInfoInput struct{}

// GetConfigInput is the get_config tool's input schema (no parameters).
type GetConfigInput struct{}
