package toolserve

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/shebe-oss/shebe/internal/config"
	"github.com/shebe-oss/shebe/internal/session"
	"github.com/shebe-oss/shebe/internal/toolops"
	"github.com/shebe-oss/shebe/pkg/version"
)

// Server is the MCP server exposing Shebe's BM25 code search tools.
type Server struct {
	mcp    *mcp.Server
	mgr    *session.Manager
	deps   toolops.Deps
	cfg    config.Config
	logger *slog.Logger
}

// NewServer builds the MCP server and registers every tool named in
// SPEC_FULL.md against the given SessionManager and configuration.
func NewServer(mgr *session.Manager, cfg config.Config, logger *slog.Logger) (*Server, error) {
	if mgr == nil {
		return nil, fmt.Errorf("session manager is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		mgr: mgr,
		deps: toolops.Deps{
			IndexRoot: cfg.IndexDir,
			Config: toolops.Limits{
				DefaultK:             cfg.DefaultK,
				MaxK:                 cfg.MaxK,
				MaxQueryLength:       cfg.MaxQueryLength,
				MaxFileBytes:         cfg.MaxFileBytes(),
				MaxConcurrentIndexes: cfg.MaxConcurrentIndexes,
				RequestTimeoutSec:    cfg.RequestTimeoutSec,
			},
		},
		cfg:    cfg,
		logger: logger,
	}

	s.mcp = mcp.NewServer(
		&mcp.Implementation{Name: "shebe", Version: version.Version},
		nil,
	)
	s.registerTools()

	return s, nil
}

// MCPServer exposes the underlying SDK server, e.g. for tests that
// drive tool calls directly.
func (s *Server) MCPServer() *mcp.Server {
	return s.mcp
}

// registerTools binds every internal/toolops operation to the MCP
// server as a named tool, mirroring AmanMCP's registerTools.
func (s *Server) registerTools() {
	s.logger.Debug("registering MCP tools")

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "search_code",
		Description: "BM25 full-text search over an indexed repository's code chunks. Returns ranked matches with file path, byte range, and score.",
	}, s.handleSearchCode)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "find_references",
		Description: "Find likely references to a symbol (call sites, imports, definitions) by pattern, ranked by confidence.",
	}, s.handleFindReferences)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "index_repository",
		Description: "Index a repository into a new session, ready for search_code and find_references.",
	}, s.handleIndexRepository)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "reindex_session",
		Description: "Re-run indexing for an existing session, picking up repository changes or a new chunking configuration.",
	}, s.handleReindexSession)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "upgrade_session",
		Description: "Migrate a session from an older index schema version to the current one.",
	}, s.handleUpgradeSession)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "list_sessions",
		Description: "List all indexed sessions with their state, schema version, and summary statistics.",
	}, s.handleListSessions)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_session_info",
		Description: "Get detailed configuration and statistics for one session.",
	}, s.handleGetSessionInfo)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "delete_session",
		Description: "Permanently delete a session and its index. Requires confirm=true.",
	}, s.handleDeleteSession)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "read_file",
		Description: "Read a file from a session's repository, truncated to 20,000 characters.",
	}, s.handleReadFile)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "list_dir",
		Description: "List the file paths indexed by a session, up to 500 entries.",
	}, s.handleListDir)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "find_file",
		Description: "Find indexed file paths matching a glob or regex pattern.",
	}, s.handleFindFile)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "preview_chunk",
		Description: "Preview one indexed chunk with surrounding line context, up to 100 lines per side.",
	}, s.handlePreviewChunk)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_server_info",
		Description: "Report the server's name and version.",
	}, s.handleGetServerInfo)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        "get_config",
		Description: "Report the server's resolved, non-secret configuration.",
	}, s.handleGetConfig)

	s.logger.Info("MCP tools registered", slog.Int("count", 14))
}

// Serve runs the server until ctx is canceled. Only the stdio
// transport is supported, matching the spec's local, single-process
// deployment model.
func (s *Server) Serve(ctx context.Context, transport string) error {
	s.logger.Info("starting MCP server", slog.String("transport", transport))

	switch transport {
	case "", "stdio":
		err := s.mcp.Run(ctx, &mcp.StdioTransport{})
		if err != nil && err != context.Canceled {
			s.logger.Error("MCP server stopped with error", slog.String("error", err.Error()))
			return err
		}
		s.logger.Info("MCP server stopped")
		return nil
	default:
		return fmt.Errorf("unknown transport %q (supported: stdio)", transport)
	}
}
