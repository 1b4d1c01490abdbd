package toolserve

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/shebe-oss/shebe/internal/toolops"
)

func (s *Server) handleSearchCode(ctx context.Context, _ *mcp.CallToolRequest, in SearchCodeInput) (
	*mcp.CallToolResult, toolops.SearchCodeResponse, error,
) {
	out, err := toolops.SearchCode(s.deps, toolops.SearchCodeRequest{
		SessionID: in.SessionID,
		Query:     in.Query,
		K:         in.K,
		Literal:   in.Literal,
	})
	if err != nil {
		return nil, toolops.SearchCodeResponse{}, MapError(err)
	}
	return nil, out, nil
}

func (s *Server) handleFindReferences(ctx context.Context, _ *mcp.CallToolRequest, in FindReferencesInput) (
	*mcp.CallToolResult, toolops.FindReferencesResponse, error,
) {
	out, err := toolops.FindReferences(s.deps, toolops.FindReferencesRequest{
		SessionID:         in.SessionID,
		Symbol:            in.Symbol,
		SymbolType:        in.SymbolType,
		DefinedIn:         in.DefinedIn,
		IncludeDefinition: in.IncludeDefinition,
		ContextLines:      in.ContextLines,
		MaxResults:        in.MaxResults,
	})
	if err != nil {
		return nil, toolops.FindReferencesResponse{}, MapError(err)
	}
	return nil, out, nil
}

func (s *Server) handleIndexRepository(ctx context.Context, _ *mcp.CallToolRequest, in IndexRepositoryInput) (
	*mcp.CallToolResult, toolops.IndexStatsResponse, error,
) {
	chunkSize, overlap := in.ChunkSize, in.Overlap
	if chunkSize == 0 {
		chunkSize = s.cfg.ChunkSize
	}
	if overlap == 0 {
		overlap = s.cfg.Overlap
	}
	exclude := append(append([]string{}, s.cfg.ExcludePatterns...), in.Exclude...)

	out, err := toolops.IndexRepository(ctx, s.mgr, s.deps, toolops.IndexRepositoryRequest{
		SessionID: in.SessionID,
		Root:      in.Root,
		Include:   in.Include,
		Exclude:   exclude,
		ChunkSize: chunkSize,
		Overlap:   overlap,
		Force:     in.Force,
	})
	if err != nil {
		return nil, toolops.IndexStatsResponse{}, MapError(err)
	}
	return nil, out, nil
}

func (s *Server) handleReindexSession(ctx context.Context, _ *mcp.CallToolRequest, in ReindexSessionInput) (
	*mcp.CallToolResult, toolops.IndexStatsResponse, error,
) {
	out, err := toolops.ReindexSession(ctx, s.mgr, toolops.ReindexSessionRequest{
		SessionID: in.SessionID,
		ChunkSize: in.ChunkSize,
		Overlap:   in.Overlap,
		Force:     in.Force,
	})
	if err != nil {
		return nil, toolops.IndexStatsResponse{}, MapError(err)
	}
	return nil, out, nil
}

func (s *Server) handleUpgradeSession(ctx context.Context, _ *mcp.CallToolRequest, in UpgradeSessionInput) (
	*mcp.CallToolResult, toolops.IndexStatsResponse, error,
) {
	out, err := toolops.UpgradeSession(ctx, s.mgr, in.SessionID)
	if err != nil {
		return nil, toolops.IndexStatsResponse{}, MapError(err)
	}
	return nil, out, nil
}

func (s *Server) handleListSessions(ctx context.Context, _ *mcp.CallToolRequest, _ ListSessionsInput) (
	*mcp.CallToolResult, toolops.ListSessionsResponse, error,
) {
	out, err := toolops.ListSessions(s.mgr)
	if err != nil {
		return nil, toolops.ListSessionsResponse{}, MapError(err)
	}
	return nil, out, nil
}

func (s *Server) handleGetSessionInfo(ctx context.Context, _ *mcp.CallToolRequest, in GetSessionInfoInput) (
	*mcp.CallToolResult, toolops.SessionDetailResponse, error,
) {
	out, err := toolops.GetSessionInfo(s.mgr, in.SessionID)
	if err != nil {
		return nil, toolops.SessionDetailResponse{}, MapError(err)
	}
	return nil, out, nil
}

func (s *Server) handleDeleteSession(ctx context.Context, _ *mcp.CallToolRequest, in DeleteSessionInput) (
	*mcp.CallToolResult, struct{}, error,
) {
	if err := toolops.DeleteSession(s.mgr, toolops.DeleteSessionRequest{
		SessionID: in.SessionID,
		Confirm:   in.Confirm,
	}); err != nil {
		return nil, struct{}{}, MapError(err)
	}
	return nil, struct{}{}, nil
}

func (s *Server) handleReadFile(ctx context.Context, _ *mcp.CallToolRequest, in ReadFileInput) (
	*mcp.CallToolResult, toolops.ReadFileResponse, error,
) {
	out, err := toolops.ReadFile(s.deps, toolops.ReadFileRequest{
		SessionID: in.SessionID,
		FilePath:  in.FilePath,
	})
	if err != nil {
		return nil, toolops.ReadFileResponse{}, MapError(err)
	}
	return nil, out, nil
}

func (s *Server) handleListDir(ctx context.Context, _ *mcp.CallToolRequest, in ListDirInput) (
	*mcp.CallToolResult, toolops.ListDirResponse, error,
) {
	out, err := toolops.ListDir(s.deps, toolops.ListDirRequest{
		SessionID: in.SessionID,
		Limit:     in.Limit,
		Sort:      in.Sort,
	})
	if err != nil {
		return nil, toolops.ListDirResponse{}, MapError(err)
	}
	return nil, out, nil
}

func (s *Server) handleFindFile(ctx context.Context, _ *mcp.CallToolRequest, in FindFileInput) (
	*mcp.CallToolResult, toolops.FindFileResponse, error,
) {
	out, err := toolops.FindFile(s.deps, toolops.FindFileRequest{
		SessionID:   in.SessionID,
		Pattern:     in.Pattern,
		PatternType: in.PatternType,
		Limit:       in.Limit,
	})
	if err != nil {
		return nil, toolops.FindFileResponse{}, MapError(err)
	}
	return nil, out, nil
}

func (s *Server) handlePreviewChunk(ctx context.Context, _ *mcp.CallToolRequest, in PreviewChunkInput) (
	*mcp.CallToolResult, toolops.PreviewChunkResponse, error,
) {
	out, err := toolops.PreviewChunk(s.deps, toolops.PreviewChunkRequest{
		SessionID:    in.SessionID,
		FilePath:     in.FilePath,
		ChunkIndex:   in.ChunkIndex,
		ContextLines: in.ContextLines,
	})
	if err != nil {
		return nil, toolops.PreviewChunkResponse{}, MapError(err)
	}
	return nil, out, nil
}

func (s *Server) handleGetServerInfo(ctx context.Context, _ *mcp.CallToolRequest, _ GetServerInfoInput) (
	*mcp.CallToolResult, toolops.ServerInfoResponse, error,
) {
	return nil, toolops.GetServerInfo(), nil
}

func (s *Server) handleGetConfig(ctx context.Context, _ *mcp.CallToolRequest, _ GetConfigInput) (
	*mcp.CallToolResult, toolops.ConfigResponse, error,
) {
	return nil, toolops.GetConfig(s.cfg), nil
}
