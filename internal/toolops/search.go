package toolops

import (
	shebeerrors "github.com/shebe-oss/shebe/internal/errors"
	"github.com/shebe-oss/shebe/internal/search"
)

// SearchCode wraps the SearchService (C6) for the search_code tool.
func SearchCode(d Deps, req SearchCodeRequest) (SearchCodeResponse, error) {
	if err := requireSessionID(req.SessionID); err != nil {
		return SearchCodeResponse{}, err
	}
	k := req.K
	if k == 0 {
		k = d.Config.DefaultK
	}

	resp, err := search.Search(search.Options{
		IndexRoot:     d.IndexRoot,
		SessionID:     req.SessionID,
		Query:         req.Query,
		K:             k,
		Literal:       req.Literal,
		MaxK:          d.Config.MaxK,
		MaxQueryChars: d.Config.MaxQueryLength,
	})
	if err != nil {
		return SearchCodeResponse{}, err
	}

	out := SearchCodeResponse{
		ElapsedMs:    resp.ElapsedMs,
		TotalQueried: resp.TotalQueried,
		Results:      make([]SearchCodeResult, len(resp.Results)),
	}
	for i, r := range resp.Results {
		out.Results[i] = SearchCodeResult{
			FilePath:   r.FilePath,
			ChunkIndex: r.ChunkIndex,
			ByteStart:  r.ByteStart,
			ByteEnd:    r.ByteEnd,
			Content:    r.Content,
			Score:      r.Score,
			Language:   r.Language,
		}
	}
	return out, nil
}

func requireSessionID(sessionID string) error {
	if sessionID == "" {
		return shebeerrors.New(shebeerrors.InvalidArgument, "session_id is required")
	}
	return nil
}
