// Package search implements the SearchService (C6): query validation,
// preprocessing, BM25 execution against a session's storage, and result
// shaping.
package search

import (
	"time"

	shebeerrors "github.com/shebe-oss/shebe/internal/errors"
	"github.com/shebe-oss/shebe/internal/query"
	"github.com/shebe-oss/shebe/internal/store"
)

// Result is one ranked hit returned to a caller.
type Result struct {
	FilePath   string
	ChunkIndex int
	ByteStart  int
	ByteEnd    int
	Content    string
	Score      float64
	Language   string
}

// Response is the full outcome of a Search call.
type Response struct {
	Results      []Result
	ElapsedMs    float64
	TotalQueried int
}

// Options configures a single search call.
type Options struct {
	IndexRoot     string
	SessionID     string
	Query         string
	K             int
	Literal       bool
	MaxK          int
	MaxQueryChars int
}

// Search executes the SearchService contract: validate k, preprocess the
// query, open the session, and run a BM25 ranked search.
func Search(opts Options) (Response, error) {
	start := time.Now()

	maxK := opts.MaxK
	if maxK <= 0 {
		maxK = 100
	}
	if opts.K < 1 || opts.K > maxK {
		return Response{}, shebeerrors.Newf(shebeerrors.InvalidArgument, "k must be in [1, %d]", maxK)
	}

	canonical, err := query.Preprocess(opts.Query, opts.Literal, opts.MaxQueryChars)
	if err != nil {
		return Response{}, err
	}

	// Search is permitted on the read-only "schema_version < CURRENT_SCHEMA"
	// sub-state, so the schema check that gates indexing is bypassed here.
	s, err := store.OpenIgnoringSchema(opts.IndexRoot, opts.SessionID)
	if err != nil {
		return Response{}, err
	}
	defer func() { _ = s.Close() }()

	hits, err := s.Search(canonical, opts.K)
	if err != nil {
		return Response{}, err
	}

	results := make([]Result, 0, len(hits))
	for _, h := range hits {
		results = append(results, Result{
			FilePath:   h.FilePath,
			ChunkIndex: h.ChunkIndex,
			ByteStart:  h.ByteStart,
			ByteEnd:    h.ByteEnd,
			Content:    h.Content,
			Score:      h.Score,
			Language:   LanguageTag(h.FilePath),
		})
	}

	return Response{
		Results:      results,
		ElapsedMs:    float64(time.Since(start).Microseconds()) / 1000.0,
		TotalQueried: len(results),
	}, nil
}
