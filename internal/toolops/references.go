package toolops

import (
	"github.com/shebe-oss/shebe/internal/reference"
)

// FindReferences wraps the ReferenceFinder (C7) for the find_references
// tool. file_path values in the index are absolute snapshots taken at
// index time, so they are read back from disk directly.
func FindReferences(d Deps, req FindReferencesRequest) (FindReferencesResponse, error) {
	if err := requireSessionID(req.SessionID); err != nil {
		return FindReferencesResponse{}, err
	}

	contextLines := req.ContextLines
	maxResults := req.MaxResults
	if maxResults == 0 {
		maxResults = 50
	}

	resp, err := reference.Find(reference.Options{
		IndexRoot:         d.IndexRoot,
		SessionID:         req.SessionID,
		Symbol:            req.Symbol,
		SymbolType:        req.SymbolType,
		DefinedIn:         req.DefinedIn,
		IncludeDefinition: req.IncludeDefinition,
		ContextLines:      contextLines,
		MaxResults:        maxResults,
	})
	if err != nil {
		return FindReferencesResponse{}, err
	}

	out := FindReferencesResponse{Matches: make([]ReferenceMatch, len(resp.Matches))}
	for i, m := range resp.Matches {
		out.Matches[i] = ReferenceMatch{
			FilePath:      m.FilePath,
			LineNumber:    m.LineNumber,
			LineContent:   m.LineContent,
			ContextBefore: m.ContextBefore,
			ContextAfter:  m.ContextAfter,
			PatternKind:   string(m.PatternKind),
			Confidence:    m.Confidence,
			Bucket:        string(m.Bucket),
		}
	}
	return out, nil
}
