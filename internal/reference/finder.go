// Package reference implements the ReferenceFinder (C7): a BM25 pre-filter
// over a session's index followed by line-level pattern classification
// and confidence scoring against the candidate files' source text.
package reference

import (
	"os"
	"sort"
	"strconv"
	"strings"

	shebeerrors "github.com/shebe-oss/shebe/internal/errors"
	"github.com/shebe-oss/shebe/internal/store"
)

const (
	minSymbolLength = 2
	maxSymbolLength = 200
	maxPrefilterK   = 500
)

// Find executes the ReferenceFinder contract against a session.
func Find(opts Options) (Response, error) {
	if err := validateOptions(&opts); err != nil {
		return Response{}, err
	}

	s, err := store.OpenIgnoringSchema(opts.IndexRoot, opts.SessionID)
	if err != nil {
		return Response{}, err
	}
	defer func() { _ = s.Close() }()

	k := opts.MaxResults * 5
	if k > maxPrefilterK {
		k = maxPrefilterK
	}
	candidates, err := s.Search(opts.Symbol, k)
	if err != nil {
		return Response{}, err
	}

	fileCache := map[string][]string{} // file_path -> lines
	readErr := map[string]bool{}

	byKey := map[string]Match{} // "file_path\x00line" -> best match

	for _, c := range candidates {
		if opts.DefinedIn != "" && c.FilePath == opts.DefinedIn && !opts.IncludeDefinition {
			continue
		}

		lines, ok := fileCache[c.FilePath]
		if !ok {
			if readErr[c.FilePath] {
				continue
			}
			text, err := os.ReadFile(c.FilePath)
			if err != nil {
				readErr[c.FilePath] = true
				continue
			}
			lines = strings.Split(string(text), "\n")
			fileCache[c.FilePath] = lines
		}

		startLine, endLine := byteRangeToLines(strings.Join(lines, "\n"), c.ByteStart, c.ByteEnd)

		for lineNum := startLine; lineNum <= endLine && lineNum <= len(lines); lineNum++ {
			if lineNum < 1 {
				continue
			}
			line := lines[lineNum-1]
			idx := occurrenceIndex(line, opts.Symbol)
			if idx == -1 {
				continue
			}

			kind, matched := Classify(line, opts.Symbol)
			if !matched {
				continue
			}
			if !MatchesSymbolType(opts.SymbolType, kind) {
				continue
			}

			confidence := adjustConfidence(BaseScore(kind), c.FilePath, line, idx)

			key := c.FilePath + "\x00" + strconv.Itoa(lineNum)
			if existing, ok := byKey[key]; ok && existing.Confidence >= confidence {
				continue
			}
			byKey[key] = Match{
				FilePath:    c.FilePath,
				LineNumber:  lineNum,
				LineContent: line,
				PatternKind: kind,
				Confidence:  confidence,
				Bucket:      Bucket(confidence),
			}
		}
	}

	matches := make([]Match, 0, len(byKey))
	for _, m := range byKey {
		matches = append(matches, m)
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Confidence != matches[j].Confidence {
			return matches[i].Confidence > matches[j].Confidence
		}
		if matches[i].FilePath != matches[j].FilePath {
			return matches[i].FilePath < matches[j].FilePath
		}
		return matches[i].LineNumber < matches[j].LineNumber
	})

	if len(matches) > opts.MaxResults {
		matches = matches[:opts.MaxResults]
	}

	for i := range matches {
		lines := fileCache[matches[i].FilePath]
		matches[i].ContextBefore, matches[i].ContextAfter = surroundingLines(lines, matches[i].LineNumber, opts.ContextLines)
	}

	return Response{Matches: matches}, nil
}

func validateOptions(opts *Options) error {
	if len(opts.Symbol) < minSymbolLength || len(opts.Symbol) > maxSymbolLength {
		return shebeerrors.Newf(shebeerrors.InvalidArgument, "symbol length must be in [%d, %d]", minSymbolLength, maxSymbolLength)
	}
	switch opts.SymbolType {
	case "", "function", "type", "variable", "constant", "any":
	default:
		return shebeerrors.Newf(shebeerrors.InvalidArgument, "symbol_type must be one of function, type, variable, constant, any")
	}
	if opts.ContextLines < 0 || opts.ContextLines > 10 {
		return shebeerrors.New(shebeerrors.InvalidArgument, "context_lines must be in [0, 10]")
	}
	if opts.MaxResults < 1 || opts.MaxResults > 200 {
		return shebeerrors.New(shebeerrors.InvalidArgument, "max_results must be in [1, 200]")
	}
	return nil
}

// byteRangeToLines converts a byte span within text into a 1-indexed,
// inclusive line range.
func byteRangeToLines(text string, byteStart, byteEnd int) (int, int) {
	if byteStart < 0 {
		byteStart = 0
	}
	if byteEnd > len(text) {
		byteEnd = len(text)
	}
	startLine := 1 + strings.Count(text[:byteStart], "\n")
	endOffset := byteEnd
	if endOffset > 0 {
		endOffset--
	}
	if endOffset < byteStart {
		endOffset = byteStart
	}
	endLine := 1 + strings.Count(text[:endOffset], "\n")
	return startLine, endLine
}

// surroundingLines returns up to n lines of context before and after the
// 1-indexed lineNum within lines.
func surroundingLines(lines []string, lineNum, n int) (before, after []string) {
	if n <= 0 {
		return nil, nil
	}
	start := lineNum - 1 - n
	if start < 0 {
		start = 0
	}
	for i := start; i < lineNum-1; i++ {
		before = append(before, lines[i])
	}
	end := lineNum + n
	if end > len(lines) {
		end = len(lines)
	}
	for i := lineNum; i < end; i++ {
		after = append(after, lines[i])
	}
	return before, after
}
