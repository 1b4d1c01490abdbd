package toolops

import (
	"os"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"

	shebeerrors "github.com/shebe-oss/shebe/internal/errors"
	"github.com/shebe-oss/shebe/internal/store"
)

// maxReadChars is read_file's hard cap on returned characters.
const maxReadChars = 20000

// maxListDirFiles is list_dir's hard cap on returned entries.
const maxListDirFiles = 500

// maxPreviewContextLines is preview_chunk's hard cap on context_lines
// per side.
const maxPreviewContextLines = 100

// ReadFile wraps direct filesystem access for the read_file tool:
// truncates on a character boundary and rejects non-UTF-8 content.
func ReadFile(d Deps, req ReadFileRequest) (ReadFileResponse, error) {
	if err := requireSessionID(req.SessionID); err != nil {
		return ReadFileResponse{}, err
	}

	data, err := os.ReadFile(req.FilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return ReadFileResponse{}, shebeerrors.Newf(shebeerrors.FileNotFound, "file %q does not exist", req.FilePath)
		}
		return ReadFileResponse{}, shebeerrors.Wrap(shebeerrors.Internal, err)
	}
	if !utf8.Valid(data) {
		return ReadFileResponse{}, shebeerrors.Newf(shebeerrors.BinaryFile, "file %q is not valid UTF-8", req.FilePath)
	}

	text := string(data)
	totalChars := utf8.RuneCountInString(text)
	shown := text
	truncated := false
	if totalChars > maxReadChars {
		shown = truncateOnRuneBoundary(text, maxReadChars)
		truncated = true
	}

	resp := ReadFileResponse{
		Content:    shown,
		Truncated:  truncated,
		ShownChars: utf8.RuneCountInString(shown),
		TotalChars: totalChars,
	}
	if totalChars > 0 {
		resp.ShownRatio = float64(resp.ShownChars) / float64(totalChars)
	} else {
		resp.ShownRatio = 1
	}
	if truncated {
		resp.Suggestion = "file truncated; use search_code or preview_chunk to inspect the rest"
	}
	return resp, nil
}

// truncateOnRuneBoundary returns the first n runes of s.
func truncateOnRuneBoundary(s string, n int) string {
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// ListDir wraps the session's indexed file list for the list_dir tool.
func ListDir(d Deps, req ListDirRequest) (ListDirResponse, error) {
	if err := requireSessionID(req.SessionID); err != nil {
		return ListDirResponse{}, err
	}
	limit := req.Limit
	if limit <= 0 || limit > maxListDirFiles {
		limit = maxListDirFiles
	}

	s, err := store.OpenIgnoringSchema(d.IndexRoot, req.SessionID)
	if err != nil {
		return ListDirResponse{}, err
	}
	defer func() { _ = s.Close() }()

	paths, err := s.AllFilePaths()
	if err != nil {
		return ListDirResponse{}, err
	}

	switch req.Sort {
	case "size":
		sort.Slice(paths, func(i, j int) bool {
			return fileSize(paths[i]) < fileSize(paths[j])
		})
	case "insertion":
		// AllFilePaths already returns first-seen order; leave as-is.
	default:
		sort.Strings(paths)
	}

	resp := ListDirResponse{Total: len(paths)}
	if len(paths) > limit {
		resp.Files = paths[:limit]
		resp.Truncated = true
		resp.Suggestion = "result truncated; use find_file with a narrower pattern"
	} else {
		resp.Files = paths
	}
	return resp, nil
}

func fileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}

// FindFile filters a session's indexed file list by a glob or regex
// pattern for the find_file tool.
func FindFile(d Deps, req FindFileRequest) (FindFileResponse, error) {
	if err := requireSessionID(req.SessionID); err != nil {
		return FindFileResponse{}, err
	}
	if req.Pattern == "" {
		return FindFileResponse{}, shebeerrors.New(shebeerrors.InvalidArgument, "pattern is required")
	}
	limit := req.Limit
	if limit <= 0 || limit > maxListDirFiles {
		limit = maxListDirFiles
	}

	s, err := store.OpenIgnoringSchema(d.IndexRoot, req.SessionID)
	if err != nil {
		return FindFileResponse{}, err
	}
	defer func() { _ = s.Close() }()

	paths, err := s.AllFilePaths()
	if err != nil {
		return FindFileResponse{}, err
	}

	matches, err := filterPaths(paths, req.Pattern, req.PatternType)
	if err != nil {
		return FindFileResponse{}, err
	}
	sort.Strings(matches)

	resp := FindFileResponse{Total: len(matches)}
	if len(matches) > limit {
		resp.Files = matches[:limit]
	} else {
		resp.Files = matches
	}
	return resp, nil
}

func filterPaths(paths []string, pattern, patternType string) ([]string, error) {
	switch patternType {
	case "", "glob":
		var out []string
		for _, p := range paths {
			ok, err := doublestar.Match(pattern, p)
			if err != nil {
				return nil, shebeerrors.Wrapf(shebeerrors.InvalidArgument, err, "invalid glob pattern %q", pattern)
			}
			if ok {
				out = append(out, p)
			}
		}
		return out, nil
	case "regex":
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, shebeerrors.Wrapf(shebeerrors.InvalidArgument, err, "invalid regex pattern %q", pattern)
		}
		var out []string
		for _, p := range paths {
			if re.MatchString(p) {
				out = append(out, p)
			}
		}
		return out, nil
	default:
		return nil, shebeerrors.Newf(shebeerrors.InvalidArgument, "pattern_type must be glob or regex, got %q", patternType)
	}
}

// PreviewChunk reads a chunk's byte span from the index, converts it to
// a line range, and returns it plus surrounding context for the
// preview_chunk tool.
func PreviewChunk(d Deps, req PreviewChunkRequest) (PreviewChunkResponse, error) {
	if err := requireSessionID(req.SessionID); err != nil {
		return PreviewChunkResponse{}, err
	}
	if req.ContextLines > maxPreviewContextLines {
		return PreviewChunkResponse{}, shebeerrors.Newf(shebeerrors.InvalidArgument,
			"context_lines must be <= %d", maxPreviewContextLines)
	}

	s, err := store.OpenIgnoringSchema(d.IndexRoot, req.SessionID)
	if err != nil {
		return PreviewChunkResponse{}, err
	}
	defer func() { _ = s.Close() }()

	chunk, ok, err := s.GetChunk(req.FilePath, req.ChunkIndex)
	if err != nil {
		return PreviewChunkResponse{}, err
	}
	if !ok {
		return PreviewChunkResponse{}, shebeerrors.Newf(shebeerrors.NotFound,
			"chunk %d of %q not found in session %q", req.ChunkIndex, req.FilePath, req.SessionID)
	}

	data, err := os.ReadFile(req.FilePath)
	if err != nil {
		if os.IsNotExist(err) {
			return PreviewChunkResponse{}, shebeerrors.Newf(shebeerrors.FileNotFound, "file %q does not exist", req.FilePath)
		}
		return PreviewChunkResponse{}, shebeerrors.Wrap(shebeerrors.Internal, err)
	}
	text := string(data)
	lines := strings.Split(text, "\n")

	startLine, endLine := byteRangeToLines(text, chunk.ByteStart, chunk.ByteEnd)
	start := startLine - req.ContextLines
	if start < 1 {
		start = 1
	}
	end := endLine + req.ContextLines
	if end > len(lines) {
		end = len(lines)
	}

	return PreviewChunkResponse{
		FilePath:   req.FilePath,
		ChunkIndex: req.ChunkIndex,
		StartLine:  start,
		EndLine:    end,
		Lines:      lines[start-1 : end],
	}, nil
}

// byteRangeToLines converts a byte span within text into a 1-indexed,
// inclusive line range; mirrors internal/reference's helper of the same
// name since both convert a chunk's stored byte span for display.
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
