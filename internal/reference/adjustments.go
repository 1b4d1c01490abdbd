package reference

import (
	"path/filepath"
	"strings"
)

// testFileMarkers are substrings in a path that mark it as a test file.
var testFileMarkers = []string{"/test", "test_", "_test.", "tests/"}

var testFileExtensions = map[string]bool{
	".spec.js": true, ".spec.ts": true,
}

// isTestFile applies the language-agnostic test-file heuristic.
func isTestFile(path string) bool {
	lower := strings.ToLower(path)
	for _, marker := range testFileMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	for ext := range testFileExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

var docExtensions = map[string]bool{".md": true, ".rst": true, ".txt": true}

func isDocExtension(path string) bool {
	return docExtensions[strings.ToLower(filepath.Ext(path))]
}

// occurrenceIndex returns the byte offset of symbol's first occurrence in
// line, or -1.
func occurrenceIndex(line, symbol string) int {
	return strings.Index(line, symbol)
}

// inLineComment reports whether the occurrence at idx is preceded on the
// same line by a "//" or "#" comment marker, or falls inside a "/* ... */"
// span that starts and ends on this line.
func inLineComment(line string, idx int) bool {
	prefix := line[:idx]
	if strings.Contains(prefix, "//") || strings.Contains(prefix, "#") {
		return true
	}
	open := strings.Index(line, "/*")
	for open != -1 && open < idx {
		closeIdx := strings.Index(line[open:], "*/")
		if closeIdx == -1 {
			return true // unterminated block comment swallows the rest of the line
		}
		closeIdx += open
		if idx < closeIdx {
			return true
		}
		next := strings.Index(line[closeIdx:], "/*")
		if next == -1 {
			open = -1
		} else {
			open = closeIdx + next
		}
	}
	return false
}

// inStringLiteral applies a simple per-line quote-count heuristic: if an
// odd number of quote characters precede idx, the occurrence sits inside
// an open string literal.
func inStringLiteral(line string, idx int) bool {
	prefix := line[:idx]
	doubleQuotes := strings.Count(prefix, `"`) - strings.Count(prefix, `\"`)
	singleQuotes := strings.Count(prefix, `'`) - strings.Count(prefix, `\'`)
	return doubleQuotes%2 == 1 || singleQuotes%2 == 1
}

// adjustConfidence sums the confidence adjustments for one match and
// clamps the result to [0, 1].
func adjustConfidence(base float64, filePath, line string, idx int) float64 {
	score := base
	if isTestFile(filePath) {
		score += 0.05
	}
	if inLineComment(line, idx) {
		score -= 0.30
	}
	if inStringLiteral(line, idx) {
		score -= 0.20
	}
	if isDocExtension(filePath) {
		score -= 0.25
	}
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return score
}
