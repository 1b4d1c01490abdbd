// Package query implements the QueryPreprocessor (C5): validates and
// rewrites a raw user query into the canonical string handed to the
// storage layer's query-string parser.
package query

import (
	"strings"

	shebeerrors "github.com/shebe-oss/shebe/internal/errors"
)

// DefaultMaxQueryLength is used when Preprocess is called with
// maxLength <= 0, matching the configuration surface's default.
const DefaultMaxQueryLength = 500

// recognizedFieldPrefixes are the field prefixes the downstream query
// grammar understands.
var recognizedFieldPrefixes = map[string]bool{
	"content":   true,
	"file_path": true,
}

// fieldPrefixSuggestions maps common mistaken field prefixes to the
// correct one, surfaced in the InvalidArgument suggestion.
var fieldPrefixSuggestions = map[string]string{
	"file": "file_path",
	"path": "file_path",
	"code": "content",
	"text": "content",
	"body": "content",
}

// Preprocess validates rawQuery and rewrites it into the canonical query
// string accepted by the storage layer. In literal mode every
// regex/grammar metacharacter is escaped and no boolean operators are
// honored.
func Preprocess(rawQuery string, literal bool, maxLength int) (string, error) {
	if maxLength <= 0 {
		maxLength = DefaultMaxQueryLength
	}

	trimmed := strings.TrimSpace(rawQuery)
	if trimmed == "" {
		return "", shebeerrors.New(shebeerrors.InvalidArgument, "query must not be empty")
	}
	if len(rawQuery) > maxLength {
		return "", shebeerrors.Newf(shebeerrors.InvalidArgument,
			"query exceeds max_query_length (%d)", maxLength)
	}

	if literal {
		return quoteLiteral(rawQuery), nil
	}

	if err := checkFieldPrefixes(rawQuery); err != nil {
		return "", err
	}

	tokens := strings.Fields(rawQuery)
	for i, tok := range tokens {
		tokens[i] = rewriteToken(tok)
	}
	return strings.Join(tokens, " "), nil
}

// rewriteToken applies the three automatic, order-sensitive rewrites to
// one whitespace-delimited token.
func rewriteToken(tok string) string {
	if isFieldPrefixedToken(tok) {
		return tok
	}

	// 1. Escape brace characters.
	escaped := strings.NewReplacer("{", "\\{", "}", "\\}").Replace(tok)

	// 2. URL-path-looking tokens (contain '/' and originally had braces)
	// get quoted wholesale.
	if strings.Contains(tok, "/") && (strings.Contains(tok, "{") || strings.Contains(tok, "}")) {
		return `"` + escaped + `"`
	}

	// 3. More than one ':' and not a recognized field prefix: quote.
	if strings.Count(tok, ":") > 1 {
		return `"` + tok + `"`
	}

	return escaped
}

// isFieldPrefixedToken reports whether tok begins with one of the
// recognized "field:" prefixes, in which case it's left untouched by the
// brace/colon rewrites (those only apply to plain keyword tokens).
func isFieldPrefixedToken(tok string) bool {
	idx := strings.Index(tok, ":")
	if idx <= 0 {
		return false
	}
	return recognizedFieldPrefixes[tok[:idx]]
}

// checkFieldPrefixes scans rawQuery for "word:" prefixes and rejects any
// that aren't recognized, suggesting a correction when one is known.
func checkFieldPrefixes(rawQuery string) error {
	for _, tok := range strings.Fields(rawQuery) {
		idx := strings.Index(tok, ":")
		if idx <= 0 {
			continue
		}
		prefix := tok[:idx]
		if recognizedFieldPrefixes[prefix] {
			continue
		}
		if strings.Count(tok, ":") > 1 {
			// Handled as a quoted literal by rewriteToken, not a field prefix.
			continue
		}
		if suggestion, ok := fieldPrefixSuggestions[prefix]; ok {
			return shebeerrors.Newf(shebeerrors.InvalidArgument, "unknown field prefix %q", prefix).
				WithSuggestion(suggestion + ":")
		}
		return shebeerrors.Newf(shebeerrors.InvalidArgument, "unknown field prefix %q", prefix)
	}
	return nil
}

// quoteLiteral escapes every query-grammar metacharacter and wraps the
// result in a single phrase, so literal mode never honors operators.
func quoteLiteral(raw string) string {
	escaper := strings.NewReplacer(
		`\`, `\\`,
		`"`, `\"`,
	)
	return `"` + escaper.Replace(raw) + `"`
}
