package store

import (
	"regexp"
	"strings"
	"unicode"
)

// tokenRegex extracts runs of identifier characters from arbitrary text,
// the same first pass the teacher's code tokenizer performs before
// splitting camelCase/snake_case.
var tokenRegex = regexp.MustCompile(`[a-zA-Z0-9_]+`)

// pathSegmentRegex extracts identifier-like runs from a path, treating
// '/', '.', '-' as segment boundaries in addition to whitespace.
var pathSegmentRegex = regexp.MustCompile(`[a-zA-Z0-9_]+`)

// minTokenLength filters out tokens too short to be useful search terms
// (matching the teacher's MinTokenLength default of 2).
const minTokenLength = 2

// tokenizeContent splits chunk text into lowercase search tokens, honoring
// camelCase/snake_case identifier boundaries the way source code is
// actually written.
func tokenizeContent(text string) []string {
	var tokens []string
	for _, word := range tokenRegex.FindAllString(text, -1) {
		for _, t := range splitCodeToken(word) {
			lower := strings.ToLower(t)
			if len(lower) >= minTokenLength {
				tokens = append(tokens, lower)
			}
		}
	}
	return tokens
}

// tokenizePath splits a file path into search tokens: each component's
// camelCase/snake_case sub-words, plus, for a component with more than
// one sub-word, the sub-words joined into one token, so a query for
// "userservice" matches a file at internal/user_service.go.
func tokenizePath(path string) []string {
	var tokens []string
	for _, word := range pathSegmentRegex.FindAllString(path, -1) {
		parts := splitCodeToken(word)
		for _, t := range parts {
			lower := strings.ToLower(t)
			if len(lower) >= minTokenLength {
				tokens = append(tokens, lower)
			}
		}
		if len(parts) > 1 {
			tokens = append(tokens, strings.ToLower(strings.Join(parts, "")))
		}
	}
	return tokens
}

// splitCodeToken splits a snake_case identifier into parts, recursing into
// each part for camelCase splitting.
func splitCodeToken(token string) []string {
	if strings.Contains(token, "_") {
		var result []string
		for _, part := range strings.Split(token, "_") {
			if part != "" {
				result = append(result, splitCamelCase(part)...)
			}
		}
		return result
	}
	return splitCamelCase(token)
}

// splitCamelCase splits camelCase/PascalCase identifiers, keeping runs of
// capitals together so acronyms like HTTP survive as one token:
// "parseHTTPRequest" -> ["parse", "HTTP", "Request"].
func splitCamelCase(s string) []string {
	if s == "" {
		return nil
	}

	var result []string
	var current strings.Builder

	runes := []rune(s)
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prevLower := unicode.IsLower(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if prevLower || nextLower {
				if current.Len() > 0 {
					result = append(result, current.String())
					current.Reset()
				}
			}
		}
		current.WriteRune(r)
	}
	if current.Len() > 0 {
		result = append(result, current.String())
	}
	return result
}
