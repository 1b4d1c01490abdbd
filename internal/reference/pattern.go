package reference

import (
	"regexp"
	"strings"
)

// Kind identifies which textual heuristic matched a symbol occurrence.
type Kind string

const (
	KindFunctionCall      Kind = "function_call"
	KindMethodCall        Kind = "method_call"
	KindImport            Kind = "import"
	KindTypeAnnotation    Kind = "type_annotation"
	KindReturnType        Kind = "return_type"
	KindGenericType       Kind = "generic_type"
	KindTypeInstantiation Kind = "type_instantiation"
	KindAssignment        Kind = "assignment"
	KindWordMatch         Kind = "word_match"
)

// baseScore is the base confidence assigned before adjustments, per kind.
var baseScore = map[Kind]float64{
	KindFunctionCall:      0.95,
	KindMethodCall:        0.92,
	KindImport:            0.90,
	KindTypeAnnotation:    0.85,
	KindReturnType:        0.85,
	KindGenericType:       0.85,
	KindTypeInstantiation: 0.85,
	KindAssignment:        0.80,
	KindWordMatch:         0.60,
}

// BaseScore returns the base confidence score for a pattern kind.
func BaseScore(k Kind) float64 {
	return baseScore[k]
}

// symbolTypeKinds maps a requested symbol_type to the set of pattern kinds
// that are considered matches for it.
var symbolTypeKinds = map[string]map[Kind]bool{
	"function": {KindFunctionCall: true, KindMethodCall: true},
	"type": {
		KindTypeAnnotation: true, KindGenericType: true,
		KindReturnType: true, KindTypeInstantiation: true,
	},
	"variable": {KindAssignment: true, KindImport: true, KindWordMatch: true},
	"constant": {KindAssignment: true, KindImport: true, KindWordMatch: true},
}

// MatchesSymbolType reports whether a pattern kind is included in the
// kind set for the requested symbol_type ("any" matches everything).
func MatchesSymbolType(symbolType string, k Kind) bool {
	if symbolType == "" || symbolType == "any" {
		return true
	}
	set, ok := symbolTypeKinds[symbolType]
	if !ok {
		return true
	}
	return set[k]
}

var importKeywordRe = regexp.MustCompile(`\b(import|use|require|include)\b`)

// classifiers are evaluated in order; the first match wins. Each takes the
// line text and the symbol and reports whether the pattern applies
// somewhere on the line containing that symbol.
type classifier struct {
	kind  Kind
	match func(line, symbol string) bool
}

var classifiers = []classifier{
	{KindFunctionCall, func(line, symbol string) bool {
		return matchesCallSite(line, symbol, false)
	}},
	{KindMethodCall, func(line, symbol string) bool {
		return matchesCallSite(line, symbol, true)
	}},
	{KindImport, func(line, symbol string) bool {
		return importKeywordRe.MatchString(line) && strings.Contains(line, symbol)
	}},
	{KindTypeAnnotation, func(line, symbol string) bool {
		return containsColonThenSymbol(line, symbol)
	}},
	{KindReturnType, func(line, symbol string) bool {
		return strings.Contains(line, "->"+symbol) || strings.Contains(line, "-> "+symbol) ||
			strings.Contains(line, "returns "+symbol)
	}},
	{KindGenericType, func(line, symbol string) bool {
		return containsBetweenAngles(line, symbol)
	}},
	{KindTypeInstantiation, func(line, symbol string) bool {
		return strings.Contains(line, symbol+"{") || strings.Contains(line, "new "+symbol+"(")
	}},
	{KindAssignment, func(line, symbol string) bool {
		return matchesAssignment(line, symbol)
	}},
}

// Classify returns the pattern kind for symbol's occurrence on line,
// falling back to word_match if the symbol appears at a word boundary and
// nothing more specific matched.
func Classify(line, symbol string) (Kind, bool) {
	for _, c := range classifiers {
		if c.match(line, symbol) {
			return c.kind, true
		}
	}
	if wordBoundaryMatch(line, symbol) {
		return KindWordMatch, true
	}
	return "", false
}

// matchesCallSite detects `symbol(` (function_call) or `.symbol(`
// (method_call) occurrences. function_call additionally requires symbol
// to start at a word boundary, so "xfoo(" does not match symbol "foo",
// and skips "new symbol(", which is a type_instantiation.
func matchesCallSite(line, symbol string, method bool) bool {
	idx := 0
	for {
		pos := strings.Index(line[idx:], symbol+"(")
		if pos == -1 {
			return false
		}
		pos += idx
		precededByDot := pos > 0 && line[pos-1] == '.'
		if method {
			if precededByDot {
				return true
			}
		} else {
			precededByIdent := pos > 0 && isIdentByte(line[pos-1])
			precededByNew := strings.HasSuffix(line[:pos], "new ")
			if !precededByDot && !precededByIdent && !precededByNew {
				return true
			}
		}
		idx = pos + 1
	}
}

// containsColonThenSymbol detects "<ident>: symbol" style annotations:
// a colon, optional whitespace, then the symbol at a word boundary, so
// "x: fooBar" does not match symbol "foo".
func containsColonThenSymbol(line, symbol string) bool {
	idx := 0
	for {
		pos := strings.Index(line[idx:], ":")
		if pos == -1 {
			return false
		}
		pos += idx
		rest := strings.TrimLeft(line[pos+1:], " \t")
		if strings.HasPrefix(rest, symbol) {
			after := byte(0)
			if len(rest) > len(symbol) {
				after = rest[len(symbol)]
			}
			if !isIdentByte(after) {
				return true
			}
		}
		idx = pos + 1
	}
}

// containsBetweenAngles detects symbol appearing between '<' and '>'.
func containsBetweenAngles(line, symbol string) bool {
	open := strings.Index(line, "<")
	closeIdx := strings.LastIndex(line, ">")
	if open == -1 || closeIdx == -1 || closeIdx <= open {
		return false
	}
	return strings.Contains(line[open+1:closeIdx], symbol)
}

// matchesAssignment detects `symbol =` where '=' is not part of `==`.
func matchesAssignment(line, symbol string) bool {
	idx := 0
	for {
		pos := strings.Index(line[idx:], symbol)
		if pos == -1 {
			return false
		}
		pos += idx
		rest := strings.TrimLeft(line[pos+len(symbol):], " \t")
		if strings.HasPrefix(rest, "=") && !strings.HasPrefix(rest, "==") {
			return true
		}
		idx = pos + 1
	}
}

// wordBoundaryMatch reports whether symbol occurs in line flanked by
// non-identifier characters (or line edges) on both sides.
func wordBoundaryMatch(line, symbol string) bool {
	idx := 0
	for {
		pos := strings.Index(line[idx:], symbol)
		if pos == -1 {
			return false
		}
		pos += idx
		before := byte(0)
		if pos > 0 {
			before = line[pos-1]
		}
		afterIdx := pos + len(symbol)
		after := byte(0)
		if afterIdx < len(line) {
			after = line[afterIdx]
		}
		if !isIdentByte(before) && !isIdentByte(after) {
			return true
		}
		idx = pos + 1
	}
}

func isIdentByte(b byte) bool {
	return b == '_' ||
		(b >= 'a' && b <= 'z') ||
		(b >= 'A' && b <= 'Z') ||
		(b >= '0' && b <= '9')
}
