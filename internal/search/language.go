package search

import (
	"path/filepath"
	"strings"
)

// languageByExtension maps a file extension (including the leading dot) to
// a language tag used only for result formatting.
var languageByExtension = map[string]string{
	".rs":    "rust",
	".go":    "go",
	".py":    "python",
	".java":  "java",
	".js":    "javascript",
	".jsx":   "javascript",
	".ts":    "typescript",
	".tsx":   "typescript",
	".c":     "c",
	".h":     "cpp",
	".hpp":   "cpp",
	".cpp":   "cpp",
	".cc":    "cpp",
	".cs":    "csharp",
	".rb":    "ruby",
	".php":   "php",
	".kt":    "kotlin",
	".kts":   "kotlin",
	".swift": "swift",
	".sh":    "bash",
	".bash":  "bash",
	".sql":   "sql",
	".json":  "json",
	".yaml":  "yaml",
	".yml":   "yaml",
	".xml":   "xml",
	".html":  "html",
	".htm":   "html",
	".css":   "css",
	".md":    "markdown",
	".toml":  "toml",
	".ini":   "ini",
}

// LanguageTag derives the formatting-only language tag for a file path,
// defaulting to "plaintext" for unrecognized or missing extensions.
func LanguageTag(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if tag, ok := languageByExtension[ext]; ok {
		return tag
	}
	return "plaintext"
}
