package walker

// DefaultMaxFileBytes is used when Options.MaxFileBytes is left at zero.
const DefaultMaxFileBytes int64 = 10 * 1024 * 1024

// Options configures a single walk.
type Options struct {
	// Root is the directory to walk. Must be an existing directory.
	Root string
	// Include is a set of glob patterns; a file must match at least one
	// to be considered. An empty slice means every file is considered.
	Include []string
	// Exclude is a set of glob patterns; a file matching any of them is
	// rejected regardless of Include.
	Exclude []string
	// MaxFileBytes rejects files whose size exceeds this cap. Zero means
	// DefaultMaxFileBytes.
	MaxFileBytes int64
}

// Result is one item yielded by Walk: either a discovered file path or a
// diagnostic about a file that could not be read.
type Result struct {
	// Path is the absolute path of a file that passed every filter.
	Path string
	// Err is non-nil when a file could not be opened/stat'd; such files
	// are reported here rather than failing the whole walk.
	Err error
	// ErrPath is the path associated with Err, when Err is set.
	ErrPath string
}
