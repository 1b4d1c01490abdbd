// Package walker implements the file walker (C2): deterministic,
// glob-filtered, size-capped enumeration of files under a root directory.
package walker

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	lru "github.com/hashicorp/golang-lru/v2"

	shebeerrors "github.com/shebe-oss/shebe/internal/errors"
)

// matcherCacheSize bounds the number of (pattern, relative path) glob
// match results we memoize per walk, mirroring the teacher's bounded LRU
// gitignore-matcher cache rather than growing an unbounded map.
const matcherCacheSize = 4096

// Walk enumerates files under opts.Root subject to include/exclude globs
// and the size cap, streaming results on the returned channel in a
// deterministic, directory-name-sorted order. The channel is closed when
// the walk completes or ctx is cancelled.
func Walk(ctx context.Context, opts Options) (<-chan Result, error) {
	root := opts.Root
	if root == "" {
		return nil, shebeerrors.New(shebeerrors.InvalidArgument, "walk root must not be empty")
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, shebeerrors.Wrap(shebeerrors.InvalidArgument, err)
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, shebeerrors.Wrap(shebeerrors.InvalidArgument, err)
	}
	if !info.IsDir() {
		return nil, shebeerrors.Newf(shebeerrors.InvalidArgument, "walk root is not a directory: %s", absRoot)
	}

	maxBytes := opts.MaxFileBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxFileBytes
	}

	matchCache, _ := lru.New[string, bool](matcherCacheSize)

	out := make(chan Result, 64)
	w := &walker{
		absRoot:    absRoot,
		include:    opts.Include,
		exclude:    opts.Exclude,
		maxBytes:   maxBytes,
		visitedDir: map[string]bool{},
		matchCache: matchCache,
		out:        out,
	}

	go func() {
		defer close(out)
		w.walkDir(ctx, absRoot)
	}()

	return out, nil
}

type walker struct {
	absRoot    string
	include    []string
	exclude    []string
	maxBytes   int64
	visitedDir map[string]bool // realpaths of directories on the current descent path
	matchCache *lru.Cache[string, bool]
	out        chan<- Result
}

// walkDir recursively visits dir (an absolute path), yielding files in
// name-sorted order and recursing into subdirectories in name-sorted
// order, skipping any directory whose resolved target is already an
// ancestor (symlink cycle).
func (w *walker) walkDir(ctx context.Context, dir string) {
	select {
	case <-ctx.Done():
		return
	default:
	}

	real, err := filepath.EvalSymlinks(dir)
	if err != nil {
		real = dir
	}
	if w.visitedDir[real] {
		return
	}
	w.visitedDir[real] = true
	defer delete(w.visitedDir, real)

	entries, err := os.ReadDir(dir)
	if err != nil {
		w.emit(ctx, Result{Err: err, ErrPath: dir})
		return
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	for _, entry := range entries {
		select {
		case <-ctx.Done():
			return
		default:
		}

		full := filepath.Join(dir, entry.Name())

		if entry.Type()&os.ModeSymlink != 0 {
			target, err := os.Stat(full) // follows the symlink
			if err != nil {
				w.emit(ctx, Result{Err: err, ErrPath: full})
				continue
			}
			if target.IsDir() {
				w.walkDir(ctx, full)
				continue
			}
			w.visitFile(ctx, full, target)
			continue
		}

		if entry.IsDir() {
			w.walkDir(ctx, full)
			continue
		}

		info, err := entry.Info()
		if err != nil {
			w.emit(ctx, Result{Err: err, ErrPath: full})
			continue
		}
		w.visitFile(ctx, full, info)
	}
}

func (w *walker) visitFile(ctx context.Context, path string, info os.FileInfo) {
	rel, err := filepath.Rel(w.absRoot, path)
	if err != nil {
		rel = path
	}

	if len(w.include) > 0 && !w.matchesAny(w.include, rel) {
		return
	}
	if w.matchesAny(w.exclude, rel) {
		return
	}
	if info.Size() > w.maxBytes {
		return
	}

	w.emit(ctx, Result{Path: path})
}

func (w *walker) matchesAny(patterns []string, rel string) bool {
	for _, p := range patterns {
		key := p + "\x00" + rel
		if cached, ok := w.matchCache.Get(key); ok {
			if cached {
				return true
			}
			continue
		}
		matched, err := doublestar.Match(p, rel)
		ok2 := err == nil && matched
		w.matchCache.Add(key, ok2)
		if ok2 {
			return true
		}
	}
	return false
}

func (w *walker) emit(ctx context.Context, r Result) {
	select {
	case w.out <- r:
	case <-ctx.Done():
	}
}
