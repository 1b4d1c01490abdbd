package walker

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, opts Options) ([]string, []Result) {
	t.Helper()
	ch, err := Walk(context.Background(), opts)
	require.NoError(t, err)

	var paths []string
	var errs []Result
	for r := range ch {
		if r.Err != nil {
			errs = append(errs, r)
			continue
		}
		paths = append(paths, r.Path)
	}
	return paths, errs
}

func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, make([]byte, size), 0o644))
}

func TestWalk_IncludeExcludeAndSizeCap(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.go"), 10)
	writeFile(t, filepath.Join(root, "b.txt"), 10)
	writeFile(t, filepath.Join(root, "big.go"), 100)
	writeFile(t, filepath.Join(root, "vendor", "c.go"), 10)

	paths, errs := collect(t, Options{
		Root:         root,
		Include:      []string{"**/*.go"},
		Exclude:      []string{"vendor/**"},
		MaxFileBytes: 50,
	})
	require.Empty(t, errs)

	var base []string
	for _, p := range paths {
		base = append(base, filepath.Base(p))
	}
	sort.Strings(base)
	require.Equal(t, []string{"a.go"}, base)
}

func TestWalk_DeterministicOrder(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b.go"), 1)
	writeFile(t, filepath.Join(root, "a.go"), 1)
	writeFile(t, filepath.Join(root, "sub", "z.go"), 1)
	writeFile(t, filepath.Join(root, "sub", "y.go"), 1)

	first, _ := collect(t, Options{Root: root})
	second, _ := collect(t, Options{Root: root})
	require.Equal(t, first, second)
}

func TestWalk_EmptyIncludeMeansEverything(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.md"), 1)
	writeFile(t, filepath.Join(root, "b.go"), 1)

	paths, _ := collect(t, Options{Root: root})
	require.Len(t, paths, 2)
}

func TestWalk_SymlinkCycleDoesNotHang(t *testing.T) {
	root := t.TempDir()
	sub := filepath.Join(root, "sub")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	writeFile(t, filepath.Join(sub, "f.go"), 1)

	// Create a symlink inside sub pointing back at root, forming a cycle.
	cyclePath := filepath.Join(sub, "loop")
	if err := os.Symlink(root, cyclePath); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	done := make(chan struct{})
	go func() {
		_, _ = collect(t, Options{Root: root})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("walk did not terminate, likely an unbounded symlink cycle")
	}
}
