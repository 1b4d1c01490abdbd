package session

import (
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	shebeerrors "github.com/shebe-oss/shebe/internal/errors"
)

// sessionLock serializes index-mutating operations (create, reindex,
// upgrade, delete) against a single session, including across separate
// shebe processes sharing the same index_root.
type sessionLock struct {
	path   string
	flock  *flock.Flock
	locked bool
}

// newSessionLock returns a lock guarding one session. Lock files live in
// a sibling .locks directory rather than inside the session directory
// itself: creating the lock file must not make store.Exists report a
// brand-new session as already present before the pipeline creates it.
func newSessionLock(indexRoot, sessionID string) *sessionLock {
	path := filepath.Join(indexRoot, ".locks", sessionID+".lock")
	return &sessionLock{path: path, flock: flock.New(path)}
}

// TryLock attempts to acquire the lock without blocking. A second shebe
// process already reindexing the same session observes acquired=false
// rather than hanging.
func (l *sessionLock) TryLock() (bool, error) {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return false, shebeerrors.Wrap(shebeerrors.Internal, err)
	}
	acquired, err := l.flock.TryLock()
	if err != nil {
		return false, shebeerrors.Wrap(shebeerrors.Internal, err)
	}
	l.locked = acquired
	return acquired, nil
}

// Unlock releases the lock. Safe to call when not held.
func (l *sessionLock) Unlock() error {
	if !l.locked {
		return nil
	}
	if err := l.flock.Unlock(); err != nil {
		return shebeerrors.Wrap(shebeerrors.Internal, err)
	}
	l.locked = false
	return nil
}
