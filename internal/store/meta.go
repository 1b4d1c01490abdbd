package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"regexp"

	shebeerrors "github.com/shebe-oss/shebe/internal/errors"
)

const metaFileName = "meta.json"
const indexDirName = "index"

// sessionIDPattern matches the meta.json session_id field constraint.
var sessionIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)

// ValidateSessionID checks a session identifier against the allowed
// character set and length.
func ValidateSessionID(id string) error {
	if !sessionIDPattern.MatchString(id) {
		return shebeerrors.Newf(shebeerrors.InvalidArgument,
			"session_id must match ^[A-Za-z0-9_-]{1,64}$, got %q", id)
	}
	return nil
}

// sessionDir returns the on-disk directory for a session.
func sessionDir(indexRoot, sessionID string) string {
	return filepath.Join(indexRoot, sessionID)
}

func metaPath(indexRoot, sessionID string) string {
	return filepath.Join(sessionDir(indexRoot, sessionID), metaFileName)
}

func indexPath(indexRoot, sessionID string) string {
	return filepath.Join(sessionDir(indexRoot, sessionID), indexDirName)
}

// Exists reports whether a session directory exists, without opening or
// validating its index.
func Exists(indexRoot, sessionID string) bool {
	_, err := os.Stat(sessionDir(indexRoot, sessionID))
	return err == nil
}

// readMeta parses meta.json for a session.
func readMeta(indexRoot, sessionID string) (Meta, error) {
	data, err := os.ReadFile(metaPath(indexRoot, sessionID))
	if err != nil {
		if os.IsNotExist(err) {
			return Meta{}, shebeerrors.Newf(shebeerrors.NotFound, "session %q not found", sessionID)
		}
		return Meta{}, shebeerrors.Wrap(shebeerrors.Internal, err)
	}
	var m Meta
	if err := json.Unmarshal(data, &m); err != nil {
		return Meta{}, shebeerrors.Wrapf(shebeerrors.Internal, err, "meta.json for session %q is corrupt", sessionID)
	}
	return m, nil
}

// writeMeta rewrites meta.json atomically: write to a temp file in the
// same directory, then rename over the destination.
func writeMeta(indexRoot, sessionID string, m Meta) error {
	dir := sessionDir(indexRoot, sessionID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return shebeerrors.Wrap(shebeerrors.Internal, err)
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return shebeerrors.Wrap(shebeerrors.Internal, err)
	}

	dest := metaPath(indexRoot, sessionID)
	tmp := dest + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return shebeerrors.Wrap(shebeerrors.Internal, err)
	}
	if err := os.Rename(tmp, dest); err != nil {
		_ = os.Remove(tmp)
		return shebeerrors.Wrap(shebeerrors.Internal, err)
	}
	return nil
}
