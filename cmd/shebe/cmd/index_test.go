package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Given: a small repository on disk
// When: index is run against it with a session id
// Then: it reports files indexed and chunks created
func TestIndexCmd_IndexesRepository(t *testing.T) {
	indexDir := t.TempDir()
	setTestConfig(t, indexDir)

	repoRoot := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(repoRoot, "main.go"), []byte(
		"package main\n\nfunc main() {}\n"), 0o644))

	cmd := newIndexCmd()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetArgs([]string{repoRoot, "--session", "widget"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "indexed")
}

// Given: index invoked without --session
// When: cobra parses flags
// Then: it fails since --session is required
func TestIndexCmd_RequiresSession(t *testing.T) {
	cmd := newIndexCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"."})

	err := cmd.Execute()
	require.Error(t, err)
}
