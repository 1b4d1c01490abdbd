package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Given: an indexed session defining ParseConfig
// When: refs is run for that symbol
// Then: it reports at least one reference in main.go
func TestRefsCmd_FindsDefinition(t *testing.T) {
	indexDir := t.TempDir()
	setTestConfig(t, indexDir)
	seedSession(t, indexDir, "widget")

	cmd := newRefsCmd()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--session", "widget", "ParseConfig"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "main.go")
}

// Given: a symbol that appears nowhere in the session
// When: refs is run for it
// Then: it reports no references rather than erroring
func TestRefsCmd_NoMatchesReported(t *testing.T) {
	indexDir := t.TempDir()
	setTestConfig(t, indexDir)
	seedSession(t, indexDir, "widget")

	cmd := newRefsCmd()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--session", "widget", "DoesNotExistAnywhere"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "no references found")
}
