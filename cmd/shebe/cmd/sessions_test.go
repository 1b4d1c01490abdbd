package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Given: an index directory with no sessions
// When: sessions is run
// Then: it reports no sessions found rather than erroring
func TestRunSessionsList_EmptySessions(t *testing.T) {
	setTestConfig(t, t.TempDir())

	cmd := newSessionsCmd()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "no sessions found")
}

// Given: a session indexed under the test config
// When: sessions is run with no subcommand
// Then: the session appears in the table
func TestRunSessionsList_ShowsIndexedSession(t *testing.T) {
	indexDir := t.TempDir()
	setTestConfig(t, indexDir)
	seedSession(t, indexDir, "widget")

	cmd := newSessionsCmd()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "widget")
}

// Given: an indexed session
// When: sessions info is run against it
// Then: it prints the session's detail fields
func TestSessionsInfoCmd_PrintsDetail(t *testing.T) {
	indexDir := t.TempDir()
	setTestConfig(t, indexDir)
	seedSession(t, indexDir, "widget")

	cmd := newSessionsInfoCmd()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"widget"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "widget")
	assert.Contains(t, buf.String(), "files indexed")
}

// Given: sessions delete without --confirm
// When: executed
// Then: it fails rather than silently skipping the delete
func TestSessionsDeleteCmd_RequiresConfirm(t *testing.T) {
	indexDir := t.TempDir()
	setTestConfig(t, indexDir)
	seedSession(t, indexDir, "widget")

	cmd := newSessionsDeleteCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"widget"})

	err := cmd.Execute()
	require.Error(t, err)
}

// Given: sessions delete with --confirm
// When: executed
// Then: the session is removed
func TestSessionsDeleteCmd_DeletesWithConfirm(t *testing.T) {
	indexDir := t.TempDir()
	setTestConfig(t, indexDir)
	seedSession(t, indexDir, "widget")

	cmd := newSessionsDeleteCmd()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"widget", "--confirm"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "deleted session")
}
