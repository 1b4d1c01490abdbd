package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Given: a session already on the current schema
// When: upgrade is run against it
// Then: it reports nothing to do rather than reindexing
func TestUpgradeCmd_NoOpOnCurrentSchema(t *testing.T) {
	indexDir := t.TempDir()
	setTestConfig(t, indexDir)
	seedSession(t, indexDir, "widget")

	cmd := newUpgradeCmd()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"widget"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "already on the current schema")
}
