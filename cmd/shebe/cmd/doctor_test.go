package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Given: a freshly indexed, healthy session
// When: doctor is run against it
// Then: it reports the session as healthy
func TestDoctorCmd_ReportsHealthySession(t *testing.T) {
	indexDir := t.TempDir()
	setTestConfig(t, indexDir)
	seedSession(t, indexDir, "widget")

	cmd := newDoctorCmd()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"widget"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "healthy")
}

// Given: a session ID that was never indexed
// When: doctor is run against it
// Then: it reports the session as unhealthy rather than erroring out
func TestDoctorCmd_UnknownSessionReportsUnhealthy(t *testing.T) {
	setTestConfig(t, t.TempDir())

	cmd := newDoctorCmd()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"does-not-exist"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "problem:")
	assert.Contains(t, buf.String(), "run with --repair")
}
