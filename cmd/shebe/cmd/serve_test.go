package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Given: the serve command
// When: inspecting its flags
// Then: --transport defaults to stdio
func TestServeCmd_DefaultsToStdioTransport(t *testing.T) {
	cmd := newServeCmd()
	flag := cmd.Flags().Lookup("transport")
	require.NotNil(t, flag)
	assert.Equal(t, "stdio", flag.DefValue)
}

// Given: serve invoked with an unsupported transport
// When: executed
// Then: it fails before attempting to read from stdin
func TestServeCmd_RejectsUnknownTransport(t *testing.T) {
	setTestConfig(t, t.TempDir())

	cmd := newServeCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--transport", "carrier-pigeon"})

	err := cmd.Execute()
	require.Error(t, err)
}
