package cliutil

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Given: a Writer over a buffer
// When: each status method is called
// Then: the message appears in the output
func TestWriter_AllMethodsWriteMessage(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf)

	w.Status("plain")
	w.Success("ok")
	w.Warning("careful")
	w.Error("boom")
	w.Newline()

	out := buf.String()
	assert.Contains(t, out, "plain")
	assert.Contains(t, out, "ok")
	assert.Contains(t, out, "careful")
	assert.Contains(t, out, "boom")
}

// Given: a Writer
// When: Statusf/Successf/Warningf/Errorf are called
// Then: the formatted message appears in the output
func TestWriter_FormattedVariants(t *testing.T) {
	var buf bytes.Buffer
	w := New(&buf)

	w.Statusf("count: %d", 3)
	w.Successf("done: %s", "x")
	w.Warningf("low: %d%%", 10)
	w.Errorf("failed: %s", "y")

	out := buf.String()
	assert.Contains(t, out, "count: 3")
	assert.Contains(t, out, "done: x")
	assert.Contains(t, out, "low: 10%")
	assert.Contains(t, out, "failed: y")
}
