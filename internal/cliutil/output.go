// Package cliutil provides consistent CLI output formatting for the
// shebe command, the way AmanMCP's internal/output package does for
// amanmcp: a thin Writer wrapping an io.Writer with status/success/
// warning/error helpers.
package cliutil

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Writer formats status lines for CLI commands.
type Writer struct {
	out io.Writer
}

// New creates a Writer over out.
func New(out io.Writer) *Writer {
	return &Writer{out: out}
}

// Status prints a plain status line.
func (w *Writer) Status(msg string) {
	_, _ = fmt.Fprintln(w.out, msg)
}

// Statusf prints a formatted status line.
func (w *Writer) Statusf(format string, args ...any) {
	w.Status(fmt.Sprintf(format, args...))
}

// Success prints a green-prefixed success line.
func (w *Writer) Success(msg string) {
	_, _ = fmt.Fprintln(w.out, color.GreenString("✓")+" "+msg)
}

// Successf prints a formatted success line.
func (w *Writer) Successf(format string, args ...any) {
	w.Success(fmt.Sprintf(format, args...))
}

// Warning prints a yellow-prefixed warning line.
func (w *Writer) Warning(msg string) {
	_, _ = fmt.Fprintln(w.out, color.YellowString("!")+" "+msg)
}

// Warningf prints a formatted warning line.
func (w *Writer) Warningf(format string, args ...any) {
	w.Warning(fmt.Sprintf(format, args...))
}

// Error prints a red-prefixed error line.
func (w *Writer) Error(msg string) {
	_, _ = fmt.Fprintln(w.out, color.RedString("✗")+" "+msg)
}

// Errorf prints a formatted error line.
func (w *Writer) Errorf(format string, args ...any) {
	w.Error(fmt.Sprintf(format, args...))
}

// Newline prints a blank line.
func (w *Writer) Newline() {
	_, _ = fmt.Fprintln(w.out)
}
