// Package cliutil provides console output helpers for the oasplit commands.
package cliutil

import (
	"fmt"
	"io"
	"os"
)

// Writef writes formatted output to the writer.
// If the write fails, it logs to stderr (useful for debugging).
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// Reporter prints progress lines unless it was created quiet.
type Reporter struct {
	w     io.Writer
	quiet bool
}

// NewReporter returns a Reporter writing to w. A quiet Reporter discards
// everything.
func NewReporter(w io.Writer, quiet bool) *Reporter {
	return &Reporter{w: w, quiet: quiet}
}

// Printf writes a formatted progress line.
func (r *Reporter) Printf(format string, args ...any) {
	if r == nil || r.quiet {
		return
	}
	Writef(r.w, format, args...)
}
