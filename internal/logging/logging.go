// Package logging configures the structured logger used across lastgood.
//
// Output goes to a single writer (stderr in the binary) as slog text
// lines, following Unix CLI conventions: stdout stays reserved for the
// scan result itself.
package logging

import (
	"io"
	"log/slog"
)

// New returns a logger writing text records to w. Verbose enables
// debug-level records (per-revision skip/check decisions and verifier
// diagnostics); otherwise the level is info.
func New(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
