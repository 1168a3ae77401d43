// Package logging configures the slog logger used by the build and watch
// machinery. User-facing command output goes straight to stdout; this logger
// carries diagnostics (unresolved imports, discarded caches, build progress).
package logging

import (
	"io"
	"log/slog"
	"os"
)

// New creates a text logger writing to stderr. Verbose mode lowers the level
// to debug so per-file build progress is visible.
func New(verbose bool) *slog.Logger {
	return NewWithOutput(os.Stderr, verbose)
}

// NewWithOutput creates a logger writing to w.
func NewWithOutput(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	})

	return slog.New(handler)
}
