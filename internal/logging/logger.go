// Package logging configures the CLI's slog output.
package logging

import (
	"io"
	"log/slog"
)

// New builds a text logger writing to w. Verbose lowers the threshold to
// Debug so decode diagnostics from the event stream become visible.
func New(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(h)
}
