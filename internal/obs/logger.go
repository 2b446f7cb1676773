// Package obs is the ambient logging helper: structured logging via
// log/slog, switching between human-readable text and JSON lines depending
// on whether stdout is a terminal, plus a duration-formatting helper used
// by the room lifecycle logs.
package obs

import (
	"log/slog"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
)

// Logger wraps *slog.Logger; it exists mainly so callers depend on this
// package's API rather than slog's directly, keeping the handler-selection
// policy in one place.
type Logger struct {
	*slog.Logger
}

// New builds a Logger writing to stdout: key=value text if stdout is a
// terminal, JSON lines otherwise — the same branch the pack uses
// isatty.IsTerminal for when deciding output formatting.
func New() *Logger {
	var handler slog.Handler
	if isatty.IsTerminal(os.Stdout.Fd()) {
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	} else {
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug})
	}
	return &Logger{Logger: slog.New(handler)}
}

// HumanDuration renders d the way room-lifecycle logs describe idle time
// to a human reader (e.g. "3 minutes").
func HumanDuration(d time.Duration) string {
	return humanize.RelTime(time.Now(), time.Now().Add(d), "", "")
}
