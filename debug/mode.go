// Package debug maps command-line verbosity onto structured logging.
package debug

import (
	"io"
	"log/slog"
)

// Level is the operator-facing verbosity, selected by repeating -d.
type Level int

const (
	// LevelQuiet logs warnings and errors only.
	LevelQuiet Level = iota
	// LevelVerbose adds per-file progress diagnostics.
	LevelVerbose
	// LevelTrace adds resolution details like module and include lookups.
	LevelTrace
)

func (l Level) String() string {
	switch l {
	case LevelQuiet:
		return "QUIET"
	case LevelVerbose:
		return "VERBOSE"
	case LevelTrace:
		return "TRACE"
	default:
		return "UNKNOWN"
	}
}

// FromCount converts a repeated-flag count into a Level.
func FromCount(n int) Level {
	switch {
	case n <= 0:
		return LevelQuiet
	case n == 1:
		return LevelVerbose
	default:
		return LevelTrace
	}
}

func (l Level) slogLevel() slog.Level {
	switch l {
	case LevelQuiet:
		return slog.LevelWarn
	case LevelVerbose:
		return slog.LevelDebug
	default:
		return slog.Level(-8)
	}
}

// NewLogger creates the diagnostic logger for one invocation, writing
// text-format records to w at the given verbosity.
func NewLogger(w io.Writer, level Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level.slogLevel(),
	}))
}
