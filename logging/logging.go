// Package logging builds the application logger from the run verbosity.
package logging

import (
	"io"
	"log/slog"
	"os"

	"github.com/testpilot-dev/testpilot/types"
)

// New creates a logger writing to stderr at the level implied by the
// verbosity. Diagnostic additionally reports source locations.
func New(verbosity types.Verbosity) *slog.Logger {
	return NewWithWriter(os.Stderr, verbosity)
}

// NewWithWriter is New with an explicit output writer.
func NewWithWriter(w io.Writer, verbosity types.Verbosity) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     Level(verbosity),
		AddSource: verbosity == types.VerbosityDiagnostic,
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Level maps a verbosity onto the slog level it implies.
func Level(verbosity types.Verbosity) slog.Level {
	switch verbosity {
	case types.VerbosityNone:
		return slog.LevelError
	case types.VerbosityNormal:
		return slog.LevelInfo
	case types.VerbosityDetailed, types.VerbosityDiagnostic:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}
