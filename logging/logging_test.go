package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/testpilot-dev/testpilot/types"
)

func TestLevelMapping(t *testing.T) {
	assert.Equal(t, slog.LevelError, Level(types.VerbosityNone))
	assert.Equal(t, slog.LevelInfo, Level(types.VerbosityNormal))
	assert.Equal(t, slog.LevelDebug, Level(types.VerbosityDetailed))
	assert.Equal(t, slog.LevelDebug, Level(types.VerbosityDiagnostic))
}

func TestNewWithWriter_SuppressesBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, types.VerbosityNone)

	log.Info("hidden")
	assert.Empty(t, buf.String())

	log.Error("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestNewWithWriter_DiagnosticAddsSource(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, types.VerbosityDiagnostic)

	log.Debug("trace me")
	assert.Contains(t, buf.String(), "source=")
}
