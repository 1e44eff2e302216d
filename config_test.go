package testpilot

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/testpilot-dev/testpilot/flags"
	"github.com/testpilot-dev/testpilot/types"
)

// parseConfig runs the CLI surface against args and captures the resulting
// configuration.
func parseConfig(t *testing.T, args ...string) (*Config, error) {
	t.Helper()

	var cfg *Config
	var cfgErr error
	app := cli.NewApp()
	app.Name = "testpilot"
	app.Flags = flags.Flags
	app.Action = func(ctx *cli.Context) error {
		cfg, cfgErr = NewConfig(ctx, slog.New(slog.NewTextHandler(io.Discard, nil)), types.VerbosityNormal)
		return nil
	}
	require.NoError(t, app.Run(append([]string{"testpilot"}, args...)))
	return cfg, cfgErr
}

func TestNewConfig_Defaults(t *testing.T) {
	cfg, err := parseConfig(t)
	require.NoError(t, err)

	assert.Empty(t, cfg.TestDir)
	assert.Empty(t, cfg.IncludeTags)
	assert.Empty(t, cfg.Output.Folder)
	assert.False(t, cfg.Output.ExportCSV)
	assert.False(t, cfg.PassThru)
	assert.Equal(t, types.VerbosityNormal, cfg.Verbosity)
}

func TestNewConfig_MapsFlags(t *testing.T) {
	cfg, err := parseConfig(t,
		"--testdir", "./mytests",
		"--include-tag", "Full",
		"--exclude-tag", "Slow",
		"--output-folder", "out",
		"--output-filename", "nightly",
		"--pass-thru",
		"--non-interactive",
		"--skip-version-check",
	)
	require.NoError(t, err)

	assert.Equal(t, "./mytests", cfg.TestDir)
	assert.Equal(t, []string{"Full"}, cfg.IncludeTags)
	assert.Equal(t, []string{"Slow"}, cfg.ExcludeTags)
	assert.Equal(t, "out", cfg.Output.Folder)
	assert.Equal(t, "nightly", cfg.Output.BaseName)
	assert.True(t, cfg.PassThru)
	assert.True(t, cfg.NonInteractive)
	assert.True(t, cfg.SkipVersionCheck)
}

func TestNewConfig_ExplicitCSVImpliesExport(t *testing.T) {
	cfg, err := parseConfig(t, "--output-csv-file", "results.csv")
	require.NoError(t, err)

	assert.True(t, cfg.Output.ExportCSV)
	assert.Equal(t, "results.csv", cfg.Output.CSVFile)
}

func TestNewConfig_MailRequiresSMTPHost(t *testing.T) {
	_, err := parseConfig(t, "--mail-to", "team@example.com")
	require.Error(t, err)
	assert.True(t, types.IsValidationError(err))
	assert.Contains(t, err.Error(), flags.SMTPHost.Name)
}

func TestNewConfig_TeamsIdentifiersMustPair(t *testing.T) {
	_, err := parseConfig(t, "--teams-team-id", "t1")
	require.Error(t, err)
	assert.True(t, types.IsValidationError(err))
}

func TestNewConfig_RequiresLogger(t *testing.T) {
	app := cli.NewApp()
	app.Flags = flags.Flags
	app.Action = func(ctx *cli.Context) error {
		_, err := NewConfig(ctx, nil, types.VerbosityNormal)
		assert.Error(t, err)
		return nil
	}
	require.NoError(t, app.Run([]string{"testpilot"}))
}
