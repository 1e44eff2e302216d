// Package testpilot orchestrates a test run end to end: preflight checks,
// output plan and tag filter resolution, engine execution, result
// normalization and fan-out to the configured report sinks.
package testpilot

import (
	"errors"
	"log/slog"

	"github.com/urfave/cli/v2"

	"github.com/testpilot-dev/testpilot/flags"
	"github.com/testpilot-dev/testpilot/plan"
	"github.com/testpilot-dev/testpilot/types"
)

// Config collects every run parameter after CLI and environment parsing.
type Config struct {
	TestDir     string
	IncludeTags []string
	ExcludeTags []string

	Output           plan.Request
	EngineConfigPath string

	Verbosity      types.Verbosity
	NonInteractive bool
	PassThru       bool

	MailTo       []string
	MailFrom     string
	MailLink     string
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string

	TeamsTeamID    string
	TeamsChannelID string
	TeamsToken     string
	TeamsWebhook   string

	SessionEndpoint       string
	SkipConnectivityCheck bool
	SkipVersionCheck      bool

	Log *slog.Logger
}

// NewConfig builds a run configuration from parsed CLI flags.
func NewConfig(ctx *cli.Context, log *slog.Logger, verbosity types.Verbosity) (*Config, error) {
	if log == nil {
		return nil, errors.New("logger is required")
	}

	cfg := &Config{
		TestDir:     ctx.String(flags.TestDir.Name),
		IncludeTags: ctx.StringSlice(flags.IncludeTag.Name),
		ExcludeTags: ctx.StringSlice(flags.ExcludeTag.Name),

		Output: plan.Request{
			HTMLFile:     ctx.String(flags.OutputHTMLFile.Name),
			MarkdownFile: ctx.String(flags.OutputMarkdownFile.Name),
			JSONFile:     ctx.String(flags.OutputJSONFile.Name),
			CSVFile:      ctx.String(flags.OutputCSVFile.Name),
			ExcelFile:    ctx.String(flags.OutputExcelFile.Name),
			Folder:       ctx.String(flags.OutputFolder.Name),
			BaseName:     ctx.String(flags.OutputFilename.Name),
			ExportCSV:    ctx.Bool(flags.ExportCSV.Name) || ctx.String(flags.OutputCSVFile.Name) != "",
			ExportExcel:  ctx.Bool(flags.ExportExcel.Name) || ctx.String(flags.OutputExcelFile.Name) != "",
		},
		EngineConfigPath: ctx.String(flags.EngineConfig.Name),

		Verbosity:      verbosity,
		NonInteractive: ctx.Bool(flags.NonInteractive.Name),
		PassThru:       ctx.Bool(flags.PassThru.Name),

		MailTo:       ctx.StringSlice(flags.MailTo.Name),
		MailFrom:     ctx.String(flags.MailFrom.Name),
		MailLink:     ctx.String(flags.MailLink.Name),
		SMTPHost:     ctx.String(flags.SMTPHost.Name),
		SMTPPort:     ctx.Int(flags.SMTPPort.Name),
		SMTPUsername: ctx.String(flags.SMTPUsername.Name),
		SMTPPassword: ctx.String(flags.SMTPPassword.Name),

		TeamsTeamID:    ctx.String(flags.TeamsTeamID.Name),
		TeamsChannelID: ctx.String(flags.TeamsChannelID.Name),
		TeamsToken:     ctx.String(flags.TeamsToken.Name),
		TeamsWebhook:   ctx.String(flags.TeamsWebhook.Name),

		SessionEndpoint:       ctx.String(flags.SessionEndpoint.Name),
		SkipConnectivityCheck: ctx.Bool(flags.SkipConnectivityCheck.Name),
		SkipVersionCheck:      ctx.Bool(flags.SkipVersionCheck.Name),

		Log: log,
	}

	if len(cfg.MailTo) > 0 && cfg.SMTPHost == "" {
		return nil, types.NewValidationError(flags.SMTPHost.Name,
			"an SMTP host is required when mail recipients are set")
	}
	if cfg.TeamsTeamID != "" || cfg.TeamsChannelID != "" {
		if cfg.TeamsTeamID == "" || cfg.TeamsChannelID == "" {
			return nil, types.NewValidationError(flags.TeamsChannelID.Name,
				"team and channel identifiers must be set together")
		}
	}

	return cfg, nil
}
