package flags

import (
	"fmt"

	"github.com/urfave/cli/v2"
)

const EnvVarPrefix = "TESTPILOT"

// prefixEnvVars derives the environment variable names for a flag.
func prefixEnvVars(name string) []string {
	return []string{EnvVarPrefix + "_" + name}
}

var (
	TestDir = &cli.StringFlag{
		Name:    "testdir",
		Value:   "",
		EnvVars: prefixEnvVars("TESTDIR"),
		Usage:   "Path to the test directory from which to discover tests",
	}
	IncludeTag = &cli.StringSliceFlag{
		Name:    "include-tag",
		EnvVars: prefixEnvVars("INCLUDE_TAG"),
		Usage:   "Tag to include in the run (repeatable)",
	}
	ExcludeTag = &cli.StringSliceFlag{
		Name:    "exclude-tag",
		EnvVars: prefixEnvVars("EXCLUDE_TAG"),
		Usage:   "Tag to exclude from the run (repeatable)",
	}
	OutputHTMLFile = &cli.StringFlag{
		Name:    "output-html-file",
		EnvVars: prefixEnvVars("OUTPUT_HTML_FILE"),
		Usage:   "Explicit path for the HTML report (must end in .html)",
	}
	OutputMarkdownFile = &cli.StringFlag{
		Name:    "output-markdown-file",
		EnvVars: prefixEnvVars("OUTPUT_MARKDOWN_FILE"),
		Usage:   "Explicit path for the Markdown report (must end in .md)",
	}
	OutputJSONFile = &cli.StringFlag{
		Name:    "output-json-file",
		EnvVars: prefixEnvVars("OUTPUT_JSON_FILE"),
		Usage:   "Explicit path for the JSON report (must end in .json)",
	}
	OutputCSVFile = &cli.StringFlag{
		Name:    "output-csv-file",
		EnvVars: prefixEnvVars("OUTPUT_CSV_FILE"),
		Usage:   "Explicit path for the CSV export",
	}
	OutputExcelFile = &cli.StringFlag{
		Name:    "output-excel-file",
		EnvVars: prefixEnvVars("OUTPUT_EXCEL_FILE"),
		Usage:   "Explicit path for the Excel export",
	}
	OutputFolder = &cli.StringFlag{
		Name:    "output-folder",
		EnvVars: prefixEnvVars("OUTPUT_FOLDER"),
		Usage:   "Folder to write all reports into (supersedes explicit file paths)",
	}
	OutputFilename = &cli.StringFlag{
		Name:    "output-filename",
		EnvVars: prefixEnvVars("OUTPUT_FILENAME"),
		Usage:   "Base filename for reports written into the output folder",
	}
	ExportCSV = &cli.BoolFlag{
		Name:    "export-csv",
		EnvVars: prefixEnvVars("EXPORT_CSV"),
		Usage:   "Also write a CSV export into the output folder",
	}
	ExportExcel = &cli.BoolFlag{
		Name:    "export-excel",
		EnvVars: prefixEnvVars("EXPORT_EXCEL"),
		Usage:   "Also write an Excel export into the output folder",
	}
	Verbosity = &cli.StringFlag{
		Name:    "verbosity",
		Value:   "normal",
		EnvVars: prefixEnvVars("VERBOSITY"),
		Usage:   "Verbosity level: none, normal, detailed or diagnostic",
	}
	NonInteractive = &cli.BoolFlag{
		Name:    "non-interactive",
		EnvVars: prefixEnvVars("NON_INTERACTIVE"),
		Usage:   "Never open reports or prompt, even on an interactive console",
	}
	PassThru = &cli.BoolFlag{
		Name:    "pass-thru",
		EnvVars: prefixEnvVars("PASS_THRU"),
		Usage:   "Emit the full result model on stdout when the run completes",
	}
	EngineConfig = &cli.StringFlag{
		Name:    "engine-config",
		EnvVars: prefixEnvVars("ENGINE_CONFIG"),
		Usage:   "Path to a pre-built engine configuration file (YAML)",
	}
	MailTo = &cli.StringSliceFlag{
		Name:    "mail-to",
		EnvVars: prefixEnvVars("MAIL_TO"),
		Usage:   "Mail recipient for the run summary (repeatable)",
	}
	MailFrom = &cli.StringFlag{
		Name:    "mail-from",
		EnvVars: prefixEnvVars("MAIL_FROM"),
		Usage:   "Sender identity for summary mail",
	}
	MailLink = &cli.StringFlag{
		Name:    "mail-link",
		EnvVars: prefixEnvVars("MAIL_LINK"),
		Usage:   "Link to the published results included in notifications",
	}
	SMTPHost = &cli.StringFlag{
		Name:    "smtp-host",
		EnvVars: prefixEnvVars("SMTP_HOST"),
		Usage:   "SMTP host for summary mail",
	}
	SMTPPort = &cli.IntFlag{
		Name:    "smtp-port",
		Value:   587,
		EnvVars: prefixEnvVars("SMTP_PORT"),
		Usage:   "SMTP port for summary mail",
	}
	SMTPUsername = &cli.StringFlag{
		Name:    "smtp-username",
		EnvVars: prefixEnvVars("SMTP_USERNAME"),
		Usage:   "SMTP username for summary mail",
	}
	SMTPPassword = &cli.StringFlag{
		Name:    "smtp-password",
		EnvVars: prefixEnvVars("SMTP_PASSWORD"),
		Usage:   "SMTP password for summary mail",
	}
	TeamsTeamID = &cli.StringFlag{
		Name:    "teams-team-id",
		EnvVars: prefixEnvVars("TEAMS_TEAM_ID"),
		Usage:   "Teams team identifier for channel notifications",
	}
	TeamsChannelID = &cli.StringFlag{
		Name:    "teams-channel-id",
		EnvVars: prefixEnvVars("TEAMS_CHANNEL_ID"),
		Usage:   "Teams channel identifier for channel notifications",
	}
	TeamsToken = &cli.StringFlag{
		Name:    "teams-token",
		EnvVars: prefixEnvVars("TEAMS_TOKEN"),
		Usage:   "Bearer token used for Teams channel notifications",
	}
	TeamsWebhook = &cli.StringFlag{
		Name:    "teams-webhook",
		EnvVars: prefixEnvVars("TEAMS_WEBHOOK"),
		Usage:   "Teams incoming webhook URI for notifications",
	}
	SessionEndpoint = &cli.StringFlag{
		Name:    "session-endpoint",
		EnvVars: prefixEnvVars("SESSION_ENDPOINT"),
		Usage:   "Endpoint of the remote session required by the tests",
	}
	SkipConnectivityCheck = &cli.BoolFlag{
		Name:    "skip-connectivity-check",
		EnvVars: prefixEnvVars("SKIP_CONNECTIVITY_CHECK"),
		Usage:   "Skip the preflight connectivity check",
	}
	SkipVersionCheck = &cli.BoolFlag{
		Name:    "skip-version-check",
		EnvVars: prefixEnvVars("SKIP_VERSION_CHECK"),
		Usage:   "Skip the release version check",
	}
)

var requiredFlags = []cli.Flag{}

var optionalFlags = []cli.Flag{
	TestDir,
	IncludeTag,
	ExcludeTag,
	OutputHTMLFile,
	OutputMarkdownFile,
	OutputJSONFile,
	OutputCSVFile,
	OutputExcelFile,
	OutputFolder,
	OutputFilename,
	ExportCSV,
	ExportExcel,
	Verbosity,
	NonInteractive,
	PassThru,
	EngineConfig,
	MailTo,
	MailFrom,
	MailLink,
	SMTPHost,
	SMTPPort,
	SMTPUsername,
	SMTPPassword,
	TeamsTeamID,
	TeamsChannelID,
	TeamsToken,
	TeamsWebhook,
	SessionEndpoint,
	SkipConnectivityCheck,
	SkipVersionCheck,
}

var Flags []cli.Flag

func init() {
	Flags = append(requiredFlags, optionalFlags...)
}

func CheckRequired(ctx *cli.Context) error {
	for _, f := range requiredFlags {
		if !ctx.IsSet(f.Names()[0]) {
			return fmt.Errorf("flag %s is required", f.Names()[0])
		}
	}
	return nil
}
