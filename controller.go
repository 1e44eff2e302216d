package testpilot

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"time"

	"github.com/testpilot-dev/testpilot/engine"
	"github.com/testpilot-dev/testpilot/filter"
	"github.com/testpilot-dev/testpilot/flags"
	"github.com/testpilot-dev/testpilot/metrics"
	"github.com/testpilot-dev/testpilot/notify"
	"github.com/testpilot-dev/testpilot/plan"
	"github.com/testpilot-dev/testpilot/report"
	"github.com/testpilot-dev/testpilot/results"
	"github.com/testpilot-dev/testpilot/session"
	"github.com/testpilot-dev/testpilot/testlist"
	"github.com/testpilot-dev/testpilot/types"
	"github.com/testpilot-dev/testpilot/version"
)

// State tracks run progress through the controller's linear lifecycle.
type State string

const (
	StateIdle              State = "idle"
	StatePreflightChecked  State = "preflight_checked"
	StateConfigResolved    State = "config_resolved"
	StateExecuted          State = "executed"
	StateResultsDispatched State = "results_dispatched"
	StateDone              State = "done"
)

// Controller owns one run at a time. All state lives on the controller,
// nothing is process-global, so independent runs never interfere.
type Controller struct {
	cfg        *Config
	appVersion string

	session session.Session
	engine  engine.Engine
	checker *version.Checker

	// interactive reports whether stdout is an interactive console.
	// Swappable for tests.
	interactive func() bool

	state  State
	result *types.ResultModel
}

// New creates a controller for the given run configuration. appVersion is
// the running release, used for the courtesy version check.
func New(cfg *Config, appVersion string) (*Controller, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	c := &Controller{
		cfg:         cfg,
		appVersion:  appVersion,
		engine:      engine.NewGoTestEngine(cfg.Log),
		checker:     version.NewChecker(),
		interactive: stdoutIsConsole,
		state:       StateIdle,
	}
	if cfg.SessionEndpoint != "" {
		c.session = session.NewHTTPSession(cfg.SessionEndpoint)
	}
	return c, nil
}

// State returns the controller's current lifecycle state.
func (c *Controller) State() State {
	return c.state
}

// Result returns the result model of the last completed run, or nil when
// no run produced results.
func (c *Controller) Result() *types.ResultModel {
	return c.result
}

// HasFailures reports whether the last run recorded failed tests.
func (c *Controller) HasFailures() bool {
	return c.result != nil && c.result.HasFailures()
}

// Run executes the full pipeline: preflight, config resolution, engine
// execution, normalization and sink dispatch. The model is returned only
// when pass-through was requested; errors before execution carry their
// validation or preflight type.
func (c *Controller) Run(ctx context.Context) (*types.ResultModel, error) {
	c.setState(StateIdle)
	c.result = nil

	pre, outputs, err := c.preflight(ctx)
	if err != nil {
		metrics.RecordErrorDetails("preflight failed", err)
		return nil, err
	}
	c.setState(StatePreflightChecked)

	effective := filter.Resolve(c.cfg.IncludeTags, c.cfg.ExcludeTags)
	runCfg := engine.Build(pre, c.cfg.TestDir, effective, c.cfg.Verbosity)
	c.cfg.Log.Debug("run configuration resolved",
		"path", runCfg.Path,
		"include", runCfg.IncludeTags,
		"exclude", runCfg.ExcludeTags)
	c.setState(StateConfigResolved)

	started := time.Now()
	raw, err := c.engine.Run(ctx, runCfg)
	if err != nil {
		metrics.RecordErrorDetails("engine execution failed", err)
		return nil, types.NewEngineError(err)
	}
	c.setState(StateExecuted)

	if raw == nil || raw.Empty() {
		c.cfg.Log.Info("engine produced no results, nothing to report")
		c.setState(StateDone)
		return nil, nil
	}

	model := results.Normalize(raw)
	c.result = model

	outcomes := c.dispatch(ctx, model, outputs)
	for _, o := range outcomes {
		if !o.OK {
			metrics.RecordSinkFailure(o.Sink)
		}
	}
	c.setState(StateResultsDispatched)

	outcome := "pass"
	if model.HasFailures() {
		outcome = "fail"
	}
	metrics.RecordRun(model.RunID, outcome, model.Total, model.Passed, model.Failed, time.Since(started))

	c.cfg.Log.Info("run complete", "run_id", model.RunID, "summary", model.Summary())
	c.setState(StateDone)

	if c.cfg.PassThru {
		return model, nil
	}
	return nil, nil
}

// preflight validates the environment and parameters before anything is
// executed. It returns the pre-supplied engine configuration (if any) and
// the resolved output plan.
func (c *Controller) preflight(ctx context.Context) (*engine.Config, *plan.OutputPlan, error) {
	if c.session != nil {
		c.session.Reset()
		if !c.cfg.SkipConnectivityCheck {
			if err := c.session.Connect(ctx); err != nil {
				return nil, nil, types.NewPreflightError("connectivity check failed: %v", err)
			}
		}
	}

	if c.cfg.TeamsWebhook != "" {
		if err := validateWebhookURI(c.cfg.TeamsWebhook); err != nil {
			return nil, nil, err
		}
	}

	outputs, err := plan.Resolve(c.cfg.Output)
	if err != nil {
		return nil, nil, err
	}

	if !c.cfg.SkipVersionCheck {
		c.checkVersion(ctx)
	}

	var pre *engine.Config
	if c.cfg.EngineConfigPath != "" {
		pre, err = engine.LoadConfig(c.cfg.EngineConfigPath)
		if err != nil {
			return nil, nil, types.NewPreflightError("%v", err)
		}
	}

	root := c.cfg.TestDir
	if root == "" && pre != nil {
		root = pre.Path
	}
	if root == "" {
		root = engine.DefaultTestRoot
	}

	info, err := os.Stat(root)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil, types.NewPreflightError("test root %s does not exist", root)
	}
	if err != nil {
		return nil, nil, types.NewPreflightError("test root %s is not accessible: %v", root, err)
	}
	if !info.IsDir() {
		return nil, nil, types.NewPreflightError("test root %s is a file, not a directory", root)
	}

	files, err := testlist.FindTestFiles(root)
	if err != nil {
		return nil, nil, types.NewPreflightError("test discovery under %s failed: %v", root, err)
	}
	if len(files) == 0 {
		return nil, nil, types.NewPreflightError("no test files found under %s", root)
	}
	c.cfg.Log.Debug("discovered test files", "root", root, "count", len(files))

	return pre, outputs, nil
}

// checkVersion warns when a newer release exists. Failures are logged and
// never block the run.
func (c *Controller) checkVersion(ctx context.Context) {
	latest, outdated, err := c.checker.Check(ctx, c.appVersion)
	if err != nil {
		c.cfg.Log.Debug("version check failed", "error", err)
		return
	}
	if outdated {
		c.cfg.Log.Warn("a newer release is available",
			"current", c.appVersion, "latest", latest)
	}
}

// dispatch builds the sink chain in its fixed order and delivers the model.
// File sinks run before notification sinks so notifications can reference
// written reports; the console summary comes last and only when nothing was
// shown during the run.
func (c *Controller) dispatch(ctx context.Context, model *types.ResultModel, outputs *plan.OutputPlan) []types.SinkOutcome {
	d := report.NewDispatcher(c.cfg.Log)

	if outputs.JSON != "" {
		d.Add(&report.JSONSink{Path: outputs.JSON})
	}
	if outputs.Markdown != "" {
		d.Add(&report.MarkdownSink{Path: outputs.Markdown})
	}
	if outputs.CSV != "" {
		d.Add(&report.CSVSink{Path: outputs.CSV})
	}
	if outputs.Excel != "" {
		d.Add(&report.ExcelSink{Path: outputs.Excel})
	}
	if outputs.HTML != "" {
		d.Add(&report.HTMLSink{
			Path:     outputs.HTML,
			AutoOpen: !c.cfg.NonInteractive && c.interactive(),
		})
	}

	if len(c.cfg.MailTo) > 0 {
		mailer := notify.NewMailer(notify.MailConfig{
			Host:     c.cfg.SMTPHost,
			Port:     c.cfg.SMTPPort,
			Username: c.cfg.SMTPUsername,
			Password: c.cfg.SMTPPassword,
			From:     c.cfg.MailFrom,
		})
		d.Add(report.FuncSink{SinkName: "mail", Fn: func(m *types.ResultModel) error {
			return mailer.Send(ctx, c.cfg.MailTo, notify.BuildMessage(m, c.cfg.MailLink))
		}})
	}
	if c.cfg.TeamsTeamID != "" && c.cfg.TeamsChannelID != "" {
		client := notify.NewTeamsClient(c.cfg.TeamsToken)
		d.Add(report.FuncSink{SinkName: "teams-channel", Fn: func(m *types.ResultModel) error {
			return client.PostToChannel(ctx, c.cfg.TeamsTeamID, c.cfg.TeamsChannelID,
				notify.BuildMessage(m, c.cfg.MailLink))
		}})
	}
	if c.cfg.TeamsWebhook != "" {
		client := notify.NewTeamsClient(c.cfg.TeamsToken)
		d.Add(report.FuncSink{SinkName: "teams-webhook", Fn: func(m *types.ResultModel) error {
			return client.PostWebhook(ctx, c.cfg.TeamsWebhook,
				notify.BuildMessage(m, c.cfg.MailLink))
		}})
	}

	if c.cfg.Verbosity == types.VerbosityNone {
		d.Add(&report.ConsoleSink{})
	}

	return d.Dispatch(model)
}

func (c *Controller) setState(s State) {
	c.cfg.Log.Debug("state transition", "from", c.state, "to", s)
	c.state = s
}

func validateWebhookURI(raw string) error {
	u, err := url.ParseRequestURI(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return types.NewValidationError(flags.TeamsWebhook.Name,
			fmt.Sprintf("%q is not a valid webhook URI", raw))
	}
	return nil
}

// stdoutIsConsole reports whether stdout is attached to a character
// device, the cue that a human is watching the run.
func stdoutIsConsole() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
