package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/honeycombio/otel-config-go/otelconfig"
	"github.com/urfave/cli/v2"

	testpilot "github.com/testpilot-dev/testpilot"
	"github.com/testpilot-dev/testpilot/exitcodes"
	"github.com/testpilot-dev/testpilot/flags"
	"github.com/testpilot-dev/testpilot/logging"
	"github.com/testpilot-dev/testpilot/service"
	"github.com/testpilot-dev/testpilot/types"
)

var (
	Version   = "v0.1.0"
	GitCommit = ""
	GitDate   = ""
)

func main() {
	app := cli.NewApp()
	app.Version = fmt.Sprintf("%s-%s-%s", Version, GitCommit, GitDate)
	app.Name = "testpilot"
	app.Usage = "Test run orchestrator"
	app.Description = "testpilot resolves a run configuration, executes tests and fans results out to reports and notifications"
	app.Flags = flags.Flags
	app.Action = run
	app.ExitErrHandler = func(c *cli.Context, err error) {
		var exitErr cli.ExitCoder
		if errors.As(err, &exitErr) {
			cli.HandleExitCoder(exitErr)
		} else if err != nil {
			if testpilot.IsTestFailureError(err) {
				cli.HandleExitCoder(cli.Exit(err.Error(), exitcodes.TestFailure))
			} else {
				cli.HandleExitCoder(cli.Exit(err.Error(), exitcodes.RuntimeErr))
			}
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitcodes.RuntimeErr)
	}
}

func run(ctx *cli.Context) error {
	if err := flags.CheckRequired(ctx); err != nil {
		return testpilot.NewRuntimeError(err)
	}

	verbosity, err := types.ParseVerbosity(ctx.String(flags.Verbosity.Name))
	if err != nil {
		return testpilot.NewRuntimeError(
			types.NewValidationError(flags.Verbosity.Name, err.Error()))
	}
	log := logging.New(verbosity)

	otelShutdown, err := otelconfig.ConfigureOpenTelemetry(
		otelconfig.WithServiceName(ctx.App.Name),
		otelconfig.WithServiceVersion(ctx.App.Version),
	)
	if err != nil {
		log.Warn("failed to set up telemetry", "error", err)
	} else {
		defer otelShutdown()
	}

	svc := service.New(log)
	svc.Start(ctx.Context)
	defer svc.Shutdown()

	cfg, err := testpilot.NewConfig(ctx, log, verbosity)
	if err != nil {
		return testpilot.NewRuntimeError(err)
	}

	controller, err := testpilot.New(cfg, Version)
	if err != nil {
		return testpilot.NewRuntimeError(err)
	}

	model, err := controller.Run(ctx.Context)
	if err != nil {
		return testpilot.NewRuntimeError(err)
	}

	if model != nil {
		data, err := json.MarshalIndent(model, "", "  ")
		if err != nil {
			return testpilot.NewRuntimeError(err)
		}
		fmt.Fprintln(ctx.App.Writer, string(data))
	}

	if controller.HasFailures() {
		return testpilot.NewTestFailureError("one or more tests failed")
	}
	return nil
}
