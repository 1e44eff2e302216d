package engine

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"
)

// GoTestEngine is the default engine. It shells out to the go toolchain
// with JSON output enabled and returns the raw parsed event stream.
type GoTestEngine struct {
	log *slog.Logger
}

var _ Engine = (*GoTestEngine)(nil)

// NewGoTestEngine creates the default go-test engine.
func NewGoTestEngine(log *slog.Logger) *GoTestEngine {
	return &GoTestEngine{log: log}
}

// Run executes `go test -json` over the configured test root. A non-zero
// exit with parsable per-test records is a test failure, not an engine
// failure; only an unusable invocation is reported as an error.
func (e *GoTestEngine) Run(ctx context.Context, cfg *Config) (*RawResult, error) {
	args := []string{"test", "-json", "./..."}
	if len(cfg.IncludeTags) > 0 {
		args = append(args, "-tags", strings.Join(cfg.IncludeTags, ","))
	}
	if cfg.Timeout > 0 {
		args = append(args, "-timeout", cfg.Timeout.String())
	}

	e.log.Debug("invoking test engine", "binary", cfg.GoBinary, "args", args, "dir", cfg.Path)

	cmd := exec.CommandContext(ctx, cfg.GoBinary, args...)
	cmd.Dir = cfg.Path

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()

	result := parseEventStream(stdout.Bytes())
	if runErr != nil && result.Empty() {
		return nil, fmt.Errorf("go test invocation failed: %w: %s", runErr, strings.TrimSpace(stderr.String()))
	}

	e.log.Debug("test engine finished",
		"total", result.Total,
		"passed", result.Passed,
		"failed", result.Failed,
		"skipped", result.Skipped)

	return result, nil
}
