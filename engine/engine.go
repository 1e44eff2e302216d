// Package engine defines the boundary to the external test engine and
// provides the default go-test implementation of it.
package engine

import (
	"context"
	"time"
)

// RawRecord is one per-test record as reported by the engine, untouched
// by the pipeline.
type RawRecord struct {
	Name    string
	Tags    []string
	Status  string
	Elapsed time.Duration
	Output  string
}

// Raw record statuses as reported by engines.
const (
	RawStatusPass = "pass"
	RawStatusFail = "fail"
	RawStatusSkip = "skip"
)

// RawResult is the untransformed outcome of one engine invocation. The
// record order is the engine's discovery/execution order.
type RawResult struct {
	Total   int
	Passed  int
	Failed  int
	Skipped int
	Records []RawRecord
}

// Empty reports whether the engine produced nothing to report.
func (r *RawResult) Empty() bool {
	return r == nil || len(r.Records) == 0
}

// Engine runs tests according to a final configuration. Implementations
// perform no result transformation; normalization happens downstream.
type Engine interface {
	Run(ctx context.Context, cfg *Config) (*RawResult, error)
}
