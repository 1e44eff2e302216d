package types

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// TestStatus represents the possible states of a normalized test outcome
type TestStatus string

const (
	TestStatusPass   TestStatus = "pass"
	TestStatusFail   TestStatus = "fail"
	TestStatusSkip   TestStatus = "skip"
	TestStatusNotRun TestStatus = "notrun"
)

// Policy tags carry implicit meaning for tag filter resolution. They form
// a closed set; the resolver is exhaustive over these three.
const (
	// TagOptInOnly marks tests that never run unless explicitly requested.
	TagOptInOnly = "CAWhatIf"
	// TagExtended marks the broad/slow suite excluded from default runs.
	TagExtended = "Full"
	// TagEverything is the umbrella tag pulled in alongside TagExtended.
	TagEverything = "All"
)

// PolicyTags is the closed set of tags with special default-policy meaning.
var PolicyTags = []string{TagOptInOnly, TagExtended, TagEverything}

// Verbosity controls log output and the console summary fallback.
type Verbosity int

const (
	VerbosityNone Verbosity = iota
	VerbosityNormal
	VerbosityDetailed
	VerbosityDiagnostic
)

func (v Verbosity) String() string {
	switch v {
	case VerbosityNone:
		return "none"
	case VerbosityNormal:
		return "normal"
	case VerbosityDetailed:
		return "detailed"
	case VerbosityDiagnostic:
		return "diagnostic"
	default:
		return fmt.Sprintf("verbosity(%d)", int(v))
	}
}

// ParseVerbosity parses a verbosity name, case-insensitively.
func ParseVerbosity(s string) (Verbosity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "normal":
		return VerbosityNormal, nil
	case "none":
		return VerbosityNone, nil
	case "detailed":
		return VerbosityDetailed, nil
	case "diagnostic":
		return VerbosityDiagnostic, nil
	default:
		return VerbosityNormal, fmt.Errorf("invalid verbosity %q, must be one of: none, normal, detailed, diagnostic", s)
	}
}

// TestOutcome captures one normalized per-test result.
type TestOutcome struct {
	ID       string        `json:"id"`
	Tags     []string      `json:"tags,omitempty"`
	Status   TestStatus    `json:"status"`
	Duration time.Duration `json:"duration"`
	Failure  string        `json:"failure,omitempty"`
}

// ResultModel is the normalized, engine-agnostic outcome of one run.
// It is handed by reference to every sink; sinks treat it as read-only.
type ResultModel struct {
	RunID     string        `json:"run_id"`
	Total     int           `json:"total"`
	Passed    int           `json:"passed"`
	Failed    int           `json:"failed"`
	Skipped   int           `json:"skipped"`
	NotRun    int           `json:"not_run"`
	Outcomes  []TestOutcome `json:"outcomes"`
	CreatedAt time.Time     `json:"created_at"`
}

// Reconciled reports whether the counters agree with the outcome sequence.
func (m *ResultModel) Reconciled() bool {
	var passed, failed, skipped, notRun int
	for _, o := range m.Outcomes {
		switch o.Status {
		case TestStatusPass:
			passed++
		case TestStatusFail:
			failed++
		case TestStatusSkip:
			skipped++
		default:
			notRun++
		}
	}
	return passed == m.Passed && failed == m.Failed && skipped == m.Skipped &&
		notRun == m.NotRun && m.Total == len(m.Outcomes) &&
		passed+failed+skipped+notRun == m.Total
}

// Summary returns the single-line run summary used by console and
// notification sinks.
func (m *ResultModel) Summary() string {
	return fmt.Sprintf("Passed: %d, Failed: %d, Skipped: %d", m.Passed, m.Failed, m.Skipped)
}

// HasFailures reports whether any outcome failed.
func (m *ResultModel) HasFailures() bool {
	return m.Failed > 0
}

// SinkOutcome records the delivery result for a single sink.
type SinkOutcome struct {
	Sink string
	OK   bool
	Err  error
}

// HasTag reports whether tags contains tag, ignoring order.
func HasTag(tags []string, tag string) bool {
	return slices.Contains(tags, tag)
}
