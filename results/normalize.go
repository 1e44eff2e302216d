// Package results converts raw engine output into the stable ResultModel
// consumed by every sink.
package results

import (
	"time"

	"github.com/acarl005/stripansi"
	"github.com/google/uuid"

	"github.com/testpilot-dev/testpilot/engine"
	"github.com/testpilot-dev/testpilot/types"
)

// Normalize maps a raw engine result into a ResultModel. Outcome order is
// the engine's reported discovery/execution order; counts are derived
// from the outcome sequence so the reconciliation invariant holds by
// construction.
func Normalize(raw *engine.RawResult) *types.ResultModel {
	model := &types.ResultModel{
		RunID:     uuid.New().String(),
		CreatedAt: time.Now(),
		Outcomes:  make([]types.TestOutcome, 0, len(raw.Records)),
	}

	for _, rec := range raw.Records {
		outcome := types.TestOutcome{
			ID:       rec.Name,
			Tags:     rec.Tags,
			Status:   mapStatus(rec.Status),
			Duration: rec.Elapsed,
		}
		if outcome.Status == types.TestStatusFail {
			// Captured output may carry terminal escape codes from the
			// engine; sinks expect plain text.
			outcome.Failure = stripansi.Strip(rec.Output)
		}

		model.Outcomes = append(model.Outcomes, outcome)
		model.Total++
		switch outcome.Status {
		case types.TestStatusPass:
			model.Passed++
		case types.TestStatusFail:
			model.Failed++
		case types.TestStatusSkip:
			model.Skipped++
		default:
			model.NotRun++
		}
	}

	return model
}

func mapStatus(raw string) types.TestStatus {
	switch raw {
	case engine.RawStatusPass:
		return types.TestStatusPass
	case engine.RawStatusFail:
		return types.TestStatusFail
	case engine.RawStatusSkip:
		return types.TestStatusSkip
	default:
		return types.TestStatusNotRun
	}
}
