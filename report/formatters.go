package report

import (
	"fmt"
	"time"

	"github.com/testpilot-dev/testpilot/types"
)

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.Truncate(time.Millisecond).String()
}

func statusText(status types.TestStatus) string {
	switch status {
	case types.TestStatusPass:
		return "✓ pass"
	case types.TestStatusSkip:
		return "- skip"
	case types.TestStatusNotRun:
		return "· not run"
	default:
		return "✗ fail"
	}
}

// statusClass maps a status onto the CSS class used by the HTML report.
func statusClass(status types.TestStatus) string {
	switch status {
	case types.TestStatusPass:
		return "pass"
	case types.TestStatusSkip:
		return "skip"
	case types.TestStatusNotRun:
		return "notrun"
	default:
		return "fail"
	}
}

// totalDuration sums per-outcome durations for display headers.
func totalDuration(model *types.ResultModel) time.Duration {
	var total time.Duration
	for _, o := range model.Outcomes {
		total += o.Duration
	}
	return total
}
