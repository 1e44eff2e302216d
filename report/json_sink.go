package report

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/testpilot-dev/testpilot/types"
)

// JSONSink serializes the full result model, including nested failure
// detail, to a single JSON file.
type JSONSink struct {
	Path string
}

func (s *JSONSink) Name() string { return "json" }

func (s *JSONSink) Deliver(model *types.ResultModel) error {
	data, err := json.MarshalIndent(model, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize results: %w", err)
	}
	if err := os.WriteFile(s.Path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.Path, err)
	}
	return nil
}
