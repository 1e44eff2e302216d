package report

import (
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/testpilot-dev/testpilot/types"
)

// CSVSink renders one row per outcome in CSV form.
type CSVSink struct {
	Path string
}

func (s *CSVSink) Name() string { return "csv" }

func (s *CSVSink) Deliver(model *types.ResultModel) error {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Test", "Tags", "Status", "DurationMs", "Detail"})
	for _, o := range model.Outcomes {
		t.AppendRow(table.Row{
			o.ID,
			strings.Join(o.Tags, " "),
			string(o.Status),
			o.Duration.Milliseconds(),
			firstLine(o.Failure),
		})
	}

	if err := os.WriteFile(s.Path, []byte(t.RenderCSV()+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.Path, err)
	}
	return nil
}
