package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/testpilot-dev/testpilot/types"
)

// ConsoleSink prints the run summary table to the console. It is the
// fallback visibility channel when no intermediate progress was shown.
type ConsoleSink struct {
	Out io.Writer
}

func (s *ConsoleSink) Name() string { return "console" }

func (s *ConsoleSink) Deliver(model *types.ResultModel) error {
	out := s.Out
	if out == nil {
		out = os.Stdout
	}

	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.SetTitle(fmt.Sprintf("Test Results (%s)", formatDuration(totalDuration(model))))

	t.AppendHeader(table.Row{"Test", "Tags", "Duration", "Status", "Detail"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Test", WidthMax: 60, WidthMaxEnforcer: text.WrapSoft},
		{Name: "Duration", Align: text.AlignRight},
		{Name: "Detail", WidthMax: 80, WidthMaxEnforcer: text.WrapSoft},
	})

	for _, o := range model.Outcomes {
		t.AppendRow(table.Row{
			o.ID,
			strings.Join(o.Tags, ", "),
			formatDuration(o.Duration),
			statusText(o.Status),
			firstLine(o.Failure),
		})
	}

	t.AppendFooter(table.Row{
		fmt.Sprintf("TOTAL: %d", model.Total),
		"",
		formatDuration(totalDuration(model)),
		model.Summary(),
		"",
	})

	if model.HasFailures() {
		t.SetStyle(table.StyleColoredBlackOnRedWhite)
	} else if model.Passed == 0 && model.Skipped > 0 {
		t.SetStyle(table.StyleColoredBlackOnYellowWhite)
	} else {
		t.SetStyle(table.StyleColoredBlackOnGreenWhite)
	}

	t.Render()
	fmt.Fprintln(out, model.Summary())
	return nil
}
