package report

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/testpilot-dev/testpilot/types"
)

// MarkdownSink renders the result model as a Markdown document with a
// summary header and one table row per outcome.
type MarkdownSink struct {
	Path string
}

func (s *MarkdownSink) Name() string { return "markdown" }

func (s *MarkdownSink) Deliver(model *types.ResultModel) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# Test Results (%s)\n\n", model.CreatedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "%s\n\n", model.Summary())

	t := table.NewWriter()
	t.AppendHeader(table.Row{"Test", "Tags", "Status", "Duration", "Detail"})
	for _, o := range model.Outcomes {
		t.AppendRow(table.Row{
			o.ID,
			strings.Join(o.Tags, ", "),
			statusText(o.Status),
			formatDuration(o.Duration),
			firstLine(o.Failure),
		})
	}
	b.WriteString(t.RenderMarkdown())
	b.WriteString("\n")

	if err := os.WriteFile(s.Path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.Path, err)
	}
	return nil
}

// firstLine trims a failure detail down to something table-friendly.
func firstLine(s string) string {
	if idx := strings.Index(s, "\n"); idx != -1 {
		s = s[:idx]
	}
	if len(s) > 120 {
		s = s[:110] + "..."
	}
	return s
}
