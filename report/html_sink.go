package report

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"os"
	"strings"

	"github.com/testpilot-dev/testpilot/types"
)

//go:embed templates/report.html.tmpl
var templateFS embed.FS

// HTMLSink renders the result model as a self-contained HTML report.
// When AutoOpen is set and the write succeeds, the report is opened for
// viewing with the platform browser.
type HTMLSink struct {
	Path     string
	AutoOpen bool

	// open is swappable for tests; defaults to OpenInBrowser.
	open func(path string) error
}

func (s *HTMLSink) Name() string { return "html" }

func (s *HTMLSink) Deliver(model *types.ResultModel) error {
	tmpl, err := template.New("report.html.tmpl").Funcs(template.FuncMap{
		"formatDuration": formatDuration,
		"statusText":     statusText,
		"statusClass":    statusClass,
		"joinTags": func(tags []string) string {
			return strings.Join(tags, ", ")
		},
	}).ParseFS(templateFS, "templates/report.html.tmpl")
	if err != nil {
		return fmt.Errorf("failed to parse report template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, model); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	if err := os.WriteFile(s.Path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.Path, err)
	}

	if s.AutoOpen {
		opener := s.open
		if opener == nil {
			opener = OpenInBrowser
		}
		// A browser that refuses to open is not a report failure.
		_ = opener(s.Path)
	}
	return nil
}
