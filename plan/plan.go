// Package plan resolves user-supplied output parameters into the concrete
// set of destination file paths for one run.
package plan

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/testpilot-dev/testpilot/types"
)

// DefaultFolder is assumed when neither an output folder nor any explicit
// file path was given.
const DefaultFolder = "./test-results"

// timestampLayout gives default base filenames second-level resolution.
const timestampLayout = "2006-01-02-150405"

// Parameter names reported by validation errors. They match the CLI flags.
const (
	ParamHTMLFile     = "output-html-file"
	ParamMarkdownFile = "output-markdown-file"
	ParamJSONFile     = "output-json-file"
	ParamCSVFile      = "output-csv-file"
	ParamExcelFile    = "output-excel-file"
	ParamFolder       = "output-folder"
)

// Request carries the raw output parameters of one run.
type Request struct {
	HTMLFile     string
	MarkdownFile string
	JSONFile     string
	CSVFile      string
	ExcelFile    string
	Folder       string
	BaseName     string
	ExportCSV    bool
	ExportExcel  bool
}

// OutputPlan is the resolved set of destination file paths. Constructed
// once per run and never mutated after sink dispatch begins.
type OutputPlan struct {
	HTML     string
	Markdown string
	JSON     string
	CSV      string
	Excel    string
}

// Resolve turns a Request into an OutputPlan or fails with a
// ValidationError naming the offending parameter. Directory creation is
// the only I/O performed and is idempotent.
func Resolve(req Request) (*OutputPlan, error) {
	return resolveAt(req, time.Now())
}

func resolveAt(req Request, now time.Time) (*OutputPlan, error) {
	// Extension checks run first, before any I/O, so a bad parameter
	// never leaves partial output directories behind.
	if err := checkExtension(ParamHTMLFile, req.HTMLFile, ".html"); err != nil {
		return nil, err
	}
	if err := checkExtension(ParamMarkdownFile, req.MarkdownFile, ".md"); err != nil {
		return nil, err
	}
	if err := checkExtension(ParamJSONFile, req.JSONFile, ".json"); err != nil {
		return nil, err
	}

	folder := req.Folder
	if folder == "" && !req.hasExplicitPath() {
		folder = DefaultFolder
	}

	if folder == "" {
		// Explicit per-format paths only.
		return &OutputPlan{
			HTML:     req.HTMLFile,
			Markdown: req.MarkdownFile,
			JSON:     req.JSONFile,
			CSV:      req.CSVFile,
			Excel:    req.ExcelFile,
		}, nil
	}

	if err := os.MkdirAll(folder, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output folder %s: %w", folder, err)
	}

	base := req.BaseName
	if base == "" {
		base = "TestResults-" + now.Format(timestampLayout)
	}

	// Once a folder is in effect it supersedes any explicit per-format
	// path for this run.
	p := &OutputPlan{
		HTML:     filepath.Join(folder, base+".html"),
		Markdown: filepath.Join(folder, base+".md"),
		JSON:     filepath.Join(folder, base+".json"),
	}
	if req.ExportCSV {
		p.CSV = filepath.Join(folder, base+".csv")
	}
	if req.ExportExcel {
		p.Excel = filepath.Join(folder, base+".xlsx")
	}
	return p, nil
}

func (r Request) hasExplicitPath() bool {
	return r.HTMLFile != "" || r.MarkdownFile != "" || r.JSONFile != "" ||
		r.CSVFile != "" || r.ExcelFile != ""
}

func checkExtension(param, path, ext string) error {
	if path == "" {
		return nil
	}
	if !strings.EqualFold(filepath.Ext(path), ext) {
		return types.NewValidationError(param,
			fmt.Sprintf("%q must have the %s extension", path, ext))
	}
	return nil
}
