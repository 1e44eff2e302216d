package plan

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/testpilot-dev/testpilot/types"
)

var fixedNow = time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)

func TestResolve_ExtensionMismatchNamesParameter(t *testing.T) {
	tests := []struct {
		name      string
		req       Request
		wantParam string
	}{
		{"html wrong ext", Request{HTMLFile: "out.txt"}, ParamHTMLFile},
		{"markdown wrong ext", Request{MarkdownFile: "report.html"}, ParamMarkdownFile},
		{"json wrong ext", Request{JSONFile: "results.yaml"}, ParamJSONFile},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := resolveAt(tt.req, fixedNow)
			require.Error(t, err)

			var vErr *types.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.wantParam, vErr.Param)
		})
	}
}

func TestResolve_ValidExplicitPaths(t *testing.T) {
	p, err := resolveAt(Request{
		HTMLFile:     "report.html",
		MarkdownFile: "report.md",
		JSONFile:     "report.json",
	}, fixedNow)
	require.NoError(t, err)

	assert.Equal(t, "report.html", p.HTML)
	assert.Equal(t, "report.md", p.Markdown)
	assert.Equal(t, "report.json", p.JSON)
	assert.Empty(t, p.CSV)
	assert.Empty(t, p.Excel)
}

func TestResolve_ExtensionCaseInsensitive(t *testing.T) {
	p, err := resolveAt(Request{HTMLFile: "report.HTML"}, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, "report.HTML", p.HTML)
}

func TestResolve_DefaultFolderWhenNothingGiven(t *testing.T) {
	dir := t.TempDir()
	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	p, err := resolveAt(Request{}, fixedNow)
	require.NoError(t, err)

	want := filepath.Join(DefaultFolder, "TestResults-2025-03-14-150926")
	assert.Equal(t, want+".html", p.HTML)
	assert.Equal(t, want+".md", p.Markdown)
	assert.Equal(t, want+".json", p.JSON)
	assert.Empty(t, p.CSV)
	assert.Empty(t, p.Excel)

	info, err := os.Stat(DefaultFolder)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestResolve_FolderSupersedesExplicitPaths(t *testing.T) {
	dir := t.TempDir()
	p, err := resolveAt(Request{
		HTMLFile: "elsewhere.html",
		JSONFile: "elsewhere.json",
		Folder:   dir,
		BaseName: "nightly",
	}, fixedNow)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "nightly.html"), p.HTML)
	assert.Equal(t, filepath.Join(dir, "nightly.md"), p.Markdown)
	assert.Equal(t, filepath.Join(dir, "nightly.json"), p.JSON)
}

func TestResolve_CSVAndExcelGatedOnExportFlags(t *testing.T) {
	dir := t.TempDir()

	p, err := resolveAt(Request{Folder: dir, BaseName: "run"}, fixedNow)
	require.NoError(t, err)
	assert.Empty(t, p.CSV)
	assert.Empty(t, p.Excel)

	p, err = resolveAt(Request{Folder: dir, BaseName: "run", ExportCSV: true, ExportExcel: true}, fixedNow)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "run.csv"), p.CSV)
	assert.Equal(t, filepath.Join(dir, "run.xlsx"), p.Excel)
}

func TestResolve_IdempotentForIdenticalInputs(t *testing.T) {
	dir := t.TempDir()
	req := Request{Folder: dir, BaseName: "stable", ExportCSV: true}

	first, err := resolveAt(req, fixedNow)
	require.NoError(t, err)
	second, err := resolveAt(req, fixedNow)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestResolve_DirectoryCreationIdempotent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "results")
	require.NoError(t, os.MkdirAll(dir, 0755))

	// Pre-existing directory must not fail resolution.
	_, err := resolveAt(Request{Folder: dir}, fixedNow)
	require.NoError(t, err)
}

func TestResolve_ValidationBeforeIO(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "never-created")

	_, err := resolveAt(Request{Folder: dir, HTMLFile: "bad.txt"}, fixedNow)
	require.Error(t, err)

	_, statErr := os.Stat(dir)
	assert.True(t, os.IsNotExist(statErr), "validation failure must not create the folder")
}
