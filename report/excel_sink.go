package report

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/testpilot-dev/testpilot/types"
)

// ExcelSink writes the result model as a spreadsheet with a summary block
// followed by one row per outcome.
type ExcelSink struct {
	Path string
}

func (s *ExcelSink) Name() string { return "excel" }

func (s *ExcelSink) Deliver(model *types.ResultModel) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Test Results"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to create results sheet: %w", err)
	}

	var err error
	set := func(cell string, value any) {
		if err == nil {
			err = f.SetCellValue(sheet, cell, value)
		}
	}

	set("A1", "Run ID")
	set("B1", model.RunID)
	set("A2", "Created")
	set("B2", model.CreatedAt)
	set("A3", "Summary")
	set("B3", model.Summary())

	headerRow := 5
	for col, h := range []string{"Test", "Tags", "Status", "Duration (ms)", "Detail"} {
		cell, cellErr := excelize.CoordinatesToCellName(col+1, headerRow)
		if cellErr != nil {
			return cellErr
		}
		set(cell, h)
	}

	for i, o := range model.Outcomes {
		row := headerRow + 1 + i
		values := []any{
			o.ID,
			strings.Join(o.Tags, ", "),
			string(o.Status),
			o.Duration.Milliseconds(),
			firstLine(o.Failure),
		}
		for col, v := range values {
			cell, cellErr := excelize.CoordinatesToCellName(col+1, row)
			if cellErr != nil {
				return cellErr
			}
			set(cell, v)
		}
	}
	if err != nil {
		return fmt.Errorf("failed to populate spreadsheet: %w", err)
	}

	if err := f.SaveAs(s.Path); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.Path, err)
	}
	return nil
}
