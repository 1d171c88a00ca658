package analysis

import (
	"fmt"
	"io"
	"strconv"

	"github.com/Veraticus/crux/internal/model"
	"github.com/xuri/excelize/v2"
)

// WriteXLSX writes every tabular view of report to its own worksheet.
// Numeric cells are stored as numbers; missing heatmap pairs stay blank.
func WriteXLSX(w io.Writer, report *Report, names *model.Names) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for i, view := range Tabulate(report, names) {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", view.Name); err != nil {
				return fmt.Errorf("failed to rename first sheet: %w", err)
			}
		} else if _, err := f.NewSheet(view.Name); err != nil {
			return fmt.Errorf("failed to add sheet %s: %w", view.Name, err)
		}

		if err := writeSheet(f, view, bold); err != nil {
			return err
		}
	}

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, view TabularView, headerStyle int) error {
	header := make([]any, len(view.Header))
	for i, h := range view.Header {
		header[i] = h
	}
	if err := f.SetSheetRow(view.Name, "A1", &header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", view.Name, err)
	}

	last, err := excelize.CoordinatesToCellName(max(len(view.Header), 1), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(view.Name, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("failed to style %s header: %w", view.Name, err)
	}

	for r, row := range view.Rows {
		for c, value := range row {
			if value == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(view.Name, cell, cellValue(value)); err != nil {
				return fmt.Errorf("failed to write %s!%s: %w", view.Name, cell, err)
			}
		}
	}

	return f.SetPanes(view.Name, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func cellValue(s string) any {
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v
	}
	return s
}
