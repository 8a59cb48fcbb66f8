package services

import (
	"fmt"
	"io"
	"iter"
	"strconv"

	"github.com/dmitrijs2005/scanmed/internal/server/views"
	"github.com/xuri/excelize/v2"
)

// ExportContentType is the MIME type of the workbook written by ExportHistory.
const ExportContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type sheetSpec struct {
	name    string
	headers []string
	widths  []float64
	err     error
	rows    iter.Seq[[]any]
}

func rowsOf[V any](items iter.Seq[V], row func(V) []any) iter.Seq[[]any] {
	return func(yield func([]any) bool) {
		for v := range items {
			if !yield(row(v)) {
				return
			}
		}
	}
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}

func historySheets(h *History) []sheetSpec {
	return []sheetSpec{
		{
			name:    "Scans",
			headers: []string{"Type", "Date", "Time", "Result", "Status", "Confidence", "Notes", "Trashed"},
			widths:  []float64{15, 14, 8, 18, 10, 12, 40, 9},
			err:     h.Scans.Err,
			rows: rowsOf(h.Scans.Items(), func(v views.Scan) []any {
				return []any{v.Type, v.Date, v.Time, string(v.Result), string(v.Status), v.Confidence, v.Notes, yesNo(v.Trashed)}
			}),
		},
		{
			name:    "Medications",
			headers: []string{"Medication", "Dosage", "Frequency", "Start Date", "End Date", "Status", "Adherence", "Notes", "Trashed"},
			widths:  []float64{24, 14, 18, 14, 14, 12, 11, 40, 9},
			err:     h.Medications.Err,
			rows: rowsOf(h.Medications.Items(), func(v views.Medication) []any {
				end := ""
				if v.EndDate != nil {
					end = *v.EndDate
				}
				return []any{v.Medication, v.Dosage, v.Frequency, v.StartDate, end, v.Status, strconv.Itoa(v.Adherence) + "%", v.Notes, yesNo(v.Trashed)}
			}),
		},
		{
			name:    "Reading",
			headers: []string{"Title", "Category", "Date Read", "Read Time"},
			widths:  []float64{40, 18, 14, 12},
			err:     h.Readings.Err,
			rows: rowsOf(h.Readings.Items(), func(v views.Reading) []any {
				return []any{v.Title, v.Category, v.DateRead, v.ReadTime}
			}),
		},
		{
			name:    "Chats",
			headers: []string{"Title", "Preview", "Date", "Time", "Trashed"},
			widths:  []float64{30, 50, 14, 8, 9},
			err:     h.Chats.Err,
			rows: rowsOf(h.Chats.Items(), func(v views.Chat) []any {
				return []any{v.Title, v.Preview, v.Date, v.Time, yesNo(v.Trashed)}
			}),
		},
	}
}

// ExportHistory writes h as an XLSX workbook with one sheet per record kind.
// A section that failed to load gets a single "unavailable" row.
func ExportHistory(w io.Writer, h *History) error {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	sheets := historySheets(h)
	for _, sh := range sheets {
		if _, err := f.NewSheet(sh.name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", sh.name, err)
		}
		if err := writeSheet(f, sh, headerStyle); err != nil {
			return err
		}
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to delete default sheet: %w", err)
	}
	// sheet indexes shift once the default sheet is gone
	idx, err := f.GetSheetIndex(sheets[0].name)
	if err != nil {
		return fmt.Errorf("failed to find sheet %s: %w", sheets[0].name, err)
	}
	f.SetActiveSheet(idx)

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sh sheetSpec, headerStyle int) error {
	for col, header := range sh.headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(sh.name, cell, header); err != nil {
			return fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(sh.name, cell, cell, headerStyle); err != nil {
			return fmt.Errorf("failed to set header style: %w", err)
		}
	}

	for i, width := range sh.widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return fmt.Errorf("failed to convert column number: %w", err)
		}
		if err := f.SetColWidth(sh.name, col, col, width); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}

	if err := f.SetPanes(sh.name, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("failed to freeze header: %w", err)
	}

	if sh.err != nil {
		return f.SetCellValue(sh.name, "A2", "unavailable: "+sh.err.Error())
	}

	row := 2
	for values := range sh.rows {
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetSheetRow(sh.name, cell, &values); err != nil {
			return fmt.Errorf("failed to set row %d: %w", row, err)
		}
		row++
	}
	return nil
}
