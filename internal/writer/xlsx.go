package writer

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/statementcore/corebank/internal/statement"
)

// XLSXWriter renders a statement.Data result as a styled workbook — the
// SPEC_FULL report output the teacher's CSV-only writer never had,
// added via the excelize library also used by the pack's
// PDF-to-Xlsx converter.
type XLSXWriter struct {
	SheetName string
}

// WriteToFile renders data as an XLSX workbook at path.
func (w *XLSXWriter) WriteToFile(path string, data *statement.Data) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := w.SheetName
	if sheet == "" {
		sheet = "Transactions"
	}
	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheet); err != nil {
		return fmt.Errorf("writer: rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E7E6E6"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("writer: header style: %w", err)
	}

	row := 1
	meta := [][2]string{
		{"Config", data.ConfigKey},
	}
	if data.HasAccountNumber {
		meta = append(meta, [2]string{"Account Number", data.AccountNumber})
	}
	if data.HasStartDate {
		meta = append(meta, [2]string{"Start Date", data.StartDate.ISO()})
	}
	if data.HasOpeningBalance {
		meta = append(meta, [2]string{"Opening Balance", data.OpeningBalance.String()})
	}
	if data.HasClosingBalance {
		meta = append(meta, [2]string{"Closing Balance", data.ClosingBalance.String()})
	}
	for _, kv := range meta {
		f.SetCellValue(sheet, cell(1, row), kv[0])
		f.SetCellValue(sheet, cell(2, row), kv[1])
		row++
	}
	row++

	headerRow := row
	headers := []string{"Date", "Description", "Amount", "Balance"}
	for i, h := range headers {
		f.SetCellValue(sheet, cell(i+1, headerRow), h)
	}
	f.SetCellStyle(sheet, cell(1, headerRow), cell(len(headers), headerRow), headerStyle)
	row++

	for _, txn := range data.Transactions {
		f.SetCellValue(sheet, cell(1, row), txn.Date.ISO())
		f.SetCellValue(sheet, cell(2, row), txn.Description)
		f.SetCellValue(sheet, cell(3, row), txn.Amount.Float64())
		if txn.Balance != nil {
			f.SetCellValue(sheet, cell(4, row), txn.Balance.Float64())
		}
		row++
	}

	if len(data.Errors) > 0 {
		row++
		f.SetCellValue(sheet, cell(1, row), "Errors")
		row++
		for _, e := range data.Errors {
			f.SetCellValue(sheet, cell(1, row), string(e.Kind))
			f.SetCellValue(sheet, cell(2, row), e.Message)
			row++
		}
	}

	for i, width := range []float64{14, 48, 14, 14} {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, width)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("writer: save xlsx: %w", err)
	}
	return nil
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}
