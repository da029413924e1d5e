package report

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/dangarahotel/frontdesk-backend/internal/expense"
)

var monthNames = []string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// buildWorkbook assembles the yearly xlsx export: a revenue sheet with the
// monthly revenue/expense/net series and an expense sheet with every entry.
func buildWorkbook(year int, points []RevenuePoint, expenses []*expense.Expense) ([]byte, error) {
	f := excelize.NewFile()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6F3FF"}, Pattern: 1},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create header style: %w", err)
	}

	if err := writeRevenueSheet(f, headerStyle, year, points); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeExpenseSheet(f, headerStyle, expenses); err != nil {
		f.Close()
		return nil, err
	}
	f.DeleteSheet("Sheet1")

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeRevenueSheet(f *excelize.File, headerStyle int, year int, points []RevenuePoint) error {
	sheet := fmt.Sprintf("Revenue %d", year)
	index, err := f.NewSheet(sheet)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)

	if err := writeHeader(f, sheet, headerStyle, []string{"Month", "Revenue", "Expenses", "Net"}); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "A", "A", 14); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "B", "D", 16); err != nil {
		return err
	}

	for i, p := range points {
		row := i + 2
		cells := []any{
			monthNames[p.Month-1],
			p.Revenue.InexactFloat64(),
			p.Expenses.InexactFloat64(),
			p.Net.InexactFloat64(),
		}
		if err := writeRow(f, sheet, row, cells); err != nil {
			return err
		}
	}
	return nil
}

func writeExpenseSheet(f *excelize.File, headerStyle int, expenses []*expense.Expense) error {
	const sheet = "Expenses"
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}

	if err := writeHeader(f, sheet, headerStyle, []string{"Date", "Title", "Category", "Amount", "Description"}); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "A", "A", 12); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "B", "B", 28); err != nil {
		return err
	}
	if err := f.SetColWidth(sheet, "E", "E", 40); err != nil {
		return err
	}

	for i, e := range expenses {
		row := i + 2
		cells := []any{
			e.Date.Format("2006-01-02"),
			e.Title,
			e.Category,
			e.Amount.InexactFloat64(),
			e.Description,
		}
		if err := writeRow(f, sheet, row, cells); err != nil {
			return err
		}
	}
	return nil
}

func writeHeader(f *excelize.File, sheet string, style int, headers []string) error {
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, style); err != nil {
			return err
		}
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, cells []any) error {
	for col, value := range cells {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return err
		}
	}
	return nil
}
