// Package export writes pantry ledgers as spreadsheets.
package export

import (
	"fmt"
	"io"

	"github.com/etnz/pantry"
	"github.com/xuri/excelize/v2"
)

// Sheet names of the workbook written by Workbook.
const (
	ExpensesSheet  = "Expenses"
	InventorySheet = "Inventory"
	ListsSheet     = "Lists"
)

// Data is what goes into a workbook. Empty parts still get their sheet.
type Data struct {
	Expenses  []pantry.ExpenseRecord
	Inventory []pantry.InventoryEntry
	Lists     []pantry.List
	Catalog   pantry.ProductLookup
}

// Workbook writes d as an xlsx workbook to w, one sheet per collection.
// Amounts are written as numbers in the canonical currency.
func Workbook(w io.Writer, d Data) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ExpensesSheet); err != nil {
		return err
	}
	if err := writeExpenses(f, d.Expenses); err != nil {
		return fmt.Errorf("write expenses sheet: %w", err)
	}
	if _, err := f.NewSheet(InventorySheet); err != nil {
		return err
	}
	if err := writeInventory(f, d.Inventory); err != nil {
		return fmt.Errorf("write inventory sheet: %w", err)
	}
	if _, err := f.NewSheet(ListsSheet); err != nil {
		return err
	}
	if err := writeLists(f, d.Lists, d.Catalog); err != nil {
		return fmt.Errorf("write lists sheet: %w", err)
	}
	f.SetActiveSheet(0)
	return f.Write(w)
}

// writeRows writes a header row and the rows below it, then sizes the columns.
func writeRows(f *excelize.File, sheet string, headers []string, widths []float64, rows [][]any) error {
	header, err := excelize.CoordinatesToCellName(1, 1)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, header, &headers); err != nil {
		return err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	last, _ := excelize.CoordinatesToCellName(len(headers), 1)
	if err := f.SetCellStyle(sheet, header, last, bold); err != nil {
		return err
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	for i, width := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return err
		}
	}
	return nil
}

func writeExpenses(f *excelize.File, records []pantry.ExpenseRecord) error {
	rows := make([][]any, 0, len(records))
	for _, r := range records {
		amount, _ := r.Amount.Float64()
		rows = append(rows, []any{r.Date.Local().Format("2006-01-02"), r.Description, r.Category, amount, r.ID})
	}
	return writeRows(f, ExpensesSheet,
		[]string{"Date", "Description", "Category", "Amount", "ID"},
		[]float64{12, 32, 16, 14, 38},
		rows)
}

func writeInventory(f *excelize.File, entries []pantry.InventoryEntry) error {
	rows := make([][]any, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []any{e.ProductID, e.Name, e.Quantity})
	}
	return writeRows(f, InventorySheet,
		[]string{"Product ID", "Product", "Quantity"},
		[]float64{12, 24, 10},
		rows)
}

func writeLists(f *excelize.File, lists []pantry.List, catalog pantry.ProductLookup) error {
	var rows [][]any
	for _, l := range lists {
		for _, it := range l.Items {
			name, _ := pantry.Describe(catalog, it.ProductID)
			price, _ := it.UnitPrice.Float64()
			subtotal, _ := it.Subtotal().Float64()
			rows = append(rows, []any{l.Name, name, it.Quantity, price, subtotal, it.Purchased, it.Consumed})
		}
	}
	return writeRows(f, ListsSheet,
		[]string{"List", "Product", "Quantity", "Unit price", "Subtotal", "Purchased", "Consumed"},
		[]float64{20, 24, 10, 12, 12, 10, 10},
		rows)
}
