package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/etnz/pantry"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

func TestWorkbook(t *testing.T) {
	day := time.Date(2025, 3, 14, 12, 0, 0, 0, time.Local)
	d := Data{
		Expenses: []pantry.ExpenseRecord{
			{ID: "e1", Description: "Purchased 3 Apples", Amount: decimal.RequireFromString("6000"), Category: "Purchase", Date: day},
		},
		Inventory: []pantry.InventoryEntry{{ProductID: 1, Quantity: 3, Name: "Apple", Icon: "🍎"}},
		Lists: []pantry.List{{
			Name:  "Weekly",
			Items: []pantry.ListItem{{ProductID: 1, Quantity: 3, UnitPrice: decimal.RequireFromString("2000"), Purchased: true}},
		}},
		Catalog: pantry.DefaultCatalog(),
	}

	var buf bytes.Buffer
	if err := Workbook(&buf, d); err != nil {
		t.Fatalf("Workbook() failed: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("cannot read back the workbook: %v", err)
	}
	defer f.Close()

	if diff := cmp.Diff([]string{ExpensesSheet, InventorySheet, ListsSheet}, f.GetSheetList()); diff != "" {
		t.Errorf("sheets (-want +got):\n%s", diff)
	}

	testCases := []struct {
		sheet string
		want  [][]string
	}{
		{ExpensesSheet, [][]string{
			{"Date", "Description", "Category", "Amount", "ID"},
			{"2025-03-14", "Purchased 3 Apples", "Purchase", "6000", "e1"},
		}},
		{InventorySheet, [][]string{
			{"Product ID", "Product", "Quantity"},
			{"1", "Apple", "3"},
		}},
		{ListsSheet, [][]string{
			{"List", "Product", "Quantity", "Unit price", "Subtotal", "Purchased", "Consumed"},
			{"Weekly", "Apple", "3", "2000", "6000", "TRUE", "FALSE"},
		}},
	}
	for _, tc := range testCases {
		rows, err := f.GetRows(tc.sheet)
		if err != nil {
			t.Fatalf("GetRows(%s) failed: %v", tc.sheet, err)
		}
		if diff := cmp.Diff(tc.want, rows); diff != "" {
			t.Errorf("%s rows (-want +got):\n%s", tc.sheet, diff)
		}
	}
}

func TestWorkbook_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := Workbook(&buf, Data{}); err != nil {
		t.Fatalf("Workbook() failed: %v", err)
	}
	if buf.Len() == 0 {
		t.Errorf("empty workbook has no bytes")
	}
}
