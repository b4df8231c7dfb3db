package renderer

import (
	"time"

	"github.com/etnz/pantry"
	"github.com/shopspring/decimal"
)

type stockRow struct {
	Icon     string
	Name     string
	Quantity int
	When     string
}

type inventoryDoc struct {
	Entries []pantry.InventoryEntry
	Units   int
	History []stockRow
}

// Inventory renders the on-hand products and the latest stock-ins, history
// being most recent first. At most limit events are shown, all when limit <= 0.
func Inventory(entries []pantry.InventoryEntry, history []pantry.StockEvent, limit int) string {
	d := inventoryDoc{Entries: entries}
	for _, e := range entries {
		d.Units += e.Quantity
	}
	if limit > 0 && len(history) > limit {
		history = history[:limit]
	}
	for _, ev := range history {
		d.History = append(d.History, stockRow{Icon: ev.Icon, Name: ev.Name, Quantity: ev.Quantity, When: when(ev.Date)})
	}
	return renderTemplate("inventory", "inventory.md", nil, nil, d)
}

type expenseRow struct {
	N           int
	Date        string
	Icon        string
	Description string
	Category    string
	Amount      decimal.Decimal
}

type expensesDoc struct {
	Rows  []expenseRow
	Total decimal.Decimal
}

// Expenses renders the expense ledger, in the order given.
func Expenses(records []pantry.ExpenseRecord, total decimal.Decimal, money Money) string {
	d := expensesDoc{Total: total}
	for i, r := range records {
		d.Rows = append(d.Rows, expenseRow{
			N:           i + 1,
			Date:        when(r.Date),
			Icon:        r.CategoryIcon,
			Description: r.Description,
			Category:    r.Category,
			Amount:      r.Amount,
		})
	}
	return renderTemplate("expenses", "expenses.md", nil, money, d)
}

func when(t time.Time) string { return t.Local().Format("2006-01-02 15:04") }
