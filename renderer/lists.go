package renderer

import (
	"github.com/etnz/pantry"
	"github.com/shopspring/decimal"
)

// listSummary is one row of the lists overview.
type listSummary struct {
	N         int
	Name      string
	Created   string
	Items     int
	Purchased int
	Percent   int
	Total     decimal.Decimal
}

// itemRow is one line of a list.
type itemRow struct {
	N         int
	Icon      string
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
	Status    string
}

type listDetail struct {
	Name      string
	Created   string
	Percent   int
	Purchased int
	Items     int
	Rows      []itemRow
	Total     decimal.Decimal
	Pending   decimal.Decimal
}

// Lists renders the overview of all lists, numbered in the given order.
func Lists(lists []pantry.List, money Money) string {
	rows := make([]listSummary, 0, len(lists))
	for i, l := range lists {
		purchased, items, percent := l.Progress()
		rows = append(rows, listSummary{
			N:         i + 1,
			Name:      l.Name,
			Created:   l.CreatedAt.Local().Format("2006-01-02"),
			Items:     items,
			Purchased: purchased,
			Percent:   percent,
			Total:     l.Total,
		})
	}
	return renderTemplate("lists", "lists.md", nil, money, rows)
}

// List renders one list with its items, numbered in list order.
func List(l pantry.List, catalog pantry.ProductLookup, money Money) string {
	purchased, items, percent := l.Progress()
	d := listDetail{
		Name:      l.Name,
		Created:   l.CreatedAt.Local().Format("2006-01-02 15:04"),
		Percent:   percent,
		Purchased: purchased,
		Items:     items,
		Total:     l.Total,
		Pending:   decimal.Zero,
	}
	for i, it := range l.Items {
		name, icon := pantry.Describe(catalog, it.ProductID)
		status := "🛍 to buy"
		switch {
		case it.Consumed:
			status = "🍽 consumed"
		case it.Purchased:
			status = "✅ purchased"
		}
		if !it.Purchased {
			d.Pending = d.Pending.Add(it.Subtotal())
		}
		d.Rows = append(d.Rows, itemRow{
			N:         i + 1,
			Icon:      icon,
			Name:      name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Subtotal:  it.Subtotal(),
			Status:    status,
		})
	}
	partials := map[string]string{"list_items": "list_items.md"}
	if len(d.Rows) == 0 {
		partials["list_items"] = "list_empty.md"
	}
	return renderTemplate("list", "list.md", partials, money, d)
}
