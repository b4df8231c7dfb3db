package pantry

import (
	"cmp"
	"slices"

	"github.com/etnz/pantry/date"
	"github.com/shopspring/decimal"
)

// recentEvents is how many history events the statistics keep.
const recentEvents = 8

// ProductCount is a product with an aggregated quantity.
type ProductCount struct {
	ProductID int
	Name      string
	Icon      string
	Quantity  int
}

// CategoryTotal is the amount spent in one expense category.
type CategoryTotal struct {
	Category string
	Icon     string
	Total    decimal.Decimal
}

// DailyTotal is the amount spent on one day.
type DailyTotal struct {
	Date  date.Date
	Total decimal.Decimal
}

// ListProgress tells how far the shopping of a list went.
type ListProgress struct {
	ListID    string
	Name      string
	Purchased int
	Items     int
	Percent   int
}

// Stats is a read-only summary of the whole pantry.
type Stats struct {
	Range date.Range

	InventoryUnits int
	ListedUnits    int // units on unpurchased list items
	TopStocked     *ProductCount
	TopListed      *ProductCount

	RecentStock  []StockEvent // most recent first
	RecentListed []ListEvent  // most recent first

	Expenses    int
	Total       decimal.Decimal
	PeriodTotal decimal.Decimal
	ByCategory  []CategoryTotal // largest first
	Trend       []DailyTotal    // chronological, days with spending only

	Lists []ListProgress
}

// computeStats aggregates snapshots of the stores. Histories and expenses are
// expected most recent first.
func computeStats(lists []List, inventory []InventoryEntry, stock []StockEvent, listed []ListEvent, expenses []ExpenseRecord, r date.Range) *Stats {
	s := &Stats{
		Range:       r,
		Expenses:    len(expenses),
		Total:       decimal.Zero,
		PeriodTotal: decimal.Zero,
	}

	for _, e := range inventory {
		s.InventoryUnits += e.Quantity
		if s.TopStocked == nil || e.Quantity > s.TopStocked.Quantity {
			s.TopStocked = &ProductCount{ProductID: e.ProductID, Name: e.Name, Icon: e.Icon, Quantity: e.Quantity}
		}
	}

	for _, l := range lists {
		for _, it := range l.Items {
			if !it.Purchased {
				s.ListedUnits += it.Quantity
			}
		}
		purchased, items, percent := l.Progress()
		s.Lists = append(s.Lists, ListProgress{ListID: l.ID, Name: l.Name, Purchased: purchased, Items: items, Percent: percent})
	}

	var counts []ProductCount
	for _, ev := range listed {
		i := slices.IndexFunc(counts, func(c ProductCount) bool { return c.ProductID == ev.ProductID })
		if i < 0 {
			counts = append(counts, ProductCount{ProductID: ev.ProductID, Name: ev.Name, Icon: ev.Icon})
			i = len(counts) - 1
		}
		counts[i].Quantity += ev.Quantity
	}
	for i := range counts {
		if s.TopListed == nil || counts[i].Quantity > s.TopListed.Quantity {
			s.TopListed = &counts[i]
		}
	}

	s.RecentStock = stock[:min(len(stock), recentEvents)]
	s.RecentListed = listed[:min(len(listed), recentEvents)]

	byCategory := make(map[string]*CategoryTotal)
	daily := make(map[date.Date]decimal.Decimal)
	for _, rec := range expenses {
		s.Total = s.Total.Add(rec.Amount)
		ct, ok := byCategory[rec.Category]
		if !ok {
			ct = &CategoryTotal{Category: rec.Category, Icon: rec.CategoryIcon, Total: decimal.Zero}
			byCategory[rec.Category] = ct
		}
		ct.Total = ct.Total.Add(rec.Amount)

		// records are stored in UTC, days are the user's.
		if day := date.Of(rec.Date.Local()); r.Contains(day) {
			s.PeriodTotal = s.PeriodTotal.Add(rec.Amount)
			daily[day] = daily[day].Add(rec.Amount)
		}
	}
	for _, ct := range byCategory {
		s.ByCategory = append(s.ByCategory, *ct)
	}
	slices.SortFunc(s.ByCategory, func(a, b CategoryTotal) int {
		if c := b.Total.Cmp(a.Total); c != 0 {
			return c
		}
		return cmp.Compare(a.Category, b.Category)
	})
	for day := range r.Days() {
		if total, ok := daily[day]; ok {
			s.Trend = append(s.Trend, DailyTotal{Date: day, Total: total})
		}
	}
	return s
}
