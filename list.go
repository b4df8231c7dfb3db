package pantry

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// ListItem is a line of a shopping list. UnitPrice is a snapshot taken when
// the product was added and does not follow later catalog changes.
type ListItem struct {
	ID        string          `json:"id"`
	ProductID int             `json:"productId"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Purchased bool            `json:"purchased"`
	Consumed  bool            `json:"consumed"`
}

// Subtotal is the item's contribution to its list total.
func (i ListItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// List is a named shopping list. Total always equals the sum of the items'
// subtotals.
type List struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Items     []ListItem      `json:"items"`
	CreatedAt time.Time       `json:"createdAt"`
	Total     decimal.Decimal `json:"total"`
}

// Item returns the item with this id and its index, or -1.
func (l List) Item(id string) (ListItem, int) {
	i := slices.IndexFunc(l.Items, func(it ListItem) bool { return it.ID == id })
	if i < 0 {
		return ListItem{}, -1
	}
	return l.Items[i], i
}

// Progress counts purchased items.
func (l List) Progress() (purchased, items, percent int) {
	for _, it := range l.Items {
		if it.Purchased {
			purchased++
		}
	}
	items = len(l.Items)
	if items > 0 {
		percent = (purchased*100 + items/2) / items
	}
	return purchased, items, percent
}

func (l *List) recomputeTotal() {
	total := decimal.Zero
	for _, it := range l.Items {
		total = total.Add(it.Subtotal())
	}
	l.Total = total
}

func (l List) clone() List {
	l.Items = slices.Clone(l.Items)
	return l
}

// ListEvent records a product being added to a list; statistics use it to
// find the most listed products.
type ListEvent struct {
	ProductID int       `json:"productId"`
	Name      string    `json:"name"`
	Icon      string    `json:"icon"`
	Quantity  int       `json:"quantity"`
	Date      time.Time `json:"date"`
}
