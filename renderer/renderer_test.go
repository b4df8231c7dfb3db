package renderer

import (
	"strings"
	"testing"
	"time"

	"github.com/etnz/pantry"
	"github.com/etnz/pantry/date"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// outline is what a rendered document looks like once parsed.
type outline struct {
	Headings []string
	Tables   [][][]string // table, row, cell; header row included
}

func parse(t *testing.T, md string) outline {
	t.Helper()
	source := []byte(md)
	parser := goldmark.New(goldmark.WithExtensions(extension.GFM)).Parser()
	root := parser.Parse(text.NewReader(source))

	var o outline
	err := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.Heading:
			o.Headings = append(o.Headings, string(n.Text(source)))
			return ast.WalkSkipChildren, nil
		case *extast.Table:
			var rows [][]string
			for r := n.FirstChild(); r != nil; r = r.NextSibling() {
				var cells []string
				for c := r.FirstChild(); c != nil; c = c.NextSibling() {
					cells = append(cells, strings.TrimSpace(string(c.Text(source))))
				}
				rows = append(rows, cells)
			}
			o.Tables = append(o.Tables, rows)
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		t.Fatalf("walking markdown: %v", err)
	}
	return o
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func peso(d decimal.Decimal) string { return "$" + d.StringFixed(0) }

func TestProgressBar(t *testing.T) {
	testCases := []struct {
		percent int
		want    string
	}{
		{0, "░░░░░░░░░░ 0%"},
		{50, "█████░░░░░ 50%"},
		{67, "███████░░░ 67%"},
		{150, "██████████ 100%"},
	}
	for _, tc := range testCases {
		if got := progressBar(tc.percent, 10); got != tc.want {
			t.Errorf("progressBar(%d) = %q, want %q", tc.percent, got, tc.want)
		}
	}
}

func TestList(t *testing.T) {
	l := pantry.List{
		ID:        "l1",
		Name:      "Weekly | shop",
		CreatedAt: time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC),
		Items: []pantry.ListItem{
			{ID: "a", ProductID: 1, Quantity: 3, UnitPrice: dec("2000"), Purchased: true},
			{ID: "b", ProductID: 11, Quantity: 1, UnitPrice: dec("4500"), Purchased: true, Consumed: true},
			{ID: "c", ProductID: 999, Quantity: 2, UnitPrice: dec("100")},
		},
		Total: dec("10700"),
	}
	md := List(l, pantry.DefaultCatalog(), peso)
	got := parse(t, md)

	if diff := cmp.Diff([]string{"📝 Weekly | shop"}, got.Headings); diff != "" {
		t.Errorf("headings (-want +got):\n%s", diff)
	}
	want := [][]string{
		{"#", "Product", "Qty", "Unit price", "Subtotal", "Status"},
		{"1", "🍎 Apple", "3", "$2000", "$6000", "✅ purchased"},
		{"2", "🥛 Milk", "1", "$4500", "$4500", "🍽 consumed"},
		{"3", "🍎 Product 999", "2", "$100", "$200", "🛍 to buy"},
	}
	if len(got.Tables) != 1 {
		t.Fatalf("got %d tables, want 1:\n%s", len(got.Tables), md)
	}
	if diff := cmp.Diff(want, got.Tables[0]); diff != "" {
		t.Errorf("items table (-want +got):\n%s", diff)
	}
	for _, s := range []string{"2 of 3 items purchased", "**Total: $10700** ($200 left to buy)", "67%"} {
		if !strings.Contains(md, s) {
			t.Errorf("list misses %q:\n%s", s, md)
		}
	}
}

func TestList_Empty(t *testing.T) {
	md := List(pantry.List{Name: "Party"}, nil, nil)
	if got := parse(t, md); len(got.Tables) != 0 {
		t.Errorf("empty list rendered %d tables", len(got.Tables))
	}
	if !strings.Contains(md, "This list is empty") {
		t.Errorf("empty list misses its hint:\n%s", md)
	}
}

func TestLists(t *testing.T) {
	lists := []pantry.List{
		{Name: "Party", Total: dec("0")},
		{Name: "Weekly", Items: []pantry.ListItem{{Purchased: true}, {}}, Total: dec("2500")},
	}
	got := parse(t, Lists(lists, peso))
	if len(got.Tables) != 1 || len(got.Tables[0]) != 3 {
		t.Fatalf("got tables %v, want one table with 2 lists", got.Tables)
	}
	row := got.Tables[0][2]
	if row[0] != "2" || row[1] != "Weekly" || !strings.HasPrefix(row[3], "1/2 ") || row[4] != "$2500" {
		t.Errorf("second row = %q", row)
	}

	if md := Lists(nil, peso); !strings.Contains(md, "No list yet") {
		t.Errorf("empty overview misses its hint:\n%s", md)
	}
}

func TestInventory(t *testing.T) {
	entries := []pantry.InventoryEntry{
		{ProductID: 1, Quantity: 5, Name: "Apple", Icon: "🍎"},
		{ProductID: 2, Quantity: 1, Name: "Banana", Icon: "🍌"},
	}
	history := []pantry.StockEvent{
		{ProductID: 1, Name: "Apple", Icon: "🍎", Quantity: 2},
		{ProductID: 2, Name: "Banana", Icon: "🍌", Quantity: 1},
		{ProductID: 1, Name: "Apple", Icon: "🍎", Quantity: 3},
	}
	md := Inventory(entries, history, 2)
	got := parse(t, md)
	if diff := cmp.Diff([]string{"📦 Inventory", "Latest stock-ins"}, got.Headings); diff != "" {
		t.Errorf("headings (-want +got):\n%s", diff)
	}
	if len(got.Tables) != 2 || len(got.Tables[1]) != 3 {
		t.Fatalf("tables = %v, want the history capped to 2 rows", got.Tables)
	}
	if !strings.Contains(md, "**6 units on hand.**") {
		t.Errorf("inventory misses the unit count:\n%s", md)
	}
}

func TestExpenses(t *testing.T) {
	records := []pantry.ExpenseRecord{
		{Description: "Purchased 3 Apples", Amount: dec("6000"), Category: "Purchase", CategoryIcon: "🛒"},
		{Description: "Rent", Amount: dec("500000"), Category: "Other", CategoryIcon: "💵"},
	}
	md := Expenses(records, dec("506000"), peso)
	got := parse(t, md)
	if len(got.Tables) != 1 {
		t.Fatalf("got %d tables, want 1", len(got.Tables))
	}
	if row := got.Tables[0][1]; row[2] != "Purchased 3 Apples" || row[3] != "🛒 Purchase" || row[4] != "$6000" {
		t.Errorf("first row = %q", row)
	}
	if !strings.Contains(md, "**Total spent: $506000**") {
		t.Errorf("expenses miss the total:\n%s", md)
	}
}

func TestStats(t *testing.T) {
	s := &pantry.Stats{
		Range:          date.NewRange(date.New(2025, time.March, 14), date.Monthly),
		InventoryUnits: 5,
		ListedUnits:    4,
		TopStocked:     &pantry.ProductCount{ProductID: 1, Name: "Apple", Icon: "🍎", Quantity: 3},
		Expenses:       2,
		Total:          dec("15000"),
		PeriodTotal:    dec("9000"),
		ByCategory:     []pantry.CategoryTotal{{Category: "Purchase", Icon: "🛒", Total: dec("15000")}},
		Trend:          []pantry.DailyTotal{{Date: date.New(2025, time.March, 15), Total: dec("9000")}},
		Lists:          []pantry.ListProgress{{Name: "Weekly", Purchased: 1, Items: 2, Percent: 50}},
		RecentStock:    []pantry.StockEvent{{Name: "Apple", Icon: "🍎", Quantity: 3}},
	}
	md := Stats(s, peso)
	got := parse(t, md)
	wantHeadings := []string{"📊 Statistics", "Overview", "Spending", "Recent activity"}
	if diff := cmp.Diff(wantHeadings, got.Headings); diff != "" {
		t.Errorf("headings (-want +got):\n%s", diff)
	}
	if n := len(got.Tables); n != 4 {
		t.Errorf("got %d tables, want 4:\n%s", n, md)
	}
	for _, want := range []string{
		"| Most stocked | 🍎 Apple (3) |",
		"| Most listed | - |",
		"$9000 from 2025-03-01 to 2025-03-31",
		"- 🍎 Apple +3",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("stats miss %q:\n%s", want, md)
		}
	}
}

func TestCatalog(t *testing.T) {
	items := pantry.DefaultCatalog().Items()
	got := parse(t, Catalog(items, peso))
	if len(got.Headings) < 2 || got.Headings[1] != "Fruits" {
		t.Errorf("headings = %v, want categories after the title", got.Headings)
	}
	rows := 0
	for _, table := range got.Tables {
		rows += len(table) - 1
	}
	if rows != len(items) {
		t.Errorf("catalog shows %d products, want %d", rows, len(items))
	}
}

func TestSettings(t *testing.T) {
	md := Settings(pantry.DefaultSettings(), []string{"COP", "EUR", "USD"})
	got := parse(t, md)
	want := [][]string{
		{"Setting", "Value"},
		{"Currency", "COP"},
		{"Theme", "light"},
		{"Notifications", "on"},
	}
	if len(got.Tables) != 1 {
		t.Fatalf("got %d tables", len(got.Tables))
	}
	if diff := cmp.Diff(want, got.Tables[0]); diff != "" {
		t.Errorf("settings (-want +got):\n%s", diff)
	}
	if !strings.Contains(md, "Available currencies: COP, EUR, USD.") {
		t.Errorf("settings miss the currencies:\n%s", md)
	}
}
