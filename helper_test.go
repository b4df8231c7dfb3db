package pantry

import (
	"context"
	"testing"
	"time"

	"github.com/etnz/pantry/kv"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
)

// clock is a fixed time source tests can move forward.
type clock struct{ t time.Time }

func (c *clock) Now() time.Time          { return c.t }
func (c *clock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newClock(day string) *clock { return &clock{t: mustTime(day)} }

// mustTime returns 10:00 UTC on day.
func mustTime(day string) time.Time {
	t, err := time.Parse(time.DateOnly, day)
	if err != nil {
		panic(err)
	}
	return t.Add(10 * time.Hour)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func openTest(t *testing.T, store kv.Store, o Options) *Pantry {
	t.Helper()
	p, err := Open(context.Background(), store, o)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	return p
}

// newTestPantry opens an in-memory pantry on the bundled catalog.
func newTestPantry(t *testing.T) (*Pantry, *clock) {
	t.Helper()
	c := newClock("2025-03-14")
	return openTest(t, kv.NewMemory(), Options{Now: c.Now}), c
}

// decimalEqual lets cmp compare decimals by value.
var decimalEqual = cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })

// newListWith creates a list and adds catalog products to it, quantity per id.
func newListWith(t *testing.T, p *Pantry, name string, products ...[2]int) string {
	t.Helper()
	ctx := context.Background()
	id, err := p.Lists.CreateList(ctx, name)
	if err != nil {
		t.Fatalf("CreateList(%q) failed: %v", name, err)
	}
	for _, pq := range products {
		if o, err := p.AddProduct(ctx, id, pq[0], pq[1]); err != nil || o != Applied {
			t.Fatalf("AddProduct(%d, %d) = %v, %v, want applied", pq[0], pq[1], o, err)
		}
	}
	return id
}
