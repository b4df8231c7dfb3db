package pantry

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/etnz/pantry/kv"
)

// InventoryEntry is the on-hand quantity of one product.
type InventoryEntry struct {
	ProductID int    `json:"productId"`
	Quantity  int    `json:"quantity"`
	Name      string `json:"name"`
	Icon      string `json:"icon"`
}

// StockEvent is one stock-in, kept in a log independent of the live entries.
type StockEvent struct {
	ProductID int       `json:"productId"`
	Name      string    `json:"name"`
	Icon      string    `json:"icon"`
	Quantity  int       `json:"quantity"`
	Date      time.Time `json:"date"`
}

// InventoryWriter is what the purchase cascade needs from the inventory.
type InventoryWriter interface {
	StockIn(ctx context.Context, productID, quantity int, name, icon string) error
}

// InventoryLedger maps products to on-hand quantities. Quantities only grow:
// consumption is tracked on list items, not here.
type InventoryLedger struct {
	mu      sync.RWMutex
	store   kv.Store
	entries []InventoryEntry // first stock-in order
	history []StockEvent     // chronological

	log     *slog.Logger
	metrics *Metrics
	now     func() time.Time
}

func newInventoryLedger(ctx context.Context, store kv.Store, o *Options) *InventoryLedger {
	l := &InventoryLedger{
		store:   store,
		log:     o.Logger.With("store", "inventory"),
		metrics: o.Metrics,
		now:     o.Now,
	}
	l.reload(ctx)
	return l
}

func (l *InventoryLedger) reload(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = loadDocument[[]InventoryEntry](ctx, l.store, KeyInventory, l.log)
	l.history = loadDocument[[]StockEvent](ctx, l.store, KeyInventoryHistory, l.log)
}

// StockIn adds quantity units of a product, creating its entry on first use.
// The stock-in is also appended to the inventory history.
func (l *InventoryLedger) StockIn(ctx context.Context, productID, quantity int, name, icon string) error {
	if quantity < 1 {
		return invalid("quantity", "must be at least 1, got %d", quantity)
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	i := slices.IndexFunc(l.entries, func(e InventoryEntry) bool { return e.ProductID == productID })
	if i >= 0 {
		l.entries[i].Quantity += quantity
	} else {
		l.entries = append(l.entries, InventoryEntry{
			ProductID: productID,
			Quantity:  quantity,
			Name:      name,
			Icon:      icon,
		})
	}
	l.history = append(l.history, StockEvent{
		ProductID: productID,
		Name:      name,
		Icon:      icon,
		Quantity:  quantity,
		Date:      l.now().UTC(),
	})
	l.metrics.ledgerWrite("inventory")
	l.log.Debug("stock in", "product", productID, "quantity", quantity)

	return errors.Join(
		saveDocument(ctx, l.store, KeyInventory, l.entries),
		saveDocument(ctx, l.store, KeyInventoryHistory, l.history),
	)
}

// All returns the entries in the order products were first stocked.
func (l *InventoryLedger) All() []InventoryEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.entries)
}

// Get returns the entry of a product.
func (l *InventoryLedger) Get(productID int) (InventoryEntry, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	i := slices.IndexFunc(l.entries, func(e InventoryEntry) bool { return e.ProductID == productID })
	if i < 0 {
		return InventoryEntry{}, false
	}
	return l.entries[i], true
}

// History returns the stock-in events, most recent first.
func (l *InventoryLedger) History() []StockEvent {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := slices.Clone(l.history)
	slices.Reverse(out)
	return out
}
