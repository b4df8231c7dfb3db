package pantry

import (
	"context"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/etnz/pantry/date"
	"github.com/etnz/pantry/kv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

// Options configures a Pantry. The zero value is usable.
type Options struct {
	// Logger receives the structured logs. Nil discards them.
	Logger *slog.Logger
	// Metrics counts mutations. When nil, counters are created and registered
	// on Registerer if that one is set.
	Metrics    *Metrics
	Registerer prometheus.Registerer

	// Catalog is the reference data. Nil means the bundled catalog.
	Catalog *Catalog
	// Rates is the currency conversion table. Nil means DefaultRates.
	Rates Rates

	// AddDebounce drops an add of a product that arrives within this window
	// after the previous add of the same product to the same list.
	AddDebounce time.Duration
	// ConsumeRequiresPurchase refuses to mark consumed an item not purchased.
	ConsumeRequiresPurchase bool

	// Now is the clock. Nil means time.Now.
	Now func() time.Time
}

func (o *Options) defaults() {
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	if o.Metrics == nil && o.Registerer != nil {
		o.Metrics = NewMetrics(o.Registerer)
	}
	if o.Catalog == nil {
		o.Catalog = DefaultCatalog()
	}
	if o.Rates == nil {
		o.Rates = DefaultRates()
	}
	if o.Now == nil {
		o.Now = time.Now
	}
}

// Pantry is the household store: shopping lists, inventory, expenses and
// settings, all persisted on one kv.Store.
type Pantry struct {
	Catalog   *Catalog
	Lists     *ListStore
	Inventory *InventoryLedger
	Expenses  *ExpenseLedger
	Settings  *SettingsStore
	Cascade   *Cascade

	store kv.Store
	log   *slog.Logger
}

// Open loads every document from store. Documents that cannot be read start
// empty; Open itself only fails on a nil store.
func Open(ctx context.Context, store kv.Store, o Options) (*Pantry, error) {
	if store == nil {
		return nil, invalid("store", "a pantry needs a store")
	}
	o.defaults()
	p := &Pantry{
		Catalog:   o.Catalog,
		Lists:     newListStore(ctx, store, o.Catalog, &o),
		Inventory: newInventoryLedger(ctx, store, &o),
		Expenses:  newExpenseLedger(ctx, store, &o),
		Settings:  newSettingsStore(ctx, store, &o),
		store:     store,
		log:       o.Logger,
	}
	p.Cascade = NewCascade(p.Lists, p.Inventory, p.Expenses, o.Catalog, o)
	p.log.Debug("pantry opened", "lists", len(p.Lists.Lists()), "inventory", len(p.Inventory.All()), "expenses", len(p.Expenses.All()))
	return p, nil
}

// Close releases the underlying store.
func (p *Pantry) Close() error { return p.store.Close() }

// AddProduct adds a catalog product to a list at its catalog price.
func (p *Pantry) AddProduct(ctx context.Context, listID string, productID, quantity int) (Outcome, error) {
	it, ok := p.Catalog.Lookup(productID)
	if !ok {
		p.log.Info("add of unknown product ignored", "list", listID, "product", productID)
		return NotFound, nil
	}
	return p.Lists.AddItem(ctx, listID, productID, quantity, it.Price)
}

// MarkPurchased runs the purchase cascade, see Cascade.MarkPurchased.
func (p *Pantry) MarkPurchased(ctx context.Context, listID, itemID string) (Outcome, error) {
	return p.Cascade.MarkPurchased(ctx, listID, itemID)
}

// MarkConsumed toggles the consumed flag, see Cascade.MarkConsumed.
func (p *Pantry) MarkConsumed(ctx context.Context, listID, itemID string) (Outcome, error) {
	return p.Cascade.MarkConsumed(ctx, listID, itemID)
}

// Spend records a manual expense. Its icon is the one of the catalog product
// named like the category, if any.
func (p *Pantry) Spend(ctx context.Context, description string, amount decimal.Decimal, category string, on time.Time) (string, error) {
	if !amount.IsPositive() {
		return "", invalid("amount", "must be positive, got %s", amount)
	}
	category = strings.TrimSpace(category)
	return p.Expenses.Record(ctx, description, amount, category, p.Catalog.IconFor(category), on)
}

// Stats summarizes the pantry, with period figures for the period p that
// contains the day on.
func (p *Pantry) Stats(on date.Date, period date.Period) *Stats {
	return computeStats(
		p.Lists.Lists(),
		p.Inventory.All(),
		p.Inventory.History(),
		p.Lists.History(),
		p.Expenses.All(),
		date.NewRange(on, period),
	)
}

// Watch reloads the stores whose documents change in the underlying kv.Store
// and calls fn with the key once the reload is done. Notifications are
// coalesced and handled on a separate goroutine, in key order. It is meant
// for observers: a process mutating the pantry sees its own writes come back.
// Watching stops when ctx is done.
func (p *Pantry) Watch(ctx context.Context, fn func(key string)) {
	var (
		mu      sync.Mutex
		pending = make(map[string]struct{})
		wake    = make(chan struct{}, 1)
	)
	cancel := p.store.Subscribe(func(key string) {
		mu.Lock()
		pending[key] = struct{}{}
		mu.Unlock()
		select {
		case wake <- struct{}{}:
		default:
		}
	})
	go func() {
		defer cancel()
		for {
			select {
			case <-ctx.Done():
				return
			case <-wake:
			}
			mu.Lock()
			keys := slices.Sorted(maps.Keys(pending))
			clear(pending)
			mu.Unlock()
			for _, key := range keys {
				if p.reload(ctx, key) && fn != nil {
					fn(key)
				}
			}
		}
	}()
}

// reload refreshes the store owning key. It reports false for unknown keys.
func (p *Pantry) reload(ctx context.Context, key string) bool {
	switch key {
	case KeyLists, KeyListHistory:
		p.Lists.reload(ctx)
	case KeyInventory, KeyInventoryHistory:
		p.Inventory.reload(ctx)
	case KeyExpenses:
		p.Expenses.reload(ctx)
	case KeySettings:
		p.Settings.reload(ctx)
	default:
		return false
	}
	p.log.Debug("document changed", "key", key)
	return true
}
