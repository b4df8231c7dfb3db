package pantry

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/etnz/pantry/kv"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ListStore owns the shopping lists and the lifetime of their items.
type ListStore struct {
	mu      sync.RWMutex
	store   kv.Store
	lists   []List // most recent first
	history []ListEvent

	catalog  ProductLookup
	adds     *inflight
	debounce time.Duration
	lastAdd  map[string]time.Time

	log     *slog.Logger
	metrics *Metrics
	now     func() time.Time
}

func newListStore(ctx context.Context, store kv.Store, catalog ProductLookup, o *Options) *ListStore {
	s := &ListStore{
		store:    store,
		catalog:  catalog,
		adds:     newInflight(),
		debounce: o.AddDebounce,
		lastAdd:  make(map[string]time.Time),
		log:      o.Logger.With("store", "lists"),
		metrics:  o.Metrics,
		now:      o.Now,
	}
	s.reload(ctx)
	return s
}

// reload replaces the in-memory state with the persisted documents. The read
// happens under the lock so that it cannot interleave with a mutation.
func (s *ListStore) reload(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lists := loadDocument[[]List](ctx, s.store, KeyLists, s.log)
	history := loadDocument[[]ListEvent](ctx, s.store, KeyListHistory, s.log)
	for i := range lists {
		lists[i].recomputeTotal()
	}
	s.lists = lists
	s.history = history
}

func (s *ListStore) persistLocked(ctx context.Context) error {
	if s.lists == nil {
		s.lists = []List{}
	}
	return saveDocument(ctx, s.store, KeyLists, s.lists)
}

// index returns the position of the list, or -1. Callers hold the lock.
func (s *ListStore) index(listID string) int {
	return slices.IndexFunc(s.lists, func(l List) bool { return l.ID == listID })
}

// CreateList inserts a new empty list at the head of the collection.
func (s *ListStore) CreateList(ctx context.Context, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", invalid("name", "a list needs a name")
	}
	l := List{
		ID:        newID(),
		Name:      name,
		Items:     []ListItem{},
		CreatedAt: s.now().UTC(),
		Total:     decimal.Zero,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lists = append([]List{l}, s.lists...)
	s.metrics.listOp("create")
	s.log.Debug("list created", "list", l.ID, "name", name)
	return l.ID, s.persistLocked(ctx)
}

// RenameList changes the display name of a list.
func (s *ListStore) RenameList(ctx context.Context, listID, name string) (Outcome, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Rejected, invalid("name", "a list needs a name")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(listID)
	if i < 0 {
		s.log.Info("rename of unknown list ignored", "list", listID)
		return NotFound, nil
	}
	s.lists[i].Name = name
	s.metrics.listOp("rename")
	return Applied, s.persistLocked(ctx)
}

// AddItem adds quantity units of a product. An unpurchased item of the same
// product absorbs the quantity and takes the new unit price; otherwise a new
// item is appended.
//
// A call for a (list, product) pair that is already being added is dropped,
// and so is one arriving within the debounce window after the previous add of
// the same pair completed.
func (s *ListStore) AddItem(ctx context.Context, listID string, productID, quantity int, unitPrice decimal.Decimal) (Outcome, error) {
	if quantity < 1 {
		return Rejected, invalid("quantity", "must be at least 1, got %d", quantity)
	}
	if unitPrice.IsNegative() {
		return Rejected, invalid("price", "must not be negative, got %s", unitPrice)
	}

	key := productKey(listID, productID)
	if !s.adds.acquire(key) {
		s.metrics.listOp("add_suppressed")
		s.log.Debug("duplicate add dropped", "list", listID, "product", productID)
		return Suppressed, nil
	}
	defer s.adds.release(key)

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if last, ok := s.lastAdd[key]; ok && s.debounce > 0 && now.Sub(last) < s.debounce {
		s.metrics.listOp("add_suppressed")
		s.log.Debug("add within debounce window dropped", "list", listID, "product", productID)
		return Suppressed, nil
	}

	i := s.index(listID)
	if i < 0 {
		s.log.Info("add to unknown list ignored", "list", listID, "product", productID)
		return NotFound, nil
	}
	l := &s.lists[i]
	j := slices.IndexFunc(l.Items, func(it ListItem) bool {
		return it.ProductID == productID && !it.Purchased
	})
	if j >= 0 {
		l.Items[j].Quantity += quantity
		l.Items[j].UnitPrice = unitPrice
	} else {
		l.Items = append(l.Items, ListItem{
			ID:        newID(),
			ProductID: productID,
			Quantity:  quantity,
			UnitPrice: unitPrice,
		})
	}
	l.recomputeTotal()
	s.lastAdd[key] = now

	name, icon, _ := display(s.catalog, productID)
	s.history = append(s.history, ListEvent{
		ProductID: productID,
		Name:      name,
		Icon:      icon,
		Quantity:  quantity,
		Date:      now.UTC(),
	})
	s.metrics.listOp("add")

	return Applied, errors.Join(
		s.persistLocked(ctx),
		saveDocument(ctx, s.store, KeyListHistory, s.history),
	)
}

// RemoveItem deletes an item and lowers the total accordingly. Inventory and
// expenses written by an earlier purchase are left alone.
func (s *ListStore) RemoveItem(ctx context.Context, listID, itemID string) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(listID)
	if i < 0 {
		s.log.Info("remove from unknown list ignored", "list", listID, "item", itemID)
		return NotFound, nil
	}
	l := &s.lists[i]
	_, j := l.Item(itemID)
	if j < 0 {
		s.log.Info("remove of unknown item ignored", "list", listID, "item", itemID)
		return NotFound, nil
	}
	l.Items = slices.Delete(l.Items, j, j+1)
	l.recomputeTotal()
	s.metrics.listOp("remove")
	return Applied, s.persistLocked(ctx)
}

// DeleteList removes a list and its items.
func (s *ListStore) DeleteList(ctx context.Context, listID string) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(listID)
	if i < 0 {
		s.log.Info("delete of unknown list ignored", "list", listID)
		return NotFound, nil
	}
	s.lists = slices.Delete(s.lists, i, i+1)
	s.metrics.listOp("delete")
	return Applied, s.persistLocked(ctx)
}

// GetList returns a copy of the list. A missing list is logged, not an error.
func (s *ListStore) GetList(listID string) (List, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.index(listID)
	if i < 0 {
		s.log.Debug("list not found", "list", listID)
		return List{}, false
	}
	return s.lists[i].clone(), true
}

// Lists returns a copy of every list, most recent first.
func (s *ListStore) Lists() []List {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]List, len(s.lists))
	for i, l := range s.lists {
		out[i] = l.clone()
	}
	return out
}

// History returns the add-to-list events, most recent first.
func (s *ListStore) History() []ListEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := slices.Clone(s.history)
	slices.Reverse(out)
	return out
}

// markPurchased flips the purchased flag if, and only if, it is still false.
// The check and the flip happen under the same lock, so this is the single
// point deciding whether a purchase cascade may run.
func (s *ListStore) markPurchased(ctx context.Context, listID, itemID string) (ListItem, Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(listID)
	if i < 0 {
		return ListItem{}, NotFound, nil
	}
	l := &s.lists[i]
	it, j := l.Item(itemID)
	if j < 0 {
		return ListItem{}, NotFound, nil
	}
	if it.Purchased {
		return it, AlreadyPurchased, nil
	}
	l.Items[j].Purchased = true
	l.recomputeTotal()
	s.metrics.listOp("purchase")
	return l.Items[j], Applied, s.persistLocked(ctx)
}

// toggleConsumed flips the consumed flag. With requirePurchased an item that
// was not bought yet is refused.
func (s *ListStore) toggleConsumed(ctx context.Context, listID, itemID string, requirePurchased bool) (ListItem, Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(listID)
	if i < 0 {
		return ListItem{}, NotFound, nil
	}
	l := &s.lists[i]
	it, j := l.Item(itemID)
	if j < 0 {
		return ListItem{}, NotFound, nil
	}
	if requirePurchased && !it.Purchased && !it.Consumed {
		return it, NotPurchased, nil
	}
	l.Items[j].Consumed = !it.Consumed
	s.metrics.listOp("consume")
	return l.Items[j], Applied, s.persistLocked(ctx)
}

// newID returns a unique, time-ordered identifier.
func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
