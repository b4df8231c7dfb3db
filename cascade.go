package pantry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Cascade propagates list actions into the other ledgers. Marking an item
// purchased stocks it into the inventory and records an expense; nothing is
// ever undone on the ledgers afterwards.
type Cascade struct {
	lists     *ListStore
	inventory InventoryWriter
	expenses  ExpenseWriter
	catalog   ProductLookup

	running                 *inflight
	consumeRequiresPurchase bool

	log     *slog.Logger
	metrics *Metrics
	now     func() time.Time
}

// NewCascade wires the engine on its collaborators.
func NewCascade(lists *ListStore, inventory InventoryWriter, expenses ExpenseWriter, catalog ProductLookup, o Options) *Cascade {
	o.defaults()
	return &Cascade{
		lists:                   lists,
		inventory:               inventory,
		expenses:                expenses,
		catalog:                 catalog,
		running:                 newInflight(),
		consumeRequiresPurchase: o.ConsumeRequiresPurchase,
		log:                     o.Logger.With("component", "cascade"),
		metrics:                 o.Metrics,
		now:                     o.Now,
	}
}

// MarkPurchased runs the purchase cascade of an item at most once.
//
// The outcome is Applied only for the call that flipped the item to
// purchased. A call made while another one for the same item is still
// running returns Suppressed; later calls return AlreadyPurchased. Missing
// lists or items return NotFound. None of those touch any store.
//
// Once the item is flipped, the inventory stock-in and the expense record are
// attempted regardless of ctx cancellation and regardless of each other's
// failure. Their errors are returned joined, with the outcome still Applied:
// the purchased flag is not reverted.
func (c *Cascade) MarkPurchased(ctx context.Context, listID, itemID string) (Outcome, error) {
	key := itemKey(listID, itemID)
	if !c.running.acquire(key) {
		c.metrics.cascade(Suppressed)
		c.log.Debug("purchase already in flight", "list", listID, "item", itemID)
		return Suppressed, nil
	}
	defer c.running.release(key)

	item, outcome, err := c.lists.markPurchased(ctx, listID, itemID)
	c.metrics.cascade(outcome)
	switch {
	case outcome == NotFound:
		c.log.Info("purchase of unknown item ignored", "list", listID, "item", itemID)
		return outcome, nil
	case outcome != Applied:
		return outcome, nil
	case err != nil:
		// the flag is flipped in memory, only its persistence failed: keep going.
		err = fmt.Errorf("persist purchased flag: %w", err)
	}

	ctx = context.WithoutCancel(ctx)
	name, icon, known := display(c.catalog, item.ProductID)
	if !known {
		c.log.Warn("product missing from catalog, using placeholder", "product", item.ProductID)
	}

	var errs []error
	if err != nil {
		errs = append(errs, err)
	}
	if err := c.inventory.StockIn(ctx, item.ProductID, item.Quantity, name, icon); err != nil {
		errs = append(errs, fmt.Errorf("stock in %q: %w", name, err))
	}
	amount := item.Subtotal()
	if _, err := c.expenses.Record(ctx, purchaseDescription(name, item.Quantity, known), amount, PurchaseCategory, PurchaseCategoryIcon, c.now()); err != nil {
		errs = append(errs, fmt.Errorf("record expense for %q: %w", name, err))
	}
	if err := errors.Join(errs...); err != nil {
		c.log.Error("purchase cascade incomplete", "list", listID, "item", itemID, "err", err)
		return Applied, err
	}
	c.log.Info("item purchased", "list", listID, "item", itemID, "product", item.ProductID, "quantity", item.Quantity, "amount", amount.String())
	return Applied, nil
}

// MarkConsumed toggles the consumed flag of an item. It never touches the
// inventory or the expenses. Unless the cascade was built with
// ConsumeRequiresPurchase, it does not check that the item was purchased.
func (c *Cascade) MarkConsumed(ctx context.Context, listID, itemID string) (Outcome, error) {
	_, outcome, err := c.lists.toggleConsumed(ctx, listID, itemID, c.consumeRequiresPurchase)
	switch outcome {
	case NotFound:
		c.log.Info("consume of unknown item ignored", "list", listID, "item", itemID)
	case NotPurchased:
		c.log.Info("consume refused, item not purchased", "list", listID, "item", itemID)
	}
	return outcome, err
}

// InFlight reports whether a purchase of that item is running right now.
func (c *Cascade) InFlight(listID, itemID string) bool {
	return c.running.busy(itemKey(listID, itemID))
}

// purchaseDescription phrases the expense of a purchase, like "Purchased 3 Apples".
// Placeholder names of products missing from the catalog are not pluralized.
func purchaseDescription(name string, quantity int, known bool) string {
	if !known {
		return fmt.Sprintf("Purchased %d × %s", quantity, name)
	}
	if quantity != 1 {
		name = plural(name)
	}
	return fmt.Sprintf("Purchased %d %s", quantity, name)
}

// plural applies the regular English plural rules to the last word of name.
func plural(name string) string {
	lower := strings.ToLower(name)
	switch {
	case lower == "":
		return name
	case strings.HasSuffix(lower, "s"), strings.HasSuffix(lower, "x"), strings.HasSuffix(lower, "z"),
		strings.HasSuffix(lower, "ch"), strings.HasSuffix(lower, "sh"):
		return name + "es"
	case strings.HasSuffix(lower, "y") && len(lower) > 1 && !strings.ContainsRune("aeiou", rune(lower[len(lower)-2])):
		return name[:len(name)-1] + "ies"
	case strings.HasSuffix(lower, "o") && len(lower) > 1 && !strings.ContainsRune("aeiou", rune(lower[len(lower)-2])):
		return name + "es"
	default:
		return name + "s"
	}
}
