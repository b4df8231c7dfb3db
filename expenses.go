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
	"github.com/shopspring/decimal"
)

// ErrExpenseNotFound is returned when removing an unknown expense.
var ErrExpenseNotFound = errors.New("expense not found")

// Category used for expenses recorded by the purchase cascade.
const (
	PurchaseCategory     = "Purchase"
	PurchaseCategoryIcon = "🛒"
)

// ExpenseRecord is an immutable spending entry.
type ExpenseRecord struct {
	ID           string          `json:"id"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	Category     string          `json:"category"`
	CategoryIcon string          `json:"categoryIcon"`
	Date         time.Time       `json:"date"`
}

// ExpenseWriter is what the purchase cascade needs from the expense ledger.
type ExpenseWriter interface {
	Record(ctx context.Context, description string, amount decimal.Decimal, category, icon string, date time.Time) (string, error)
}

// ExpenseLedger is the list of expense records, most recent first.
type ExpenseLedger struct {
	mu      sync.RWMutex
	store   kv.Store
	records []ExpenseRecord

	log     *slog.Logger
	metrics *Metrics
	now     func() time.Time
}

func newExpenseLedger(ctx context.Context, store kv.Store, o *Options) *ExpenseLedger {
	l := &ExpenseLedger{
		store:   store,
		log:     o.Logger.With("store", "expenses"),
		metrics: o.Metrics,
		now:     o.Now,
	}
	l.reload(ctx)
	return l
}

func (l *ExpenseLedger) reload(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = loadDocument[[]ExpenseRecord](ctx, l.store, KeyExpenses, l.log)
}

// Record prepends a new expense and returns its generated id. A zero date
// means now.
func (l *ExpenseLedger) Record(ctx context.Context, description string, amount decimal.Decimal, category, icon string, date time.Time) (string, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return "", invalid("description", "an expense needs a description")
	}
	if amount.IsNegative() {
		return "", invalid("amount", "must not be negative, got %s", amount)
	}
	if strings.TrimSpace(category) == "" {
		category = "Other"
	}
	if icon == "" {
		icon = defaultExpenseIcon
	}
	if date.IsZero() {
		date = l.now()
	}
	rec := ExpenseRecord{
		ID:           newID(),
		Description:  description,
		Amount:       amount,
		Category:     category,
		CategoryIcon: icon,
		Date:         date.UTC(),
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append([]ExpenseRecord{rec}, l.records...)
	l.metrics.ledgerWrite("expenses")
	l.log.Debug("expense recorded", "id", rec.ID, "amount", amount.String())
	return rec.ID, saveDocument(ctx, l.store, KeyExpenses, l.records)
}

// Remove deletes one record.
func (l *ExpenseLedger) Remove(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	i := slices.IndexFunc(l.records, func(r ExpenseRecord) bool { return r.ID == id })
	if i < 0 {
		return ErrExpenseNotFound
	}
	l.records = slices.Delete(l.records, i, i+1)
	return saveDocument(ctx, l.store, KeyExpenses, l.records)
}

// Total sums every recorded amount.
func (l *ExpenseLedger) Total() decimal.Decimal {
	l.mu.RLock()
	defer l.mu.RUnlock()
	total := decimal.Zero
	for _, r := range l.records {
		total = total.Add(r.Amount)
	}
	return total
}

// All returns the records, most recent first.
func (l *ExpenseLedger) All() []ExpenseRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.records)
}
