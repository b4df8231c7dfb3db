package pantry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/etnz/pantry/kv"
)

// Keys of the persisted documents. Each one is read in full when the pantry
// opens and rewritten in full after every mutation.
const (
	KeyLists            = "lists"
	KeyListHistory      = "list_history"
	KeyInventory        = "inventory"
	KeyInventoryHistory = "inventory_history"
	KeyExpenses         = "expenses"
	KeySettings         = "settings"
)

// loadDocument decodes the document at key. A missing, unreadable or
// malformed document yields the zero value: one broken document never
// prevents the others from loading.
func loadDocument[T any](ctx context.Context, store kv.Store, key string, log *slog.Logger) T {
	var v T
	data, err := store.Get(ctx, key)
	if errors.Is(err, kv.ErrNotFound) {
		log.Debug("document absent, starting empty", "key", key)
		return v
	}
	if err != nil {
		log.Warn("cannot read document, starting empty", "key", key, "err", err)
		return v
	}
	if err := json.Unmarshal(data, &v); err != nil {
		log.Warn("malformed document, starting empty", "key", key, "err", err)
		var zero T
		return zero
	}
	return v
}

func saveDocument(ctx context.Context, store kv.Store, key string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	if err := store.Set(ctx, key, append(data, '\n')); err != nil {
		return fmt.Errorf("persist %s: %w", key, err)
	}
	return nil
}

func encode[T any](w io.Writer, v []T) error {
	if v == nil {
		v = []T{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func decode[T any](r io.Reader) ([]T, error) {
	var v []T
	if err := json.NewDecoder(r).Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// EncodeLists writes lists in the persisted document format.
func EncodeLists(w io.Writer, lists []List) error { return encode(w, lists) }

// DecodeLists reads lists written by EncodeLists.
func DecodeLists(r io.Reader) ([]List, error) { return decode[List](r) }

// EncodeInventory writes inventory entries in the persisted document format.
func EncodeInventory(w io.Writer, entries []InventoryEntry) error { return encode(w, entries) }

// DecodeInventory reads entries written by EncodeInventory.
func DecodeInventory(r io.Reader) ([]InventoryEntry, error) { return decode[InventoryEntry](r) }

// EncodeExpenses writes expense records in the persisted document format.
func EncodeExpenses(w io.Writer, records []ExpenseRecord) error { return encode(w, records) }

// DecodeExpenses reads records written by EncodeExpenses.
func DecodeExpenses(r io.Reader) ([]ExpenseRecord, error) { return decode[ExpenseRecord](r) }
