package cmd

import (
	"testing"

	"github.com/etnz/pantry"
)

func TestResolveList(t *testing.T) {
	lists := []pantry.List{
		{ID: "0190a1-aaaa", Name: "Groceries"},
		{ID: "0190a1-bbbb", Name: "Party"},
		{ID: "0190b2-cccc", Name: "12"},
	}
	tests := []struct {
		ref     string
		want    string
		wantErr bool
	}{
		{ref: "1", want: "0190a1-aaaa"},
		{ref: "3", want: "0190b2-cccc"},
		{ref: "4", wantErr: true},
		{ref: "0", wantErr: true},
		{ref: "party", want: "0190a1-bbbb"},
		{ref: "0190a1-bbbb", want: "0190a1-bbbb"},
		{ref: "0190b", want: "0190b2-cccc"},
		{ref: "0190a", wantErr: true}, // ambiguous
		{ref: "zzz", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			got, err := resolveList(lists, tt.ref)
			if (err != nil) != tt.wantErr {
				t.Fatalf("resolveList(%q) error = %v, wantErr %v", tt.ref, err, tt.wantErr)
			}
			if err == nil && got.ID != tt.want {
				t.Errorf("resolveList(%q) = %q, want %q", tt.ref, got.ID, tt.want)
			}
		})
	}
}

func TestResolveItem(t *testing.T) {
	l := pantry.List{Name: "Groceries", Items: []pantry.ListItem{{ID: "a1"}, {ID: "a2"}, {ID: "b1"}}}
	if it, err := resolveItem(l, "2"); err != nil || it.ID != "a2" {
		t.Errorf("resolveItem(2) = %v, %v", it.ID, err)
	}
	if it, err := resolveItem(l, "b"); err != nil || it.ID != "b1" {
		t.Errorf("resolveItem(b) = %v, %v", it.ID, err)
	}
	for _, ref := range []string{"a", "c", "9"} {
		if _, err := resolveItem(l, ref); err == nil {
			t.Errorf("resolveItem(%q) succeeded, want an error", ref)
		}
	}
}

func TestResolveProduct(t *testing.T) {
	c := pantry.DefaultCatalog()
	tests := []struct {
		ref     string
		want    int
		wantErr bool
	}{
		{ref: "1", want: 1},
		{ref: "milk", want: 11},
		{ref: "Croiss", want: 16},
		{ref: "an", wantErr: true}, // Banana, Orange, Croissant
		{ref: "999", wantErr: true},
		{ref: "unobtainium", wantErr: true},
	}
	for _, tt := range tests {
		got, err := resolveProduct(c, tt.ref)
		if (err != nil) != tt.wantErr {
			t.Errorf("resolveProduct(%q) error = %v, wantErr %v", tt.ref, err, tt.wantErr)
			continue
		}
		if err == nil && got.ID != tt.want {
			t.Errorf("resolveProduct(%q) = %d, want %d", tt.ref, got.ID, tt.want)
		}
	}
}

func TestResolveExpense(t *testing.T) {
	records := []pantry.ExpenseRecord{{ID: "x"}, {ID: "y"}}
	if r, err := resolveExpense(records, "2"); err != nil || r.ID != "y" {
		t.Errorf("resolveExpense(2) = %v, %v", r.ID, err)
	}
	if r, err := resolveExpense(records, "x"); err != nil || r.ID != "x" {
		t.Errorf("resolveExpense(x) = %v, %v", r.ID, err)
	}
	if _, err := resolveExpense(records, "3"); err == nil {
		t.Error("resolveExpense(3) succeeded, want an error")
	}
}
