package cmd

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/etnz/pantry"
	"github.com/etnz/pantry/kv"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// setup points the global flags at a fresh data directory and an empty
// configuration directory.
func setup(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	dir := filepath.Join(home, "data")

	oldData, oldBackend, oldConfig := *dataDir, *backend, *configFile
	*dataDir, *backend, *configFile = dir, kv.BackendDir, ""
	t.Cleanup(func() { *dataDir, *backend, *configFile = oldData, oldBackend, oldConfig })
	return dir
}

// gro runs one command line and returns what it printed.
func gro(t *testing.T, args ...string) (string, subcommands.ExitStatus) {
	t.Helper()
	var buf bytes.Buffer
	old := out
	out = &buf
	defer func() { out = old }()

	fs := flag.NewFlagSet("gro", flag.ContinueOnError)
	commander := subcommands.NewCommander(fs, "gro")
	Register(commander)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse %v: %v", args, err)
	}
	status := commander.Execute(context.Background())
	return buf.String(), status
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	got, status := gro(t, args...)
	if status != subcommands.ExitSuccess {
		t.Fatalf("gro %s: status %v, output:\n%s", strings.Join(args, " "), status, got)
	}
	return got
}

// reopen opens the data directory the commands wrote to.
func reopen(t *testing.T, dir string) *pantry.Pantry {
	t.Helper()
	store, err := kv.Open(kv.BackendDir, dir)
	if err != nil {
		t.Fatal(err)
	}
	p, err := pantry.Open(context.Background(), store, pantry.Options{})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { p.Close() })
	return p
}

func TestPurchaseScenario(t *testing.T) {
	dir := setup(t)

	mustRun(t, "new", "groceries")
	got := mustRun(t, "add", "-q", "3", "groceries", "apple")
	if !strings.Contains(got, "✅ add 3 🍎 Apple: done") {
		t.Errorf("add output = %q", got)
	}
	mustRun(t, "add", "groceries", "milk")

	got = mustRun(t, "buy", "groceries", "1")
	if !strings.Contains(got, "✅ buy 🍎 Apple: done") {
		t.Errorf("buy output = %q", got)
	}
	if !strings.Contains(got, "stocked") {
		t.Errorf("buy output = %q, want a notification", got)
	}

	got = mustRun(t, "buy", "groceries", "1")
	if !strings.Contains(got, "already purchased") {
		t.Errorf("second buy output = %q, want already purchased", got)
	}

	p := reopen(t, dir)
	e, ok := p.Inventory.Get(1)
	if !ok || e.Quantity != 3 {
		t.Errorf("inventory of apples = %v %v, want 3", e, ok)
	}
	records := p.Expenses.All()
	if len(records) != 1 {
		t.Fatalf("got %d expenses, want 1", len(records))
	}
	if r := records[0]; r.Description != "Purchased 3 Apples" || !r.Amount.Equal(decimal.NewFromInt(6000)) || r.Category != pantry.PurchaseCategory {
		t.Errorf("expense = %+v, want Purchased 3 Apples for 6000", r)
	}
	lists := p.Lists.Lists()
	if len(lists) != 1 || !lists[0].Total.Equal(decimal.NewFromInt(10500)) {
		t.Errorf("lists = %+v, want one list totaling 10500", lists)
	}
}

func TestItemsCommands(t *testing.T) {
	dir := setup(t)
	mustRun(t, "new", "party")
	mustRun(t, "add", "-price", "1000", "party", "banana", "bread")

	got := mustRun(t, "eat", "party", "2")
	if !strings.Contains(got, "✅ eat 🍞 Bread: done") {
		t.Errorf("eat output = %q", got)
	}
	mustRun(t, "rm", "party", "1")

	p := reopen(t, dir)
	l := p.Lists.Lists()[0]
	if len(l.Items) != 1 || l.Items[0].ProductID != 15 || !l.Items[0].Consumed {
		t.Errorf("items = %+v, want consumed bread only", l.Items)
	}
	if !l.Total.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("total = %v, want 1000", l.Total)
	}
	if len(p.Expenses.All()) != 0 {
		t.Error("removing and eating items recorded expenses")
	}
}

func TestListsCommands(t *testing.T) {
	dir := setup(t)
	mustRun(t, "new", "first")
	mustRun(t, "new", "second")
	mustRun(t, "rename", "first", "weekly", "groceries")

	got := mustRun(t, "drop", "second")
	if !strings.Contains(got, `✅ drop "second": done`) {
		t.Errorf("drop output = %q", got)
	}
	mustRun(t, "lists")
	mustRun(t, "show", "1")

	p := reopen(t, dir)
	lists := p.Lists.Lists()
	if len(lists) != 1 || lists[0].Name != "weekly groceries" {
		t.Errorf("lists = %+v, want only weekly groceries", lists)
	}
}

func TestLedgerCommands(t *testing.T) {
	dir := setup(t)
	mustRun(t, "spend", "-c", "Household", "-d", "2025-03-01", "12000", "dish", "soap")
	mustRun(t, "spend", "5000", "bus")
	mustRun(t, "expenses")
	mustRun(t, "inventory")
	mustRun(t, "stats", "-p", "year", "-d", "2025-06-01")

	// most recent first: the bus ticket is #1.
	mustRun(t, "unspend", "1")

	p := reopen(t, dir)
	records := p.Expenses.All()
	if len(records) != 1 || records[0].Description != "dish soap" || records[0].Category != "Household" {
		t.Errorf("expenses = %+v, want dish soap only", records)
	}
	if d := records[0].Date; d.Day() != 1 {
		t.Errorf("expense date = %v, want the 1st", d)
	}
}

func TestUsageErrors(t *testing.T) {
	setup(t)
	mustRun(t, "new", "groceries")
	for _, args := range [][]string{
		{"spend", "-5", "refund"},
		{"spend", "abc", "nothing"},
		{"add", "groceries", "unobtainium"},
		{"add", "groceries"},
		{"buy", "groceries", "7"},
		{"show", "nope"},
		{"settings", "-currency", "XXX"},
		{"settings", "-notifications", "maybe"},
		{"stats", "-p", "decade"},
	} {
		if _, status := gro(t, args...); status != subcommands.ExitUsageError {
			t.Errorf("gro %s: status %v, want usage error", strings.Join(args, " "), status)
		}
	}
}

func TestSettingsCommand(t *testing.T) {
	dir := setup(t)
	mustRun(t, "settings", "-currency", "usd", "-theme", "toggle", "-notifications", "off")

	p := reopen(t, dir)
	want := pantry.Settings{Currency: "USD", Theme: pantry.ThemeDark, Notifications: false}
	if got := p.Settings.Get(); got != want {
		t.Errorf("settings = %+v, want %+v", got, want)
	}

	mustRun(t, "new", "quiet")
	mustRun(t, "add", "quiet", "egg")
	if got := mustRun(t, "buy", "quiet", "1"); strings.Contains(got, "stocked") {
		t.Errorf("buy output = %q, want no notification", got)
	}
}

func TestExportCommand(t *testing.T) {
	setup(t)
	mustRun(t, "new", "groceries")
	mustRun(t, "add", "groceries", "apple")
	mustRun(t, "buy", "groceries", "1")

	path := filepath.Join(t.TempDir(), "out.xlsx")
	mustRun(t, "export", "-o", path)

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	book, err := excelize.OpenReader(f)
	if err != nil {
		t.Fatal(err)
	}
	rows, err := book.GetRows("Expenses")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Errorf("expense rows = %v, want a header and one purchase", rows)
	}
}

func TestTopicCommand(t *testing.T) {
	got, status := gro(t, "topic", "purchases")
	if status != subcommands.ExitSuccess || !strings.Contains(got, "Purchases") {
		t.Errorf("topic purchases: status %v, output %q", status, got)
	}
	if _, status := gro(t, "topic", "nope"); status != subcommands.ExitFailure {
		t.Errorf("topic nope: status %v, want failure", status)
	}
}
