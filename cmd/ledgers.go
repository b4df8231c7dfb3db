package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/etnz/pantry"
	"github.com/etnz/pantry/date"
	"github.com/etnz/pantry/renderer"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type inventoryCmd struct {
	limit int
}

func (*inventoryCmd) Name() string     { return "inventory" }
func (*inventoryCmd) Synopsis() string { return "show what is in the pantry" }
func (*inventoryCmd) Usage() string {
	return `gro inventory [-n <events>]

  Shows the quantity on hand of every product ever purchased, and the
  latest stock-ins.
`
}

func (c *inventoryCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.limit, "n", 10, "Number of stock-in events to show, 0 for all.")
}

func (c *inventoryCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(s *session) error {
		s.print(renderer.Inventory(s.Inventory.All(), s.Inventory.History(), c.limit))
		return nil
	})
}

type expensesCmd struct{}

func (*expensesCmd) Name() string     { return "expenses" }
func (*expensesCmd) Synopsis() string { return "show the expense ledger" }
func (*expensesCmd) Usage() string {
	return `gro expenses

  Shows every expense, most recent first, in the display currency.
  The numbers in the first column can be used with 'gro unspend'.
`
}
func (*expensesCmd) SetFlags(*flag.FlagSet) {}

func (*expensesCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(s *session) error {
		s.print(renderer.Expenses(s.Expenses.All(), s.Expenses.Total(), s.Settings.Format))
		return nil
	})
}

type spendCmd struct {
	category string
	on       string
}

func (*spendCmd) Name() string     { return "spend" }
func (*spendCmd) Synopsis() string { return "record an expense" }
func (*spendCmd) Usage() string {
	return `gro spend [-c <category>] [-d <day>] <amount> <description>

  Records an expense that did not come from a shopping list. The amount is
  in the stored currency.

Usage Examples:
$ gro spend -c Household 12000 dish soap
$ gro spend -d 2025-03-01 45000 market
`
}

func (c *spendCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.category, "c", "Other", "Expense category. A catalog product name also gives the icon.")
	f.StringVar(&c.on, "d", "", "Day of the expense (YYYY-MM-DD). Defaults to now.")
}

func (c *spendCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Error: spend needs an amount and a description")
		return subcommands.ExitUsageError
	}
	amount, err := decimal.NewFromString(f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing amount %q: %v\n", f.Arg(0), err)
		return subcommands.ExitUsageError
	}
	on := time.Now()
	if c.on != "" {
		d, err := date.Parse(c.on)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		// noon keeps the day stable across time zones.
		on = time.Date(d.Year(), d.Month(), d.Day(), 12, 0, 0, 0, time.Local)
	}
	description := strings.Join(f.Args()[1:], " ")
	return run(ctx, func(s *session) error {
		id, err := s.Spend(ctx, description, amount, c.category, on)
		if err != nil {
			return err
		}
		s.log.Debug("expense added", "id", id)
		fmt.Fprintf(out, "💸 %s: %s\n", description, s.Settings.Format(amount))
		return nil
	})
}

type unspendCmd struct{}

func (*unspendCmd) Name() string     { return "unspend" }
func (*unspendCmd) Synopsis() string { return "remove an expense" }
func (*unspendCmd) Usage() string {
	return `gro unspend <expense>

  Removes an expense, given its number in 'gro expenses' or its id.
  Purchases removed this way are not put back on their list.
`
}
func (*unspendCmd) SetFlags(*flag.FlagSet) {}

func (*unspendCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: unspend takes exactly one expense")
		return subcommands.ExitUsageError
	}
	return run(ctx, func(s *session) error {
		r, err := resolveExpense(s.Expenses.All(), f.Arg(0))
		if err != nil {
			return err
		}
		if err := s.Expenses.Remove(ctx, r.ID); err != nil {
			return err
		}
		fmt.Fprintln(out, describe(pantry.Applied, "unspend "+r.Description))
		return nil
	})
}
