package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/pantry"
	"github.com/etnz/pantry/renderer"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type addCmd struct {
	quantity int
	price    string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "add products to a list" }
func (*addCmd) Usage() string {
	return `gro add [-q <quantity>] [-price <unit price>] <list> <product>...

  Adds products from the catalog to a list. A product is an id from
  'gro catalog', its name or part of it. Adding a product the list already
  holds, and that is not purchased yet, increases its quantity.
  Unit prices default to the catalog price.

Usage Examples:
$ gro add -q 3 groceries apple
$ gro add 1 milk bread
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.quantity, "q", 1, "Quantity of each product.")
	f.StringVar(&c.price, "price", "", "Unit price, in the stored currency. Defaults to the catalog price.")
}

func (c *addCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Error: add needs a list and at least one product")
		return subcommands.ExitUsageError
	}
	var price *decimal.Decimal
	if c.price != "" {
		p, err := decimal.NewFromString(c.price)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing price %q: %v\n", c.price, err)
			return subcommands.ExitUsageError
		}
		price = &p
	}
	return run(ctx, func(s *session) error {
		l, err := resolveList(s.Lists.Lists(), f.Arg(0))
		if err != nil {
			return err
		}
		var errs []error
		for _, ref := range f.Args()[1:] {
			product, err := resolveProduct(s.Catalog, ref)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			var o pantry.Outcome
			if price != nil {
				o, err = s.Lists.AddItem(ctx, l.ID, product.ID, c.quantity, *price)
			} else {
				o, err = s.AddProduct(ctx, l.ID, product.ID, c.quantity)
			}
			fmt.Fprintln(out, describe(o, fmt.Sprintf("add %d %s %s", c.quantity, product.Icon, product.Name)))
			errs = append(errs, err)
		}
		if l, ok := s.Lists.GetList(l.ID); ok {
			s.print(renderer.List(l, s.Catalog, s.Settings.Format))
		}
		return errors.Join(errs...)
	})
}

type rmCmd struct{}

func (*rmCmd) Name() string     { return "rm" }
func (*rmCmd) Synopsis() string { return "remove an item from a list" }
func (*rmCmd) Usage() string {
	return `gro rm <list> <item>

  Removes an item. If it was purchased, its stock and expense stay.
`
}
func (*rmCmd) SetFlags(*flag.FlagSet) {}

func (*rmCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Error: rm needs a list and an item")
		return subcommands.ExitUsageError
	}
	return run(ctx, func(s *session) error {
		return s.eachItem(f.Arg(0), f.Args()[1:], func(l pantry.List, it pantry.ListItem, name string) error {
			o, err := s.Lists.RemoveItem(ctx, l.ID, it.ID)
			fmt.Fprintln(out, describe(o, "remove "+name))
			return err
		})
	})
}

type buyCmd struct{}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "mark items purchased" }
func (*buyCmd) Usage() string {
	return `gro buy <list> <item>...

  Marks items purchased. Each newly purchased item is added to the
  inventory and recorded as an expense, once: buying an item twice does
  nothing the second time.
`
}
func (*buyCmd) SetFlags(*flag.FlagSet) {}

func (*buyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Error: buy needs a list and at least one item")
		return subcommands.ExitUsageError
	}
	return run(ctx, func(s *session) error {
		return s.eachItem(f.Arg(0), f.Args()[1:], func(l pantry.List, it pantry.ListItem, name string) error {
			o, err := s.MarkPurchased(ctx, l.ID, it.ID)
			fmt.Fprintln(out, describe(o, "buy "+name))
			if o == pantry.Applied {
				s.notify("🛒 %d × %s stocked, %s spent", it.Quantity, name, s.Settings.Format(it.Subtotal()))
			}
			return err
		})
	})
}

type eatCmd struct{}

func (*eatCmd) Name() string     { return "eat" }
func (*eatCmd) Synopsis() string { return "toggle the consumed mark of items" }
func (*eatCmd) Usage() string {
	return `gro eat <list> <item>...

  Marks items consumed, or not consumed anymore if they already were.
  The inventory is not changed.
`
}
func (*eatCmd) SetFlags(*flag.FlagSet) {}

func (*eatCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Error: eat needs a list and at least one item")
		return subcommands.ExitUsageError
	}
	return run(ctx, func(s *session) error {
		return s.eachItem(f.Arg(0), f.Args()[1:], func(l pantry.List, it pantry.ListItem, name string) error {
			o, err := s.MarkConsumed(ctx, l.ID, it.ID)
			fmt.Fprintln(out, describe(o, "eat "+name))
			return err
		})
	})
}

// eachItem resolves all item references against the list as it is before
// any change, so that positions stay meaningful, then calls fn on each.
func (s *session) eachItem(listRef string, itemRefs []string, fn func(pantry.List, pantry.ListItem, string) error) error {
	l, err := resolveList(s.Lists.Lists(), listRef)
	if err != nil {
		return err
	}
	items := make([]pantry.ListItem, 0, len(itemRefs))
	for _, ref := range itemRefs {
		it, err := resolveItem(l, ref)
		if err != nil {
			return err
		}
		items = append(items, it)
	}
	var errs []error
	for _, it := range items {
		name, icon := pantry.Describe(s.Catalog, it.ProductID)
		errs = append(errs, fn(l, it, icon+" "+name))
	}
	return errors.Join(errs...)
}
