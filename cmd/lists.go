package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/pantry/renderer"
	"github.com/google/subcommands"
)

type newCmd struct{}

func (*newCmd) Name() string     { return "new" }
func (*newCmd) Synopsis() string { return "create a shopping list" }
func (*newCmd) Usage() string {
	return `gro new <name>

  Creates an empty shopping list. New lists come first in 'gro lists'.
`
}
func (*newCmd) SetFlags(*flag.FlagSet) {}

func (*newCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	name := strings.Join(f.Args(), " ")
	if name == "" {
		fmt.Fprintln(os.Stderr, "Error: a list needs a name")
		return subcommands.ExitUsageError
	}
	return run(ctx, func(s *session) error {
		id, err := s.Lists.CreateList(ctx, name)
		if err != nil {
			return err
		}
		l, _ := s.Lists.GetList(id)
		s.print(renderer.List(l, s.Catalog, s.Settings.Format))
		return nil
	})
}

type listsCmd struct{}

func (*listsCmd) Name() string     { return "lists" }
func (*listsCmd) Synopsis() string { return "show all shopping lists" }
func (*listsCmd) Usage() string {
	return `gro lists

  Shows every list, most recent first, with its progress and total.
  The numbers in the first column can be used to refer to a list.
`
}
func (*listsCmd) SetFlags(*flag.FlagSet) {}

func (*listsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(s *session) error {
		s.print(renderer.Lists(s.Lists.Lists(), s.Settings.Format))
		return nil
	})
}

type showCmd struct{}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "show the items of a list" }
func (*showCmd) Usage() string {
	return `gro show <list>

  Shows the items of a list. <list> is a number from 'gro lists', a name or
  an id. The numbers in the first column can be used to refer to an item.
`
}
func (*showCmd) SetFlags(*flag.FlagSet) {}

func (*showCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: show takes exactly one list")
		return subcommands.ExitUsageError
	}
	return run(ctx, func(s *session) error {
		l, err := resolveList(s.Lists.Lists(), f.Arg(0))
		if err != nil {
			return err
		}
		s.print(renderer.List(l, s.Catalog, s.Settings.Format))
		return nil
	})
}

type renameCmd struct{}

func (*renameCmd) Name() string     { return "rename" }
func (*renameCmd) Synopsis() string { return "rename a list" }
func (*renameCmd) Usage() string {
	return `gro rename <list> <new name>
`
}
func (*renameCmd) SetFlags(*flag.FlagSet) {}

func (*renameCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Error: rename needs a list and a new name")
		return subcommands.ExitUsageError
	}
	return run(ctx, func(s *session) error {
		l, err := resolveList(s.Lists.Lists(), f.Arg(0))
		if err != nil {
			return err
		}
		name := strings.Join(f.Args()[1:], " ")
		o, err := s.Lists.RenameList(ctx, l.ID, name)
		fmt.Fprintln(out, describe(o, fmt.Sprintf("rename %q to %q", l.Name, name)))
		return err
	})
}

type dropCmd struct{}

func (*dropCmd) Name() string     { return "drop" }
func (*dropCmd) Synopsis() string { return "delete a list" }
func (*dropCmd) Usage() string {
	return `gro drop <list>

  Deletes a list and its items. What was already purchased stays in the
  inventory and the expenses.
`
}
func (*dropCmd) SetFlags(*flag.FlagSet) {}

func (*dropCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: drop takes exactly one list")
		return subcommands.ExitUsageError
	}
	return run(ctx, func(s *session) error {
		l, err := resolveList(s.Lists.Lists(), f.Arg(0))
		if err != nil {
			return err
		}
		o, err := s.Lists.DeleteList(ctx, l.ID)
		fmt.Fprintln(out, describe(o, fmt.Sprintf("drop %q", l.Name)))
		return err
	})
}
