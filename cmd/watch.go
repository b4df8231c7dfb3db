package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/etnz/pantry"
	"github.com/etnz/pantry/renderer"
	"github.com/google/subcommands"
)

type watchCmd struct{}

func (*watchCmd) Name() string     { return "watch" }
func (*watchCmd) Synopsis() string { return "follow a list as it changes" }
func (*watchCmd) Usage() string {
	return `gro watch <list>

  Shows a list, then shows it again every time it changes, for instance
  when someone else runs 'gro buy' on the same data directory.
  Stops on Ctrl-C or when the list is deleted.
`
}
func (*watchCmd) SetFlags(*flag.FlagSet) {}

func (*watchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: watch takes exactly one list")
		return subcommands.ExitUsageError
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()
	return run(ctx, func(s *session) error {
		l, err := resolveList(s.Lists.Lists(), f.Arg(0))
		if err != nil {
			return err
		}
		s.print(renderer.List(l, s.Catalog, s.Settings.Format))

		ctx, cancel := context.WithCancel(ctx)
		defer cancel()
		s.Watch(ctx, func(key string) {
			if key != pantry.KeyLists {
				return
			}
			current, ok := s.Lists.GetList(l.ID)
			if !ok {
				fmt.Fprintln(out, describe(pantry.NotFound, l.Name))
				cancel()
				return
			}
			s.print(renderer.List(current, s.Catalog, s.Settings.Format))
		})
		<-ctx.Done()
		return nil
	})
}
