package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/pantry/date"
	"github.com/etnz/pantry/renderer"
	"github.com/google/subcommands"
)

type statsCmd struct {
	period string
	on     string
}

func (*statsCmd) Name() string     { return "stats" }
func (*statsCmd) Synopsis() string { return "show spending and stock statistics" }
func (*statsCmd) Usage() string {
	return `gro stats [-p day|week|month|year] [-d <day>]

  Shows the pantry overview, the spending of the period containing the day
  by category and by day, and the latest activity.
`
}

func (c *statsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.period, "p", "month", "Period of the spending report: day, week, month or year.")
	f.StringVar(&c.on, "d", "", "A day in the period (YYYY-MM-DD). Defaults to today.")
}

func (c *statsCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	period, err := date.ParsePeriod(c.period)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	on := date.Today()
	if c.on != "" {
		if on, err = date.Parse(c.on); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
	}
	return run(ctx, func(s *session) error {
		s.print(renderer.Stats(s.Stats(on, period), s.Settings.Format))
		return nil
	})
}

type catalogCmd struct{}

func (*catalogCmd) Name() string     { return "catalog" }
func (*catalogCmd) Synopsis() string { return "search the product catalog" }
func (*catalogCmd) Usage() string {
	return `gro catalog [<query>]

  Lists the products that can be added to a list, by category. With a
  query, only the products whose name contains it.
`
}
func (*catalogCmd) SetFlags(*flag.FlagSet) {}

func (*catalogCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(s *session) error {
		items := s.Catalog.Items()
		if q := strings.Join(f.Args(), " "); q != "" {
			items = s.Catalog.Search(q)
		}
		s.print(renderer.Catalog(items, s.Settings.Format))
		return nil
	})
}
