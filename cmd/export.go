package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/pantry/export"
	"github.com/google/subcommands"
)

type exportCmd struct {
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export the pantry to a spreadsheet" }
func (*exportCmd) Usage() string {
	return `gro export [-o <file.xlsx>]

  Writes the expenses, the inventory and the lists to an Excel workbook,
  one sheet each. Amounts are in the stored currency.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Output file. Defaults to pantry.xlsx in the data directory.")
}

func (c *exportCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return run(ctx, func(s *session) error {
		path := c.output
		if path == "" {
			path = dataPath(s.cfg, "pantry.xlsx")
		}
		w, err := os.Create(path)
		if err != nil {
			return err
		}
		err = export.Workbook(w, export.Data{
			Expenses:  s.Expenses.All(),
			Inventory: s.Inventory.All(),
			Lists:     s.Lists.Lists(),
			Catalog:   s.Catalog,
		})
		if cerr := w.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("export to %s: %w", path, err)
		}
		fmt.Fprintf(out, "📤 exported to %s\n", path)
		return nil
	})
}
