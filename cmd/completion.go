package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/etnz/pantry"
	"github.com/etnz/pantry/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// Complete answers a shell completion request and exits if there is one.
// It must run before the command line is parsed.
func Complete(name string) {
	completion(flag.CommandLine).Complete(name)
}

// flagPredictors overrides the default prediction for some flag values.
var flagPredictors = map[string]complete.Predictor{
	"config":        predict.Files("*.yaml"),
	"data":          predict.Dirs("*"),
	"metrics-file":  predict.Files("*.prom"),
	"o":             predict.Files("*.xlsx"),
	"p":             predict.Set{"day", "week", "month", "year"},
	"theme":         predict.Set{pantry.ThemeLight, pantry.ThemeDark, "toggle"},
	"notifications": predict.Set{"on", "off"},
	"backend":       predict.Set{"dir", "sqlite", "memory"},
	"currency":      predict.Set(pantry.DefaultRates().Currencies()),
}

// completion describes the gro command line for posener/complete: global
// flags and one sub command per registered command, with its own flags.
func completion(global *flag.FlagSet) *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: predictFlags(global),
	}
	for _, c := range Commands() {
		fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
		c.SetFlags(fs)
		sub := &complete.Command{Flags: predictFlags(fs)}
		switch c.Name() {
		case "topic":
			topics, _ := docs.GetAllTopics()
			sub.Args = predict.Set(topics)
		case "catalog", "add":
			sub.Args = predict.Set(productNames(pantry.DefaultCatalog()))
		}
		root.Sub[c.Name()] = sub
	}
	for _, name := range []string{"help", "flags", "commands"} {
		root.Sub[name] = &complete.Command{}
	}
	return root
}

func predictFlags(fs *flag.FlagSet) map[string]complete.Predictor {
	flags := make(map[string]complete.Predictor)
	fs.VisitAll(func(f *flag.Flag) {
		switch p, ok := flagPredictors[f.Name]; {
		case ok:
			flags[f.Name] = p
		case isBool(f):
			flags[f.Name] = predict.Nothing
		default:
			flags[f.Name] = predict.Something
		}
	})
	return flags
}

func isBool(f *flag.Flag) bool {
	b, ok := f.Value.(interface{ IsBoolFlag() bool })
	return ok && b.IsBoolFlag()
}

func productNames(c *pantry.Catalog) []string {
	var names []string
	for _, it := range c.Items() {
		names = append(names, it.Name)
	}
	return names
}

type completionCmd struct{}

func (*completionCmd) Name() string     { return "completion" }
func (*completionCmd) Synopsis() string { return "print the shell completion setup" }
func (*completionCmd) Usage() string {
	return `gro completion

  Prints the line to add to ~/.bashrc (or ~/.zshrc after 'autoload -U
  +X bashcompinit && bashcompinit') to complete gro commands.
`
}
func (*completionCmd) SetFlags(*flag.FlagSet) {}

func (*completionCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	bin, err := os.Executable()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error locating gro: %v\n", err)
		return subcommands.ExitFailure
	}
	if abs, err := filepath.EvalSymlinks(bin); err == nil {
		bin = abs
	}
	fmt.Fprintf(out, "complete -C %s %s\n", bin, filepath.Base(os.Args[0]))
	return subcommands.ExitSuccess
}
