// Package cmd implements gro, the command line shell of a household pantry.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/etnz/pantry"
	"github.com/etnz/pantry/config"
	"github.com/etnz/pantry/kv"
	"github.com/google/subcommands"
	"github.com/prometheus/client_golang/prometheus"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	configFile  = flag.String("config", "", "Path to the configuration file. Defaults to the user config directory.")
	dataDir     = flag.String("data", "", "Directory holding the pantry documents. Overrides the configuration.")
	backend     = flag.String("backend", "", "Storage backend: dir, sqlite or memory. Overrides the configuration.")
	Verbose     = flag.Bool("v", false, "Log debug information on stderr.")
	metricsFile = flag.String("metrics-file", "", "Write Prometheus metrics to this file when the command ends.")
)

// out is where commands print their documents.
var out io.Writer = os.Stdout

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, g := range groups {
		for _, cmd := range g.cmds {
			c.Register(cmd, g.name)
		}
	}
}

var groups = []struct {
	name string
	cmds []subcommands.Command
}{
	{"lists", []subcommands.Command{&newCmd{}, &listsCmd{}, &showCmd{}, &renameCmd{}, &dropCmd{}, &watchCmd{}}},
	{"items", []subcommands.Command{&addCmd{}, &rmCmd{}, &buyCmd{}, &eatCmd{}}},
	{"ledgers", []subcommands.Command{&inventoryCmd{}, &expensesCmd{}, &spendCmd{}, &unspendCmd{}, &exportCmd{}}},
	{"reports", []subcommands.Command{&statsCmd{}, &catalogCmd{}}},
	{"setup", []subcommands.Command{&settingsCmd{}, &completionCmd{}, &topicCmd{}}},
}

// Commands returns every gro command, for completion.
func Commands() []subcommands.Command {
	var all []subcommands.Command
	for _, g := range groups {
		all = append(all, g.cmds...)
	}
	return all
}

// session is an opened pantry and what must happen when the command ends.
type session struct {
	*pantry.Pantry
	cfg      *config.Config
	registry *prometheus.Registry
	log      *slog.Logger
}

// loadConfig merges the configuration file with the global flags.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(*configFile)
	if err != nil {
		return nil, err
	}
	if *dataDir != "" {
		cfg.DataDir = *dataDir
	}
	if *backend != "" {
		cfg.Backend = *backend
	}
	if *Verbose {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}

// open loads the configuration and the pantry it points to.
func open(ctx context.Context) (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()}))
	slog.SetDefault(logger)

	catalog := pantry.DefaultCatalog()
	if cfg.CatalogFile != "" {
		if catalog, err = pantry.LoadCatalog(cfg.CatalogFile); err != nil {
			return nil, err
		}
	}
	rates, err := loadRates(ctx, cfg)
	if err != nil {
		// stale rates only affect display: keep going with the built-in table.
		logger.Warn("cannot load exchange rates, using defaults", "err", err)
		rates = pantry.DefaultRates()
	}

	if cfg.Backend != kv.BackendMemory {
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}
	store, err := kv.Open(cfg.Backend, cfg.DataDir)
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	p, err := pantry.Open(ctx, store, pantry.Options{
		Logger:                  logger,
		Registerer:              reg,
		Catalog:                 catalog,
		Rates:                   rates,
		AddDebounce:             cfg.AddDebounce,
		ConsumeRequiresPurchase: cfg.ConsumeRequiresPurchase,
	})
	if err != nil {
		store.Close()
		return nil, err
	}
	return &session{Pantry: p, cfg: cfg, registry: reg, log: logger}, nil
}

func loadRates(ctx context.Context, cfg *config.Config) (pantry.Rates, error) {
	switch {
	case cfg.RatesFile != "":
		f, err := os.Open(cfg.RatesFile)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return pantry.LoadRates(f, cfg.RatesPaths)
	case cfg.RatesURL != "":
		return pantry.FetchRates(ctx, pantry.DailyClient(), cfg.RatesURL, cfg.RatesPaths)
	default:
		return pantry.DefaultRates(), nil
	}
}

// Close releases the store and writes the metrics file if asked to.
func (s *session) Close() error {
	var errs []error
	if *metricsFile != "" {
		if err := prometheus.WriteToTextfile(*metricsFile, s.registry); err != nil {
			errs = append(errs, fmt.Errorf("write metrics: %w", err))
		}
	}
	errs = append(errs, s.Pantry.Close())
	return errors.Join(errs...)
}

// run opens the pantry, runs f and closes the pantry, reporting errors on
// stderr the same way for every command.
func run(ctx context.Context, f func(*session) error) subcommands.ExitStatus {
	s, err := open(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening the pantry: %v\n", err)
		return subcommands.ExitFailure
	}
	err = f(s)
	if cerr := s.Close(); cerr != nil {
		fmt.Fprintf(os.Stderr, "Error closing the pantry: %v\n", cerr)
	}
	var usage usageError
	switch {
	case errors.As(err, &usage), pantry.IsValidation(err):
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	case err != nil:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// usageError is an error in the command line arguments.
type usageError string

func (e usageError) Error() string { return string(e) }

func usagef(format string, args ...any) error { return usageError(fmt.Sprintf(format, args...)) }

// dataPath returns the default location of a file written next to the data.
func dataPath(cfg *config.Config, name string) string {
	return filepath.Join(cfg.DataDir, name)
}
