package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	os.WriteFile(path, []byte(`
data_dir: /srv/pantry
backend: sqlite
log_level: debug
add_debounce: 300ms
consume_requires_purchase: true
rates_file: rates.json
rates_paths:
  USD: $.rates.USD
`), 0o644)
	t.Setenv("PANTRY_BACKEND", "memory")

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	want := &Config{
		DataDir:                 "/srv/pantry",
		Backend:                 "memory",
		LogLevel:                "debug",
		AddDebounce:             300 * time.Millisecond,
		ConsumeRequiresPurchase: true,
		RatesFile:               "rates.json",
		RatesPaths:              map[string]string{"usd": "$.rates.USD"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Load() (-want +got):\n%s", diff)
	}
	if got.Level() != slog.LevelDebug {
		t.Errorf("Level() = %v, want debug", got.Level())
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("PANTRY_CATALOG_FILE", "/etc/catalog.yaml")

	got, err := Load("")
	if err != nil {
		t.Fatalf("Load() without a config file failed: %v", err)
	}
	if got.Backend != "dir" || got.AddDebounce != 0 || got.Level() != slog.LevelWarn {
		t.Errorf("defaults = %+v", got)
	}
	if got.CatalogFile != "/etc/catalog.yaml" {
		t.Errorf("CatalogFile = %q, want the environment value", got.CatalogFile)
	}
	if filepath.Base(got.DataDir) != ".pantry" {
		t.Errorf("DataDir = %q, want a .pantry directory", got.DataDir)
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Errorf("Load() of a missing explicit file succeeded")
	}
}
