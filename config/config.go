// Package config loads the gro settings from a YAML file and PANTRY_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the process configuration. User preferences such as the display
// currency are not here: they are persisted with the pantry data.
type Config struct {
	DataDir                 string            `mapstructure:"data_dir"`
	Backend                 string            `mapstructure:"backend"`
	LogLevel                string            `mapstructure:"log_level"`
	AddDebounce             time.Duration     `mapstructure:"add_debounce"`
	ConsumeRequiresPurchase bool              `mapstructure:"consume_requires_purchase"`
	CatalogFile             string            `mapstructure:"catalog_file"`
	RatesFile               string            `mapstructure:"rates_file"`
	RatesURL                string            `mapstructure:"rates_url"`
	RatesPaths              map[string]string `mapstructure:"rates_paths"`
}

// DefaultPath is where Load looks for a config file when none is given.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "pantry.yaml"
	}
	return filepath.Join(dir, "pantry", "config.yaml")
}

func defaultDataDir() string {
	if dir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(dir, ".pantry")
	}
	return ".pantry"
}

// Load reads the configuration file at path, or DefaultPath when path is
// empty. A missing default file is not an error. Environment variables
// override the file, e.g. PANTRY_BACKEND=sqlite.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault("data_dir", defaultDataDir())
	v.SetDefault("backend", "dir")
	v.SetDefault("log_level", "warn")
	v.SetDefault("add_debounce", "0s")
	v.SetDefault("consume_requires_purchase", false)

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetEnvPrefix("PANTRY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// AutomaticEnv only applies to keys viper knows about.
	for _, key := range []string{"catalog_file", "rates_file", "rates_url"} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case explicit:
			return nil, fmt.Errorf("read config: %w", err)
		case errors.As(err, &notFound), errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.DataDir == "" {
		c.DataDir = defaultDataDir()
	}
	return &c, nil
}

// Level parses LogLevel, defaulting to warn.
func (c *Config) Level() slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelWarn
	}
	return l
}
