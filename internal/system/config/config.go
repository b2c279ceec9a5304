// Released under an MIT license. See LICENSE.

// Package config loads tern's settings.
//
// Settings come from, in increasing order of precedence: built in defaults,
// a YAML file, TERN_ environment variables and command line overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables read as settings.
const EnvPrefix = "TERN_"

// Config holds tern's settings.
type Config struct {
	Editor       string        `koanf:"editor"`
	History      string        `koanf:"history"`
	Libs         []string      `koanf:"libs"`
	LogLevel     string        `koanf:"log_level"`
	MaxDepth     int           `koanf:"max_depth"`
	NoStdlib     bool          `koanf:"no_stdlib"`
	PollInterval time.Duration `koanf:"poll_interval"`
	Stdlib       string        `koanf:"stdlib"`

	// File is the settings file that was read, if any.
	File string `koanf:"-"`
}

// Defaults returns the built in settings.
func Defaults() map[string]interface{} {
	return map[string]interface{}{
		"editor":        "",
		"history":       filepath.Join(home(), ".tern_history"),
		"libs":          []string{},
		"log_level":     "warn",
		"max_depth":     25000, //nolint:gomnd
		"no_stdlib":     false,
		"poll_interval": "100ms",
		"stdlib":        "",
	}
}

// Path returns the settings file to read: $TERN_CONFIG if set, otherwise
// $HOME/.config/tern/config.yaml.
func Path() string {
	if p := os.Getenv(EnvPrefix + "CONFIG"); p != "" {
		return p
	}

	return filepath.Join(home(), ".config", "tern", "config.yaml")
}

// Load reads settings from the file at path, if it exists, and from the
// environment. Entries in overrides take precedence over both.
func Load(path string, overrides map[string]interface{}) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	used := ""

	if path != "" {
		_, err := os.Stat(path)

		switch {
		case err == nil:
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("error reading config file %s: %w", path, err)
			}

			used = path
		case !errors.Is(err, fs.ErrNotExist):
			return nil, fmt.Errorf("error reading config file %s: %w", path, err)
		}
	}

	// TERN_MAX_DEPTH -> max_depth
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, fmt.Errorf("failed to load overrides: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.File = used

	return &cfg, nil
}

// Level returns the configured log level. Unknown levels are reported as
// an error and treated as warn.
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level

	if err := l.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelWarn, fmt.Errorf("log_level: %w", err)
	}

	return l, nil
}

func home() string {
	if h, err := os.UserHomeDir(); err == nil {
		return h
	}

	return "."
}
