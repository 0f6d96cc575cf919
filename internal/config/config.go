// Package config loads hxhoc process configuration from the environment and
// the optional augmentation defaults file.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/pthm/hxhoc"
)

// Config is the CLI's process configuration.
type Config struct {
	Addr         string `env:"HXHOC_ADDR" envDefault:":8080"`
	Key          string `env:"HXHOC_KEY" envDefault:"hxhoc-development-key"`
	LogLevel     string `env:"HXHOC_LOG_LEVEL" envDefault:"info"`
	LogFormat    string `env:"HXHOC_LOG_FORMAT" envDefault:"text"`
	DefaultsFile string `env:"HXHOC_DEFAULTS_FILE"`
}

// Load parses Config from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// DemoDefaults are used when no defaults file is configured.
var DemoDefaults = hxhoc.Props{"age": "28"}

// defaultsFile is the on-disk shape of HXHOC_DEFAULTS_FILE:
//
//	defaults:
//	  age: "28"
//	  team: core
type defaultsFile struct {
	Defaults map[string]any `yaml:"defaults"`
}

// LoadDefaults reads the augmentation defaults from path. An empty path
// returns a copy of DemoDefaults.
func LoadDefaults(path string) (hxhoc.Props, error) {
	if path == "" {
		return DemoDefaults.Clone(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read defaults file: %w", err)
	}
	var f defaultsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse defaults file %s: %w", path, err)
	}
	return hxhoc.Props(f.Defaults).Clone(), nil
}

// NewLogger builds the process logger for cfg, writing to w.
func NewLogger(cfg Config, w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
	}
	opts := &slog.HandlerOptions{Level: level}

	switch strings.ToLower(cfg.LogFormat) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("invalid log format %q", cfg.LogFormat)
	}
}
