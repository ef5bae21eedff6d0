// Package app wires the command line to the harness: configuration, logging
// and exit codes.
package app

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"

	"engine-demo/internal/input"
)

// Config represents the command-line parameters for the application.
type Config struct {
	TPS       int
	Seed      int64
	Ticks     uint64
	LogLevel  string
	LogFormat string
	Script    []string
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{TPS: 60, Seed: 42, LogLevel: "info", LogFormat: "console"}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *pflag.FlagSet) {
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for subsystems and demos")
	fs.Uint64Var(&c.Ticks, "ticks", c.Ticks, "stop after this many ticks (0 = demo budget)")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level (debug, info, warn, error)")
	fs.StringVar(&c.LogFormat, "log-format", c.LogFormat, "log format (console, json)")
	fs.StringSliceVar(&c.Script, "script", c.Script, "input actions replayed one per frame (pause, step, reset, reseed, quit)")
}

type fileConfig struct {
	TPS       int      `toml:"tps"`
	Seed      int64    `toml:"seed"`
	Ticks     uint64   `toml:"ticks"`
	LogLevel  string   `toml:"log_level"`
	LogFormat string   `toml:"log_format"`
	Script    []string `toml:"script"`
}

// LoadFile overlays the TOML file at path. Keys whose flag was set on the
// command line, as reported by changed, keep the flag value.
func (c *Config) LoadFile(path string, changed func(flag string) bool) error {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return fmt.Errorf("load config %q: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("load config %q: unknown keys %v", path, undecoded)
	}
	if changed == nil {
		changed = func(string) bool { return false }
	}
	use := func(key, flag string) bool { return meta.IsDefined(key) && !changed(flag) }

	if use("tps", "tps") {
		c.TPS = raw.TPS
	}
	if use("seed", "seed") {
		c.Seed = raw.Seed
	}
	if use("ticks", "ticks") {
		c.Ticks = raw.Ticks
	}
	if use("log_level", "log-level") {
		c.LogLevel = strings.TrimSpace(raw.LogLevel)
	}
	if use("log_format", "log-format") {
		c.LogFormat = strings.TrimSpace(raw.LogFormat)
	}
	if use("script", "script") {
		c.Script = raw.Script
	}
	return nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.TPS <= 0 {
		return fmt.Errorf("tps must be positive, got %d", c.TPS)
	}
	if _, err := c.Actions(); err != nil {
		return err
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	return nil
}

// Actions parses the scripted input actions.
func (c *Config) Actions() ([]input.Action, error) {
	out := make([]input.Action, 0, len(c.Script))
	for _, name := range c.Script {
		a, err := input.ParseAction(name)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}
