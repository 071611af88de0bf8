package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"whilec/pkg/frontend"
	"whilec/pkg/parser"
)

// Config holds the complete whilec configuration
type Config struct {
	Parser ParserConfig `toml:"parser"`
	Output OutputConfig `toml:"output"`
	Log    LogConfig    `toml:"log"`
	Server ServerConfig `toml:"server"`
}

// ParserConfig holds parse defaults
type ParserConfig struct {
	Mode           string `toml:"mode"`
	MaxDepth       int    `toml:"max_depth"`
	MaxInputLength int    `toml:"max_input_length"`
}

// OutputConfig controls how the CLI prints trees
type OutputConfig struct {
	Format string `toml:"format"` // text, json or yaml
	Color  bool   `toml:"color"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // text or json
}

// ServerConfig holds websocket playground settings
type ServerConfig struct {
	Addr         string   `toml:"addr"`
	ReadTimeout  Duration `toml:"read_timeout"`
	WriteTimeout Duration `toml:"write_timeout"`
}

// Duration wraps time.Duration for TOML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns a configuration with every default applied
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML file
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyDefaults()

	return &cfg, nil
}

// LoadEnv loads the given .env files (missing ones are skipped) and
// overlays WHILEC_* variables onto cfg. Variables already set in the
// process environment win over .env entries.
func (c *Config) LoadEnv(files ...string) error {
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	if v := os.Getenv("WHILEC_MODE"); v != "" {
		c.Parser.Mode = v
	}
	if v := os.Getenv("WHILEC_FORMAT"); v != "" {
		c.Output.Format = v
	}
	if v := os.Getenv("WHILEC_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("WHILEC_ADDR"); v != "" {
		c.Server.Addr = v
	}
	return nil
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.Parser.Mode == "" {
		c.Parser.Mode = parser.ModeExpression.String()
	}
	if c.Parser.MaxDepth == 0 {
		c.Parser.MaxDepth = parser.DefaultMaxDepth
	}
	if c.Parser.MaxInputLength == 0 {
		c.Parser.MaxInputLength = frontend.DefaultMaxInputLength
	}

	if c.Output.Format == "" {
		c.Output.Format = "text"
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}

	if c.Server.Addr == "" {
		c.Server.Addr = "localhost:8420"
	}
	if c.Server.ReadTimeout.Duration == 0 {
		c.Server.ReadTimeout.Duration = 60 * time.Second
	}
	if c.Server.WriteTimeout.Duration == 0 {
		c.Server.WriteTimeout.Duration = 10 * time.Second
	}
}

// Validate rejects values the CLI cannot act on
func (c *Config) Validate() error {
	var errs []error

	if _, err := parser.ParseMode(c.Parser.Mode); err != nil {
		errs = append(errs, fmt.Errorf("parser.mode: %w", err))
	}
	if c.Parser.MaxDepth < 1 {
		errs = append(errs, fmt.Errorf("parser.max_depth must be positive, got %d", c.Parser.MaxDepth))
	}
	if c.Parser.MaxInputLength < 1 {
		errs = append(errs, fmt.Errorf("parser.max_input_length must be positive, got %d", c.Parser.MaxInputLength))
	}
	if !oneOf(c.Output.Format, "text", "json", "yaml") {
		errs = append(errs, fmt.Errorf("output.format: unknown format %q", c.Output.Format))
	}
	if !oneOf(c.Log.Level, "debug", "info", "warn", "error") {
		errs = append(errs, fmt.Errorf("log.level: unknown level %q", c.Log.Level))
	}
	if !oneOf(c.Log.Format, "text", "json") {
		errs = append(errs, fmt.Errorf("log.format: unknown format %q", c.Log.Format))
	}

	return errors.Join(errs...)
}

func oneOf(v string, allowed ...string) bool {
	for _, a := range allowed {
		if strings.EqualFold(v, a) {
			return true
		}
	}
	return false
}
