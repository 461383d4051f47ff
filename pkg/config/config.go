// Package config loads and writes the bleed configuration file.
//
// The file is TOML and lives at $XDG_CONFIG_HOME/bleed/config.toml
// (~/.config/bleed/config.toml when XDG_CONFIG_HOME is unset). Every key is
// optional; missing keys keep their defaults and command-line flags
// override both:
//
//	[painting]
//	layers = 80
//	alpha = 0.03
//	frame_delay = "20ms"
//
//	[cache]
//	url = "redis://localhost:6379/0"
//
//	[server]
//	addr = ":8080"
package config

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/bleed/pkg/errors"
	"github.com/matzehuels/bleed/pkg/painting"
)

// Config is the whole configuration file.
type Config struct {
	Painting painting.Config `toml:"painting"`
	Output   Output          `toml:"output"`
	Cache    Cache           `toml:"cache"`
	Server   Server          `toml:"server"`
}

// Output controls still rendering.
type Output struct {
	Formats []string `toml:"formats"`
	Scale   float64  `toml:"scale"`
}

// Cache selects the artifact cache. An empty URL uses the file cache in Dir,
// or the default cache directory when Dir is empty too.
type Cache struct {
	URL      string `toml:"url"`
	Dir      string `toml:"dir"`
	Disabled bool   `toml:"disabled"`
}

// Server configures `bleed serve`.
type Server struct {
	Addr    string            `toml:"addr"`
	Timeout painting.Duration `toml:"timeout"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Painting: painting.DefaultConfig(),
		Output:   Output{Formats: []string{"svg"}, Scale: 1},
		Server:   Server{Addr: ":8080", Timeout: painting.Duration(30 * time.Second)},
	}
}

// DefaultPath returns the config file location.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "bleed", "config.toml")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".config", "bleed", "config.toml")
	}
	return filepath.Join(".bleed", "config.toml")
}

// Load reads path over the defaults. A missing file is not an error and
// yields the defaults. Unknown keys are rejected so typos do not pass
// silently.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	if err := Decode(string(data), &cfg); err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "load %s", path)
	}
	return cfg, nil
}

// Decode parses TOML text into cfg, keeping fields the text does not set.
func Decode(text string, cfg *Config) error {
	md, err := toml.Decode(text, cfg)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse toml")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return errors.New(errors.ErrCodeInvalidConfig, "unknown keys: %s", strings.Join(keys, ", "))
	}
	cfg.Painting.SetDefaults()
	return nil
}

// Write encodes cfg as TOML.
func Write(w io.Writer, cfg Config) error {
	return toml.NewEncoder(w).Encode(cfg)
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.Painting.Validate(); err != nil {
		return err
	}
	if !(c.Output.Scale > 0) {
		return errors.New(errors.ErrCodeInvalidConfig, "output scale must be positive, got %g", c.Output.Scale)
	}
	if c.Server.Timeout < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "server timeout cannot be negative")
	}
	return nil
}
