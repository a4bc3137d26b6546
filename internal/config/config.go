// Package config loads the YAML configuration for the gdbmi command-line
// tools: the parser options a Framer needs plus where to send logs.
package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/go-gdbmi/gdbmi/mi"
)

// Config is the on-disk shape of a gdbmi tool's YAML config file.
type Config struct {
	Terminator          string `yaml:"terminator"`
	UnknownEscapePolicy string `yaml:"unknown_escape_policy"`
	MaxBufferedBytes    int    `yaml:"max_buffered_bytes"`
	LogFile             string `yaml:"log_file"`
	LogLevel            string `yaml:"log_level"`
}

// Default returns the configuration a tool uses when no config file is given.
func Default() Config {
	return Config{
		Terminator:          "\n",
		UnknownEscapePolicy: "drop-backslash",
		LogLevel:            "info",
	}
}

// Load reads and parses a YAML config file at path. An empty path returns
// Default().
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	buf, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: reading %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(buf))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return cfg, nil
}

// EscapePolicy translates the config's string knob into mi.EscapePolicy.
func (c Config) EscapePolicy() (mi.EscapePolicy, error) {
	switch c.UnknownEscapePolicy {
	case "", "drop-backslash":
		return mi.DropBackslash, nil
	case "keep-literal":
		return mi.KeepLiteral, nil
	default:
		return mi.DropBackslash, fmt.Errorf("config: unknown_escape_policy %q: expected drop-backslash or keep-literal", c.UnknownEscapePolicy)
	}
}

// MIOptions builds the mi.Options a Framer or ParseLine call needs from this
// configuration.
func (c Config) MIOptions() (mi.Options, error) {
	policy, err := c.EscapePolicy()
	if err != nil {
		return mi.Options{}, err
	}
	return mi.Options{
		Terminator:          c.Terminator,
		UnknownEscapePolicy: policy,
		MaxBufferedBytes:    c.MaxBufferedBytes,
	}, nil
}
