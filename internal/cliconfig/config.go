// Package cliconfig holds the configuration of the bitframe command.
//
// Values are layered: defaults, then the TOML config file, then BITFRAME_*
// environment variables, then flags the user set explicitly.
package cliconfig

import (
	"fmt"
	"strconv"
	"time"

	"github.com/ajroetker/go-bitframe/internal/store"
)

// Config holds CLI configuration for bitframe.
type Config struct {
	Workers     int
	Threshold   int
	Compression string
	ImageFormat string
	LogLevel    string
	LogFormat   string
	Debounce    time.Duration
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Workers:     1,
		Threshold:   128,
		Compression: store.CompressionNone,
		ImageFormat: store.FormatPNG,
		LogLevel:    "info",
		LogFormat:   "console",
		Debounce:    250 * time.Millisecond,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive")
	}
	if c.Threshold < 1 || c.Threshold > 255 {
		return fmt.Errorf("threshold must be between 1 and 255, got %d", c.Threshold)
	}
	switch c.Compression {
	case store.CompressionNone, store.CompressionZstd:
	default:
		return fmt.Errorf("unknown compression %q", c.Compression)
	}
	switch c.ImageFormat {
	case store.FormatPNG, store.FormatQOI:
	default:
		return fmt.Errorf("unknown image format %q", c.ImageFormat)
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.Debounce <= 0 {
		return fmt.Errorf("debounce must be positive")
	}
	return nil
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setInt sets an int value if positive and flag not changed.
func (s *configSetter) setInt(flag string, value int, dst *int) {
	if value <= 0 || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setIntFromString parses a string to int and sets the destination if valid.
// Used for environment variables that come as strings.
func (s *configSetter) setIntFromString(flag, value string, dst *int) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	if i <= 0 {
		return nil
	}
	*dst = i
	return nil
}
