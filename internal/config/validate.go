package config

import (
	"errors"
	"fmt"

	"mkvtrack/internal/language"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateMkvmerge(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateDefaults(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateMkvmerge() error {
	if c.Mkvmerge.Binary == "" {
		return errors.New("mkvmerge.binary must be set")
	}
	if c.Mkvmerge.TimeoutSeconds < 0 {
		return errors.New("mkvmerge.timeout_seconds must be zero or positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}

func (c *Config) validateDefaults() error {
	if c.Defaults.Language != "" && !language.IsISO639_2(c.Defaults.Language) {
		return fmt.Errorf("defaults.language %q is not an ISO 639-2 code", c.Defaults.Language)
	}
	return nil
}
