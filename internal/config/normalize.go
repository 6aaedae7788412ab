package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeMkvmerge()
	if err := c.normalizeLogging(); err != nil {
		return err
	}
	c.Defaults.Language = strings.TrimSpace(c.Defaults.Language)
	return nil
}

func (c *Config) normalizeMkvmerge() {
	c.Mkvmerge.Binary = strings.TrimSpace(c.Mkvmerge.Binary)
	if c.Mkvmerge.Binary == "" {
		c.Mkvmerge.Binary = defaultMkvmergeBinary
	}
}

func (c *Config) normalizeLogging() error {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	switch c.Logging.Level {
	case "":
		c.Logging.Level = defaultLogLevel
	case "warning":
		c.Logging.Level = "warn"
	}
	if dir := strings.TrimSpace(c.Logging.Dir); dir != "" {
		expanded, err := expandPath(dir)
		if err != nil {
			return fmt.Errorf("logging.dir: %w", err)
		}
		c.Logging.Dir = expanded
	}
	return nil
}
