package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeScan()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	c.Paths.DefaultSource = strings.TrimSpace(c.Paths.DefaultSource)
	if c.Paths.DefaultSource == "" {
		if value, ok := os.LookupEnv("PIGEONHOLE_SOURCE"); ok {
			c.Paths.DefaultSource = strings.TrimSpace(value)
		}
	}
	if c.Paths.DefaultSource != "" {
		if c.Paths.DefaultSource, err = expandPath(c.Paths.DefaultSource); err != nil {
			return fmt.Errorf("paths.default_source: %w", err)
		}
	}
	return nil
}

func (c *Config) normalizeScan() {
	patterns := make([]string, 0, len(c.Scan.Exclude))
	for _, pattern := range c.Scan.Exclude {
		if trimmed := strings.TrimSpace(pattern); trimmed != "" {
			patterns = append(patterns, trimmed)
		}
	}
	c.Scan.Exclude = patterns
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = 0
	}
}
