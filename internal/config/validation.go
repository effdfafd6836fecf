package config

import (
	"fmt"

	"github.com/wasmsym/wasmsym/internal/logging"
)

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level: %w", err)
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("invalid cache_size %d, must not be negative", c.CacheSize)
	}
	return nil
}
