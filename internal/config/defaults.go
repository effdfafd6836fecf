package config

import (
	"github.com/wasmsym/wasmsym/internal/constants"
)

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		CacheSize: constants.DefaultCacheSize,
		LogLevel:  constants.DefaultLogLevel,
	}
}
