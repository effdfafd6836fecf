// Package constants defines shared configuration constants.
package constants

const (
	ConfigFile = "config.yaml"

	DefaultDir = ".wasmsym"

	// ConfigDirEnv overrides the directory holding the config file.
	ConfigDirEnv = "WASMSYM_CONFIG"

	// DefaultCacheSize is the number of distinct addresses memoised per run.
	DefaultCacheSize = 4096

	DefaultLogLevel = "warn"
)
