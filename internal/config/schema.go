// Package config provides configuration loading and management.
package config

// Config holds the run options. Values are layered: defaults, then the YAML
// config file, then environment variables, then command-line flags.
type Config struct {
	// Stdout sends the filtered text to stdout instead of stderr.
	Stdout bool `yaml:"stdout" env:"WASMSYM_STDOUT"`
	// AbsolutePath renders source paths exactly as stored in the map.
	AbsolutePath bool `yaml:"absolute_path" env:"WASMSYM_ABSOLUTE_PATH"`
	// LineBuffer filters line by line instead of waiting for end of input.
	LineBuffer bool `yaml:"line_buffer" env:"WASMSYM_LINE_BUFFER"`
	// BaseDir overrides the working directory as the base for relative paths.
	BaseDir string `yaml:"base_dir" env:"WASMSYM_BASE_DIR"`
	// CacheSize bounds the per-run resolution memo. Zero disables it.
	CacheSize int `yaml:"cache_size" env:"WASMSYM_CACHE_SIZE"`
	// LogLevel is one of trace, debug, info, warn, error.
	LogLevel string `yaml:"log_level" env:"WASMSYM_LOG_LEVEL"`
}
