package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/wasmsym/wasmsym/internal/config"
	"github.com/wasmsym/wasmsym/internal/errors"
	"github.com/wasmsym/wasmsym/internal/filter"
	"github.com/wasmsym/wasmsym/internal/input"
	"github.com/wasmsym/wasmsym/internal/logging"
	"github.com/wasmsym/wasmsym/internal/sourcemap"
	"github.com/wasmsym/wasmsym/internal/symbolize"
)

type options struct {
	sourceMap string
	input     string

	stdout       bool
	absolutePath bool
	lineBuffer   bool
	baseDir      string
	cacheSize    int
	logLevel     string
	configPath   string
}

func run(cmd *cobra.Command, fs afero.Fs, opts *options) error {
	cfg, err := loadConfig(cmd, fs, opts)
	if err != nil {
		return err
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.LogLevel
	logCfg.Output = cmd.ErrOrStderr()
	logCfg.Pretty = logging.IsTerminal(logCfg.Output)
	// The resolver and filter tag their own component.
	base := logging.New(logCfg)
	logger := logging.NewWithComponent(logCfg, "cli")

	src, err := input.Open(fs, opts.input, cmd.InOrStdin())
	if err != nil {
		return err
	}
	defer errors.DeferClose(logger, src, "failed to close input")

	baseDir, err := resolveBaseDir(cfg)
	if err != nil {
		return err
	}

	index, err := sourcemap.LoadFile(fs, opts.sourceMap)
	if err != nil {
		return fmt.Errorf("failed to load source map: %w", err)
	}
	logger.Debug().
		Str("path", opts.sourceMap).
		Str("file", index.File()).
		Int("mappings", index.Len()).
		Int("sources", len(index.Sources())).
		Msg("Source map loaded")

	resolver, err := symbolize.NewResolver(index,
		symbolize.WithBaseDir(baseDir),
		symbolize.WithCacheSize(cfg.CacheSize),
		symbolize.WithLogger(base),
	)
	if err != nil {
		return err
	}

	mode := filter.WholeBuffer
	if cfg.LineBuffer {
		mode = filter.LineBuffered
	}

	stats, err := filter.New(resolver, filter.Options{Mode: mode, Logger: base}).
		Run(src, outputSink(cmd, cfg))
	if err != nil {
		return err
	}
	logger.Info().Int("tokens", stats.Tokens).Int("units", stats.Units).Msg("Done")
	return nil
}

// loadConfig layers explicitly set flags over the config file and environment.
func loadConfig(cmd *cobra.Command, fs afero.Fs, opts *options) (*config.Config, error) {
	loader := config.NewLoader(fs)

	var (
		cfg *config.Config
		err error
	)
	if opts.configPath != "" {
		cfg, err = loader.LoadFile(opts.configPath)
	} else {
		cfg, err = loader.Load()
	}
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("stdout") {
		cfg.Stdout = opts.stdout
	}
	if flags.Changed("absolute-path") {
		cfg.AbsolutePath = opts.absolutePath
	}
	if flags.Changed("line-buffer") {
		cfg.LineBuffer = opts.lineBuffer
	}
	if flags.Changed("base-dir") {
		cfg.BaseDir = opts.baseDir
	}
	if flags.Changed("cache-size") {
		cfg.CacheSize = opts.cacheSize
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveBaseDir returns "" in absolute-path mode.
func resolveBaseDir(cfg *config.Config) (string, error) {
	if cfg.AbsolutePath {
		return "", nil
	}
	if cfg.BaseDir != "" {
		return cfg.BaseDir, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return wd, nil
}

func outputSink(cmd *cobra.Command, cfg *config.Config) io.Writer {
	if cfg.Stdout {
		return cmd.OutOrStdout()
	}
	return cmd.ErrOrStderr()
}
