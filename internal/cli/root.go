package cli

import (
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/wasmsym/wasmsym/internal/constants"
	"github.com/wasmsym/wasmsym/internal/logging"
	"github.com/wasmsym/wasmsym/pkg/version"
)

// NewRootCmd builds the wasmsym command over the given filesystem.
func NewRootCmd(fs afero.Fs) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "wasmsym [flags] <sourcemap> [input]",
		Short: "Resolve wasm addresses in stack traces to source locations",
		Long: `Scans a trace for wasm frames such as

  wasm://wasm/000c5502:wasm-function[1060]:0x2648d

and appends the original source location found in the given source map:

  wasm://wasm/000c5502:wasm-function[1060]:0x2648d src/lib.rs:42:5

Input is read from the named file, or from stdin when none is given.
The filtered text goes to stderr unless --stdout is set.

By default all input is read before anything is written. With --line-buffer
each line is filtered and written as soon as it arrives, which suits long
running processes; a frame broken across two lines is then left as is.

Defaults can be set in ~/.wasmsym/config.yaml (or $WASMSYM_CONFIG/config.yaml)
and through WASMSYM_* environment variables. Flags take precedence.

Examples:
  # Filter a saved trace and print to stdout
  wasmsym -o app.wasm.map crash.log

  # Follow a dev server, line by line
  npm run dev 2>&1 | wasmsym -l -o app.wasm.map`,
		Args:          cobra.RangeArgs(1, 2),
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.sourceMap = args[0]
			if len(args) == 2 {
				opts.input = args[1]
			}
			return run(cmd, fs, &opts)
		},
	}

	flags := cmd.Flags()
	flags.BoolVarP(&opts.stdout, "stdout", "o", false, "Print filtered result to stdout instead of stderr")
	flags.BoolVarP(&opts.absolutePath, "absolute-path", "p", false, "Print source paths as stored in the source map instead of relative to the working directory")
	flags.BoolVarP(&opts.lineBuffer, "line-buffer", "l", false, "Filter line by line instead of waiting for the input to close")
	flags.StringVar(&opts.baseDir, "base-dir", "", "Directory that relative source paths are computed against (default: working directory)")
	flags.IntVar(&opts.cacheSize, "cache-size", constants.DefaultCacheSize, "Number of distinct addresses to memoise, 0 disables the cache")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level ("+strings.Join(logging.Levels, ", ")+")")
	flags.StringVar(&opts.configPath, "config", "", "Path to a config file (default: ~/.wasmsym/config.yaml)")

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd(afero.NewOsFs()).Execute()
}
