// Package filter drives the scan, resolve and rewrite loop over an input
// source and writes the annotated text to a sink.
package filter

import (
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/wasmsym/wasmsym/internal/input"
	"github.com/wasmsym/wasmsym/internal/scan"
)

// Annotator resolves the address text of one token into an annotation.
// An empty annotation means the token could not be resolved.
type Annotator interface {
	Annotate(address string) string
}

// Options configures a Filter.
type Options struct {
	Mode   Mode
	Logger zerolog.Logger
}

// Stats summarises one run.
type Stats struct {
	// Units is the number of units rewritten: 1 in whole-buffer mode, the
	// number of lines otherwise.
	Units int
	// Tokens is the number of address tokens found.
	Tokens int
}

// Filter rewrites text by appending resolved locations after address tokens.
type Filter struct {
	scanner   *scan.Scanner
	annotator Annotator
	mode      Mode
	logger    zerolog.Logger
}

// New creates a filter.
func New(annotator Annotator, opts Options) *Filter {
	return &Filter{
		scanner:   scan.New(),
		annotator: annotator,
		mode:      opts.Mode,
		logger:    opts.Logger.With().Str("component", "filter").Logger(),
	}
}

// Rewrite annotates every token in unit.
func (f *Filter) Rewrite(unit string) (string, int) {
	return f.scanner.Rewrite(unit, f.annotator.Annotate)
}

// Run reads src to exhaustion and writes the rewritten text to dst. Read and
// write failures abort the run; in line-buffered mode everything written
// before the failure stays written.
func (f *Filter) Run(src input.Source, dst io.Writer) (Stats, error) {
	f.logger.Debug().Stringer("mode", f.mode).Msg("Filtering input")

	var (
		stats Stats
		err   error
	)
	switch f.mode {
	case WholeBuffer:
		stats, err = f.runWhole(src, dst)
	case LineBuffered:
		stats, err = f.runLines(src, dst)
	default:
		return stats, fmt.Errorf("unsupported delivery mode %s", f.mode)
	}
	if err != nil {
		return stats, err
	}

	f.logger.Debug().
		Int("units", stats.Units).
		Int("tokens", stats.Tokens).
		Msg("Input exhausted")
	return stats, nil
}

func (f *Filter) runWhole(src input.Source, dst io.Writer) (Stats, error) {
	text, err := src.ReadAll()
	if err != nil {
		return Stats{}, fmt.Errorf("failed to read input: %w", err)
	}
	out, n := f.Rewrite(text)
	if _, err := io.WriteString(dst, out); err != nil {
		return Stats{}, fmt.Errorf("failed to write output: %w", err)
	}
	return Stats{Units: 1, Tokens: n}, nil
}

func (f *Filter) runLines(src input.Source, dst io.Writer) (Stats, error) {
	var stats Stats
	for {
		line, err := src.ReadLine()
		if errors.Is(err, io.EOF) {
			return stats, nil
		}
		if err != nil {
			return stats, fmt.Errorf("failed to read input: %w", err)
		}
		out, n := f.Rewrite(line)
		if _, err := io.WriteString(dst, out); err != nil {
			return stats, fmt.Errorf("failed to write output: %w", err)
		}
		stats.Units++
		stats.Tokens += n
	}
}
