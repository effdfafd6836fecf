package symbolize

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog"

	"github.com/wasmsym/wasmsym/internal/constants"
	"github.com/wasmsym/wasmsym/internal/sourcemap"
)

// DefaultCacheSize is the number of distinct address strings memoised per run.
const DefaultCacheSize = constants.DefaultCacheSize

// Index is the lookup side of a decoded source map.
type Index interface {
	Lookup(line, column uint32) (sourcemap.Token, bool)
}

// Resolver maps captured address text to a rendered annotation.
// Failures never surface as errors: an address that cannot be decoded or has
// no entry yields an empty annotation.
type Resolver struct {
	index   Index
	baseDir string
	size    int
	cache   *lru.Cache[string, string]
	logger  zerolog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithBaseDir renders source paths relative to dir. An empty dir keeps paths
// exactly as stored in the map.
func WithBaseDir(dir string) Option {
	return func(r *Resolver) { r.baseDir = dir }
}

// WithCacheSize bounds the per-run memo. Zero disables memoisation.
func WithCacheSize(n int) Option {
	return func(r *Resolver) { r.size = n }
}

// WithLogger sets the logger used for trace output.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Resolver) { r.logger = logger }
}

// NewResolver creates a resolver over index.
func NewResolver(index Index, opts ...Option) (*Resolver, error) {
	r := &Resolver{
		index:  index,
		size:   DefaultCacheSize,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.size < 0 {
		return nil, fmt.Errorf("invalid cache size %d", r.size)
	}
	if r.size > 0 {
		cache, err := lru.New[string, string](r.size)
		if err != nil {
			return nil, fmt.Errorf("failed to create resolution cache: %w", err)
		}
		r.cache = cache
	}
	r.logger = r.logger.With().Str("component", "resolver").Logger()
	return r, nil
}

// Annotate returns the rendered location for raw, or "" when it cannot be
// resolved.
func (r *Resolver) Annotate(raw string) string {
	if r.cache != nil {
		if s, ok := r.cache.Get(raw); ok {
			return s
		}
	}
	s := r.resolve(raw)
	if r.cache != nil {
		r.cache.Add(raw, s)
	}
	return s
}

func (r *Resolver) resolve(raw string) string {
	addr, ok := ParseAddress(raw)
	if !ok {
		r.logger.Trace().Str("address", raw).Msg("Address is not a valid 32-bit offset")
		return ""
	}
	tok, ok := r.index.Lookup(0, addr)
	if !ok {
		r.logger.Trace().Uint32("address", addr).Msg("No mapping entry for address")
		return ""
	}
	return Render(&tok, r.baseDir)
}
