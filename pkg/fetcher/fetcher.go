package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"golang.org/x/sync/singleflight"

	"github.com/goliatone/go-megamenu/pkg/cache"
	"github.com/goliatone/go-megamenu/pkg/render"
	"github.com/goliatone/go-megamenu/pkg/taxonomy"
)

// Option customises a Fetcher.
type Option func(*Fetcher)

// WithCache sets the session cache store. Defaults to a fresh cache.Memory.
func WithCache(store cache.Store) Option {
	return func(f *Fetcher) {
		if store != nil {
			f.cache = store
		}
	}
}

// WithTTL overrides the cache TTL. Non-positive values keep cache.DefaultTTL.
func WithTTL(ttl time.Duration) Option {
	return func(f *Fetcher) {
		if ttl > 0 {
			f.ttl = ttl
		}
	}
}

// WithKeyer overrides cache key derivation.
func WithKeyer(keyer cache.Keyer) Option {
	return func(f *Fetcher) {
		if keyer != nil {
			f.keyer = keyer
		}
	}
}

// WithCacheDisabled bypasses the cache entirely, which is handy while
// debugging term store content.
func WithCacheDisabled(disabled bool) Option {
	return func(f *Fetcher) {
		f.cacheDisabled = disabled
	}
}

// WithLogger attaches a logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

// WithMeter records cache metrics on meter instead of the global provider.
func WithMeter(meter metric.Meter) Option {
	return func(f *Fetcher) {
		f.meter = meter
	}
}

// WithMaxDepth bounds how deeply a stored tree may nest. Non-positive values
// keep render.DefaultMaxDepth.
func WithMaxDepth(depth int) Option {
	return func(f *Fetcher) {
		if depth > 0 {
			f.maxDepth = depth
		}
	}
}

// Fetcher is the read-through TermTreeFetcher.
type Fetcher struct {
	store         taxonomy.Store
	cache         cache.Store
	ttl           time.Duration
	keyer         cache.Keyer
	cacheDisabled bool
	maxDepth      int
	logger        zerolog.Logger
	meter         metric.Meter
	metrics       *metrics
	group         singleflight.Group
}

// New constructs a Fetcher around store.
func New(store taxonomy.Store, options ...Option) (*Fetcher, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	f := &Fetcher{
		store:  store,
		ttl:    cache.DefaultTTL,
		keyer:    cache.DefaultKey,
		maxDepth: render.DefaultMaxDepth,
		logger:   zerolog.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(f)
	}
	if f.cache == nil {
		f.cache = cache.NewMemory()
	}
	if f.meter == nil {
		f.meter = otel.Meter(meterName)
	}

	m, err := newMetrics(f.meter)
	if err != nil {
		return nil, fmt.Errorf("fetcher: register metrics: %w", err)
	}
	f.metrics = m
	return f, nil
}

// Fetch returns the term tree for termSetID in locale, consulting the cache
// first. The returned slice is owned by the caller.
func (f *Fetcher) Fetch(ctx context.Context, termSetID, locale string) ([]taxonomy.TermNode, error) {
	termSetID = strings.TrimSpace(termSetID)
	locale = strings.TrimSpace(locale)
	if termSetID == "" {
		return nil, ErrTermSetRequired
	}

	key := f.keyer(termSetID, locale)
	if !f.cacheDisabled {
		if terms, ok := f.lookup(ctx, key, termSetID, locale); ok {
			f.metrics.hit(ctx, termSetID, locale)
			return terms, nil
		}
	}
	f.metrics.miss(ctx, termSetID, locale)

	// The shared load outlives any single caller; each caller still stops
	// waiting when its own context is done.
	loadCtx := context.WithoutCancel(ctx)
	results := f.group.DoChan(key, func() (any, error) {
		return f.load(loadCtx, key, termSetID, locale)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-results:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			f.logger.Debug().Str("key", key).Msg("fetcher: joined in-flight term fetch")
		}
		return taxonomy.Clone(res.Val.([]taxonomy.TermNode)), nil
	}
}

// Invalidate drops the cached tree for termSetID in locale.
func (f *Fetcher) Invalidate(ctx context.Context, termSetID, locale string) error {
	key := f.keyer(strings.TrimSpace(termSetID), strings.TrimSpace(locale))
	if err := f.cache.Delete(ctx, key); err != nil {
		return fmt.Errorf("fetcher: invalidate %q: %w", key, err)
	}
	return nil
}

func (f *Fetcher) lookup(ctx context.Context, key, termSetID, locale string) ([]taxonomy.TermNode, bool) {
	raw, ok, err := f.cache.Get(ctx, key)
	if err != nil {
		f.logger.Warn().Err(err).Str("key", key).Msg("fetcher: cache read failed, treating as miss")
		return nil, false
	}
	if !ok {
		return nil, false
	}

	var terms []taxonomy.TermNode
	if err := json.Unmarshal(raw, &terms); err != nil {
		f.metrics.corruptEntry(ctx, termSetID, locale)
		f.logger.Warn().
			Err(fmt.Errorf("%w: %v", cache.ErrCacheCorrupt, err)).
			Str("key", key).
			Msg("fetcher: discarding cached term tree")
		if delErr := f.cache.Delete(ctx, key); delErr != nil {
			f.logger.Debug().Err(delErr).Str("key", key).Msg("fetcher: delete corrupt entry")
		}
		return nil, false
	}
	return terms, true
}

func (f *Fetcher) load(ctx context.Context, key, termSetID, locale string) ([]taxonomy.TermNode, error) {
	terms, err := f.store.Terms(ctx, termSetID, locale)
	if err != nil {
		f.metrics.fetchError(ctx, termSetID, locale)
		return nil, fmt.Errorf("%w: term set %q (locale %q): %w", ErrTermFetchFailed, termSetID, locale, err)
	}
	if terms == nil {
		terms = []taxonomy.TermNode{}
	}
	if path, over := taxonomy.ExceedsDepth(terms, f.maxDepth); over {
		f.metrics.fetchError(ctx, termSetID, locale)
		return nil, fmt.Errorf("fetcher: term set %q (locale %q): %w", termSetID, locale, &render.DepthError{Limit: f.maxDepth, Path: path})
	}

	if f.cacheDisabled {
		return terms, nil
	}

	payload, err := json.Marshal(terms)
	if err != nil {
		f.logger.Warn().Err(err).Str("key", key).Msg("fetcher: encode term tree for cache")
		return terms, nil
	}
	if err := f.cache.Put(ctx, key, payload, f.ttl); err != nil {
		f.logger.Warn().Err(err).Str("key", key).Msg("fetcher: cache write failed")
	}
	return terms, nil
}
