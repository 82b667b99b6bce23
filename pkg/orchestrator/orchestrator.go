package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/metric"

	"github.com/goliatone/go-megamenu/pkg/cache"
	"github.com/goliatone/go-megamenu/pkg/fetcher"
	"github.com/goliatone/go-megamenu/pkg/placeholder"
	"github.com/goliatone/go-megamenu/pkg/render"
	"github.com/goliatone/go-megamenu/pkg/renderers/menu"
	"github.com/goliatone/go-megamenu/pkg/taxonomy"
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithStore injects the term store the pipeline reads from. Required.
func WithStore(store taxonomy.Store) Option {
	return func(o *Orchestrator) {
		o.store = store
	}
}

// WithCache injects the session cache store. Defaults to an in-memory cache.
func WithCache(store cache.Store) Option {
	return func(o *Orchestrator) {
		o.cache = store
	}
}

// WithTTL overrides the cache entry lifetime.
func WithTTL(ttl time.Duration) Option {
	return func(o *Orchestrator) {
		o.fetcherOptions = append(o.fetcherOptions, fetcher.WithTTL(ttl))
	}
}

// WithKeyer overrides how cache keys are derived.
func WithKeyer(keyer cache.Keyer) Option {
	return func(o *Orchestrator) {
		o.fetcherOptions = append(o.fetcherOptions, fetcher.WithKeyer(keyer))
	}
}

// WithCacheDisabled bypasses the cache entirely.
func WithCacheDisabled(disabled bool) Option {
	return func(o *Orchestrator) {
		o.fetcherOptions = append(o.fetcherOptions, fetcher.WithCacheDisabled(disabled))
	}
}

// WithMeter routes fetcher metrics to meter.
func WithMeter(meter metric.Meter) Option {
	return func(o *Orchestrator) {
		o.fetcherOptions = append(o.fetcherOptions, fetcher.WithMeter(meter))
	}
}

// WithMaxDepth bounds tree nesting for both the fetcher and the default menu
// renderer.
func WithMaxDepth(depth int) Option {
	return func(o *Orchestrator) {
		o.fetcherOptions = append(o.fetcherOptions, fetcher.WithMaxDepth(depth))
		o.rendererOptions = append(o.rendererOptions, menu.WithMaxDepth(depth))
	}
}

// WithRenderer injects a custom page renderer. It takes precedence over
// WithRendererOptions.
func WithRenderer(renderer render.PageRenderer) Option {
	return func(o *Orchestrator) {
		o.renderer = renderer
	}
}

// WithRendererOptions configures the default menu renderer.
func WithRendererOptions(options ...menu.Option) Option {
	return func(o *Orchestrator) {
		o.rendererOptions = append(o.rendererOptions, options...)
	}
}

// WithTransformers registers transformers that run, in order, on every
// fetched tree before rendering.
func WithTransformers(transformers ...Transformer) Option {
	return func(o *Orchestrator) {
		if len(transformers) == 0 {
			return
		}
		o.transformers = append(o.transformers, transformers...)
	}
}

// WithLogger sets the logger shared with the fetcher and controllers.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// Orchestrator coordinates the full pipeline from term store to rendered
// markup. It applies sensible defaults (memory cache, menu renderer, embedded
// templates) while remaining open to dependency injection for advanced callers.
type Orchestrator struct {
	store           taxonomy.Store
	cache           cache.Store
	fetcherOptions  []fetcher.Option
	fetcher         *fetcher.Fetcher
	renderer        render.PageRenderer
	rendererOptions []menu.Option
	transformers    []Transformer
	logger          zerolog.Logger
	initialiseErr   error
}

var _ placeholder.TermFetcher = (*Orchestrator)(nil)

// New constructs an Orchestrator applying any provided options. Missing
// dependencies are initialised with the built-in implementations; a failure
// to do so is reported by the first call that needs them.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{logger: zerolog.Nop()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes the inputs required to render a menu.
type Request struct {
	// TermSetID selects the term set. Required.
	TermSetID string

	// Locale selects the term labels' language.
	Locale string

	// Shell wraps the menu in the container chrome when true.
	Shell bool
}

// Generate executes the fetch → transform → render sequence and returns the
// markup.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (string, error) {
	if ctx == nil {
		return "", errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := o.initialiseErr; err != nil {
		return "", err
	}
	if req.TermSetID == "" {
		return "", errors.New("orchestrator: term set id is required")
	}

	terms, err := o.Fetch(ctx, req.TermSetID, req.Locale)
	if err != nil {
		return "", err
	}

	markup, err := o.renderer.Render(terms)
	if err != nil {
		return "", fmt.Errorf("orchestrator: render menu: %w", err)
	}
	if !req.Shell {
		return markup, nil
	}

	page, err := o.renderer.RenderShell(markup)
	if err != nil {
		return "", fmt.Errorf("orchestrator: render shell: %w", err)
	}
	return page, nil
}

// Fetch resolves a term tree through the cache and applies the registered
// transformers. It satisfies placeholder.TermFetcher.
func (o *Orchestrator) Fetch(ctx context.Context, termSetID, locale string) ([]taxonomy.TermNode, error) {
	if err := o.initialiseErr; err != nil {
		return nil, err
	}

	terms, err := o.fetcher.Fetch(ctx, termSetID, locale)
	if err != nil {
		return nil, err
	}

	for _, transformer := range o.transformers {
		if transformer == nil {
			continue
		}
		terms, err = transformer.Transform(ctx, terms)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: transform terms: %w", err)
		}
	}
	return terms, nil
}

// Invalidate drops the cached tree for a term set and locale.
func (o *Orchestrator) Invalidate(ctx context.Context, termSetID, locale string) error {
	if err := o.initialiseErr; err != nil {
		return err
	}
	return o.fetcher.Invalidate(ctx, termSetID, locale)
}

// Attach builds a placeholder controller that renders this pipeline into
// host. Call Start on the result to subscribe and perform the first render.
func (o *Orchestrator) Attach(host placeholder.Host, cfg placeholder.Config) (*placeholder.Controller, error) {
	if err := o.initialiseErr; err != nil {
		return nil, err
	}
	controller, err := placeholder.New(host,
		placeholder.WithConfig(cfg),
		placeholder.WithFetcher(o),
		placeholder.WithRenderer(o.renderer),
		placeholder.WithLogger(o.logger),
	)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: attach: %w", err)
	}
	return controller, nil
}

// Renderer returns the page renderer in use.
func (o *Orchestrator) Renderer() render.PageRenderer {
	return o.renderer
}

func (o *Orchestrator) applyDefaults() {
	if o.cache == nil {
		o.cache = cache.NewMemory()
	}
	if o.renderer == nil {
		renderer, err := menu.New(o.rendererOptions...)
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
			return
		}
		o.renderer = renderer
	}

	options := append([]fetcher.Option{
		fetcher.WithCache(o.cache),
		fetcher.WithLogger(o.logger),
	}, o.fetcherOptions...)

	f, err := fetcher.New(o.store, options...)
	if err != nil {
		o.initialiseErr = fmt.Errorf("orchestrator: fetcher: %w", err)
		return
	}
	o.fetcher = f
}
