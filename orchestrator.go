package megamenu

import (
	"context"

	"github.com/goliatone/go-megamenu/pkg/cache"
	"github.com/goliatone/go-megamenu/pkg/fetcher"
	"github.com/goliatone/go-megamenu/pkg/orchestrator"
	"github.com/goliatone/go-megamenu/pkg/placeholder"
	"github.com/goliatone/go-megamenu/pkg/render"
	"github.com/goliatone/go-megamenu/pkg/taxonomy"
)

// TermNode aliases taxonomy.TermNode for callers building trees by hand.
type TermNode = taxonomy.TermNode

// Request aliases orchestrator.Request.
type Request = orchestrator.Request

// PlaceholderConfig aliases placeholder.Config, the controller settings.
type PlaceholderConfig = placeholder.Config

// Error sentinels re-exported so callers can match them without importing the
// individual packages.
var (
	ErrTermFetchFailed        = fetcher.ErrTermFetchFailed
	ErrPlaceholderUnavailable = placeholder.ErrPlaceholderUnavailable
	ErrPlaceholderDisposed    = placeholder.ErrPlaceholderDisposed
	ErrCacheCorrupt           = cache.ErrCacheCorrupt
	ErrMenuTooDeep            = render.ErrMenuTooDeep
)

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// GenerateHTML fetches the term set through store and renders the menu
// wrapped in its container shell. It is the simplest entry point for callers
// that just want HTML output.
func GenerateHTML(ctx context.Context, store taxonomy.Store, termSetID, locale string, options ...orchestrator.Option) (string, error) {
	gen := orchestrator.New(append([]orchestrator.Option{orchestrator.WithStore(store)}, options...)...)
	return gen.Generate(ctx, orchestrator.Request{
		TermSetID: termSetID,
		Locale:    locale,
		Shell:     true,
	})
}

// Attach renders the menu for cfg into host and keeps it current on host
// change notifications. The returned controller is already started unless
// the error is non-nil; an unavailable slot is reported but the controller is
// still returned so it can recover on a later notification.
func Attach(ctx context.Context, host placeholder.Host, store taxonomy.Store, cfg placeholder.Config, options ...orchestrator.Option) (*placeholder.Controller, error) {
	gen := orchestrator.New(append([]orchestrator.Option{orchestrator.WithStore(store)}, options...)...)
	controller, err := gen.Attach(host, cfg)
	if err != nil {
		return nil, err
	}
	return controller, controller.Start(ctx)
}
