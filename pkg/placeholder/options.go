package placeholder

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-megamenu/pkg/render"
	"github.com/goliatone/go-megamenu/pkg/taxonomy"
)

// Config selects what the controller renders and where.
type Config struct {
	// TermSetID names the term set backing the menu. Empty disables the menu:
	// the slot still receives the container chrome with an empty list.
	TermSetID string
	// Locale scopes term labels and the cache entry.
	Locale string
	// Slot is the host slot to acquire. Defaults to DefaultSlot.
	Slot string
}

// MenuEnabled reports whether a term set is configured.
func (c Config) MenuEnabled() bool {
	return strings.TrimSpace(c.TermSetID) != ""
}

func (c Config) normalized() Config {
	c.TermSetID = strings.TrimSpace(c.TermSetID)
	c.Locale = strings.TrimSpace(c.Locale)
	c.Slot = strings.TrimSpace(c.Slot)
	if c.Slot == "" {
		c.Slot = DefaultSlot
	}
	return c
}

// TermFetcher resolves a term tree. *fetcher.Fetcher satisfies it.
type TermFetcher interface {
	Fetch(ctx context.Context, termSetID, locale string) ([]taxonomy.TermNode, error)
}

// Option customises a Controller.
type Option func(*Controller)

// WithConfig sets the controller configuration.
func WithConfig(cfg Config) Option {
	return func(c *Controller) {
		c.cfg = cfg
	}
}

// WithFetcher sets the term tree source.
func WithFetcher(f TermFetcher) Option {
	return func(c *Controller) {
		c.fetcher = f
	}
}

// WithRenderer overrides the menu renderer.
func WithRenderer(r render.PageRenderer) Option {
	return func(c *Controller) {
		if r != nil {
			c.renderer = r
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}
