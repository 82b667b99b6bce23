package placeholder

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-megamenu/pkg/render"
	"github.com/goliatone/go-megamenu/pkg/renderers/menu"
)

// Controller manages one host slot and writes the rendered menu into it.
type Controller struct {
	host     Host
	fetcher  TermFetcher
	renderer render.PageRenderer
	cfg      Config
	logger   zerolog.Logger

	// mu guards state and handle and doubles as the acquisition guard.
	mu     sync.Mutex
	state  State
	handle Handle

	subMu       sync.Mutex
	started     bool
	notifyCtx   context.Context
	unsubscribe func()
}

// New constructs a Controller for host.
func New(host Host, options ...Option) (*Controller, error) {
	if host == nil {
		return nil, ErrHostRequired
	}
	c := &Controller{
		host:   host,
		logger: zerolog.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	c.cfg = c.cfg.normalized()

	if c.cfg.MenuEnabled() && c.fetcher == nil {
		return nil, ErrFetcherRequired
	}
	if c.renderer == nil {
		r, err := menu.New()
		if err != nil {
			return nil, fmt.Errorf("placeholder: default renderer: %w", err)
		}
		c.renderer = r
	}
	return c, nil
}

// Config returns the normalized configuration.
func (c *Controller) Config() Config {
	return c.cfg
}

// State reports the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Acquire returns the controller's slot handle, asking the host for it only
// while Unacquired. Repeated calls while Acquired return the same handle
// without contacting the host.
func (c *Controller) Acquire() (Handle, error) {
	handle, _, err := c.acquire()
	return handle, err
}

func (c *Controller) acquire() (Handle, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case StateAcquired:
		return c.handle, false, nil
	case StateDisposed:
		return nil, false, ErrPlaceholderDisposed
	}

	handle, ok := c.host.TryCreate(c.cfg.Slot, CreateOptions{OnDispose: c.onDispose})
	if !ok || handle == nil {
		c.logger.Error().Str("slot", c.cfg.Slot).Msg("placeholder: expected slot was not found")
		return nil, false, fmt.Errorf("%w: %q", ErrPlaceholderUnavailable, c.cfg.Slot)
	}

	c.handle = handle
	c.state = StateAcquired
	c.logger.Debug().Str("slot", c.cfg.Slot).Msg("placeholder: slot acquired")
	return handle, true, nil
}

// Render acquires the slot if needed, resolves and renders the menu, and
// writes it into the slot. A freshly acquired slot first receives the empty
// container so the layout is in place while the term tree resolves.
func (c *Controller) Render(ctx context.Context) error {
	handle, fresh, err := c.acquire()
	if err != nil {
		return err
	}

	if fresh {
		shell, err := c.renderer.RenderShell("")
		if err != nil {
			c.logger.Error().Err(err).Msg("placeholder: render shell")
			return err
		}
		if err := c.write(handle, shell); err != nil {
			return err
		}
	}

	if !c.cfg.MenuEnabled() {
		c.logger.Debug().Msg("placeholder: no term set configured, menu disabled")
		return nil
	}

	markup, err := c.compose(ctx)
	if err != nil {
		c.logger.Error().Err(err).
			Str("termset", c.cfg.TermSetID).
			Str("locale", c.cfg.Locale).
			Msg("placeholder: menu not rendered")
		return err
	}
	return c.write(handle, markup)
}

// Start registers the controller's single availability subscription with the
// host and performs the initial render. Later calls only re-render. ctx is
// also used for renders triggered by host notifications.
func (c *Controller) Start(ctx context.Context) error {
	c.subMu.Lock()
	if !c.started {
		c.started = true
		c.notifyCtx = ctx
		c.unsubscribe = c.host.Subscribe(c.onHostChanged)
	}
	c.subMu.Unlock()

	return c.Render(ctx)
}

// Stop removes the host subscription. The slot itself stays with the host.
func (c *Controller) Stop() {
	c.subMu.Lock()
	defer c.subMu.Unlock()

	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
}

func (c *Controller) compose(ctx context.Context) (string, error) {
	terms, err := c.fetcher.Fetch(ctx, c.cfg.TermSetID, c.cfg.Locale)
	if err != nil {
		return "", err
	}
	menuMarkup, err := c.renderer.Render(terms)
	if err != nil {
		return "", fmt.Errorf("placeholder: render menu: %w", err)
	}
	return c.renderer.RenderShell(menuMarkup)
}

// write hands markup to the slot only while it is still Acquired; a disposal
// that lands mid-render drops the result.
func (c *Controller) write(handle Handle, markup string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateAcquired {
		c.logger.Debug().Str("state", c.state.String()).Msg("placeholder: dropping write to released slot")
		return ErrPlaceholderDisposed
	}
	handle.SetContent(markup)
	return nil
}

func (c *Controller) onDispose() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateAcquired {
		return
	}
	c.state = StateDisposed
	c.handle = nil
	c.logger.Info().Str("slot", c.cfg.Slot).Msg("placeholder: slot disposed")
}

func (c *Controller) onHostChanged() {
	if c.State() == StateDisposed {
		return
	}

	c.subMu.Lock()
	ctx := c.notifyCtx
	c.subMu.Unlock()
	if ctx == nil {
		ctx = context.Background()
	}

	if err := c.Render(ctx); err != nil {
		c.logger.Debug().Err(err).Msg("placeholder: re-render after host change failed")
	}
}
