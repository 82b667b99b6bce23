// Package pagehost is an in-memory placeholder.Host. It models a page with
// named slots whose availability can change at runtime, and composes the
// page markup from whatever content consumers wrote into those slots.
package pagehost

import (
	"sort"
	"strings"
	"sync"

	"github.com/goliatone/go-megamenu/pkg/placeholder"
)

// Content is a single consumer's handle into a slot.
type Content struct {
	mu        sync.RWMutex
	markup    string
	disposed  bool
	onDispose func()
}

var _ placeholder.Handle = (*Content)(nil)

// Content returns the current markup.
func (c *Content) Content() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.markup
}

// SetContent replaces the markup. Writes after disposal are ignored.
func (c *Content) SetContent(markup string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed {
		return
	}
	c.markup = markup
}

// Disposed reports whether the host has released this content.
func (c *Content) Disposed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.disposed
}

func (c *Content) dispose() func() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed {
		return nil
	}
	c.disposed = true
	c.markup = ""
	return c.onDispose
}

type slot struct {
	available bool
	contents  []*Content
}

// Page implements placeholder.Host.
type Page struct {
	mu          sync.Mutex
	order       []string
	slots       map[string]*slot
	subscribers map[int]func()
	nextID      int
	creates     map[string]int
}

var _ placeholder.Host = (*Page)(nil)

// New returns a page exposing the named slots as available.
func New(available ...string) *Page {
	p := &Page{
		slots:       make(map[string]*slot),
		subscribers: make(map[int]func()),
		creates:     make(map[string]int),
	}
	for _, name := range available {
		p.ensure(name).available = true
	}
	return p
}

// TryCreate adds a new content handle to slot when it is available.
func (p *Page) TryCreate(name string, options placeholder.CreateOptions) (placeholder.Handle, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	s, ok := p.slots[name]
	if !ok || !s.available {
		return nil, false
	}
	content := &Content{onDispose: options.OnDispose}
	s.contents = append(s.contents, content)
	p.creates[name]++
	return content, true
}

// Subscribe registers fn for availability changes.
func (p *Page) Subscribe(fn func()) func() {
	if fn == nil {
		return func() {}
	}

	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.subscribers[id] = fn
	p.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			p.mu.Lock()
			delete(p.subscribers, id)
			p.mu.Unlock()
		})
	}
}

// SetAvailable changes slot availability and notifies subscribers. Making a
// slot unavailable disposes every content handle it holds.
func (p *Page) SetAvailable(name string, available bool) {
	p.mu.Lock()
	s := p.ensure(name)
	changed := s.available != available
	s.available = available

	var disposers []func()
	if !available {
		disposers = p.releaseLocked(s)
	}
	subscribers := p.subscribersLocked()
	p.mu.Unlock()

	for _, fn := range disposers {
		fn()
	}
	if !changed {
		return
	}
	for _, fn := range subscribers {
		fn()
	}
}

// Notify fires a change notification without altering any slot.
func (p *Page) Notify() {
	p.mu.Lock()
	subscribers := p.subscribersLocked()
	p.mu.Unlock()

	for _, fn := range subscribers {
		fn()
	}
}

// Dispose releases all content in slot while keeping it available.
func (p *Page) Dispose(name string) {
	p.mu.Lock()
	var disposers []func()
	if s, ok := p.slots[name]; ok {
		disposers = p.releaseLocked(s)
	}
	p.mu.Unlock()

	for _, fn := range disposers {
		fn()
	}
}

// Creates reports how many handles were created for slot.
func (p *Page) Creates(name string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.creates[name]
}

// Contents returns the live handles in slot.
func (p *Page) Contents(name string) []*Content {
	p.mu.Lock()
	defer p.mu.Unlock()

	s, ok := p.slots[name]
	if !ok {
		return nil
	}
	return append([]*Content(nil), s.contents...)
}

// HTML composes the page: one wrapper per available slot, in registration
// order, holding the concatenated content of that slot.
func (p *Page) HTML() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	var b strings.Builder
	for _, name := range p.order {
		s := p.slots[name]
		if !s.available {
			continue
		}
		b.WriteString(`<div data-placeholder="`)
		b.WriteString(name)
		b.WriteString(`">`)
		for _, content := range s.contents {
			b.WriteString(content.Content())
		}
		b.WriteString(`</div>`)
	}
	return b.String()
}

func (p *Page) ensure(name string) *slot {
	s, ok := p.slots[name]
	if !ok {
		s = &slot{}
		p.slots[name] = s
		p.order = append(p.order, name)
	}
	return s
}

func (p *Page) releaseLocked(s *slot) []func() {
	var disposers []func()
	for _, content := range s.contents {
		if fn := content.dispose(); fn != nil {
			disposers = append(disposers, fn)
		}
	}
	s.contents = nil
	return disposers
}

func (p *Page) subscribersLocked() []func() {
	ids := make([]int, 0, len(p.subscribers))
	for id := range p.subscribers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]func(), 0, len(ids))
	for _, id := range ids {
		out = append(out, p.subscribers[id])
	}
	return out
}
