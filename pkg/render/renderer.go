package render

import "github.com/goliatone/go-megamenu/pkg/taxonomy"

// MenuRenderer converts a term hierarchy into markup. Implementations must be
// pure: the same tree always yields the same output and nothing outside the
// return values is touched.
type MenuRenderer interface {
	Render(terms []taxonomy.TermNode) (string, error)
}

// ShellRenderer wraps rendered menu markup in the container chrome written to
// the host slot.
type ShellRenderer interface {
	RenderShell(menuMarkup string) (string, error)
}

// PageRenderer is the combination the placeholder controller depends on.
type PageRenderer interface {
	MenuRenderer
	ShellRenderer
}

// MenuRendererFunc adapts a function into a MenuRenderer.
type MenuRendererFunc func(terms []taxonomy.TermNode) (string, error)

// Render implements MenuRenderer.
func (fn MenuRendererFunc) Render(terms []taxonomy.TermNode) (string, error) {
	return fn(terms)
}
