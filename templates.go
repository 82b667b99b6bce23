package megamenu

import (
	"io/fs"

	"github.com/goliatone/go-megamenu/pkg/renderers/menu"
)

// EmbeddedTemplates exposes the built-in menu templates so callers can reuse
// or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return menu.TemplatesFS()
}
