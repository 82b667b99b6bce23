package megamenu

import (
	"io/fs"

	"github.com/goliatone/go-megamenu/internal/termstore"
	"github.com/goliatone/go-megamenu/pkg/taxonomy"
)

// NewFileStore constructs a term store reading term-set documents from fsys,
// keeping the concrete type hidden from consumers.
func NewFileStore(fsys fs.FS, options ...taxonomy.StoreOption) taxonomy.Store {
	cfg := taxonomy.NewStoreOptions(append([]taxonomy.StoreOption{taxonomy.WithFileSystem(fsys)}, options...)...)
	return termstore.NewFileStore(cfg)
}

// NewHTTPStore constructs a term store backed by a remote endpoint.
func NewHTTPStore(baseURL string, options ...taxonomy.StoreOption) (taxonomy.Store, error) {
	cfg := taxonomy.NewStoreOptions(append([]taxonomy.StoreOption{taxonomy.WithBaseURL(baseURL)}, options...)...)
	store, err := termstore.NewHTTPStore(cfg)
	if err != nil {
		return nil, err
	}
	return store, nil
}
