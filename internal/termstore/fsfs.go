package termstore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/goliatone/go-megamenu/pkg/taxonomy"
)

// ErrTermSetNotFound reports that no document matched the term set.
var ErrTermSetNotFound = errors.New("termstore: term set not found")

var extensions = []string{".json", ".yaml", ".yml"}

// FileStore implements taxonomy.Store over an fs.FS.
type FileStore struct {
	fs fs.FS
}

var _ taxonomy.Store = (*FileStore)(nil)

// NewFileStore constructs a FileStore from pre-resolved options.
func NewFileStore(options taxonomy.StoreOptions) *FileStore {
	return &FileStore{fs: options.FileSystem}
}

// Terms implements taxonomy.Store. The locale-specific document wins over the
// locale-neutral one.
func (s *FileStore) Terms(ctx context.Context, termSetID, locale string) ([]taxonomy.TermNode, error) {
	if s.fs == nil {
		return nil, errors.New("termstore: fs is nil")
	}
	termSetID = strings.TrimSpace(termSetID)
	if termSetID == "" {
		return nil, errors.New("termstore: term set id is required")
	}
	if strings.ContainsAny(termSetID, `/\`) || !fs.ValidPath(termSetID) {
		return nil, fmt.Errorf("termstore: invalid term set id %q", termSetID)
	}

	for _, name := range candidates(termSetID, locale) {
		data, err := loadFromFS(ctx, s.fs, name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("termstore: read %s: %w", name, err)
		}
		terms, err := Decode(name, data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return terms, nil
	}

	return nil, fmt.Errorf("%w: %q (locale %q)", ErrTermSetNotFound, termSetID, locale)
}

func candidates(termSetID, locale string) []string {
	var stems []string
	locale = strings.TrimSpace(locale)
	if locale != "" {
		stems = append(stems, termSetID+"."+locale)
		if lower := strings.ToLower(locale); lower != locale {
			stems = append(stems, termSetID+"."+lower)
		}
	}
	stems = append(stems, termSetID)

	names := make([]string, 0, len(stems)*len(extensions))
	for _, stem := range stems {
		for _, ext := range extensions {
			names = append(names, stem+ext)
		}
	}
	return names
}

func loadFromFS(ctx context.Context, files fs.FS, name string) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	return fs.ReadFile(files, name)
}
