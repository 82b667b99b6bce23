package prompt

import (
	"context"
	"errors"
	"io/fs"
	"path"
	"sort"
	"strings"
)

// TermSetNames lists the distinct term-set IDs in fsys, derived from
// <termset>[.<locale>].{json,yaml,yml} file names.
func TermSetNames(fsys fs.FS) ([]string, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		switch strings.ToLower(path.Ext(name)) {
		case ".json", ".yaml", ".yml":
		default:
			continue
		}
		stem := strings.TrimSuffix(name, path.Ext(name))
		if idx := strings.Index(stem, "."); idx > 0 {
			stem = stem[:idx]
		}
		if stem != "" {
			seen[stem] = struct{}{}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// AskTermSet asks for a term-set ID. When choices is non-empty the operator
// picks from the list; otherwise free text is requested.
func AskTermSet(ctx context.Context, driver Driver, choices []string) (string, error) {
	if driver == nil {
		return "", errors.New("prompt: driver is nil")
	}
	if len(choices) > 0 {
		idx, err := driver.Select(ctx, SelectConfig{
			Message: "Term set",
			Options: choices,
			Help:    "Term set whose terms become the menu.",
		})
		if err != nil {
			return "", err
		}
		if idx < 0 || idx >= len(choices) {
			return "", errors.New("prompt: no term set selected")
		}
		return choices[idx], nil
	}

	value, err := driver.Input(ctx, InputConfig{
		Message: "Term set ID",
		Help:    "Identifier of the term set whose terms become the menu.",
		Validator: func(value string) error {
			if strings.TrimSpace(value) == "" {
				return errors.New("term set ID is required")
			}
			return nil
		},
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(value), nil
}
