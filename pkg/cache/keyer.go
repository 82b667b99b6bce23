package cache

import "strings"

// DefaultKeyPrefix namespaces navigation term entries inside a shared store.
const DefaultKeyPrefix = "global-navigation-terms"

// Keyer derives the cache key for a term set and locale.
type Keyer func(termSetID, locale string) string

// ScopedKeyer returns a Keyer that scopes entries by term set and locale under
// prefix, so configurations never share a cached tree.
func ScopedKeyer(prefix string) Keyer {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return func(termSetID, locale string) string {
		return prefix + ":" + normalizeSegment(termSetID) + ":" + normalizeSegment(locale)
	}
}

// DefaultKey is ScopedKeyer(DefaultKeyPrefix).
func DefaultKey(termSetID, locale string) string {
	return ScopedKeyer(DefaultKeyPrefix)(termSetID, locale)
}

func normalizeSegment(raw string) string {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return "_"
	}
	return strings.NewReplacer(":", "%3A", "\n", "", "\r", "").Replace(trimmed)
}
