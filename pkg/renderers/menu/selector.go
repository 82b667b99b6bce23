package menu

import (
	"fmt"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// ManifestSelector is a theme.ThemeSelector over a fixed set of manifests. A
// variant's tokens are layered over the base manifest tokens.
type ManifestSelector struct {
	manifests map[string]*theme.Manifest
}

var _ theme.ThemeSelector = (*ManifestSelector)(nil)

// NewManifestSelector indexes manifests by name. Later manifests replace
// earlier ones with the same name.
func NewManifestSelector(manifests ...*theme.Manifest) *ManifestSelector {
	index := make(map[string]*theme.Manifest, len(manifests))
	for _, manifest := range manifests {
		if manifest == nil {
			continue
		}
		index[strings.TrimSpace(manifest.Name)] = manifest
	}
	return &ManifestSelector{manifests: index}
}

// Select implements theme.ThemeSelector. Query options are ignored.
func (s *ManifestSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	manifest, ok := s.manifests[strings.TrimSpace(name)]
	if !ok {
		return nil, fmt.Errorf("menu theme: unknown theme %q", name)
	}

	tokens := make(map[string]string, len(manifest.Tokens))
	for key, value := range manifest.Tokens {
		tokens[key] = value
	}
	if variant = strings.TrimSpace(variant); variant != "" {
		v, ok := manifest.Variants[variant]
		if !ok {
			return nil, fmt.Errorf("menu theme: theme %q has no variant %q", name, variant)
		}
		for key, value := range v.Tokens {
			tokens[key] = value
		}
	}

	resolved := *manifest
	resolved.Tokens = tokens
	return &theme.Selection{
		Theme:    manifest.Name,
		Variant:  variant,
		Manifest: &resolved,
	}, nil
}
