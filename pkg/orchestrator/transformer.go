package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-megamenu/pkg/taxonomy"
)

// Transformer rewrites a fetched term tree before it is rendered.
// Implementations receive a tree they own and may mutate it in place.
type Transformer interface {
	Transform(ctx context.Context, terms []taxonomy.TermNode) ([]taxonomy.TermNode, error)
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, terms []taxonomy.TermNode) ([]taxonomy.TermNode, error)

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, terms []taxonomy.TermNode) ([]taxonomy.TermNode, error) {
	if fn == nil {
		return terms, nil
	}
	return fn(ctx, terms)
}

// HiddenProperty is the custom property that hides a term when set to a true
// value.
const HiddenProperty = "hidden"

// ExcludeHidden drops every term (and its subtree) whose hidden custom
// property parses as true.
func ExcludeHidden() Transformer {
	return TransformerFunc(func(_ context.Context, terms []taxonomy.TermNode) ([]taxonomy.TermNode, error) {
		return filterTerms(terms, func(term taxonomy.TermNode) bool {
			return !isTrue(term.Properties[HiddenProperty])
		}), nil
	})
}

// PresetTransformer applies declarative overrides loaded from a JSON or YAML
// document. Term selectors match a term ID first, then a "/"-separated path of
// term names:
//
//	{
//	  "hide": ["Products/Legacy"],
//	  "terms": {
//	    "2": {"name": "Catalogue", "url": "/catalogue"}
//	  },
//	  "append": [{"name": "Contact", "url": "/contact"}]
//	}
type PresetTransformer struct {
	document presetDocument
}

type presetDocument struct {
	Hide   []string             `json:"hide" yaml:"hide"`
	Terms  map[string]termPatch `json:"terms" yaml:"terms"`
	Append []taxonomy.TermNode  `json:"append" yaml:"append"`
}

type termPatch struct {
	Name       string            `json:"name" yaml:"name"`
	URL        string            `json:"url" yaml:"url"`
	Properties map[string]string `json:"properties" yaml:"properties"`
}

// NewPresetTransformer constructs a transformer from raw bytes. name selects
// the decoder by extension; anything other than .yaml/.yml is read as JSON.
func NewPresetTransformer(name string, data []byte) (*PresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("preset transformer: document is empty")
	}

	var document presetDocument
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &document); err != nil {
			return nil, fmt.Errorf("preset transformer: parse document: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &document); err != nil {
			return nil, fmt.Errorf("preset transformer: parse document: %w", err)
		}
	}
	return &PresetTransformer{document: document}, nil
}

// NewPresetTransformerFromFS loads a preset document from the provided
// filesystem path.
func NewPresetTransformerFromFS(fsys fs.FS, name string) (*PresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(name) == "" {
		return nil, errors.New("preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("preset transformer: read %s: %w", name, err)
	}
	return NewPresetTransformer(name, data)
}

// Transform hides, then patches, then appends, so selectors see term names as
// fetched. A selector that matches nothing is an error.
func (t *PresetTransformer) Transform(ctx context.Context, terms []taxonomy.TermNode) ([]taxonomy.TermNode, error) {
	for _, selector := range t.document.Hide {
		if findTerm(terms, selector) == nil {
			return nil, fmt.Errorf("preset transformer: term %q not found", selector)
		}
		terms = removeTerm(terms, selector)
	}

	for selector, patch := range t.document.Terms {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		term := findTerm(terms, selector)
		if term == nil {
			return nil, fmt.Errorf("preset transformer: term %q not found", selector)
		}
		applyTermPatch(term, patch)
	}

	if len(t.document.Append) > 0 {
		terms = append(terms, taxonomy.Clone(t.document.Append)...)
	}
	return terms, nil
}

func applyTermPatch(term *taxonomy.TermNode, patch termPatch) {
	if name := strings.TrimSpace(patch.Name); name != "" {
		term.Name = name
	}
	if url := strings.TrimSpace(patch.URL); url != "" {
		term.URL = url
	}
	if len(patch.Properties) > 0 {
		term.Properties = mergeStringMap(term.Properties, patch.Properties)
	}
}

func findTerm(terms []taxonomy.TermNode, selector string) *taxonomy.TermNode {
	selector = strings.TrimSpace(selector)
	if selector == "" {
		return nil
	}
	if term := findByID(terms, selector); term != nil {
		return term
	}
	return walkTermsByPath(terms, strings.Split(selector, "/"))
}

func findByID(terms []taxonomy.TermNode, id string) *taxonomy.TermNode {
	for idx := range terms {
		term := &terms[idx]
		if term.ID != "" && term.ID == id {
			return term
		}
		if found := findByID(term.Terms, id); found != nil {
			return found
		}
	}
	return nil
}

func walkTermsByPath(terms []taxonomy.TermNode, segments []string) *taxonomy.TermNode {
	if len(segments) == 0 {
		return nil
	}
	head := strings.TrimSpace(segments[0])
	for idx := range terms {
		term := &terms[idx]
		if term.Name != head {
			continue
		}
		if len(segments) == 1 {
			return term
		}
		return walkTermsByPath(term.Terms, segments[1:])
	}
	return nil
}

func removeTerm(terms []taxonomy.TermNode, selector string) []taxonomy.TermNode {
	target := findTerm(terms, selector)
	if target == nil {
		return terms
	}
	victim := *target
	return filterTerms(terms, func(term taxonomy.TermNode) bool {
		return !sameTerm(term, victim)
	})
}

// sameTerm compares identity fields only; Terms is ignored so a match does not
// walk the subtree twice.
func sameTerm(a, b taxonomy.TermNode) bool {
	if a.ID != "" || b.ID != "" {
		return a.ID == b.ID
	}
	return a.Name == b.Name && a.URL == b.URL && len(a.Terms) == len(b.Terms)
}

func filterTerms(terms []taxonomy.TermNode, keep func(taxonomy.TermNode) bool) []taxonomy.TermNode {
	if len(terms) == 0 {
		return terms
	}
	out := terms[:0]
	for _, term := range terms {
		if !keep(term) {
			continue
		}
		term.Terms = filterTerms(term.Terms, keep)
		out = append(out, term)
	}
	return out
}

func isTrue(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "yes":
		return true
	default:
		return false
	}
}

func mergeStringMap(dst, src map[string]string) map[string]string {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = make(map[string]string, len(src))
	}
	for key, value := range src {
		dst[key] = value
	}
	return dst
}
