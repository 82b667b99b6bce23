package taxonomy

import "strings"

// URLProperty is the custom property term stores use to carry a link target.
const URLProperty = "url"

// TermNode is a single taxonomy entry. Terms preserves the order reported by
// the term store; renderers must not reorder it.
type TermNode struct {
	ID         string            `json:"id,omitempty" yaml:"id,omitempty"`
	Name       string            `json:"name" yaml:"name"`
	URL        string            `json:"url,omitempty" yaml:"url,omitempty"`
	Properties map[string]string `json:"localCustomProperties,omitempty" yaml:"localCustomProperties,omitempty"`
	Terms      []TermNode        `json:"terms,omitempty" yaml:"terms,omitempty"`
}

// Root is the ordered first level of a menu.
type Root []TermNode

// Link returns the node's link target. URL wins over the url custom property;
// ok is false when neither is set.
func (n TermNode) Link() (string, bool) {
	if link := strings.TrimSpace(n.URL); link != "" {
		return link, true
	}
	if n.Properties != nil {
		if link := strings.TrimSpace(n.Properties[URLProperty]); link != "" {
			return link, true
		}
	}
	return "", false
}

// HasChildren reports whether the node has nested terms.
func (n TermNode) HasChildren() bool {
	return len(n.Terms) > 0
}

// ExceedsDepth reports whether terms nest deeper than limit levels and returns
// the names leading to the first level past it. It descends at most limit+1
// levels, so it terminates on cyclic input. Run it before Count, Depth or
// Clone on trees from an untrusted store.
func ExceedsDepth(terms []TermNode, limit int) ([]string, bool) {
	return exceedsDepth(terms, 1, limit, nil)
}

func exceedsDepth(terms []TermNode, depth, limit int, path []string) ([]string, bool) {
	if len(terms) == 0 {
		return nil, false
	}
	if depth > limit {
		return path, true
	}
	for _, term := range terms {
		if over, ok := exceedsDepth(term.Terms, depth+1, limit, append(path[:len(path):len(path)], term.Name)); ok {
			return over, true
		}
	}
	return nil, false
}

// Count returns the total number of nodes in terms, including descendants.
// terms must be acyclic.
func Count(terms []TermNode) int {
	total := 0
	for _, term := range terms {
		total += 1 + Count(term.Terms)
	}
	return total
}

// Depth returns the number of levels in terms. An empty slice has depth 0 and
// a flat list has depth 1. terms must be acyclic.
func Depth(terms []TermNode) int {
	if len(terms) == 0 {
		return 0
	}
	deepest := 0
	for _, term := range terms {
		if d := Depth(term.Terms); d > deepest {
			deepest = d
		}
	}
	return deepest + 1
}

// Clone returns a deep copy of terms so callers can hand trees across
// ownership boundaries without sharing slices. terms must be acyclic; see
// ExceedsDepth.
func Clone(terms []TermNode) []TermNode {
	if terms == nil {
		return nil
	}
	out := make([]TermNode, len(terms))
	for i, term := range terms {
		out[i] = term
		if term.Properties != nil {
			props := make(map[string]string, len(term.Properties))
			for k, v := range term.Properties {
				props[k] = v
			}
			out[i].Properties = props
		}
		out[i].Terms = Clone(term.Terms)
	}
	return out
}
