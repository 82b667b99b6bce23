package termstore

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-megamenu/pkg/renderers/menu"
	"github.com/goliatone/go-megamenu/pkg/taxonomy"
)

// Violation describes a problem in a term-set document that would degrade the
// rendered menu.
type Violation struct {
	Location string
	Message  string
}

func (v Violation) String() string {
	return v.Location + " -> " + v.Message
}

// Lint walks terms and reports empty names, links the renderer would replace
// with the default href, duplicate IDs, and nesting deeper than maxDepth.
// Violations are returned in document order.
func Lint(terms []taxonomy.TermNode, maxDepth int) []Violation {
	l := &linter{maxDepth: maxDepth, seen: make(map[string]string)}
	l.walk(terms, nil, 1)
	return l.result
}

type linter struct {
	maxDepth int
	seen     map[string]string
	result   []Violation
}

func (l *linter) walk(terms []taxonomy.TermNode, path []string, depth int) {
	if l.maxDepth > 0 && depth > l.maxDepth && len(terms) > 0 {
		l.add(path, fmt.Sprintf("nesting exceeds max depth %d", l.maxDepth))
		return
	}

	for idx, term := range terms {
		next := appendPath(path, segment(idx, term))

		if strings.TrimSpace(term.Name) == "" {
			l.add(next, "term name is empty")
		}
		if link, ok := term.Link(); ok {
			if _, safe := menu.SafeLink(link); !safe {
				l.add(next, fmt.Sprintf("link %q is not a relative, http(s), mailto, or tel url", link))
			}
		}
		if term.ID != "" {
			if first, dup := l.seen[term.ID]; dup {
				l.add(next, fmt.Sprintf("duplicate id %q (first seen at %s)", term.ID, first))
			} else {
				l.seen[term.ID] = formatLocation(next)
			}
		}

		l.walk(term.Terms, next, depth+1)
	}
}

func (l *linter) add(path []string, message string) {
	l.result = append(l.result, Violation{Location: formatLocation(path), Message: message})
}

func segment(idx int, term taxonomy.TermNode) string {
	if name := strings.TrimSpace(term.Name); name != "" {
		return name
	}
	return fmt.Sprintf("#%d", idx)
}

func appendPath(path []string, segment string) []string {
	next := append([]string(nil), path...)
	return append(next, segment)
}

func formatLocation(path []string) string {
	if len(path) == 0 {
		return "(root)"
	}
	return strings.Join(path, " > ")
}
