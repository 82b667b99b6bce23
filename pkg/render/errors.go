package render

import (
	"errors"
	"fmt"
)

// DefaultMaxDepth bounds menu recursion. Taxonomies are shallow in practice;
// anything deeper than this is treated as malformed input.
const DefaultMaxDepth = 50

// ErrMenuTooDeep is returned when a term tree nests deeper than the
// configured maximum.
var ErrMenuTooDeep = errors.New("render: menu too deep")

// DepthError carries the limit that was exceeded and the path of term names
// leading to the offending node. It unwraps to ErrMenuTooDeep.
type DepthError struct {
	Limit int
	Path  []string
}

func (e *DepthError) Error() string {
	if len(e.Path) == 0 {
		return fmt.Sprintf("%s: exceeds max depth %d", ErrMenuTooDeep, e.Limit)
	}
	return fmt.Sprintf("%s: exceeds max depth %d at %q", ErrMenuTooDeep, e.Limit, e.Path[len(e.Path)-1])
}

func (e *DepthError) Unwrap() error { return ErrMenuTooDeep }
