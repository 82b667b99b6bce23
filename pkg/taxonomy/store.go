package taxonomy

import "context"

// Store retrieves the full term hierarchy for a term set. Implementations may
// hit the network and are expected to honour ctx cancellation.
type Store interface {
	Terms(ctx context.Context, termSetID, locale string) ([]TermNode, error)
}

// StoreFunc adapts a plain function into a Store.
type StoreFunc func(ctx context.Context, termSetID, locale string) ([]TermNode, error)

// Terms implements Store.
func (fn StoreFunc) Terms(ctx context.Context, termSetID, locale string) ([]TermNode, error) {
	return fn(ctx, termSetID, locale)
}
