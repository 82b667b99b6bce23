package fetcher

import "errors"

var (
	// ErrTermFetchFailed wraps any failure reported by the term store.
	ErrTermFetchFailed = errors.New("fetcher: term fetch failed")
	// ErrTermSetRequired is returned when Fetch is called without a term set.
	ErrTermSetRequired = errors.New("fetcher: term set id is required")
	ErrStoreRequired   = errors.New("fetcher: term store is required")
)
