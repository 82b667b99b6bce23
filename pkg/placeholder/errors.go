package placeholder

import "errors"

var (
	// ErrPlaceholderUnavailable reports that the host did not expose the
	// requested slot. The controller stays Unacquired and can retry.
	ErrPlaceholderUnavailable = errors.New("placeholder: slot unavailable")
	// ErrPlaceholderDisposed reports a write or acquisition after the host
	// disposed the slot.
	ErrPlaceholderDisposed = errors.New("placeholder: slot disposed")
	ErrHostRequired        = errors.New("placeholder: host is required")
	ErrFetcherRequired     = errors.New("placeholder: fetcher is required when a term set is configured")
)
