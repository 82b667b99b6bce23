package taxonomy

import (
	"io/fs"
	"net/http"
	"time"
)

// StoreOptions configures the built-in Store implementations. File stores
// read from FileSystem; HTTP stores call BaseURL.
type StoreOptions struct {
	// FileSystem holds term-set documents named <termset>.<locale>.json (or
	// .yaml/.yml), with <termset>.json as the locale-neutral fallback.
	FileSystem fs.FS

	// BaseURL is the term store endpoint. Requests go to
	// {BaseURL}/termsets/{id}/terms?locale={locale}.
	BaseURL string

	// HTTPClient overrides the client used for remote stores.
	HTTPClient *http.Client

	// RequestTimeout caps a single remote fetch. Zero disables the cap.
	RequestTimeout time.Duration

	// Headers are sent with every remote request.
	Headers map[string]string
}

// StoreOption mutates StoreOptions prior to construction.
type StoreOption func(*StoreOptions)

// WithFileSystem selects the filesystem a file store reads from.
func WithFileSystem(files fs.FS) StoreOption {
	return func(opts *StoreOptions) {
		opts.FileSystem = files
	}
}

// WithBaseURL selects the remote term store endpoint.
func WithBaseURL(baseURL string) StoreOption {
	return func(opts *StoreOptions) {
		opts.BaseURL = baseURL
	}
}

// WithHTTPClient injects a custom HTTP client for remote stores.
func WithHTTPClient(client *http.Client) StoreOption {
	return func(opts *StoreOptions) {
		opts.HTTPClient = client
	}
}

// WithRequestTimeout caps remote fetch durations.
func WithRequestTimeout(timeout time.Duration) StoreOption {
	return func(opts *StoreOptions) {
		opts.RequestTimeout = timeout
	}
}

// WithHeader adds a header to every remote request.
func WithHeader(key, value string) StoreOption {
	return func(opts *StoreOptions) {
		if opts.Headers == nil {
			opts.Headers = make(map[string]string)
		}
		opts.Headers[key] = value
	}
}

// NewStoreOptions applies a set of StoreOption values and returns the
// resulting configuration.
func NewStoreOptions(options ...StoreOption) StoreOptions {
	cfg := StoreOptions{}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Construction helpers live in the top-level megamenu package to prevent import cycles.
