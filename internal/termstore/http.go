package termstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goliatone/go-megamenu/pkg/taxonomy"
)

// maxBodyBytes bounds a term-set response.
const maxBodyBytes = 8 << 20

// HTTPStore implements taxonomy.Store against a remote term store endpoint.
type HTTPStore struct {
	base    *url.URL
	client  *http.Client
	timeout time.Duration
	headers map[string]string
}

var _ taxonomy.Store = (*HTTPStore)(nil)

// NewHTTPStore constructs an HTTPStore from pre-resolved options.
func NewHTTPStore(options taxonomy.StoreOptions) (*HTTPStore, error) {
	raw := strings.TrimSpace(options.BaseURL)
	if raw == "" {
		return nil, errors.New("termstore: base url is required")
	}
	base, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("termstore: parse base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("termstore: unsupported base url scheme %q", base.Scheme)
	}

	timeout := options.RequestTimeout
	var client *http.Client
	if options.HTTPClient != nil {
		clone := *options.HTTPClient
		if timeout > 0 && clone.Timeout == 0 {
			clone.Timeout = timeout
		}
		client = &clone
	} else {
		client = &http.Client{Timeout: timeout}
	}

	headers := make(map[string]string, len(options.Headers))
	for key, value := range options.Headers {
		headers[key] = value
	}

	return &HTTPStore{
		base:    base,
		client:  client,
		timeout: timeout,
		headers: headers,
	}, nil
}

// Terms implements taxonomy.Store.
func (s *HTTPStore) Terms(ctx context.Context, termSetID, locale string) ([]taxonomy.TermNode, error) {
	termSetID = strings.TrimSpace(termSetID)
	if termSetID == "" {
		return nil, errors.New("termstore: term set id is required")
	}

	endpoint := s.endpoint(termSetID, locale)
	data, err := s.load(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	return decodeJSON(data)
}

func (s *HTTPStore) endpoint(termSetID, locale string) string {
	u := *s.base
	u.Path = strings.TrimRight(s.base.Path, "/") + "/termsets/" + termSetID + "/terms"
	u.RawPath = strings.TrimRight(s.base.EscapedPath(), "/") + "/termsets/" + url.PathEscape(termSetID) + "/terms"

	query := u.Query()
	if locale = strings.TrimSpace(locale); locale != "" {
		query.Set("locale", locale)
	}
	u.RawQuery = query.Encode()
	return u.String()
}

func (s *HTTPStore) load(ctx context.Context, endpoint string) ([]byte, error) {
	reqCtx := ctx
	var cancel context.CancelFunc
	if s.timeout > 0 {
		reqCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	for key, value := range s.headers {
		req.Header.Set(key, value)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", ErrTermSetNotFound, endpoint)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.New("termstore: unexpected status " + resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, err
	}
	return data, nil
}
