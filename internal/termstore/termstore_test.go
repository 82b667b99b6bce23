package termstore

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-megamenu/pkg/taxonomy"
)

const navJSON = `[
  {"id": "1", "name": "Home", "url": "/"},
  {"id": "2", "name": "Products", "terms": [
    {"id": "2.1", "name": "Widgets", "localCustomProperties": {"url": "/widgets"}}
  ]}
]`

const navYAML = `id: nav
name: Navigation
terms:
  - id: "1"
    name: Startseite
    url: /de
`

func expectedNav() []taxonomy.TermNode {
	return []taxonomy.TermNode{
		{ID: "1", Name: "Home", URL: "/"},
		{ID: "2", Name: "Products", Terms: []taxonomy.TermNode{
			{ID: "2.1", Name: "Widgets", Properties: map[string]string{"url": "/widgets"}},
		}},
	}
}

func TestFileStore_LocaleSpecificWins(t *testing.T) {
	fsys := fstest.MapFS{
		"nav.json":       {Data: []byte(navJSON)},
		"nav.de-de.yaml": {Data: []byte(navYAML)},
	}
	store := NewFileStore(taxonomy.StoreOptions{FileSystem: fsys})

	got, err := store.Terms(context.Background(), "nav", "de-DE")
	if err != nil {
		t.Fatalf("terms: %v", err)
	}
	want := []taxonomy.TermNode{{ID: "1", Name: "Startseite", URL: "/de"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("terms mismatch (-want +got):\n%s", diff)
	}
}

func TestFileStore_FallsBackToNeutralDocument(t *testing.T) {
	fsys := fstest.MapFS{"nav.json": {Data: []byte(navJSON)}}
	store := NewFileStore(taxonomy.StoreOptions{FileSystem: fsys})

	got, err := store.Terms(context.Background(), "nav", "fr-fr")
	if err != nil {
		t.Fatalf("terms: %v", err)
	}
	if diff := cmp.Diff(expectedNav(), got); diff != "" {
		t.Fatalf("terms mismatch (-want +got):\n%s", diff)
	}
}

func TestFileStore_Errors(t *testing.T) {
	fsys := fstest.MapFS{"broken.json": {Data: []byte(`{"terms": [`)}}
	store := NewFileStore(taxonomy.StoreOptions{FileSystem: fsys})

	if _, err := store.Terms(context.Background(), "missing", "en-us"); !errors.Is(err, ErrTermSetNotFound) {
		t.Fatalf("expected ErrTermSetNotFound, got %v", err)
	}
	if _, err := store.Terms(context.Background(), "../etc", ""); err == nil {
		t.Fatalf("expected traversal to be rejected")
	}
	if _, err := store.Terms(context.Background(), "broken", ""); err == nil {
		t.Fatalf("expected decode error")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := store.Terms(ctx, "broken", ""); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context cancellation, got %v", err)
	}
}

func TestHTTPStore_Terms(t *testing.T) {
	var gotPath, gotLocale, gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		gotLocale = r.URL.Query().Get("locale")
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(navJSON))
	}))
	defer server.Close()

	store, err := NewHTTPStore(taxonomy.NewStoreOptions(
		taxonomy.WithBaseURL(server.URL+"/api/"),
		taxonomy.WithHeader("Authorization", "Bearer token"),
	))
	if err != nil {
		t.Fatalf("new http store: %v", err)
	}

	got, err := store.Terms(context.Background(), "top menu", "en-US")
	if err != nil {
		t.Fatalf("terms: %v", err)
	}
	if diff := cmp.Diff(expectedNav(), got); diff != "" {
		t.Fatalf("terms mismatch (-want +got):\n%s", diff)
	}
	if gotPath != "/api/termsets/top%20menu/terms" {
		t.Fatalf("unexpected request path %q", gotPath)
	}
	if gotLocale != "en-US" {
		t.Fatalf("unexpected locale %q", gotLocale)
	}
	if gotAuth != "Bearer token" {
		t.Fatalf("expected configured header, got %q", gotAuth)
	}
}

func TestHTTPStore_StatusErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/termsets/missing/terms" {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer server.Close()

	store, err := NewHTTPStore(taxonomy.StoreOptions{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("new http store: %v", err)
	}

	if _, err := store.Terms(context.Background(), "missing", ""); !errors.Is(err, ErrTermSetNotFound) {
		t.Fatalf("expected ErrTermSetNotFound, got %v", err)
	}
	if _, err := store.Terms(context.Background(), "nav", ""); err == nil {
		t.Fatalf("expected status error")
	}
}

func TestHTTPStore_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	store, err := NewHTTPStore(taxonomy.NewStoreOptions(
		taxonomy.WithBaseURL(server.URL),
		taxonomy.WithRequestTimeout(20*time.Millisecond),
	))
	if err != nil {
		t.Fatalf("new http store: %v", err)
	}

	if _, err := store.Terms(context.Background(), "nav", ""); err == nil {
		t.Fatalf("expected timeout error")
	}
}

func TestNewHTTPStore_Validation(t *testing.T) {
	for _, raw := range []string{"", "ftp://example.com", "::"} {
		if _, err := NewHTTPStore(taxonomy.StoreOptions{BaseURL: raw}); err == nil {
			t.Fatalf("expected error for base url %q", raw)
		}
	}
}

func TestDecode_YAMLSequence(t *testing.T) {
	got, err := Decode("terms.yml", []byte("- name: A\n  url: /a\n- name: B\n"))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := []taxonomy.TermNode{{Name: "A", URL: "/a"}, {Name: "B"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("decode mismatch (-want +got):\n%s", diff)
	}

	if _, err := Decode("terms.yaml", []byte("just a string")); err == nil {
		t.Fatalf("expected scalar document to be rejected")
	}
	if _, err := Decode("terms.json", nil); err == nil {
		t.Fatalf("expected empty document to be rejected")
	}
}
