package megamenu_test

import (
	"context"
	"errors"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"

	megamenu "github.com/goliatone/go-megamenu"
	"github.com/goliatone/go-megamenu/pkg/placeholder"
	"github.com/goliatone/go-megamenu/pkg/placeholder/pagehost"
)

var termFS = fstest.MapFS{
	"nav.json": {Data: []byte(`[{"name": "Home", "url": "/"}, {"name": "About <us>"}]`)},
}

func TestGenerateHTML(t *testing.T) {
	html, err := megamenu.GenerateHTML(context.Background(), megamenu.NewFileStore(termFS), "nav", "en-us")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !strings.Contains(html, `<ul><li><a href="/">Home</a></li><li><a href="#">About &lt;us&gt;</a></li></ul>`) {
		t.Fatalf("unexpected html %q", html)
	}
	if !strings.HasPrefix(html, "<div") {
		t.Fatalf("expected shell wrapper, got %q", html)
	}
}

func TestGenerateHTML_MissingTermSet(t *testing.T) {
	_, err := megamenu.GenerateHTML(context.Background(), megamenu.NewFileStore(termFS), "missing", "")
	if !errors.Is(err, megamenu.ErrTermFetchFailed) {
		t.Fatalf("expected ErrTermFetchFailed, got %v", err)
	}
}

func TestAttach_UnavailableThenRecovers(t *testing.T) {
	page := pagehost.New()
	controller, err := megamenu.Attach(context.Background(), page, megamenu.NewFileStore(termFS),
		megamenu.PlaceholderConfig{TermSetID: "nav"})
	if !errors.Is(err, megamenu.ErrPlaceholderUnavailable) {
		t.Fatalf("expected ErrPlaceholderUnavailable, got %v", err)
	}
	if controller == nil {
		t.Fatalf("expected controller even when the slot is unavailable")
	}

	page.SetAvailable(placeholder.DefaultSlot, true)
	if !strings.Contains(page.HTML(), `<a href="/">Home</a>`) {
		t.Fatalf("expected menu after slot became available, got %q", page.HTML())
	}
}

func TestEmbeddedTemplates(t *testing.T) {
	matches, err := fs.Glob(megamenu.EmbeddedTemplates(), "templates/*.tmpl")
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("expected embedded templates")
	}
}

func TestNewHTTPStore_RejectsBadURL(t *testing.T) {
	if _, err := megamenu.NewHTTPStore("not a url"); err == nil {
		t.Fatalf("expected invalid base url to fail")
	}
}
