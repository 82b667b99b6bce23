package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/goliatone/go-megamenu/pkg/cache"
	"github.com/goliatone/go-megamenu/pkg/orchestrator"
	"github.com/goliatone/go-megamenu/pkg/placeholder"
	"github.com/goliatone/go-megamenu/pkg/placeholder/pagehost"
	"github.com/goliatone/go-megamenu/pkg/taxonomy"
)

const navDocument = `[
  {"name": "Home", "url": "/"},
  {"name": "Products", "terms": [{"name": "Widgets", "url": "/widgets"}]},
  {"name": "Drafts", "localCustomProperties": {"hidden": "true"}}
]`

func writeTerms(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "nav.json"), []byte(navDocument), 0o644); err != nil {
		t.Fatalf("write terms: %v", err)
	}
	return dir
}

func TestRun_WritesDocument(t *testing.T) {
	dir := writeTerms(t)
	output := filepath.Join(t.TempDir(), "menu.html")

	err := run(context.Background(), []string{"-source", dir, "-termset", "nav", "-output", output, "-log-level", "off"}, io.Discard, io.Discard)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	html := string(data)
	for _, fragment := range []string{`<a href="/widgets">Widgets</a>`, `id="menuMobile"`, "<style>"} {
		if !strings.Contains(html, fragment) {
			t.Fatalf("expected %q in document", fragment)
		}
	}
	if strings.Contains(html, "Drafts") {
		t.Fatalf("expected hidden term to be excluded")
	}
}

func TestRun_SQLiteCacheServesSecondRun(t *testing.T) {
	dir := writeTerms(t)
	db := filepath.Join(t.TempDir(), "cache.db")
	args := []string{"-source", dir, "-termset", "nav", "-cache-db", db, "-purge-expired", "-log-level", "off"}

	var first bytes.Buffer
	if err := run(context.Background(), args, &first, io.Discard); err != nil {
		t.Fatalf("first run: %v", err)
	}

	if err := os.Remove(filepath.Join(dir, "nav.json")); err != nil {
		t.Fatalf("remove terms: %v", err)
	}

	var second bytes.Buffer
	if err := run(context.Background(), args, &second, io.Discard); err != nil {
		t.Fatalf("second run: %v", err)
	}
	if first.String() != second.String() {
		t.Fatalf("expected cached terms to render identically")
	}
}

func TestRun_MissingTermSetFails(t *testing.T) {
	dir := writeTerms(t)
	err := run(context.Background(), []string{"-source", dir, "-termset", "missing", "-log-level", "off"}, io.Discard, io.Discard)
	if err == nil {
		t.Fatalf("expected missing term set to fail")
	}
}

func TestRun_DisabledMenuWritesShell(t *testing.T) {
	dir := writeTerms(t)
	var out bytes.Buffer
	if err := run(context.Background(), []string{"-source", dir, "-log-level", "off"}, &out, io.Discard); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), `<ul></ul>`) {
		t.Fatalf("expected empty menu shell, got %q", out.String())
	}
}

func TestServer_Routes(t *testing.T) {
	var calls atomic.Int32
	store := taxonomy.StoreFunc(func(context.Context, string, string) ([]taxonomy.TermNode, error) {
		calls.Add(1)
		return []taxonomy.TermNode{{Name: "Home", URL: "/"}}, nil
	})
	orch := orchestrator.New(orchestrator.WithStore(store), orchestrator.WithCache(cache.NewMemory()))
	page := pagehost.New(placeholder.DefaultSlot)
	cfg := config{TermSet: "nav", Locale: "en-us"}

	controller, err := orch.Attach(page, placeholder.Config{TermSetID: cfg.TermSet, Locale: cfg.Locale})
	if err != nil {
		t.Fatalf("attach: %v", err)
	}
	if err := controller.Start(context.Background()); err != nil {
		t.Fatalf("start: %v", err)
	}
	defer controller.Stop()

	handler := newServer(cfg, orch, page, zerolog.Nop()).routes()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `<a href="/">Home</a>`) {
		t.Fatalf("unexpected page response %d: %q", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), `href="/assets/megamenu.css"`) {
		t.Fatalf("expected linked stylesheet")
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/assets/megamenu.css", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected stylesheet, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/refresh", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 from refresh, got %d", rec.Code)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("expected refresh to refetch, got %d store calls", got)
	}
	if got := page.Creates(placeholder.DefaultSlot); got != 1 {
		t.Fatalf("expected refresh to reuse the slot, got %d creates", got)
	}
}

func TestCounterTotals(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer func() { _ = provider.Shutdown(context.Background()) }()

	store := taxonomy.StoreFunc(func(context.Context, string, string) ([]taxonomy.TermNode, error) {
		return []taxonomy.TermNode{{Name: "Home"}}, nil
	})
	orch := orchestrator.New(orchestrator.WithStore(store), orchestrator.WithMeter(provider.Meter("test")))
	for i := 0; i < 2; i++ {
		if _, err := orch.Fetch(context.Background(), "nav", ""); err != nil {
			t.Fatalf("fetch: %v", err)
		}
	}

	totals, err := counterTotals(context.Background(), reader)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if totals["megamenu.cache.misses"] != 1 || totals["megamenu.cache.hits"] != 1 {
		t.Fatalf("unexpected totals %v", totals)
	}
}

func TestRun_ThemeTokensFromConfig(t *testing.T) {
	dir := writeTerms(t)
	configPath := filepath.Join(t.TempDir(), "megamenu.toml")
	document := "termset = \"nav\"\nsource = \"" + filepath.ToSlash(dir) + "\"\n\n[theme]\n\"megamenu.app\" = \"acme-app\"\n"
	if err := os.WriteFile(configPath, []byte(document), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	var out bytes.Buffer
	if err := run(context.Background(), []string{"-config", configPath, "-log-level", "off"}, &out, io.Discard); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), `<div class="acme-app">`) {
		t.Fatalf("expected themed app class in %q", out.String())
	}
}
