package orchestrator_test

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-megamenu/pkg/fetcher"
	"github.com/goliatone/go-megamenu/pkg/orchestrator"
	"github.com/goliatone/go-megamenu/pkg/placeholder"
	"github.com/goliatone/go-megamenu/pkg/placeholder/pagehost"
	"github.com/goliatone/go-megamenu/pkg/render"
	"github.com/goliatone/go-megamenu/pkg/renderers/menu"
	"github.com/goliatone/go-megamenu/pkg/taxonomy"
	"github.com/goliatone/go-megamenu/pkg/testsupport"
)

func sampleTerms() []taxonomy.TermNode {
	return []taxonomy.TermNode{
		{ID: "1", Name: "Home", URL: "/"},
		{ID: "2", Name: "Products", Terms: []taxonomy.TermNode{
			{ID: "2.1", Name: "Widgets", URL: "/widgets"},
			{ID: "2.2", Name: "Legacy", URL: "/legacy"},
			{ID: "2.3", Name: "Drafts", Properties: map[string]string{"hidden": "true"}},
		}},
	}
}

func countingStore(calls *atomic.Int32) taxonomy.Store {
	return taxonomy.StoreFunc(func(context.Context, string, string) ([]taxonomy.TermNode, error) {
		calls.Add(1)
		return sampleTerms(), nil
	})
}

func TestOrchestrator_GenerateUsesCache(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	orch := orchestrator.New(orchestrator.WithStore(countingStore(&calls)))
	ctx := testsupport.Context()

	first, err := orch.Generate(ctx, orchestrator.Request{TermSetID: "nav", Locale: "en-us"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	second, err := orch.Generate(ctx, orchestrator.Request{TermSetID: "nav", Locale: "en-us"})
	if err != nil {
		t.Fatalf("generate again: %v", err)
	}

	if first != second {
		t.Fatalf("expected identical output across cached renders")
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("expected a single store call, got %d", got)
	}
	if !strings.HasPrefix(first, "<ul><li><a href=\"/\">Home</a></li>") {
		t.Fatalf("unexpected menu markup %q", first)
	}
}

func TestOrchestrator_GenerateShell(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	orch := orchestrator.New(
		orchestrator.WithStore(countingStore(&calls)),
		orchestrator.WithRendererOptions(menu.WithChromeClasses(true)),
	)

	output, err := orch.Generate(testsupport.Context(), orchestrator.Request{TermSetID: "nav", Shell: true})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	for _, fragment := range []string{`id="menu"`, `id="menuMobile"`, `class="megamenu-dropdown-icon"`} {
		if !strings.Contains(output, fragment) {
			t.Fatalf("expected %q in shell output %q", fragment, output)
		}
	}
}

func TestOrchestrator_Transformers(t *testing.T) {
	t.Parallel()

	data, err := os.ReadFile("testdata/preset.yaml")
	if err != nil {
		t.Fatalf("read preset: %v", err)
	}
	preset, err := orchestrator.NewPresetTransformer("preset.yaml", data)
	if err != nil {
		t.Fatalf("preset: %v", err)
	}

	var calls atomic.Int32
	orch := orchestrator.New(
		orchestrator.WithStore(countingStore(&calls)),
		orchestrator.WithTransformers(orchestrator.ExcludeHidden(), preset),
	)

	got, err := orch.Fetch(testsupport.Context(), "nav", "")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	want := []taxonomy.TermNode{
		{ID: "1", Name: "Home", URL: "/"},
		{ID: "2", Name: "Catalogue", URL: "/catalogue", Terms: []taxonomy.TermNode{
			{ID: "2.1", Name: "Widgets", URL: "/widgets"},
		}},
		{Name: "Contact", URL: "/contact"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("transformed terms mismatch (-want +got):\n%s", diff)
	}

	again, err := orch.Fetch(testsupport.Context(), "nav", "")
	if err != nil {
		t.Fatalf("fetch again: %v", err)
	}
	if diff := cmp.Diff(want, again); diff != "" {
		t.Fatalf("transformers must not leak into the cache (-want +got):\n%s", diff)
	}
}

func TestOrchestrator_PresetUnknownSelector(t *testing.T) {
	t.Parallel()

	preset, err := orchestrator.NewPresetTransformer("preset.json", []byte(`{"hide": ["Nope"]}`))
	if err != nil {
		t.Fatalf("preset: %v", err)
	}
	var calls atomic.Int32
	orch := orchestrator.New(
		orchestrator.WithStore(countingStore(&calls)),
		orchestrator.WithTransformers(preset),
	)

	if _, err := orch.Generate(testsupport.Context(), orchestrator.Request{TermSetID: "nav"}); err == nil {
		t.Fatalf("expected unknown selector to fail")
	}
}

func TestOrchestrator_CyclicTreeIsAnError(t *testing.T) {
	t.Parallel()

	store := taxonomy.StoreFunc(func(context.Context, string, string) ([]taxonomy.TermNode, error) {
		nodes := make([]taxonomy.TermNode, 1)
		nodes[0].Name = "loop"
		nodes[0].Terms = nodes
		return nodes, nil
	})
	orch := orchestrator.New(orchestrator.WithStore(store), orchestrator.WithMaxDepth(4))

	_, err := orch.Generate(testsupport.Context(), orchestrator.Request{TermSetID: "nav", Locale: "en-us"})
	var depthErr *render.DepthError
	if !errors.As(err, &depthErr) || depthErr.Limit != 4 {
		t.Fatalf("expected depth error at limit 4, got %v", err)
	}
}

func TestOrchestrator_FetchFailure(t *testing.T) {
	t.Parallel()

	boom := errors.New("term store offline")
	orch := orchestrator.New(orchestrator.WithStore(taxonomy.StoreFunc(
		func(context.Context, string, string) ([]taxonomy.TermNode, error) { return nil, boom },
	)))

	_, err := orch.Generate(testsupport.Context(), orchestrator.Request{TermSetID: "nav"})
	if !errors.Is(err, fetcher.ErrTermFetchFailed) || !errors.Is(err, boom) {
		t.Fatalf("expected wrapped fetch failure, got %v", err)
	}
}

func TestOrchestrator_Validation(t *testing.T) {
	t.Parallel()

	orch := orchestrator.New()
	if _, err := orch.Generate(testsupport.Context(), orchestrator.Request{TermSetID: "nav"}); !errors.Is(err, fetcher.ErrStoreRequired) {
		t.Fatalf("expected ErrStoreRequired, got %v", err)
	}

	var calls atomic.Int32
	orch = orchestrator.New(orchestrator.WithStore(countingStore(&calls)))
	if _, err := orch.Generate(testsupport.Context(), orchestrator.Request{}); err == nil {
		t.Fatalf("expected missing term set to fail")
	}
}

func TestOrchestrator_InvalidateRefetches(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	orch := orchestrator.New(orchestrator.WithStore(countingStore(&calls)))
	ctx := testsupport.Context()

	if _, err := orch.Fetch(ctx, "nav", "en-us"); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if err := orch.Invalidate(ctx, "nav", "en-us"); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if _, err := orch.Fetch(ctx, "nav", "en-us"); err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("expected refetch after invalidation, got %d store calls", got)
	}
}

func TestOrchestrator_AttachRendersIntoHost(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	orch := orchestrator.New(orchestrator.WithStore(countingStore(&calls)))
	page := pagehost.New(placeholder.DefaultSlot)

	controller, err := orch.Attach(page, placeholder.Config{TermSetID: "nav", Locale: "en-us"})
	if err != nil {
		t.Fatalf("attach: %v", err)
	}
	if err := controller.Start(testsupport.Context()); err != nil {
		t.Fatalf("start: %v", err)
	}

	html := page.HTML()
	if !strings.Contains(html, `<a href="/widgets">Widgets</a>`) {
		t.Fatalf("expected rendered menu in page, got %q", html)
	}
	if !strings.HasPrefix(html, `<div data-placeholder="Top">`) {
		t.Fatalf("expected menu inside the Top slot, got %q", html)
	}
}
