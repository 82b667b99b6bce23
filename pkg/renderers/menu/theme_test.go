package menu

import (
	"errors"
	"strings"
	"testing"

	theme "github.com/goliatone/go-theme"
)

type stubThemeSelector struct {
	selection *theme.Selection
	err       error
	calls     []string
}

func (s *stubThemeSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.calls = append(s.calls, name+"/"+variant)
	return s.selection, s.err
}

func TestWithThemeSelector_OverridesClasses(t *testing.T) {
	selector := &stubThemeSelector{selection: &theme.Selection{
		Theme:   "acme",
		Variant: "dark",
		Manifest: &theme.Manifest{
			Name:    "acme",
			Version: "1.0.0",
			Tokens: map[string]string{
				TokenApp:      "acme-app",
				TokenDropdown: "acme-dropdown",
			},
		},
	}}

	renderer := newRenderer(t, WithChromeClasses(true), WithThemeSelector(selector, "acme", "dark"))

	if len(selector.calls) != 1 || selector.calls[0] != "acme/dark" {
		t.Fatalf("unexpected selector calls %v", selector.calls)
	}

	shell, err := renderer.RenderShell("")
	if err != nil {
		t.Fatalf("render shell: %v", err)
	}
	if !strings.HasPrefix(shell, `<div class="acme-app"><div class="megamenu-container">`) {
		t.Fatalf("expected themed app class with default container, got %q", shell)
	}
}

func TestWithThemeSelector_PropagatesErrors(t *testing.T) {
	selector := &stubThemeSelector{err: errors.New("unknown theme")}

	if _, err := New(WithThemeSelector(selector, "missing", "")); err == nil {
		t.Fatalf("expected theme resolution error")
	}
}

func TestClassesFromSelection_Nil(t *testing.T) {
	if got := ClassesFromSelection(nil); got.App != "" {
		t.Fatalf("expected empty classes, got %#v", got)
	}
}
