package menu

import (
	"errors"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-megamenu/pkg/render"
)

// Theme token names read from the selected manifest.
const (
	TokenApp       = "megamenu.app"
	TokenContainer = "megamenu.container"
	TokenMenu      = "megamenu.menu"
	TokenDropdown  = "megamenu.dropdown"
	TokenNormalSub = "megamenu.normal-sub"
	TokenMobile    = "megamenu.mobile"
)

type themeConfig struct {
	selector theme.ThemeSelector
	name     string
	variant  string
}

// WithThemeSelector resolves class names from a go-theme selection when the
// renderer is constructed. Tokens missing from the manifest keep the defaults.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) Option {
	return func(cfg *config) {
		if selector == nil {
			cfg.theme = nil
			return
		}
		cfg.theme = &themeConfig{
			selector: selector,
			name:     strings.TrimSpace(name),
			variant:  strings.TrimSpace(variant),
		}
	}
}

func (t *themeConfig) resolve() (render.ChromeClasses, error) {
	selection, err := t.selector.Select(t.name, t.variant)
	if err != nil {
		return render.ChromeClasses{}, err
	}
	if selection == nil {
		return render.ChromeClasses{}, errors.New("theme selector returned no selection")
	}
	return ClassesFromSelection(selection), nil
}

// ClassesFromSelection maps manifest tokens onto chrome classes. Unset tokens
// leave the corresponding field empty.
func ClassesFromSelection(selection *theme.Selection) render.ChromeClasses {
	if selection == nil || selection.Manifest == nil {
		return render.ChromeClasses{}
	}
	tokens := selection.Manifest.Tokens
	token := func(key string) string {
		return strings.TrimSpace(tokens[key])
	}
	return render.ChromeClasses{
		App:        token(TokenApp),
		Container:  token(TokenContainer),
		Menu:       token(TokenMenu),
		Dropdown:   token(TokenDropdown),
		NormalSub:  token(TokenNormalSub),
		MobileLink: token(TokenMobile),
	}
}
