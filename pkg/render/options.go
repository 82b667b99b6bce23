package render

// ChromeClasses names the CSS classes emitted around and inside the menu.
// Empty values fall back to DefaultChromeClasses.
type ChromeClasses struct {
	App        string
	Container  string
	Menu       string
	Dropdown   string
	NormalSub  string
	MobileLink string
}

// DefaultChromeClasses mirrors the stylesheet shipped with the menu assets.
func DefaultChromeClasses() ChromeClasses {
	return ChromeClasses{
		App:        "megamenu-app",
		Container:  "megamenu-container",
		Menu:       "megamenu",
		Dropdown:   "megamenu-dropdown-icon",
		NormalSub:  "megamenu-normal-sub",
		MobileLink: "megamenu-mobile",
	}
}

// Merge fills empty fields from fallback.
func (c ChromeClasses) Merge(fallback ChromeClasses) ChromeClasses {
	pick := func(v, def string) string {
		if v == "" {
			return def
		}
		return v
	}
	return ChromeClasses{
		App:        pick(c.App, fallback.App),
		Container:  pick(c.Container, fallback.Container),
		Menu:       pick(c.Menu, fallback.Menu),
		Dropdown:   pick(c.Dropdown, fallback.Dropdown),
		NormalSub:  pick(c.NormalSub, fallback.NormalSub),
		MobileLink: pick(c.MobileLink, fallback.MobileLink),
	}
}
