package menu

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	menuPolicyOnce sync.Once
	sharedPolicy   *bluemonday.Policy
)

// menuPolicy admits only the elements and attributes the menu templates
// emit. Href values are already restricted by Renderer.href, so URL parsing is
// left off here; bluemonday would otherwise drop bare "#" fragments.
func menuPolicy() *bluemonday.Policy {
	menuPolicyOnce.Do(func() {
		policy := bluemonday.NewPolicy()
		policy.AllowElements("div", "nav", "ul", "li", "a")
		policy.AllowAttrs("href").OnElements("a")
		policy.AllowAttrs("class").OnElements("div", "nav", "ul", "li", "a")
		policy.AllowAttrs("id").OnElements("nav", "a")
		sharedPolicy = policy
	})
	return sharedPolicy
}
