package content

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

const iconWrapper = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round" aria-hidden="true" class="icon">%s</svg>`

var (
	iconPolicyOnce sync.Once
	iconPolicy     *bluemonday.Policy
)

// renderIcon wraps the inner SVG elements in the standard 24x24 outline
// frame and strips anything outside the icon allow-list.
func renderIcon(inner string) string {
	trimmed := strings.TrimSpace(inner)
	if trimmed == "" {
		return ""
	}
	markup := strings.Replace(iconWrapper, "%s", trimmed, 1)
	return strings.TrimSpace(iconSanitizer().Sanitize(markup))
}

func iconSanitizer() *bluemonday.Policy {
	iconPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("svg", "g", "path", "circle", "rect", "line", "polyline", "polygon")

		policy.AllowAttrs(
			"xmlns", "viewBox", "fill", "stroke", "stroke-width",
			"stroke-linecap", "stroke-linejoin", "aria-hidden", "class",
		).OnElements("svg")

		for _, el := range []string{"path", "circle", "rect", "line", "polyline", "polygon"} {
			policy.AllowAttrs(
				"d", "cx", "cy", "r", "x", "y", "x1", "y1", "x2", "y2",
				"points", "rx", "ry", "width", "height",
			).OnElements(el)
		}

		iconPolicy = policy
	})
	return iconPolicy
}
