package theming

import theme "github.com/goliatone/go-theme"

// AssetsPrefix is where the embedded stylesheet and script are served.
const AssetsPrefix = "/assets"

// Manifest returns the site's theme: the light palette as base tokens and a
// dark variant overriding the surface and text colours.
func Manifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    ThemeName,
		Version: "1.0.0",
		Tokens: map[string]string{
			"primary":        "#0c8ee9",
			"primary-strong": "#0270c7",
			"secondary":      "#bf9b30",
			"accent":         "#e67e22",
			"surface":        "#ffffff",
			"surface-muted":  "#f3f4f6",
			"text":           "#111827",
			"text-muted":     "#4b5563",
			"border":         "#e5e7eb",
			"font-sans":      "'Inter', system-ui, sans-serif",
			"font-serif":     "'Playfair Display', Georgia, serif",
		},
		Templates: map[string]string{
			"layout": "layout.tmpl",
			"toast":  "toast.tmpl",
		},
		Assets: theme.Assets{
			Prefix: AssetsPrefix,
			Files: map[string]string{
				"stylesheet": "site.css",
				"script":     "site.js",
			},
		},
		Variants: map[string]theme.Variant{
			Light: {},
			Dark: {
				Tokens: map[string]string{
					"surface":       "#111827",
					"surface-muted": "#1f2937",
					"text":          "#f9fafb",
					"text-muted":    "#d1d5db",
					"border":        "#374151",
				},
			},
		},
	}
}
