// Package theming wires the site's light and dark palettes through go-theme.
// A Selector resolves the session's variant, RendererConfig flattens the
// selection into tokens and CSS variables, and View shapes it for templates.
package theming
