// Package template defines the renderer-agnostic template seam page
// renderers depend on. The gotemplate subpackage provides the pongo2-backed
// implementation.
package template
