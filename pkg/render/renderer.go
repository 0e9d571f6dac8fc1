package render

import (
	"context"
)

// Page is one view of the site: the template it renders with and the data
// the handler gathered for it.
type Page struct {
	// Name selects the template ("home", "accommodations", "not_found").
	Name string
	// Title is the document title suffix.
	Title string
	// Path is the request path, used to mark the active navigation link.
	Path string
	// Status is the HTTP status the page is served with. Zero means 200.
	Status int
	// Data carries the page-specific view data.
	Data map[string]any
}

// Renderer converts a Page into a byte representation (HTML, JSON).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, page Page, options RenderOptions) ([]byte, error)
}
