package hotelsite

import (
	"io/fs"

	"github.com/goliatone/go-hotelsite/pkg/renderers/vanilla"
)

// EmbeddedTemplates exposes the built-in page templates so callers can
// copy or override them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}
