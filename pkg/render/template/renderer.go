package template

import (
	"errors"
	"io"
)

// ErrFilterExists reports a filter name that is already registered.
var ErrFilterExists = errors.New("template: filter already registered")

// Filter transforms a value inside a template expression. param is nil when
// the template passes no argument.
type Filter func(input any, param any) (any, error)

// TemplateRenderer is the seam page renderers render through. Filters and
// globals registered on it apply to every later render.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn Filter) error
	GlobalContext(data any) error
}
