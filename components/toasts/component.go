package toasts

import "net/http"

// Component is a small, extraction-friendly wrapper around the toast
// handlers, their configuration, and routing helpers.
type Component struct {
	opts Options
}

// New constructs a new component with default options plus any overrides.
func New(fns ...OptionFn) *Component {
	opts := NewOptions(fns...)
	return &Component{opts: opts}
}

// Options returns a copy of the component configuration.
func (c *Component) Options() Options {
	if c == nil {
		return DefaultOptions()
	}
	return NewOptions(func(o *Options) { *o = c.opts })
}

// Handler returns the snapshot handler.
func (c *Component) Handler() http.Handler {
	if c == nil {
		return Handler()
	}
	return HandlerWithOptions(c.opts)
}

// DismissHandler returns the dismiss handler.
func (c *Component) DismissHandler() http.Handler {
	if c == nil {
		return DismissHandlerWithOptions(DefaultOptions())
	}
	return DismissHandlerWithOptions(c.opts)
}

// RegisterRoutes registers the component handlers under basePath on mux.
func (c *Component) RegisterRoutes(mux Mux, basePath string) (string, error) {
	if c == nil {
		return RegisterRoutes(mux, basePath)
	}
	return RegisterRoutesWithOptions(mux, basePath, c.opts)
}
