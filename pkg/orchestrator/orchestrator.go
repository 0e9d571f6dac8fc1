package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-hotelsite/pkg/content"
	"github.com/goliatone/go-hotelsite/pkg/forms"
	"github.com/goliatone/go-hotelsite/pkg/render"
	"github.com/goliatone/go-hotelsite/pkg/renderers/vanilla"
	"github.com/goliatone/go-hotelsite/pkg/theming"
)

const defaultRendererName = "vanilla"

// ErrUnknownPage is returned when a request names a page without a builder.
var ErrUnknownPage = errors.New("orchestrator: unknown page")

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithContent sets where site content is read from on every request.
func WithContent(src forms.SiteSource) Option {
	return func(o *Orchestrator) {
		o.content = src
	}
}

// WithForms supplies the forms the reservation page derives its limits and
// price summary from.
func WithForms(set forms.Set) Option {
	return func(o *Orchestrator) {
		o.forms = set
	}
}

// WithRegistry injects a renderer registry.
func WithRegistry(registry *render.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithDefaultRenderer overrides the renderer used when a request neither
// names one nor negotiates one through Accept.
func WithDefaultRenderer(name string) Option {
	return func(o *Orchestrator) {
		o.defaultRenderer = name
	}
}

// WithBuilder registers or replaces the builder for a page.
func WithBuilder(name string, builder Builder) Option {
	return func(o *Orchestrator) {
		if name == "" || builder == nil {
			return
		}
		if o.builders == nil {
			o.builders = DefaultBuilders()
		}
		o.builders[name] = builder
	}
}

// WithTransformer registers a Transformer that runs after the page builder.
func WithTransformer(t Transformer) Option {
	return func(o *Orchestrator) {
		o.transformer = t
	}
}

// WithThemeSelector resolves the theme handed to renderers.
func WithThemeSelector(selector theme.ThemeSelector) Option {
	return func(o *Orchestrator) {
		o.themes = selector
	}
}

// WithClock overrides the time source pages read the current year from.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		if now != nil {
			o.now = now
		}
	}
}

// Orchestrator coordinates the pipeline from site content to rendered page.
// It applies sensible defaults (embedded content, HTML renderer, site theme)
// while remaining open to dependency injection.
type Orchestrator struct {
	content         forms.SiteSource
	forms           forms.Set
	registry        *render.Registry
	defaultRenderer string
	builders        map[string]Builder
	transformer     Transformer
	themes          theme.ThemeSelector
	now             func() time.Time
	initialiseErr   error
}

// New constructs an Orchestrator applying any provided options.
func New(options ...Option) *Orchestrator {
	o := &Orchestrator{
		defaultRenderer: defaultRendererName,
		now:             time.Now,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	o.applyDefaults()
	return o
}

// Request describes the page to render and the per-request state layered on
// top of it.
type Request struct {
	// Page selects the builder ("home", "gallery").
	Page string
	// Path is the request path, used for the active navigation link.
	Path string
	// Query carries the page's filter parameters.
	Query url.Values
	// Renderer names the renderer explicitly. When empty the Accept header
	// is negotiated against the registry.
	Renderer string
	Accept   string
	// ThemeVariant selects light or dark. Empty uses the selector default.
	ThemeVariant string
	// Data is merged over the built page data.
	Data map[string]any
	// Status overrides the page status when non-zero.
	Status int

	RenderOptions render.RenderOptions
}

// Output is a rendered page ready to be written.
type Output struct {
	Body        []byte
	ContentType string
	Status      int
	Renderer    string
}

// Generate builds, transforms and renders the requested page.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (Output, error) {
	if ctx == nil {
		return Output{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Output{}, err
	}
	if err := o.initialiseErr; err != nil {
		return Output{}, err
	}

	page, err := o.Build(ctx, req)
	if err != nil {
		return Output{}, err
	}

	opts := req.RenderOptions
	if opts.Theme == nil && o.themes != nil {
		view, err := o.themeView(req.ThemeVariant)
		if err != nil {
			return Output{}, err
		}
		opts.Theme = view.Map()
	}

	renderer, err := o.rendererFor(req.Renderer, req.Accept)
	if err != nil {
		return Output{}, err
	}

	body, err := renderer.Render(ctx, page, opts)
	if err != nil {
		return Output{}, fmt.Errorf("orchestrator: render output: %w", err)
	}

	status := page.Status
	if status == 0 {
		status = http.StatusOK
	}
	return Output{
		Body:        body,
		ContentType: renderer.ContentType(),
		Status:      status,
		Renderer:    renderer.Name(),
	}, nil
}

// Build runs the page builder and transformer without rendering.
func (o *Orchestrator) Build(ctx context.Context, req Request) (render.Page, error) {
	name := strings.TrimSpace(req.Page)
	builder, ok := o.builders[name]
	if !ok {
		return render.Page{}, fmt.Errorf("%w: %q", ErrUnknownPage, name)
	}
	site := o.content.Site()
	if site == nil {
		return render.Page{}, errors.New("orchestrator: site content is nil")
	}
	if req.Query == nil {
		req.Query = url.Values{}
	}

	page, err := builder(Env{Site: site, Forms: o.forms, Now: o.now()}, req)
	if err != nil {
		return render.Page{}, fmt.Errorf("orchestrator: build %s: %w", name, err)
	}
	if page.Data == nil {
		page.Data = map[string]any{}
	}
	maps.Copy(page.Data, req.Data)
	page.Path = req.Path
	if req.Status != 0 {
		page.Status = req.Status
	}

	if o.transformer != nil {
		if err := o.transformer.Transform(ctx, &page); err != nil {
			return render.Page{}, fmt.Errorf("orchestrator: transform page: %w", err)
		}
	}
	return page, nil
}

// Pages lists the pages with a registered builder.
func (o *Orchestrator) Pages() []string {
	names := make([]string, 0, len(o.builders))
	for name := range o.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasThemeVariant reports whether variant can be selected.
func (o *Orchestrator) HasThemeVariant(variant string) bool {
	if o.themes == nil {
		return false
	}
	_, err := o.themes.Select("", variant)
	return err == nil
}

func (o *Orchestrator) themeView(variant string) (theming.View, error) {
	sel, err := o.themes.Select("", variant)
	if err != nil {
		return theming.View{}, fmt.Errorf("orchestrator: select theme: %w", err)
	}
	return theming.NewView(theming.RendererConfig(sel)), nil
}

func (o *Orchestrator) rendererFor(name, accept string) (render.Renderer, error) {
	if o.registry == nil {
		return nil, errors.New("orchestrator: renderer registry is nil")
	}

	if name != "" {
		renderer, err := o.registry.Get(name)
		if err != nil {
			return nil, fmt.Errorf("orchestrator: renderer %q: %w", name, err)
		}
		return renderer, nil
	}

	renderer, err := o.registry.Negotiate(accept, o.defaultRenderer)
	if err == nil {
		return renderer, nil
	}

	names := o.registry.List()
	if len(names) == 0 {
		return nil, errors.New("orchestrator: no renderers registered")
	}
	renderer, err = o.registry.Get(names[0])
	if err != nil {
		return nil, fmt.Errorf("orchestrator: renderer %q: %w", names[0], err)
	}
	return renderer, nil
}

func (o *Orchestrator) applyDefaults() {
	if o.content == nil {
		site, err := content.Default()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default content: %w", err)
			return
		}
		o.content = forms.Static(site)
	}
	if o.forms == nil {
		o.forms = forms.SiteForms(o.content, forms.WithClock(o.now))
	}
	if o.builders == nil {
		o.builders = DefaultBuilders()
	}
	if o.registry == nil {
		o.registry = render.NewRegistry()
		renderer, err := vanilla.New()
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default renderer: %w", err)
		} else {
			o.registry.MustRegister(renderer)
		}
	}
	if o.defaultRenderer == "" {
		o.defaultRenderer = defaultRendererName
	}
	if o.themes == nil {
		selector, err := theming.NewSelector(theming.Light, theming.Manifest())
		if err != nil {
			o.initialiseErr = fmt.Errorf("orchestrator: default theme: %w", err)
			return
		}
		o.themes = selector
	}
}
