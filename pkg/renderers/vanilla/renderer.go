package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/goliatone/go-hotelsite/pkg/render"
	rendertemplate "github.com/goliatone/go-hotelsite/pkg/render/template"
	gotemplate "github.com/goliatone/go-hotelsite/pkg/render/template/gotemplate"
)

type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateDir      string
	reload           bool
	assetsPrefix     string
	templateRenderer rendertemplate.TemplateRenderer
}

// WithTemplatesFS supplies an alternate template bundle via fs.FS.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		path = strings.TrimSpace(path)
		if path == "" {
			return
		}
		cfg.templateDir = path
		cfg.templateFS = os.DirFS(path)
	}
}

// WithReload re-reads templates on every render.
func WithReload(enabled bool) Option {
	return func(cfg *config) {
		cfg.reload = enabled
	}
}

// WithAssetsPrefix sets the URL prefix the layout falls back to for the
// stylesheet and script when the theme names none. Defaults to "/assets".
func WithAssetsPrefix(prefix string) Option {
	return func(cfg *config) {
		cfg.assetsPrefix = strings.TrimRight(strings.TrimSpace(prefix), "/")
	}
}

// WithTemplateRenderer injects a custom template renderer implementation.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// Renderer renders site pages to HTML through the shared layout.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the HTML renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS(), assetsPrefix: "/assets"}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	renderer := cfg.templateRenderer
	if renderer == nil {
		opts := []gotemplate.Option{
			gotemplate.WithExtension(".tmpl"),
			gotemplate.WithReload(cfg.reload),
		}
		if cfg.templateDir != "" {
			opts = append(opts, gotemplate.WithBaseDir(cfg.templateDir))
		} else {
			opts = append(opts, gotemplate.WithFS(cfg.templateFS))
		}
		engine, err := gotemplate.New(opts...)
		if err != nil {
			return nil, fmt.Errorf("vanilla renderer: configure template renderer: %w", err)
		}
		renderer = engine
	}

	if err := registerFilters(renderer); err != nil {
		return nil, fmt.Errorf("vanilla renderer: %w", err)
	}
	if err := renderer.GlobalContext(map[string]any{
		"assets": map[string]string{
			"stylesheet": cfg.assetsPrefix + "/" + StylesheetName,
			"script":     cfg.assetsPrefix + "/" + RuntimeScriptName,
		},
	}); err != nil {
		return nil, fmt.Errorf("vanilla renderer: seed globals: %w", err)
	}

	return &Renderer{templates: renderer}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render executes the page's template. Page data is available as `data`,
// per-request state as `values`, `errors`, `formErrors`, `hidden`, `theme`,
// `toast` and `language`.
func (r *Renderer) Render(_ context.Context, page render.Page, options render.RenderOptions) ([]byte, error) {
	if r.templates == nil {
		return nil, fmt.Errorf("vanilla renderer: template renderer is nil")
	}
	name := strings.TrimSpace(page.Name)
	if name == "" {
		return nil, fmt.Errorf("vanilla renderer: page name is required")
	}

	result, err := r.templates.RenderTemplate(name, viewData(page, options))
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: render %s: %w", name, err)
	}
	return []byte(result), nil
}

func viewData(page render.Page, options render.RenderOptions) map[string]any {
	data := page.Data
	if data == nil {
		data = map[string]any{}
	}
	language := render.NormalizeLanguage(options.Language)
	return map[string]any{
		"page": map[string]any{
			"name":  page.Name,
			"title": page.Title,
			"path":  page.Path,
		},
		"data":       data,
		"values":     options.Values,
		"errors":     options.Errors,
		"formErrors": options.FormErrors,
		"hidden":     render.SortedHiddenFields(options.Hidden),
		"theme":      options.Theme,
		"toast":      options.Toast,
		"language":   language,
	}
}
