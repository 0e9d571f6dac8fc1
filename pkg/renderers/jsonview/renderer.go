// Package jsonview renders pages as JSON documents for clients that ask for
// application/json: the same data the HTML templates receive, minus markup.
package jsonview

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-hotelsite/pkg/render"
)

// Option customises the renderer.
type Option func(*Renderer)

// WithIndent pretty-prints the output.
func WithIndent(indent string) Option {
	return func(r *Renderer) {
		r.indent = indent
	}
}

// WithSite keeps the full site content in the page data. It is dropped by
// default since every page would otherwise repeat it.
func WithSite(enabled bool) Option {
	return func(r *Renderer) {
		r.includeSite = enabled
	}
}

// Renderer encodes pages as JSON.
type Renderer struct {
	indent      string
	includeSite bool
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the JSON renderer.
func New(options ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Renderer) Name() string {
	return "json"
}

func (r *Renderer) ContentType() string {
	return "application/json"
}

// Document is the JSON shape of a rendered page.
type Document struct {
	Page       string                       `json:"page"`
	Title      string                       `json:"title,omitempty"`
	Path       string                       `json:"path,omitempty"`
	Status     int                          `json:"status,omitempty"`
	Data       map[string]any               `json:"data"`
	Values     map[string]map[string]string `json:"values,omitempty"`
	Errors     map[string]map[string]string `json:"errors,omitempty"`
	FormErrors map[string][]string          `json:"formErrors,omitempty"`
	Toast      *render.Toast                `json:"toast,omitempty"`
	Theme      string                       `json:"theme,omitempty"`
	Language   string                       `json:"language,omitempty"`
}

// Render encodes page and the per-request state. Hidden fields are omitted.
func (r *Renderer) Render(_ context.Context, page render.Page, options render.RenderOptions) ([]byte, error) {
	doc := Document{
		Page:       page.Name,
		Title:      page.Title,
		Path:       page.Path,
		Status:     page.Status,
		Data:       make(map[string]any, len(page.Data)),
		Values:     options.Values,
		Errors:     options.Errors,
		FormErrors: options.FormErrors,
		Toast:      options.Toast,
		Language:   options.Language,
	}
	for key, value := range page.Data {
		if key == "site" && !r.includeSite {
			continue
		}
		doc.Data[key] = value
	}
	if variant, ok := options.Theme["variant"].(string); ok {
		doc.Theme = variant
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if r.indent != "" {
		enc.SetIndent("", r.indent)
	}
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("json renderer: encode %s: %w", page.Name, err)
	}
	return buf.Bytes(), nil
}
