// Package hotelsite renders the hotel website and exposes the pieces an
// embedding application needs: the page orchestrator, the forms and the
// notification broadcaster each session shows its toasts through.
package hotelsite

import (
	"context"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-hotelsite/pkg/content"
	"github.com/goliatone/go-hotelsite/pkg/forms"
	"github.com/goliatone/go-hotelsite/pkg/notify"
	"github.com/goliatone/go-hotelsite/pkg/orchestrator"
	"github.com/goliatone/go-hotelsite/pkg/render"
)

// RenderOptions carries per-request state (values, errors, toast) into a
// renderer.
type RenderOptions = render.RenderOptions

// Request describes a page render.
type Request = orchestrator.Request

// Output is a rendered page.
type Output = orchestrator.Output

// Notification is the toast snapshot a Broadcaster publishes.
type Notification = notify.Notification

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// NewSurface mounts a notification surface. Callers must Unmount it.
func NewSurface(options ...notify.Option) *notify.Surface {
	return notify.NewSurface(options...)
}

// SiteForms builds the contact, reservation and newsletter forms against
// the embedded site content.
func SiteForms(options ...forms.Option) forms.Set {
	return forms.SiteForms(forms.Static(content.MustDefault()), options...)
}

// GenerateHTML renders page with the embedded content and the HTML
// renderer. It is the simplest entry point for callers that just want
// markup.
func GenerateHTML(ctx context.Context, page string, opts RenderOptions, options ...orchestrator.Option) ([]byte, error) {
	out, err := orchestrator.New(options...).Generate(ctx, orchestrator.Request{
		Page:          page,
		Renderer:      "vanilla",
		RenderOptions: opts,
	})
	if err != nil {
		return nil, err
	}
	return out.Body, nil
}

// WithThemeSelector passes a go-theme selector through to the orchestrator
// so light and dark variants resolve before rendering.
func WithThemeSelector(selector theme.ThemeSelector) orchestrator.Option {
	return orchestrator.WithThemeSelector(selector)
}
