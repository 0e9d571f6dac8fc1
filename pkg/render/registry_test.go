package render_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-hotelsite/pkg/render"
)

type stubRenderer struct {
	name        string
	contentType string
}

func (s stubRenderer) Name() string        { return s.name }
func (s stubRenderer) ContentType() string { return s.contentType }
func (s stubRenderer) Render(context.Context, render.Page, render.RenderOptions) ([]byte, error) {
	return []byte(s.name), nil
}

func TestRegistryRegisterAndList(t *testing.T) {
	reg := render.NewRegistry()
	reg.MustRegister(stubRenderer{name: "vanilla", contentType: "text/html; charset=utf-8"})
	reg.MustRegister(stubRenderer{name: "json", contentType: "application/json"})

	if err := reg.Register(stubRenderer{name: "json"}); err == nil {
		t.Fatalf("expected duplicate registration to fail")
	}
	if err := reg.Register(nil); err == nil {
		t.Fatalf("expected nil renderer to fail")
	}
	if diff := cmp.Diff([]string{"json", "vanilla"}, reg.List()); diff != "" {
		t.Fatalf("list mismatch (-want +got):\n%s", diff)
	}
	if !reg.Has("vanilla") || reg.Has("preact") {
		t.Fatalf("unexpected Has results")
	}
	if _, err := reg.Get("preact"); err == nil {
		t.Fatalf("expected missing renderer error")
	}
}

func TestRegistryNegotiate(t *testing.T) {
	reg := render.NewRegistry()
	reg.MustRegister(stubRenderer{name: "vanilla", contentType: "text/html; charset=utf-8"})
	reg.MustRegister(stubRenderer{name: "json", contentType: "application/json"})

	cases := map[string]string{
		"":                                  "vanilla",
		"*/*":                               "vanilla",
		"application/json":                  "json",
		"text/html,application/json;q=0.9":  "vanilla",
		"application/xml, application/json": "json",
		"image/png":                         "vanilla",
	}
	for accept, want := range cases {
		got, err := reg.Negotiate(accept, "vanilla")
		if err != nil {
			t.Fatalf("negotiate %q: %v", accept, err)
		}
		if got.Name() != want {
			t.Fatalf("negotiate %q: expected %s, got %s", accept, want, got.Name())
		}
	}

	if _, err := reg.Negotiate("text/plain", "tui"); err == nil {
		t.Fatalf("expected missing fallback to fail")
	}
}
