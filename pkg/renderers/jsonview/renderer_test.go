package jsonview_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-hotelsite/pkg/render"
	"github.com/goliatone/go-hotelsite/pkg/renderers/jsonview"
	"github.com/goliatone/go-hotelsite/pkg/testsupport"
)

func TestRendererEncodesPage(t *testing.T) {
	renderer := jsonview.New()
	if renderer.Name() != "json" || renderer.ContentType() != "application/json" {
		t.Fatalf("unexpected identity %s %s", renderer.Name(), renderer.ContentType())
	}

	out, err := renderer.Render(testsupport.Context(), render.Page{
		Name:   "gallery",
		Title:  "Gallery",
		Path:   "/gallery",
		Status: 200,
		Data: map[string]any{
			"site":     testsupport.MustDefaultSite(t),
			"category": "rooms",
		},
	}, render.RenderOptions{
		Errors: map[string]map[string]string{"newsletter": {"email": "Invalid format"}},
		Hidden: map[string]string{render.CSRFField: "secret"},
		Theme:  map[string]any{"variant": "dark"},
		Toast:  &render.Toast{Kind: "error", Text: "Please enter a valid email address.", Visible: true, DurationMS: 5000, Seq: 3},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(out, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := map[string]any{
		"page":   "gallery",
		"title":  "Gallery",
		"path":   "/gallery",
		"status": float64(200),
		"data":   map[string]any{"category": "rooms"},
		"errors": map[string]any{"newsletter": map[string]any{"email": "Invalid format"}},
		"toast": map[string]any{
			"kind":       "error",
			"text":       "Please enter a valid email address.",
			"visible":    true,
			"durationMs": float64(5000),
			"seq":        float64(3),
		},
		"theme": "dark",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("document mismatch (-want +got):\n%s", diff)
	}
}

func TestRendererWithSite(t *testing.T) {
	renderer := jsonview.New(jsonview.WithSite(true), jsonview.WithIndent("  "))

	out, err := renderer.Render(testsupport.Context(), render.Page{
		Name: "home",
		Data: map[string]any{"site": map[string]string{"name": "Uttara"}},
	}, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	var doc jsonview.Document
	if err := json.Unmarshal(out, &doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if _, ok := doc.Data["site"]; !ok {
		t.Fatalf("expected site in data, got %v", doc.Data)
	}
}
