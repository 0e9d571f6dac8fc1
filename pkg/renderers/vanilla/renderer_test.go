package vanilla_test

import (
	"io"
	"sort"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-hotelsite/pkg/render"
	rendertemplate "github.com/goliatone/go-hotelsite/pkg/render/template"
	"github.com/goliatone/go-hotelsite/pkg/renderers/vanilla"
	"github.com/goliatone/go-hotelsite/pkg/testsupport"
	"github.com/goliatone/go-hotelsite/pkg/theming"
)

func themeMap(t *testing.T, variant string) map[string]any {
	t.Helper()
	selector, err := theming.NewSelector(theming.Light, theming.Manifest())
	if err != nil {
		t.Fatalf("selector: %v", err)
	}
	sel, err := selector.Select("", variant)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	return theming.NewView(theming.RendererConfig(sel)).Map()
}

func mustContain(t *testing.T, html string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if !strings.Contains(html, fragment) {
			t.Fatalf("expected output to contain %q\n%s", fragment, html)
		}
	}
}

func TestRendererNotFoundPage(t *testing.T) {
	site := testsupport.MustDefaultSite(t)
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if renderer.Name() != "vanilla" || renderer.ContentType() != "text/html; charset=utf-8" {
		t.Fatalf("unexpected identity")
	}

	out, err := renderer.Render(testsupport.Context(), render.Page{
		Name:  "not_found",
		Title: site.NotFound.Title,
		Path:  "/missing",
		Data: map[string]any{
			"site":     site,
			"year":     2025,
			"notFound": site.NotFound,
		},
	}, render.RenderOptions{
		Theme:  themeMap(t, theming.Dark),
		Hidden: map[string]string{render.CSRFField: "token-123"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	html := string(out)
	mustContain(t, html,
		"<title>Page Not Found | Uttara Hotel &amp; Restaurant</title>",
		`data-theme="dark"`,
		`<link rel="stylesheet" href="/assets/site.css">`,
		`<script src="/assets/site.js" defer></script>`,
		"--surface: #111827;",
		`<input type="hidden" name="_csrf" value="token-123">`,
		`class="page page-not_found"`,
		"&copy; 2025",
		`id="toast" class="toast"`,
	)
	if strings.Contains(html, `aria-current="page"`) {
		t.Fatalf("expected no active navigation link on the 404 page")
	}
}

func TestRendererContactFormState(t *testing.T) {
	site := testsupport.MustDefaultSite(t)
	renderer, err := vanilla.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	out, err := renderer.Render(testsupport.Context(), render.Page{
		Name:  "contact",
		Title: "Contact",
		Path:  "/contact",
		Data: map[string]any{
			"site":     site,
			"hero":     site.Heroes["contact"],
			"cards":    site.Contact.Cards,
			"subjects": site.Contact.Subject,
			"faq":      site.FAQ,
		},
	}, render.RenderOptions{
		Values: map[string]map[string]string{
			"contact": {"name": "Karim", "subject": "feedback", "message": "<b>hi</b>"},
		},
		Errors: map[string]map[string]string{
			"contact": {"email": "This field is required"},
		},
		FormErrors: map[string][]string{
			"contact": {"Try again later"},
		},
		Toast: &render.Toast{Kind: "error", Text: "Please fill in all required fields.", Visible: true, DurationMS: 5000, Seq: 4},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	html := string(out)
	mustContain(t, html,
		`<a href="/contact" class="active" aria-current="page">Contact</a>`,
		`name="name" value="Karim"`,
		`<option value="feedback" selected>Feedback</option>`,
		"&lt;b&gt;hi&lt;/b&gt;",
		`<span class="field-error">This field is required</span>`,
		"<li>Try again later</li>",
		`class="toast toast-error"`,
		`data-seq="4" data-duration="5000"`,
		"Please fill in all required fields.",
		`<html lang="en"`,
	)
}

func TestRendererCustomTemplates(t *testing.T) {
	fsys := fstest.MapFS{
		"hello.tmpl": {Data: []byte("{{ page.title }}|{{ data.greeting }}|{{ language }}|{% for f in hidden %}{{ f.Name }}={{ f.Value }};{% endfor %}")},
	}
	renderer, err := vanilla.New(vanilla.WithTemplatesFS(fsys))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	out, err := renderer.Render(testsupport.Context(), render.Page{
		Name:  "hello",
		Title: "Hi",
		Data:  map[string]any{"greeting": "hey"},
	}, render.RenderOptions{
		Language: "BN",
		Hidden:   map[string]string{"b": "2", "a": "1"},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got, want := string(out), "Hi|hey|BN|a=1;b=2;"; got != want {
		t.Fatalf("got %q want %q", got, want)
	}

	if _, err := renderer.Render(testsupport.Context(), render.Page{}, render.RenderOptions{}); err == nil {
		t.Fatalf("expected error for missing page name")
	}
	if _, err := renderer.Render(testsupport.Context(), render.Page{Name: "missing"}, render.RenderOptions{}); err == nil {
		t.Fatalf("expected error for missing template")
	}
}

func TestAssetsFS(t *testing.T) {
	for _, name := range []string{vanilla.StylesheetName, vanilla.RuntimeScriptName} {
		data, err := fsReadFile(name)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		if len(data) == 0 {
			t.Fatalf("expected %s to have content", name)
		}
	}
}

func TestRendererSeedsAssetGlobalsAndSiteFilters(t *testing.T) {
	fsys := fstest.MapFS{
		"prices.tmpl": {Data: []byte(`{{ theme.stylesheet|default:assets.stylesheet }}|{{ assets.script }}|{{ data.price|money:"৳" }}|{{ data.guests|int }}|{{ data.missing|money }}`)},
	}
	renderer, err := vanilla.New(vanilla.WithTemplatesFS(fsys), vanilla.WithAssetsPrefix("/static/"))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	out, err := renderer.Render(testsupport.Context(), render.Page{
		Name: "prices",
		Data: map[string]any{"price": 180, "guests": 2.0},
	}, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got, want := string(out), "/static/site.css|/static/site.js|৳180|2|"; got != want {
		t.Fatalf("got %q want %q", got, want)
	}

	// A second renderer finds the filters already registered and still works.
	again, err := vanilla.New(vanilla.WithTemplatesFS(fsys))
	if err != nil {
		t.Fatalf("second renderer: %v", err)
	}
	out, err = again.Render(testsupport.Context(), render.Page{
		Name: "prices",
		Data: map[string]any{"price": "99.6"},
	}, render.RenderOptions{Theme: map[string]any{"stylesheet": "/themed.css"}})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got, want := string(out), "/themed.css|/assets/site.js|৳100||"; got != want {
		t.Fatalf("got %q want %q", got, want)
	}
}

type recordingRenderer struct {
	filters []string
	globals any
}

func (r *recordingRenderer) RenderTemplate(name string, _ any, _ ...io.Writer) (string, error) {
	return "rendered " + name, nil
}

func (r *recordingRenderer) RegisterFilter(name string, _ rendertemplate.Filter) error {
	r.filters = append(r.filters, name)
	return nil
}

func (r *recordingRenderer) GlobalContext(data any) error {
	r.globals = data
	return nil
}

func TestNewPreparesInjectedTemplateRenderer(t *testing.T) {
	rec := &recordingRenderer{}
	renderer, err := vanilla.New(vanilla.WithTemplateRenderer(rec))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	sort.Strings(rec.filters)
	if diff := cmp.Diff([]string{"int", "money"}, rec.filters); diff != "" {
		t.Fatalf("registered filters mismatch (-want +got):\n%s", diff)
	}
	wantGlobals := map[string]any{"assets": map[string]string{
		"stylesheet": "/assets/site.css",
		"script":     "/assets/site.js",
	}}
	if diff := cmp.Diff(wantGlobals, rec.globals); diff != "" {
		t.Fatalf("globals mismatch (-want +got):\n%s", diff)
	}

	out, err := renderer.Render(testsupport.Context(), render.Page{Name: "home"}, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(out) != "rendered home" {
		t.Fatalf("unexpected output %q", out)
	}
}
