package template_test

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-hotelsite/pkg/render/template"
	"github.com/goliatone/go-hotelsite/pkg/render/template/gotemplate"
	"github.com/goliatone/go-hotelsite/pkg/testsupport"
)

//go:embed testdata/templates/*.tmpl
var embeddedTemplates embed.FS

func TestGoTemplateEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t)

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, w)
	})

	want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", "hello.golden"))
	if result != want {
		t.Fatalf("render template mismatch result\nwant: %q\n got: %q", want, result)
	}
	if written != want {
		t.Fatalf("render template mismatch writer\nwant: %q\n got: %q", want, written)
	}
}

func TestGoTemplateEngine_GlobalContext(t *testing.T) {
	engine := newEngine(t)
	if err := engine.GlobalContext(map[string]any{
		"settings": map[string]any{"env": "staging"},
	}); err != nil {
		t.Fatalf("global context: %v", err)
	}

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("use-global", nil, w)
	})

	want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", "use-global.golden"))
	if result != want {
		t.Fatalf("render template mismatch result\nwant: %q\n got: %q", want, result)
	}
	if written != want {
		t.Fatalf("render template mismatch writer\nwant: %q\n got: %q", want, written)
	}
}

func TestGoTemplateEngine_RegisterFilter(t *testing.T) {
	engine := newEngine(t)
	err := engine.RegisterFilter("shout", func(input any, _ any) (any, error) {
		if input == nil {
			return "", nil
		}
		return fmt.Sprintf("%s!", strings.ToUpper(fmt.Sprint(input))), nil
	})
	if err != nil {
		t.Fatalf("register filter: %v", err)
	}

	result, written := testsupport.CaptureTemplateOutput(t, func(w io.Writer) (string, error) {
		return engine.RenderTemplate("use-filter", map[string]any{"name": "Ada"}, w)
	})

	want := testsupport.MustReadGoldenString(t, filepath.Join("testdata", "use-filter.golden"))
	if result != want {
		t.Fatalf("render template mismatch result\nwant: %q\n got: %q", want, result)
	}
	if written != want {
		t.Fatalf("render template mismatch writer\nwant: %q\n got: %q", want, written)
	}
}

func TestGoTemplateEngine_RegisterFilterKeepsFirstRegistration(t *testing.T) {
	first := newEngine(t)
	if err := first.RegisterFilter("stars", func(input any, _ any) (any, error) {
		return fmt.Sprintf("*%v*", input), nil
	}); err != nil {
		t.Fatalf("register filter: %v", err)
	}

	second := newEngine(t)
	err := second.RegisterFilter("stars", func(input any, _ any) (any, error) {
		return "replaced", nil
	})
	if !errors.Is(err, template.ErrFilterExists) {
		t.Fatalf("expected ErrFilterExists, got %v", err)
	}
	if err := second.RegisterFilter(" ", nil); err == nil {
		t.Fatalf("expected error for blank filter registration")
	}

	out, err := second.RenderTemplate("use-stars", map[string]any{"name": "Ada"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "*Ada*\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestGoTemplateEngine_FlattensStructData(t *testing.T) {
	type guest struct {
		Name   string `json:"name"`
		Nights int    `json:"nights,omitempty"`
	}
	engine := newEngine(t)

	out, err := engine.RenderTemplate("hello", guest{Name: "Rahim"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if out != "Hello Rahim!\n" {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestGoTemplateEngine_ReloadReadsFreshTemplates(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "page.tmpl")
	if err := os.WriteFile(path, []byte("v1"), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}

	engine, err := gotemplate.New(gotemplate.WithBaseDir(dir), gotemplate.WithReload(true))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	if out, err := engine.RenderTemplate("page", nil); err != nil || out != "v1" {
		t.Fatalf("first render: %q %v", out, err)
	}
	if err := os.WriteFile(path, []byte("v2"), 0o644); err != nil {
		t.Fatalf("rewrite template: %v", err)
	}
	if out, err := engine.RenderTemplate("page", nil); err != nil || out != "v2" {
		t.Fatalf("expected reloaded template, got %q %v", out, err)
	}
}

func TestGoTemplateEngine_RequiresSource(t *testing.T) {
	if _, err := gotemplate.New(); err == nil {
		t.Fatalf("expected error without base dir or fs")
	}
}

func newEngine(t *testing.T) *gotemplate.Engine {
	t.Helper()

	templatesFS, err := fs.Sub(embeddedTemplates, "testdata/templates")
	if err != nil {
		t.Fatalf("sub fs: %v", err)
	}

	engine, err := gotemplate.New(gotemplate.WithFS(templatesFS))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}
