package hotelsite

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/goliatone/go-hotelsite/pkg/renderers/vanilla"
)

func TestRuntimeAssetsFSContainsSiteScript(t *testing.T) {
	data, err := fs.ReadFile(RuntimeAssetsFS(), vanilla.RuntimeScriptName)
	if err != nil {
		t.Fatalf("expected site script to be readable: %v", err)
	}
	if !strings.Contains(string(data), "toast.dataset.endpoint") {
		t.Fatalf("expected site script to poll the toast endpoint")
	}
}

func TestRuntimeAssetsFSContainsStylesheet(t *testing.T) {
	if _, err := fs.ReadFile(RuntimeAssetsFS(), vanilla.StylesheetName); err != nil {
		t.Fatalf("expected stylesheet to be readable: %v", err)
	}
}

func TestEmbeddedTemplatesExposeLayout(t *testing.T) {
	if _, err := fs.Stat(EmbeddedTemplates(), "layout.tmpl"); err != nil {
		t.Fatalf("expected layout template: %v", err)
	}
}
