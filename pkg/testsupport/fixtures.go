package testsupport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-hotelsite/pkg/content"
)

// MustDefaultSite returns the embedded site content and fails the test when
// it does not load.
func MustDefaultSite(t *testing.T) *content.Site {
	t.Helper()

	site, err := content.Default()
	if err != nil {
		t.Fatalf("load default site: %v", err)
	}
	return site
}

// LoadSite reads a site.yaml fixture from disk.
func LoadSite(path string) (*content.Site, error) {
	if path == "" {
		return nil, errors.New("testsupport: site path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: read site: %w", err)
	}
	site, err := content.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("testsupport: parse site: %w", err)
	}
	return site, nil
}

// MustLoadValues loads a YAML fixture of form values.
func MustLoadValues(t *testing.T, path string) map[string]string {
	t.Helper()

	values, err := LoadValues(path)
	if err != nil {
		t.Fatalf("load values: %v", err)
	}
	return values
}

// LoadValues reads a flat YAML mapping of field names to values. Scalars are
// kept as written, so `adults: 2` loads as "2".
func LoadValues(path string) (map[string]string, error) {
	if path == "" {
		return nil, errors.New("testsupport: values path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("testsupport: read values: %w", err)
	}
	var out map[string]string
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("testsupport: unmarshal values: %w", err)
	}
	if out == nil {
		out = map[string]string{}
	}
	return out, nil
}

// WriteGolden writes arbitrary data to a golden file when UPDATE_GOLDENS is set.
func WriteGolden(t *testing.T, path string, value any) {
	t.Helper()

	if os.Getenv("UPDATE_GOLDENS") == "" {
		return
	}
	payload, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		t.Fatalf("marshal golden: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents. Tests can assert
// the renderer returns and writes the same payload without duplicating buffer
// setup.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
