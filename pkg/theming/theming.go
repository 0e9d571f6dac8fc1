package theming

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	theme "github.com/goliatone/go-theme"
)

// Theme and variant names the site ships with.
const (
	ThemeName = "uttara"
	Light     = "light"
	Dark      = "dark"
)

var (
	// ErrUnknownTheme is returned when a selection names a theme that was
	// never registered.
	ErrUnknownTheme = errors.New("theming: unknown theme")
	// ErrUnknownVariant is returned when a theme has no such variant.
	ErrUnknownVariant = errors.New("theming: unknown variant")
)

// Selector resolves theme/variant pairs against the registered manifests.
// It satisfies theme.ThemeSelector.
type Selector struct {
	mu             sync.RWMutex
	manifests      map[string]*theme.Manifest
	defaultTheme   string
	defaultVariant string
}

var _ theme.ThemeSelector = (*Selector)(nil)

// NewSelector registers manifests and uses the first one as the default
// theme. Each manifest is checked by go-theme's registry before it is
// accepted.
func NewSelector(defaultVariant string, manifests ...*theme.Manifest) (*Selector, error) {
	if len(manifests) == 0 {
		return nil, errors.New("theming: at least one manifest is required")
	}

	registry := theme.NewRegistry()
	s := &Selector{
		manifests:      make(map[string]*theme.Manifest, len(manifests)),
		defaultTheme:   manifests[0].Name,
		defaultVariant: strings.TrimSpace(defaultVariant),
	}
	for _, manifest := range manifests {
		if manifest == nil {
			continue
		}
		if err := registry.Register(manifest); err != nil {
			return nil, fmt.Errorf("theming: register %q: %w", manifest.Name, err)
		}
		s.manifests[manifest.Name] = manifest
	}

	if s.defaultVariant == "" {
		s.defaultVariant = Light
	}
	if !hasVariant(s.manifests[s.defaultTheme], s.defaultVariant) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, s.defaultVariant)
	}
	return s, nil
}

// Select resolves name and variant. Empty values fall back to the defaults.
func (s *Selector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	name = strings.TrimSpace(name)
	if name == "" {
		name = s.defaultTheme
	}
	manifest, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTheme, name)
	}

	variant = strings.ToLower(strings.TrimSpace(variant))
	if variant == "" {
		variant = s.defaultVariant
	}
	if !hasVariant(manifest, variant) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownVariant, variant)
	}

	return &theme.Selection{
		Theme:    name,
		Variant:  variant,
		Manifest: manifest,
	}, nil
}

// DefaultVariant returns the variant used when none is requested.
func (s *Selector) DefaultVariant() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.defaultVariant
}

// Variants lists the variants of the default theme in sorted order.
func (s *Selector) Variants() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	manifest := s.manifests[s.defaultTheme]
	out := make([]string, 0, len(manifest.Variants))
	for name := range manifest.Variants {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Toggle returns the variant the theme button switches to.
func Toggle(variant string) string {
	if variant == Dark {
		return Light
	}
	return Dark
}

func hasVariant(manifest *theme.Manifest, variant string) bool {
	if manifest == nil {
		return false
	}
	_, ok := manifest.Variants[variant]
	return ok
}

// RendererConfig flattens a selection into the renderer-facing config:
// variant tokens override the base tokens, every token becomes a "--name"
// CSS variable and asset keys resolve under the manifest's prefix.
func RendererConfig(sel *theme.Selection) *theme.RendererConfig {
	if sel == nil || sel.Manifest == nil {
		return nil
	}
	manifest := sel.Manifest
	variant := manifest.Variants[sel.Variant]

	tokens := mergeStrings(manifest.Tokens, variant.Tokens)
	cssVars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		cssVars["--"+key] = value
	}

	files := mergeStrings(manifest.Assets.Files, variant.Assets.Files)
	prefix := variant.Assets.Prefix
	if prefix == "" {
		prefix = manifest.Assets.Prefix
	}
	prefix = strings.TrimRight(prefix, "/")

	return &theme.RendererConfig{
		Theme:    sel.Theme,
		Variant:  sel.Variant,
		Partials: mergeStrings(manifest.Templates, variant.Templates),
		Tokens:   tokens,
		CSSVars:  cssVars,
		AssetURL: func(key string) string {
			file, ok := files[key]
			if !ok || file == "" {
				return ""
			}
			return prefix + "/" + strings.TrimLeft(file, "/")
		},
	}
}

func mergeStrings(base, override map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(override))
	for key, value := range base {
		out[key] = value
	}
	for key, value := range override {
		out[key] = value
	}
	return out
}
