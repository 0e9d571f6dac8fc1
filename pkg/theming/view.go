package theming

import (
	"encoding/json"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// View is the template-facing shape of a resolved theme.
type View struct {
	Name         string            `json:"name"`
	Variant      string            `json:"variant"`
	Toggle       string            `json:"toggle"`
	Dark         bool              `json:"dark"`
	Partials     map[string]string `json:"partials,omitempty"`
	Tokens       map[string]string `json:"tokens,omitempty"`
	CSSVars      map[string]string `json:"cssVars,omitempty"`
	CSSVarsStyle string            `json:"cssVarsStyle,omitempty"`
	Stylesheet   string            `json:"stylesheet,omitempty"`
	Script       string            `json:"script,omitempty"`
	JSON         string            `json:"json,omitempty"`
}

// NewView builds the view for cfg. A nil config yields the zero view.
func NewView(cfg *theme.RendererConfig) View {
	if cfg == nil {
		return View{}
	}
	v := View{
		Name:     cfg.Theme,
		Variant:  cfg.Variant,
		Toggle:   Toggle(cfg.Variant),
		Dark:     cfg.Variant == Dark,
		Partials: copyStringMap(cfg.Partials),
		Tokens:   copyStringMap(cfg.Tokens),
		CSSVars:  copyStringMap(cfg.CSSVars),
	}
	if cfg.AssetURL != nil {
		v.Stylesheet = cfg.AssetURL("stylesheet")
		v.Script = cfg.AssetURL("script")
	}
	v.CSSVarsStyle = cssVarsStyle(v.CSSVars)
	v.JSON = themeJSON(v)
	return v
}

// Map converts the view into template data.
func (v View) Map() map[string]any {
	return map[string]any{
		"name":         v.Name,
		"variant":      v.Variant,
		"toggle":       v.Toggle,
		"dark":         v.Dark,
		"partials":     v.Partials,
		"tokens":       v.Tokens,
		"cssVars":      v.CSSVars,
		"cssVarsStyle": v.CSSVarsStyle,
		"stylesheet":   v.Stylesheet,
		"script":       v.Script,
		"json":         v.JSON,
	}
}

func copyStringMap(in map[string]string) map[string]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}

func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range keys {
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}

func themeJSON(v View) string {
	payload := struct {
		Name    string            `json:"name,omitempty"`
		Variant string            `json:"variant,omitempty"`
		Tokens  map[string]string `json:"tokens,omitempty"`
		CSSVars map[string]string `json:"cssVars,omitempty"`
	}{
		Name:    v.Name,
		Variant: v.Variant,
		Tokens:  v.Tokens,
		CSSVars: v.CSSVars,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return ""
	}
	return string(data)
}
