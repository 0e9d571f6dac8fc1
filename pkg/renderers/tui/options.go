package tui

import "io"

// OutputFormat controls how collected values are serialized.
type OutputFormat string

const (
	// OutputFormatJSON emits application/json payloads.
	OutputFormatJSON OutputFormat = "json"
	// OutputFormatFormURLEncoded emits application/x-www-form-urlencoded payloads.
	OutputFormatFormURLEncoded OutputFormat = "form"
	// OutputFormatPrettyText emits a human-friendly text summary.
	OutputFormatPrettyText OutputFormat = "pretty"
)

// ParseOutputFormat accepts json, form and pretty.
func ParseOutputFormat(raw string) (OutputFormat, bool) {
	switch f := OutputFormat(raw); f {
	case OutputFormatJSON, OutputFormatFormURLEncoded, OutputFormatPrettyText:
		return f, true
	default:
		return "", false
	}
}

// Theme captures optional formatting hints the driver can apply when printing
// messages. Keep minimal to avoid coupling renderer logic to ANSI specifics.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// Option configures the TUI renderer.
type Option func(*Renderer)

// WithPromptDriver overrides the prompt driver used by the renderer.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithOutput sets where the default driver prints informational lines.
func WithOutput(w io.Writer) Option {
	return func(r *Renderer) {
		r.out = w
	}
}

// WithOutputFormat selects the output serialization format.
func WithOutputFormat(format OutputFormat) Option {
	return func(r *Renderer) {
		if format != "" {
			r.outputFormat = format
		}
	}
}

// WithPrompts replaces the prompt descriptions for the given fields.
func WithPrompts(prompts map[string]FieldPrompt) Option {
	return func(r *Renderer) {
		if r.prompts == nil {
			r.prompts = map[string]FieldPrompt{}
		}
		for name, p := range prompts {
			r.prompts[name] = p
		}
	}
}

// WithMaxAttempts bounds how often a failing field is asked again.
func WithMaxAttempts(n int) Option {
	return func(r *Renderer) {
		if n > 0 {
			r.maxAttempts = n
		}
	}
}

// WithTheme applies optional message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Renderer) {
		r.theme = theme
	}
}
