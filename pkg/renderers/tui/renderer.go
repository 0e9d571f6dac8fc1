// Package tui collects form submissions in the terminal. Every answer is
// checked with the same Field Validator rules the site uses, and the result
// is reported through a notification broadcaster.
package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/goliatone/go-hotelsite/pkg/content"
	"github.com/goliatone/go-hotelsite/pkg/forms"
	"github.com/goliatone/go-hotelsite/pkg/notify"
	"github.com/goliatone/go-hotelsite/pkg/validation"
)

const defaultMaxAttempts = 3

// Renderer drives prompts for a form.
type Renderer struct {
	driver       PromptDriver
	out          io.Writer
	outputFormat OutputFormat
	prompts      map[string]FieldPrompt
	maxAttempts  int
	theme        Theme
}

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) *Renderer {
	r := &Renderer{
		outputFormat: OutputFormatJSON,
		maxAttempts:  defaultMaxAttempts,
		theme:        Theme{ErrorPrefix: "✗ "},
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = newSurveyDriver(r.out)
	}
	return r
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Encode.
func (r *Renderer) ContentType() string {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		return "application/x-www-form-urlencoded"
	case OutputFormatPrettyText:
		return "text/plain"
	default:
		return "application/json"
	}
}

// Result is a completed terminal submission.
type Result struct {
	Form      string            `json:"form"`
	Values    map[string]string `json:"values"`
	Reference string            `json:"reference,omitempty"`
	Summary   *forms.Summary    `json:"summary,omitempty"`

	fields []string
	labels map[string]string
}

// Collect asks for every field of form, starting from prefill. Each answer
// is validated with v as it is given; cross-field failures send the affected
// fields round again.
func (r *Renderer) Collect(ctx context.Context, form *forms.Form, v *validation.Validator, prefill map[string]string) (map[string]string, error) {
	if form == nil || v == nil {
		return nil, errors.New("tui: form and validator are required")
	}

	values := form.Normalize(prefill)
	for _, name := range form.Fields {
		if err := r.ask(ctx, form, v, name, values); err != nil {
			return nil, err
		}
	}

	for round := 1; ; round++ {
		formErrors := form.Validate(v, values)
		if !v.HasErrors() && len(formErrors) == 0 {
			return values, nil
		}
		if round > r.maxAttempts {
			return nil, ErrTooManyAttempts
		}
		for _, msg := range formErrors {
			r.report(ctx, msg)
		}
		for _, name := range form.Fields {
			msg, failing := v.Error(name)
			if !failing {
				continue
			}
			r.report(ctx, r.label(name)+": "+msg)
			if err := r.ask(ctx, form, v, name, values); err != nil {
				return nil, err
			}
		}
	}
}

// Submit collects the form and submits it through b, which shows the same
// toast texts as the site.
func (r *Renderer) Submit(ctx context.Context, form *forms.Form, b *notify.Broadcaster, v *validation.Validator, prefill map[string]string) (Result, forms.Outcome, error) {
	values, err := r.Collect(ctx, form, v, prefill)
	if err != nil {
		return Result{}, forms.Outcome{}, err
	}
	outcome := form.Submit(b, v, values)
	if current := b.Current(); current.Visible {
		if outcome.OK {
			r.info(ctx, current.Text)
		} else {
			r.report(ctx, current.Text)
		}
	}
	if !outcome.OK {
		return Result{}, outcome, fmt.Errorf("tui: %s submission rejected", form.Name)
	}

	labels := make(map[string]string, len(form.Fields))
	for _, name := range form.Fields {
		labels[name] = r.label(name)
	}
	return Result{
		Form:      form.Name,
		Values:    form.Normalize(values),
		Reference: outcome.Reference,
		Summary:   outcome.Summary,
		fields:    form.Fields,
		labels:    labels,
	}, outcome, nil
}

// Encode serializes res in the configured output format.
func (r *Renderer) Encode(res Result) ([]byte, error) {
	switch r.outputFormat {
	case OutputFormatFormURLEncoded:
		form := url.Values{}
		for name, value := range res.Values {
			form.Set(name, value)
		}
		if res.Reference != "" {
			form.Set("reference", res.Reference)
		}
		return []byte(form.Encode()), nil
	case OutputFormatPrettyText:
		return prettyResult(res), nil
	default:
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("tui: encode result: %w", err)
		}
		return append(data, '\n'), nil
	}
}

func prettyResult(res Result) []byte {
	var b strings.Builder
	fmt.Fprintf(&b, "%s request\n", res.Form)
	for _, name := range res.fields {
		value := res.Values[name]
		if value == "" {
			continue
		}
		label := res.labels[name]
		if label == "" {
			label = name
		}
		fmt.Fprintf(&b, "  %s: %s\n", label, value)
	}
	if res.Summary != nil {
		fmt.Fprintf(&b, "Room: %s ($%d/night)\n", res.Summary.RoomType, res.Summary.Nightly)
		if res.Summary.Nights > 0 {
			fmt.Fprintf(&b, "Nights: %d\n", res.Summary.Nights)
		}
		fmt.Fprintf(&b, "Total: %s\n", res.Summary.TotalLabel())
	}
	if res.Reference != "" {
		fmt.Fprintf(&b, "Reference: %s\n", res.Reference)
	}
	return []byte(b.String())
}

func (r *Renderer) ask(ctx context.Context, form *forms.Form, v *validation.Validator, name string, values map[string]string) error {
	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		answer, err := r.prompt(ctx, form, name, values[name])
		if err != nil {
			return err
		}
		answer = content.SanitizeText(answer)
		if v.ValidateField(name, answer) {
			values[name] = answer
			return nil
		}
		msg, _ := v.Error(name)
		r.report(ctx, r.label(name)+": "+msg)
		if attempt >= r.maxAttempts {
			return fmt.Errorf("%w: %s", ErrTooManyAttempts, name)
		}
	}
}

func (r *Renderer) prompt(ctx context.Context, form *forms.Form, name, current string) (string, error) {
	p := r.promptFor(name)
	message := p.Label
	if rule, ok := form.Rules[name]; ok && rule.Has(validation.CheckRequired) {
		message += " *"
	}

	switch p.Kind {
	case PromptSelect:
		var choices []Choice
		if p.Choices != nil {
			choices = p.Choices()
		}
		if len(choices) == 0 {
			return r.driver.Input(ctx, InputConfig{Message: message, Default: current, Help: p.Help})
		}
		options := make([]string, len(choices))
		def := 0
		for i, c := range choices {
			options[i] = c.Label
			if c.Value == current {
				def = i
			}
		}
		idx, err := r.driver.Select(ctx, SelectConfig{Message: message, Options: options, DefaultIndex: def, Help: p.Help})
		if err != nil {
			return "", err
		}
		if idx < 0 || idx >= len(choices) {
			return "", nil
		}
		return choices[idx].Value, nil
	case PromptConfirm:
		ok, err := r.driver.Confirm(ctx, ConfirmConfig{Message: message, Default: current == ConfirmValue, Help: p.Help})
		if err != nil {
			return "", err
		}
		if ok {
			return ConfirmValue, nil
		}
		return "", nil
	case PromptTextArea:
		return r.driver.TextArea(ctx, TextAreaConfig{Message: message, Default: current, Help: p.Help})
	default:
		rule, hasRule := form.Rules[name]
		cfg := InputConfig{Message: message, Default: current, Help: p.Help}
		if hasRule {
			cfg.Validator = func(answer string) error {
				if msg, ok := rule.Evaluate(content.SanitizeText(answer)); !ok {
					return errors.New(msg)
				}
				return nil
			}
		}
		return r.driver.Input(ctx, cfg)
	}
}

func (r *Renderer) promptFor(name string) FieldPrompt {
	p, ok := r.prompts[name]
	if !ok {
		p = FieldPrompt{Kind: PromptInput}
	}
	if p.Label == "" {
		p.Label = name
	}
	return p
}

func (r *Renderer) label(name string) string {
	return r.promptFor(name).Label
}

func (r *Renderer) info(ctx context.Context, msg string) {
	_ = r.driver.Info(ctx, r.theme.InfoPrefix+msg)
}

func (r *Renderer) report(ctx context.Context, msg string) {
	_ = r.driver.Info(ctx, r.theme.ErrorPrefix+msg)
}
