package forms

import (
	"embed"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-hotelsite/pkg/content"
	"github.com/goliatone/go-hotelsite/pkg/notify"
	"github.com/goliatone/go-hotelsite/pkg/render"
	"github.com/goliatone/go-hotelsite/pkg/validation"
)

//go:embed rules/*.yaml
var ruleFiles embed.FS

// Form names, also used as route and metric labels.
const (
	ContactForm     = "contact"
	ReservationForm = "reservation"
	NewsletterForm  = "newsletter"
)

// CrossCheck inspects the whole submission and returns messages keyed by
// field path. Keys that do not name a field of the form become form-level
// errors.
type CrossCheck func(values map[string]string) map[string][]string

// Option customises a Form.
type Option func(*Form)

// WithLogger sets the logger submissions are reported to.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Form) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithClock overrides the time source used by date checks.
func WithClock(now func() time.Time) Option {
	return func(f *Form) {
		if now != nil {
			f.now = now
		}
	}
}

// WithReferences overrides how accepted submissions are numbered.
func WithReferences(fn func() string) Option {
	return func(f *Form) {
		if fn != nil {
			f.reference = fn
		}
	}
}

// WithSuccessDuration overrides how long the success toast stays visible.
func WithSuccessDuration(d time.Duration) Option {
	return func(f *Form) {
		f.SuccessDuration = d
	}
}

// Form describes one of the site's forms: its fields, rules and the toast
// texts reported through the broadcaster.
type Form struct {
	Name     string
	Fields   []string
	Defaults map[string]string
	Rules    validation.RuleSet

	SuccessText string
	FailureText string
	// SuccessDuration is the success toast duration. Zero keeps the
	// broadcaster default.
	SuccessDuration time.Duration

	crossChecks []CrossCheck
	summarize   func(values map[string]string) *Summary
	references  bool

	logger    *slog.Logger
	now       func() time.Time
	reference func() string
}

// Outcome is what a submission produced. Values holds what the form should
// render next: the submitted values on failure and the defaults on success.
type Outcome struct {
	OK         bool
	Errors     map[string]string
	FormErrors []string
	Values     map[string]string
	Reference  string
	Summary    *Summary
}

func newForm(name string, fields []string, rules validation.RuleSet, opts []Option) *Form {
	f := &Form{
		Name:      name,
		Fields:    fields,
		Defaults:  map[string]string{},
		Rules:     rules,
		logger:    slog.Default(),
		now:       time.Now,
		reference: func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	f.logger = f.logger.With("form", name)
	return f
}

// NewValidator returns a validator bound to the form's rules. Each session
// keeps its own.
func (f *Form) NewValidator() *validation.Validator {
	return validation.New(f.Rules)
}

// Blank returns the values an untouched form renders with.
func (f *Form) Blank() map[string]string {
	out := make(map[string]string, len(f.Fields))
	for _, name := range f.Fields {
		out[name] = f.Defaults[name]
	}
	return out
}

// Normalize keeps the form's own fields, strips markup from them and fills
// defaults for missing values. Answers are echoed back into pages and
// toasts, so only plain text survives.
func (f *Form) Normalize(values map[string]string) map[string]string {
	out := f.Blank()
	for _, name := range f.Fields {
		raw, ok := values[name]
		if !ok {
			continue
		}
		out[name] = content.SanitizeText(raw)
	}
	return out
}

// Summarize returns the form's summary for values, if it has one.
func (f *Form) Summarize(values map[string]string) *Summary {
	if f.summarize == nil {
		return nil
	}
	return f.summarize(values)
}

// Validate runs the rules and the cross-field checks against values and
// returns the form-level messages. Field failures are recorded on v.
func (f *Form) Validate(v *validation.Validator, values map[string]string) []string {
	v.ValidateStrings(values)

	var formErrors []string
	for _, check := range f.crossChecks {
		mapping := render.MapErrorPayload(f.Fields, check(values))
		for name, msg := range mapping.FirstFieldErrors() {
			v.SetError(name, msg)
		}
		formErrors = render.MergeFormErrors(formErrors, mapping.Form...)
	}
	return formErrors
}

// Submit validates values with v and reports the result through b. On
// failure the error toast is shown and the normalised values are handed
// back for re-rendering. On success the error map is cleared, the success
// toast is shown and the form resets to its defaults. Submissions are only
// logged.
func (f *Form) Submit(b *notify.Broadcaster, v *validation.Validator, values map[string]string) Outcome {
	normalized := f.Normalize(values)
	formErrors := f.Validate(v, normalized)
	summary := f.Summarize(normalized)

	if v.HasErrors() || len(formErrors) > 0 {
		b.Notify(notify.KindError, f.FailureText)
		f.logger.Info("form rejected", "fields", slices.Sorted(maps.Keys(v.Errors())), "form_errors", len(formErrors))
		return Outcome{
			Errors:     v.Errors(),
			FormErrors: formErrors,
			Values:     normalized,
			Summary:    summary,
		}
	}

	var ref string
	if f.references {
		ref = f.reference()
	}

	var opts []notify.NotifyOption
	if f.SuccessDuration > 0 {
		opts = append(opts, notify.WithDuration(f.SuccessDuration))
	}
	b.Notify(notify.KindSuccess, f.SuccessText, opts...)
	v.ClearErrors()

	f.logger.Info("form submitted", "reference", ref, "values", redact(normalized))
	return Outcome{
		OK:        true,
		Errors:    map[string]string{},
		Values:    f.Blank(),
		Reference: ref,
		Summary:   summary,
	}
}

func redact(values map[string]string) map[string]string {
	out := make(map[string]string, len(values))
	for name, value := range values {
		switch name {
		case "email", "phone":
			if value != "" {
				value = "***"
			}
		}
		out[name] = value
	}
	return out
}

func loadRules(name string) (validation.RuleSet, error) {
	file, err := ruleFiles.Open("rules/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("forms: open %s rules: %w", name, err)
	}
	defer file.Close()

	rules, err := validation.LoadRuleSet(file)
	if err != nil {
		return nil, fmt.Errorf("forms: load %s rules: %w", name, err)
	}
	return rules, nil
}

func mustRules(name string) validation.RuleSet {
	rules, err := loadRules(name)
	if err != nil {
		panic(err)
	}
	return rules
}
