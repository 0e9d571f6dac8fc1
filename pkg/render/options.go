package render

// RenderOptions describe per-request data layered on top of a Page: sticky
// form state, the session's theme and the toast the surface should show.
type RenderOptions struct {
	// Values pre-populates form controls, keyed by form name and then field
	// name.
	Values map[string]map[string]string
	// Errors surfaces server-side validation feedback, keyed by form name and
	// then field name.
	Errors map[string]map[string]string
	// FormErrors holds messages that do not belong to a single field, keyed
	// by form name.
	FormErrors map[string][]string
	// Hidden fields are emitted into every form (CSRF token).
	Hidden map[string]string
	// Theme is the resolved theme view (tokens, CSS variables, variant).
	Theme map[string]any
	// Toast is the notification surface state.
	Toast *Toast
	// Language is the cosmetic language toggle label ("EN" or "BN").
	Language string
}

// Toast is the template view of the notification surface.
type Toast struct {
	Kind       string `json:"kind"`
	Text       string `json:"text"`
	Visible    bool   `json:"visible"`
	DurationMS int64  `json:"durationMs"`
	Seq        uint64 `json:"seq"`
}

// FormValues returns the values for form, never nil.
func (o RenderOptions) FormValues(form string) map[string]string {
	if values, ok := o.Values[form]; ok && values != nil {
		return values
	}
	return map[string]string{}
}

// FormFieldErrors returns the field errors for form, never nil.
func (o RenderOptions) FormFieldErrors(form string) map[string]string {
	if errs, ok := o.Errors[form]; ok && errs != nil {
		return errs
	}
	return map[string]string{}
}
