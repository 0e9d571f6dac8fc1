package validation

import "maps"

// Validator evaluates a fixed RuleSet and keeps the error map for the form
// that owns it. A Validator is not safe for concurrent use; callers sharing
// one across goroutines must serialise access.
type Validator struct {
	rules  RuleSet
	errors map[string]string
}

// New returns a validator bound to rules. The rule set is copied.
func New(rules RuleSet) *Validator {
	return &Validator{
		rules:  rules.Clone(),
		errors: map[string]string{},
	}
}

// Rules returns a copy of the rule set the validator evaluates.
func (v *Validator) Rules() RuleSet {
	return v.rules.Clone()
}

// ValidateField evaluates the rule for name against value and records or
// clears its entry. Fields without a rule always pass and leave the map
// untouched.
func (v *Validator) ValidateField(name string, value any) bool {
	rule, ok := v.rules[name]
	if !ok {
		return true
	}
	msg, valid := rule.Evaluate(value)
	if valid {
		delete(v.errors, name)
		return true
	}
	v.errors[name] = msg
	return false
}

// ValidateForm evaluates every rule-bearing field and replaces the error map
// with exactly the failures. Missing values are evaluated as nil; extra
// values are ignored.
func (v *Validator) ValidateForm(values map[string]any) bool {
	next := make(map[string]string, len(v.rules))
	for name, rule := range v.rules {
		if msg, valid := rule.Evaluate(values[name]); !valid {
			next[name] = msg
		}
	}
	v.errors = next
	return len(next) == 0
}

// ValidateStrings is ValidateForm for plain string payloads such as decoded
// form posts.
func (v *Validator) ValidateStrings(values map[string]string) bool {
	raw := make(map[string]any, len(values))
	for k, val := range values {
		raw[k] = val
	}
	return v.ValidateForm(raw)
}

// Errors returns a copy of the current error map.
func (v *Validator) Errors() map[string]string {
	return maps.Clone(v.errors)
}

// Error returns the message recorded for name.
func (v *Validator) Error(name string) (string, bool) {
	msg, ok := v.errors[name]
	return msg, ok
}

// HasErrors reports whether any field currently fails.
func (v *Validator) HasErrors() bool {
	return len(v.errors) > 0
}

// ClearErrors empties the error map.
func (v *Validator) ClearErrors() {
	v.errors = map[string]string{}
}

// SetError records msg for name unless the field already fails. It is used
// for checks that span several fields. Empty messages are ignored.
func (v *Validator) SetError(name, msg string) {
	if name == "" || msg == "" {
		return
	}
	if _, exists := v.errors[name]; exists {
		return
	}
	v.errors[name] = msg
}

// ClearError removes the entry for name if present.
func (v *Validator) ClearError(name string) {
	delete(v.errors, name)
}

// Evaluate checks values against rules without keeping state and returns
// the failures.
func Evaluate(rules RuleSet, values map[string]any) map[string]string {
	v := New(rules)
	v.ValidateForm(values)
	return v.errors
}
