// Package validation evaluates per-field rules and tracks a field-keyed
// error map for a single form.
//
// Each field carries a Rule made of Checks. Checks run in a fixed order
// (required, minLength, maxLength, pattern, custom) no matter how they were
// declared, and evaluation stops at the first failure:
//
//	rules := validation.RuleSet{
//		"email": validation.NewRule(validation.Required(), validation.Email()),
//		"name":  validation.NewRule(validation.Required()).WithMessage("Tell us your name"),
//	}
//	v := validation.New(rules)
//	if !v.ValidateForm(values) {
//		render(v.Errors())
//	}
//
// Failures are reported through the error map, never as Go errors.
package validation
