package validation

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// EmailPattern is the address format accepted by every site form.
const EmailPattern = `^[^\s@]+@[^\s@]+\.[^\s@]+$`

var emailRegexp = regexp.MustCompile(EmailPattern)

// CheckKind identifies a check and fixes its evaluation order: lower kinds
// always run first.
type CheckKind int

const (
	CheckRequired CheckKind = iota
	CheckMinLength
	CheckMaxLength
	CheckPattern
	CheckCustom
)

func (k CheckKind) String() string {
	switch k {
	case CheckRequired:
		return "required"
	case CheckMinLength:
		return "minLength"
	case CheckMaxLength:
		return "maxLength"
	case CheckPattern:
		return "pattern"
	case CheckCustom:
		return "custom"
	default:
		return fmt.Sprintf("check(%d)", int(k))
	}
}

// Check is a single constraint. Only the field matching Kind is used.
type Check struct {
	Kind      CheckKind
	Length    int
	Pattern   *regexp.Regexp
	Predicate func(value any) bool
}

// Required fails for nil and for values that are empty or whitespace once
// stringified.
func Required() Check {
	return Check{Kind: CheckRequired}
}

// MinLength fails when the stringified value has fewer than n runes.
func MinLength(n int) Check {
	return Check{Kind: CheckMinLength, Length: n}
}

// MaxLength fails when the stringified value has more than n runes.
func MaxLength(n int) Check {
	return Check{Kind: CheckMaxLength, Length: n}
}

// Pattern fails when re does not match the stringified value.
func Pattern(re *regexp.Regexp) Check {
	return Check{Kind: CheckPattern, Pattern: re}
}

// MatchString compiles expr and panics on invalid expressions, mirroring
// regexp.MustCompile. Use it for rule sets declared at init time.
func MatchString(expr string) Check {
	return Pattern(regexp.MustCompile(expr))
}

// Email is Pattern(EmailPattern).
func Email() Check {
	return Pattern(emailRegexp)
}

// Custom fails when fn returns false. fn receives the raw value.
func Custom(fn func(value any) bool) Check {
	return Check{Kind: CheckCustom, Predicate: fn}
}

// passes reports whether value satisfies the check. Checks missing their
// parameter (nil pattern or predicate, non-positive length) always pass.
func (c Check) passes(value any) bool {
	switch c.Kind {
	case CheckRequired:
		return value != nil && strings.TrimSpace(Stringify(value)) != ""
	case CheckMinLength:
		if c.Length <= 0 {
			return true
		}
		return utf8.RuneCountInString(Stringify(value)) >= c.Length
	case CheckMaxLength:
		if c.Length <= 0 {
			return true
		}
		return utf8.RuneCountInString(Stringify(value)) <= c.Length
	case CheckPattern:
		if c.Pattern == nil {
			return true
		}
		return c.Pattern.MatchString(Stringify(value))
	case CheckCustom:
		if c.Predicate == nil {
			return true
		}
		return c.Predicate(value)
	default:
		return true
	}
}

func (c Check) defaultMessage() string {
	switch c.Kind {
	case CheckRequired:
		return "This field is required"
	case CheckMinLength:
		return fmt.Sprintf("Minimum length is %d characters", c.Length)
	case CheckMaxLength:
		return fmt.Sprintf("Maximum length is %d characters", c.Length)
	case CheckPattern:
		return "Invalid format"
	default:
		return "Invalid value"
	}
}

// Rule is the ordered constraint set for one field. Message, when set,
// replaces the default message of whichever check fails.
type Rule struct {
	Checks  []Check
	Message string
}

// NewRule builds a rule from checks, ordering them by precedence.
func NewRule(checks ...Check) Rule {
	return Rule{Checks: sortChecks(checks)}
}

// With returns a copy of r with extra checks merged in precedence order.
func (r Rule) With(checks ...Check) Rule {
	merged := make([]Check, 0, len(r.Checks)+len(checks))
	merged = append(merged, r.Checks...)
	merged = append(merged, checks...)
	return Rule{Checks: sortChecks(merged), Message: r.Message}
}

// WithMessage returns a copy of r using message for every failure.
func (r Rule) WithMessage(message string) Rule {
	r.Checks = append([]Check(nil), r.Checks...)
	r.Message = message
	return r
}

// Has reports whether r carries a check of the given kind.
func (r Rule) Has(kind CheckKind) bool {
	for _, check := range r.Checks {
		if check.Kind == kind {
			return true
		}
	}
	return false
}

// Evaluate runs the checks in precedence order and stops at the first
// failure, returning its message.
func (r Rule) Evaluate(value any) (string, bool) {
	for _, check := range sortChecks(r.Checks) {
		if check.passes(value) {
			continue
		}
		if msg := strings.TrimSpace(r.Message); msg != "" {
			return msg, false
		}
		return check.defaultMessage(), false
	}
	return "", true
}

func sortChecks(checks []Check) []Check {
	out := append([]Check(nil), checks...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Kind < out[j].Kind })
	return out
}

// RuleSet maps field names to rules.
type RuleSet map[string]Rule

// Names returns the rule-bearing field names in sorted order.
func (rs RuleSet) Names() []string {
	names := make([]string, 0, len(rs))
	for name := range rs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Clone returns a shallow copy whose rules can be replaced independently.
func (rs RuleSet) Clone() RuleSet {
	out := make(RuleSet, len(rs))
	for name, rule := range rs {
		out[name] = rule.With()
	}
	return out
}

// WithCustom returns a copy of rs with a custom predicate added to name,
// creating the rule when missing.
func (rs RuleSet) WithCustom(name string, fn func(value any) bool) RuleSet {
	out := rs.Clone()
	out[name] = out[name].With(Custom(fn))
	return out
}

// Merge returns a copy of rs with other's rules layered on top. Checks for
// the same field are combined; other's message wins when set.
func (rs RuleSet) Merge(other RuleSet) RuleSet {
	out := rs.Clone()
	for name, rule := range other {
		existing, ok := out[name]
		if !ok {
			out[name] = rule.With()
			continue
		}
		merged := existing.With(rule.Checks...)
		if strings.TrimSpace(rule.Message) != "" {
			merged.Message = rule.Message
		}
		out[name] = merged
	}
	return out
}
