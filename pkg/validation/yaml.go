package validation

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrEmptyRuleSet is returned when a rule document declares no fields.
var ErrEmptyRuleSet = errors.New("validation: rule set is empty")

type ruleDocument struct {
	Required  bool   `yaml:"required"`
	MinLength int    `yaml:"minLength"`
	MaxLength int    `yaml:"maxLength"`
	Pattern   string `yaml:"pattern"`
	Email     bool   `yaml:"email"`
	Message   string `yaml:"message"`
}

// LoadRuleSet reads a YAML rule document from r.
func LoadRuleSet(r io.Reader) (RuleSet, error) {
	if r == nil {
		return nil, fmt.Errorf("validation: nil reader")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("validation: read rule set: %w", err)
	}
	return ParseRuleSet(data)
}

// ParseRuleSet decodes a YAML mapping of field name to rule document:
//
//	email:
//	  required: true
//	  email: true
//	message:
//	  required: true
//	  maxLength: 2000
//	  message: Tell us how we can help
//
// Custom predicates cannot be expressed in YAML; attach them with
// RuleSet.WithCustom.
func ParseRuleSet(data []byte) (RuleSet, error) {
	var docs map[string]ruleDocument
	if err := yaml.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("validation: decode rule set: %w", err)
	}
	if len(docs) == 0 {
		return nil, ErrEmptyRuleSet
	}

	rules := make(RuleSet, len(docs))
	for name, doc := range docs {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("validation: rule with empty field name")
		}
		rule, err := doc.rule()
		if err != nil {
			return nil, fmt.Errorf("validation: field %q: %w", name, err)
		}
		rules[name] = rule
	}
	return rules, nil
}

func (d ruleDocument) rule() (Rule, error) {
	var checks []Check
	if d.Required {
		checks = append(checks, Required())
	}
	if d.MinLength < 0 || d.MaxLength < 0 {
		return Rule{}, fmt.Errorf("negative length bound")
	}
	if d.MinLength > 0 {
		checks = append(checks, MinLength(d.MinLength))
	}
	if d.MaxLength > 0 {
		if d.MinLength > d.MaxLength {
			return Rule{}, fmt.Errorf("minLength %d exceeds maxLength %d", d.MinLength, d.MaxLength)
		}
		checks = append(checks, MaxLength(d.MaxLength))
	}
	switch {
	case d.Email && d.Pattern != "":
		return Rule{}, fmt.Errorf("email and pattern are mutually exclusive")
	case d.Email:
		checks = append(checks, Email())
	case d.Pattern != "":
		re, err := regexp.Compile(d.Pattern)
		if err != nil {
			return Rule{}, fmt.Errorf("compile pattern: %w", err)
		}
		checks = append(checks, Pattern(re))
	}
	rule := NewRule(checks...)
	if msg := strings.TrimSpace(d.Message); msg != "" {
		rule = rule.WithMessage(msg)
	}
	return rule, nil
}
