package tui

import (
	"strconv"

	"github.com/goliatone/go-hotelsite/pkg/content"
	"github.com/goliatone/go-hotelsite/pkg/forms"
)

// PromptKind selects the prompt widget for a field.
type PromptKind string

const (
	PromptInput    PromptKind = "input"
	PromptSelect   PromptKind = "select"
	PromptConfirm  PromptKind = "confirm"
	PromptTextArea PromptKind = "textarea"
)

// Choice is one option of a select prompt.
type Choice struct {
	Value string
	Label string
}

// FieldPrompt describes how a form field is asked for.
type FieldPrompt struct {
	Label string
	Kind  PromptKind
	Help  string
	// Choices is evaluated at prompt time so content reloads apply.
	Choices func() []Choice
}

// ConfirmValue is what a confirmed checkbox submits.
const ConfirmValue = "on"

// SitePrompts describes the fields of the site's forms. Room types come from
// src.
func SitePrompts(src forms.SiteSource) map[string]FieldPrompt {
	return map[string]FieldPrompt{
		"name":      {Label: "Your name", Kind: PromptInput},
		"email":     {Label: "Email address", Kind: PromptInput},
		"phone":     {Label: "Phone number", Kind: PromptInput, Help: "Optional"},
		"subject":   {Label: "Subject", Kind: PromptSelect, Choices: subjectChoices(src)},
		"message":   {Label: "Your message", Kind: PromptTextArea},
		"checkIn":   {Label: "Check-in date", Kind: PromptInput, Help: "YYYY-MM-DD"},
		"checkOut":  {Label: "Check-out date", Kind: PromptInput, Help: "YYYY-MM-DD"},
		"roomType":  {Label: "Room type", Kind: PromptSelect, Choices: roomTypeChoices(src)},
		"adults":    {Label: "Adults", Kind: PromptSelect, Choices: rangeChoices(forms.MinAdults, forms.MaxAdults)},
		"children":  {Label: "Children", Kind: PromptSelect, Choices: rangeChoices(forms.MinChildren, forms.MaxChildren)},
		"firstName": {Label: "First name", Kind: PromptInput},
		"lastName":  {Label: "Last name", Kind: PromptInput},
		"specialRequests": {
			Label: "Special requests",
			Kind:  PromptTextArea,
			Help:  "Optional",
		},
		"terms": {Label: "I agree to the terms and conditions and cancellation policy", Kind: PromptConfirm},
	}
}

func siteOf(src forms.SiteSource) *content.Site {
	if src == nil {
		return nil
	}
	return src.Site()
}

func subjectChoices(src forms.SiteSource) func() []Choice {
	return func() []Choice {
		site := siteOf(src)
		if site == nil {
			return nil
		}
		out := make([]Choice, 0, len(site.Contact.Subject))
		for _, s := range site.Contact.Subject {
			out = append(out, Choice{Value: s.ID, Label: s.Label})
		}
		return out
	}
}

func roomTypeChoices(src forms.SiteSource) func() []Choice {
	return func() []Choice {
		site := siteOf(src)
		if site == nil {
			return nil
		}
		out := make([]Choice, 0, len(site.RoomTypes))
		for _, rt := range site.RoomTypes {
			out = append(out, Choice{Value: rt.ID, Label: rt.Name + " - $" + strconv.Itoa(rt.Price) + "/night"})
		}
		return out
	}
}

func rangeChoices(lo, hi int) func() []Choice {
	return func() []Choice {
		out := make([]Choice, 0, hi-lo+1)
		for n := lo; n <= hi; n++ {
			v := strconv.Itoa(n)
			out = append(out, Choice{Value: v, Label: v})
		}
		return out
	}
}
