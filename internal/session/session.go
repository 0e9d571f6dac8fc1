// Package session keeps per-visitor state: the notification surface, the
// validators behind each form and the cosmetic preferences. Sessions are
// identified by a uuid cookie and evicted after an idle period.
package session

import (
	"crypto/subtle"
	"sync"
	"time"

	"github.com/goliatone/go-hotelsite/pkg/forms"
	"github.com/goliatone/go-hotelsite/pkg/notify"
	"github.com/goliatone/go-hotelsite/pkg/render"
	"github.com/goliatone/go-hotelsite/pkg/theming"
	"github.com/goliatone/go-hotelsite/pkg/validation"
)

// Session is one visitor's state. All methods are safe for concurrent use.
type Session struct {
	ID string

	surface *notify.Surface
	csrf    string

	mu         sync.Mutex
	validators map[string]*validation.Validator
	flash      map[string]forms.Outcome
	theme      string
	language   string
	lastSeen   time.Time
}

func newSession(id, csrf, theme string, surface *notify.Surface, now time.Time) *Session {
	return &Session{
		ID:         id,
		surface:    surface,
		csrf:       csrf,
		validators: map[string]*validation.Validator{},
		flash:      map[string]forms.Outcome{},
		theme:      theme,
		language:   render.LanguageEN,
		lastSeen:   now,
	}
}

// Surface returns the session's notification surface.
func (s *Session) Surface() *notify.Surface {
	return s.surface
}

// Broadcaster returns the broadcaster of the session's surface.
func (s *Session) Broadcaster() *notify.Broadcaster {
	return s.surface.Broadcaster()
}

// CSRFToken returns the token every form of the session must echo.
func (s *Session) CSRFToken() string {
	return s.csrf
}

// VerifyCSRF compares token with the session token in constant time.
func (s *Session) VerifyCSRF(token string) bool {
	if token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(s.csrf)) == 1
}

// Submit runs form against values with the session's validator for that
// form. The outcome is kept as a flash for the page rendered next.
func (s *Session) Submit(form *forms.Form, values map[string]string) forms.Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	outcome := form.Submit(s.surface.Broadcaster(), s.validatorLocked(form), values)
	s.flash[form.Name] = outcome
	return outcome
}

// ValidateField checks a single field with the session's validator for form
// and returns the message, if any.
func (s *Session) ValidateField(form *forms.Form, name, value string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := s.validatorLocked(form)
	if v.ValidateField(name, value) {
		return "", true
	}
	msg, _ := v.Error(name)
	return msg, false
}

// Errors returns the current error map of form.
func (s *Session) Errors(form *forms.Form) map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.validatorLocked(form).Errors()
}

func (s *Session) validatorLocked(form *forms.Form) *validation.Validator {
	v, ok := s.validators[form.Name]
	if !ok {
		v = form.NewValidator()
		s.validators[form.Name] = v
	}
	return v
}

// TakeFlash returns and forgets the last outcome recorded for form.
func (s *Session) TakeFlash(form string) (forms.Outcome, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	outcome, ok := s.flash[form]
	delete(s.flash, form)
	return outcome, ok
}

// Flashes returns and forgets every pending outcome.
func (s *Session) Flashes() map[string]forms.Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.flash
	s.flash = map[string]forms.Outcome{}
	return out
}

// Theme returns the selected theme variant.
func (s *Session) Theme() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.theme
}

// SetTheme selects variant.
func (s *Session) SetTheme(variant string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = variant
}

// ToggleTheme flips between the light and dark variants.
func (s *Session) ToggleTheme() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.theme = theming.Toggle(s.theme)
	return s.theme
}

// Language returns the language toggle label.
func (s *Session) Language() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.language
}

// ToggleLanguage flips the label between EN and BN.
func (s *Session) ToggleLanguage() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.language = render.ToggleLanguage(s.language)
	return s.language
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}
