package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/goliatone/go-hotelsite/internal/metrics"
	"github.com/goliatone/go-hotelsite/internal/session"
	"github.com/goliatone/go-hotelsite/pkg/forms"
	"github.com/goliatone/go-hotelsite/pkg/notify"
	"github.com/goliatone/go-hotelsite/pkg/orchestrator"
	"github.com/goliatone/go-hotelsite/pkg/render"
)

// RateLimitedText is the warning shown when a session submits too often.
const RateLimitedText = "Too many submissions. Please wait a moment and try again."

// returnField names the hidden input carrying the page a shared form was
// posted from.
const returnField = "return"

var pageByPath = map[string]string{
	"/":               orchestrator.PageHome,
	"/accommodations": orchestrator.PageAccommodations,
	"/dining":         orchestrator.PageDining,
	"/facilities":     orchestrator.PageFacilities,
	"/gallery":        orchestrator.PageGallery,
	"/contact":        orchestrator.PageContact,
	"/reservations":   orchestrator.PageReservations,
}

var pathByForm = map[string]string{
	forms.ContactForm:     "/contact",
	forms.ReservationForm: "/reservations",
}

func (s *Server) page(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.render(w, r, name, r.URL.Path, 0, nil)
	}
}

func (s *Server) notFound(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, orchestrator.PageNotFound, r.URL.Path, http.StatusNotFound, nil)
}

// render writes page name, as seen at path, with the session's pending form
// outcomes. extra overrides outcomes for the named forms. Form posts pass
// the page they re-render so navigation and return fields point back at it.
func (s *Server) render(w http.ResponseWriter, r *http.Request, name, path string, status int, extra map[string]forms.Outcome) {
	sess := mustSession(r)
	pending := sess.Flashes()
	for form, outcome := range extra {
		pending[form] = outcome
	}

	out, err := s.pages.Generate(r.Context(), orchestrator.Request{
		Page:          name,
		Path:          path,
		Query:         r.URL.Query(),
		Accept:        r.Header.Get("Accept"),
		ThemeVariant:  sess.Theme(),
		Status:        status,
		RenderOptions: renderOptions(sess, pending),
	})
	if err != nil {
		s.logger.Error("render page", "page", name, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", out.ContentType)
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("Vary", "Accept")
	w.WriteHeader(out.Status)
	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(out.Body)
}

func renderOptions(sess *session.Session, pending map[string]forms.Outcome) render.RenderOptions {
	opts := render.RenderOptions{
		Values:     map[string]map[string]string{},
		Errors:     map[string]map[string]string{},
		FormErrors: map[string][]string{},
		Hidden:     map[string]string{render.CSRFField: sess.CSRFToken()},
		Language:   sess.Language(),
	}
	for form, outcome := range pending {
		opts.Values[form] = outcome.Values
		if len(outcome.Errors) > 0 {
			opts.Errors[form] = outcome.Errors
		}
		if len(outcome.FormErrors) > 0 {
			opts.FormErrors[form] = outcome.FormErrors
		}
	}

	n := sess.Surface().Current()
	opts.Toast = &render.Toast{
		Kind:       string(n.Kind),
		Text:       n.Text,
		Visible:    n.Visible,
		DurationMS: n.DurationMillis(),
		Seq:        n.Seq,
	}
	return opts
}

// submit handles a form post. Accepted submissions redirect back to the
// form's page; rejected ones re-render it with the errors and 422.
func (s *Server) submit(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, ok := s.forms.Lookup(name)
		if !ok {
			s.notFound(w, r)
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form payload", http.StatusBadRequest)
			return
		}

		sess := mustSession(r)
		target := pathByForm[name]
		if target == "" {
			target = returnPath(r.PostForm.Get(returnField))
		}
		values := formValues(r)

		if !s.sessions.Allow(sess) {
			sess.Broadcaster().Notify(notify.KindWarning, RateLimitedText)
			s.metrics.Form(name, metrics.OutcomeLimited)
			s.logger.Warn("form rate limited", "form", name, "session", sess.ID)
			s.render(w, r, pageFor(target), target, http.StatusTooManyRequests, map[string]forms.Outcome{
				name: {Values: form.Normalize(values)},
			})
			return
		}

		outcome := sess.Submit(form, values)
		if outcome.OK {
			s.metrics.Form(name, metrics.OutcomeAccepted)
			http.Redirect(w, r, target, http.StatusSeeOther)
			return
		}
		s.metrics.Form(name, metrics.OutcomeRejected)
		s.render(w, r, pageFor(target), target, http.StatusUnprocessableEntity, nil)
	}
}

type validateRequest struct {
	Values map[string]string `json:"values"`
}

type validateResponse struct {
	Data validateResult `json:"data"`
}

type validateResult struct {
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors"`
}

// validateField checks the posted fields one by one with the session's
// validator, as the browser does when a field loses focus.
func (s *Server) validateField(w http.ResponseWriter, r *http.Request) {
	form, ok := s.forms.Lookup(r.PathValue("form"))
	if !ok {
		writeJSONError(w, http.StatusNotFound, "unknown form")
		return
	}

	var req validateRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 64<<10))
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSONError(w, http.StatusRequestEntityTooLarge, "payload too large")
			return
		}
		writeJSONError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	sess := mustSession(r)
	result := validateResult{Valid: true, Errors: map[string]string{}}
	for _, name := range form.Fields {
		value, present := req.Values[name]
		if !present {
			continue
		}
		if msg, valid := sess.ValidateField(form, name, strings.TrimSpace(value)); !valid {
			result.Valid = false
			result.Errors[name] = msg
		}
	}
	writeJSON(w, http.StatusOK, validateResponse{Data: result})
}

func (s *Server) toggleTheme(w http.ResponseWriter, r *http.Request) {
	sess := mustSession(r)
	variant := strings.TrimSpace(r.PostFormValue("variant"))
	if variant != "" && s.pages.HasThemeVariant(variant) {
		sess.SetTheme(variant)
	} else {
		sess.ToggleTheme()
	}
	http.Redirect(w, r, returnPath(r.PostFormValue(returnField)), http.StatusSeeOther)
}

func (s *Server) toggleLanguage(w http.ResponseWriter, r *http.Request) {
	mustSession(r).ToggleLanguage()
	http.Redirect(w, r, returnPath(r.PostFormValue(returnField)), http.StatusSeeOther)
}

func mustSession(r *http.Request) *session.Session {
	sess, ok := session.FromContext(r.Context())
	if !ok {
		panic("server: request has no session")
	}
	return sess
}

// formValues flattens the posted values, dropping the hidden bookkeeping
// fields.
func formValues(r *http.Request) map[string]string {
	values := make(map[string]string, len(r.PostForm))
	for name, vals := range r.PostForm {
		switch name {
		case render.CSRFField, returnField:
			continue
		}
		if len(vals) > 0 {
			values[name] = vals[0]
		}
	}
	return values
}

// returnPath accepts only site-local paths of known pages.
func returnPath(raw string) string {
	raw = strings.TrimSpace(raw)
	if _, ok := pageByPath[raw]; ok {
		return raw
	}
	return "/"
}

func pageFor(path string) string {
	if name, ok := pageByPath[path]; ok {
		return name
	}
	return orchestrator.PageHome
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"error": map[string]any{"status": status, "message": msg}})
}
