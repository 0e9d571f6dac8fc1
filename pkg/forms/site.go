package forms

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"time"

	"github.com/goliatone/go-hotelsite/pkg/content"
	"github.com/goliatone/go-hotelsite/pkg/validation"
)

// DateLayout is the wire format of the reservation date inputs.
const DateLayout = "2006-01-02"

// NewsletterDuration is how long the newsletter confirmation stays visible.
const NewsletterDuration = 3000 * time.Millisecond

// Guest limits offered by the reservation form.
const (
	MinAdults   = 1
	MaxAdults   = 5
	MinChildren = 0
	MaxChildren = 4
)

// SiteSource yields the current site content. *content.Store satisfies it.
type SiteSource interface {
	Site() *content.Site
}

type staticSource struct{ site *content.Site }

func (s staticSource) Site() *content.Site { return s.site }

// Static wraps a fixed Site as a SiteSource.
func Static(site *content.Site) SiteSource {
	return staticSource{site: site}
}

// Contact builds the contact page form.
func Contact(opts ...Option) *Form {
	f := newForm(ContactForm,
		[]string{"name", "email", "phone", "subject", "message"},
		mustRules(ContactForm), opts)
	f.SuccessText = "Thank you for your message! We'll get back to you shortly."
	f.FailureText = "Please fill in all required fields."
	return f
}

// Newsletter builds the footer subscription form.
func Newsletter(opts ...Option) *Form {
	f := newForm(NewsletterForm, []string{"email"}, mustRules(NewsletterForm),
		append([]Option{WithSuccessDuration(NewsletterDuration)}, opts...))
	f.SuccessText = "Thank you for subscribing!"
	f.FailureText = "Please enter a valid email address."
	return f
}

// Reservation builds the booking request form. Room types are resolved
// against src on every submission so content reloads apply immediately.
func Reservation(src SiteSource, opts ...Option) *Form {
	rules := mustRules(ReservationForm).
		WithCustom("roomType", func(value any) bool {
			_, ok := src.Site().RoomType(validation.Stringify(value))
			return ok
		}).
		WithCustom("adults", intBetween(MinAdults, MaxAdults)).
		WithCustom("children", intBetween(MinChildren, MaxChildren))

	f := newForm(ReservationForm, []string{
		"checkIn", "checkOut", "roomType", "adults", "children",
		"firstName", "lastName", "email", "phone", "specialRequests", "terms",
	}, rules, opts)
	f.Defaults["adults"] = "2"
	f.Defaults["children"] = "0"
	f.SuccessText = "Your reservation request has been submitted! We'll contact you shortly to confirm."
	f.FailureText = "Please fill in all required fields correctly."
	f.references = true
	f.crossChecks = append(f.crossChecks, f.checkStay)
	f.summarize = func(values map[string]string) *Summary {
		return summarize(src.Site(), values)
	}
	return f
}

// MinCheckIn returns the earliest date the reservation form accepts.
func (f *Form) MinCheckIn() string {
	return today(f.now()).Format(DateLayout)
}

// MinCheckOut returns the earliest check-out date for checkIn, falling back
// to tomorrow.
func (f *Form) MinCheckOut(checkIn string) string {
	if in, err := time.Parse(DateLayout, checkIn); err == nil {
		return in.AddDate(0, 0, 1).Format(DateLayout)
	}
	return today(f.now()).AddDate(0, 0, 1).Format(DateLayout)
}

func (f *Form) checkStay(values map[string]string) map[string][]string {
	errs := map[string][]string{}
	in, inErr := parseDate(values["checkIn"])
	out, outErr := parseDate(values["checkOut"])

	if values["checkIn"] != "" {
		switch {
		case inErr != nil:
			errs["checkIn"] = []string{"Enter a valid date"}
		case in.Before(today(f.now())):
			errs["checkIn"] = []string{"Check-in cannot be in the past"}
		}
	}
	if values["checkOut"] != "" {
		switch {
		case outErr != nil:
			errs["checkOut"] = []string{"Enter a valid date"}
		case inErr == nil && values["checkIn"] != "" && !out.After(in):
			errs["checkOut"] = []string{"Check-out must be after check-in"}
		}
	}
	return errs
}

// Summary is the reservation price panel.
type Summary struct {
	RoomType string `json:"roomType"`
	Nightly  int    `json:"nightly"`
	Nights   int    `json:"nights"`
	Total    int    `json:"total"`
}

// TotalLabel renders the total, which is only an estimate until the stay
// dates are valid.
func (s Summary) TotalLabel() string {
	if s.Total <= 0 {
		return "To be calculated"
	}
	return fmt.Sprintf("$%d", s.Total)
}

func summarize(site *content.Site, values map[string]string) *Summary {
	if site == nil {
		return nil
	}
	rt, ok := site.RoomType(values["roomType"])
	if !ok || rt.Price <= 0 {
		return nil
	}
	s := &Summary{RoomType: rt.Name, Nightly: rt.Price}
	in, inErr := parseDate(values["checkIn"])
	out, outErr := parseDate(values["checkOut"])
	if inErr == nil && outErr == nil && out.After(in) {
		s.Nights = int(out.Sub(in).Hours() / 24)
		s.Total = s.Nights * s.Nightly
	}
	return s
}

func intBetween(lo, hi int) func(any) bool {
	return func(value any) bool {
		n, err := strconv.Atoi(validation.Stringify(value))
		return err == nil && n >= lo && n <= hi
	}
}

func parseDate(raw string) (time.Time, error) {
	return time.Parse(DateLayout, raw)
}

func today(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Set indexes the site's forms by name.
type Set map[string]*Form

// SiteForms builds every form the site serves.
func SiteForms(src SiteSource, opts ...Option) Set {
	return Set{
		ContactForm:     Contact(opts...),
		ReservationForm: Reservation(src, opts...),
		NewsletterForm:  Newsletter(opts...),
	}
}

// Lookup returns the form registered under name.
func (s Set) Lookup(name string) (*Form, bool) {
	f, ok := s[name]
	return f, ok && f != nil
}

// Names returns the registered form names in sorted order.
func (s Set) Names() []string {
	return slices.Sorted(maps.Keys(s))
}
