package orchestrator

import (
	"net/http"
	"strconv"
	"time"

	"github.com/goliatone/go-hotelsite/pkg/content"
	"github.com/goliatone/go-hotelsite/pkg/forms"
	"github.com/goliatone/go-hotelsite/pkg/render"
)

// Page names. Each one is also the template the HTML renderer executes.
const (
	PageHome           = "home"
	PageAccommodations = "accommodations"
	PageDining         = "dining"
	PageFacilities     = "facilities"
	PageGallery        = "gallery"
	PageContact        = "contact"
	PageReservations   = "reservations"
	PageNotFound       = "not_found"
)

// Dining tabs.
const (
	TabRestaurants = "restaurants"
	TabMenu        = "menu"
)

// Env is what a page builder reads from.
type Env struct {
	Site  *content.Site
	Forms forms.Set
	Now   time.Time
}

// Builder assembles the Page for a request.
type Builder func(env Env, req Request) (render.Page, error)

// DefaultBuilders returns the builders for every page the site serves.
func DefaultBuilders() map[string]Builder {
	return map[string]Builder{
		PageHome:           buildHome,
		PageAccommodations: buildAccommodations,
		PageDining:         buildDining,
		PageFacilities:     buildFacilities,
		PageGallery:        buildGallery,
		PageContact:        buildContact,
		PageReservations:   buildReservations,
		PageNotFound:       buildNotFound,
	}
}

func newPage(env Env, name, title string, data map[string]any) render.Page {
	data["site"] = env.Site
	data["year"] = env.Now.Year()
	return render.Page{Name: name, Title: title, Data: data}
}

func buildHome(env Env, _ Request) (render.Page, error) {
	site := env.Site
	return newPage(env, PageHome, "", map[string]any{
		"hero":          site.Heroes[PageHome],
		"features":      site.Home.Features,
		"highlights":    site.Home.Highlights,
		"smart":         site.Home.Smart,
		"testimonials":  site.Home.Testimonials,
		"location":      site.Home.Location,
		"featuredRooms": site.FeaturedRooms(),
		"cta":           site.CTAs[PageHome],
	}), nil
}

func buildAccommodations(env Env, req Request) (render.Page, error) {
	site := env.Site
	filter := content.SelectCategory(site.RoomFilters, req.Query.Get("filter"))
	return newPage(env, PageAccommodations, "Accommodations", map[string]any{
		"hero":    site.Heroes[PageAccommodations],
		"filters": site.RoomFilters,
		"filter":  filter,
		"rooms":   site.RoomsByFilter(filter),
		"cta":     site.CTAs[PageAccommodations],
	}), nil
}

func buildDining(env Env, req Request) (render.Page, error) {
	site := env.Site
	tab := req.Query.Get("tab")
	if tab != TabMenu {
		tab = TabRestaurants
	}
	restaurant := content.AllCategory
	if _, ok := site.Restaurant(req.Query.Get("restaurant")); ok {
		restaurant = req.Query.Get("restaurant")
	}
	return newPage(env, PageDining, "Dining", map[string]any{
		"hero":        site.Heroes[PageDining],
		"tab":         tab,
		"restaurant":  restaurant,
		"restaurants": site.Restaurants,
		"menu":        site.MenuByRestaurant(restaurant),
	}), nil
}

func buildFacilities(env Env, req Request) (render.Page, error) {
	site := env.Site
	category := content.SelectCategory(site.FacilityCategories, req.Query.Get("category"))
	return newPage(env, PageFacilities, "Facilities", map[string]any{
		"hero":       site.Heroes[PageFacilities],
		"categories": site.FacilityCategories,
		"category":   category,
		"facilities": site.FacilitiesByCategory(category),
	}), nil
}

func buildGallery(env Env, req Request) (render.Page, error) {
	site := env.Site
	category := content.SelectCategory(site.GalleryCategories, req.Query.Get("category"))
	images := site.GalleryByCategory(category)
	data := map[string]any{
		"hero":       site.Heroes[PageGallery],
		"categories": site.GalleryCategories,
		"category":   category,
		"images":     images,
	}
	if id := req.Query.Get("image"); id != "" {
		if lightbox, ok := content.Neighbours(images, id); ok {
			data["lightbox"] = lightbox
		}
	}
	return newPage(env, PageGallery, "Gallery", data), nil
}

func buildContact(env Env, _ Request) (render.Page, error) {
	site := env.Site
	return newPage(env, PageContact, "Contact", map[string]any{
		"hero":     site.Heroes[PageContact],
		"cards":    site.Contact.Cards,
		"subjects": site.Contact.Subject,
		"faq":      site.FAQ,
		"cta":      site.CTAs[PageContact],
	}), nil
}

func buildReservations(env Env, req Request) (render.Page, error) {
	site := env.Site
	data := map[string]any{
		"hero":      site.Heroes[PageReservations],
		"roomTypes": site.RoomTypes,
		"policies":  site.Policies,
		"cta":       site.CTAs[PageReservations],
		"adults":    numberRange(forms.MinAdults, forms.MaxAdults),
		"children":  numberRange(forms.MinChildren, forms.MaxChildren),
	}

	values := req.RenderOptions.FormValues(forms.ReservationForm)
	if form, ok := env.Forms.Lookup(forms.ReservationForm); ok {
		data["minCheckIn"] = form.MinCheckIn()
		data["minCheckOut"] = form.MinCheckOut(values["checkIn"])
		if summary := form.Summarize(values); summary != nil {
			data["summary"] = SummaryView(summary)
		}
	}
	return newPage(env, PageReservations, "Reservations", data), nil
}

func buildNotFound(env Env, _ Request) (render.Page, error) {
	page := newPage(env, PageNotFound, env.Site.NotFound.Title, map[string]any{
		"notFound": env.Site.NotFound,
	})
	page.Status = http.StatusNotFound
	return page, nil
}

// SummaryView is the template shape of a reservation summary.
func SummaryView(s *forms.Summary) map[string]any {
	if s == nil {
		return nil
	}
	return map[string]any{
		"roomType":   s.RoomType,
		"nightly":    s.Nightly,
		"nights":     s.Nights,
		"total":      s.Total,
		"totalLabel": s.TotalLabel(),
	}
}

func numberRange(lo, hi int) []string {
	out := make([]string, 0, hi-lo+1)
	for n := lo; n <= hi; n++ {
		out = append(out, strconv.Itoa(n))
	}
	return out
}
