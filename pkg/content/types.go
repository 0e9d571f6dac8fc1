package content

// Category is a filter option shown above a listing. The reserved ID "all"
// selects every entry.
type Category struct {
	ID    string `yaml:"id" json:"id"`
	Label string `yaml:"label" json:"label"`
}

// AllCategory is the catch-all filter identifier.
const AllCategory = "all"

// NavLink is an entry in the header, footer or social menus.
type NavLink struct {
	Label string `yaml:"label" json:"label"`
	Href  string `yaml:"href" json:"href"`
}

// Hero is the banner rendered at the top of a page.
type Hero struct {
	Title    string `yaml:"title" json:"title"`
	Subtitle string `yaml:"subtitle" json:"subtitle"`
	Image    string `yaml:"image" json:"image"`
	Alt      string `yaml:"alt" json:"alt"`
}

// Feature is a titled blurb with an optional icon. Icon names an entry of
// Site.Icons; Load resolves it into IconSVG.
type Feature struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	Icon        string `yaml:"icon" json:"icon,omitempty"`
	IconSVG     string `yaml:"-" json:"iconSvg,omitempty"`
}

// Highlight is a two-column home page section with a bullet list.
type Highlight struct {
	Title   string   `yaml:"title" json:"title"`
	Body    string   `yaml:"body" json:"body"`
	Bullets []string `yaml:"bullets" json:"bullets"`
	Images  []string `yaml:"images" json:"images"`
	Link    NavLink  `yaml:"link" json:"link"`
}

// Testimonial is a guest quote.
type Testimonial struct {
	Quote  string `yaml:"quote" json:"quote"`
	Author string `yaml:"author" json:"author"`
	Role   string `yaml:"role" json:"role"`
	Image  string `yaml:"image" json:"image"`
	Rating int    `yaml:"rating" json:"rating"`
}

// CallToAction is the banner closing most pages.
type CallToAction struct {
	Title   string    `yaml:"title" json:"title"`
	Body    string    `yaml:"body" json:"body"`
	Buttons []NavLink `yaml:"buttons" json:"buttons"`
}

// Home groups the home page sections.
type Home struct {
	Features     []Feature     `yaml:"features" json:"features"`
	Highlights   []Highlight   `yaml:"highlights" json:"highlights"`
	Smart        []Feature     `yaml:"smart" json:"smart"`
	Testimonials []Testimonial `yaml:"testimonials" json:"testimonials"`
	Location     Highlight     `yaml:"location" json:"location"`
}

// Amenity is an in-room amenity.
type Amenity struct {
	ID   string `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`
}

// Room is an accommodation listing. Amenities holds amenity IDs; Load
// resolves them into AmenityList.
type Room struct {
	ID              string    `yaml:"id" json:"id"`
	Name            string    `yaml:"name" json:"name"`
	Description     string    `yaml:"description" json:"description"`
	DescriptionHTML string    `yaml:"-" json:"descriptionHtml"`
	Price           int       `yaml:"price" json:"price"`
	Capacity        int       `yaml:"capacity" json:"capacity"`
	Size            int       `yaml:"size" json:"size"`
	Image           string    `yaml:"image" json:"image"`
	Amenities       []string  `yaml:"amenities" json:"amenities"`
	AmenityList     []Amenity `yaml:"-" json:"amenityList"`
	Featured        bool      `yaml:"featured" json:"featured"`
}

// RoomType is a bookable option on the reservation form with its nightly
// rate.
type RoomType struct {
	ID    string `yaml:"id" json:"id"`
	Name  string `yaml:"name" json:"name"`
	Price int    `yaml:"price" json:"price"`
}

// Restaurant is a dining venue.
type Restaurant struct {
	ID              string `yaml:"id" json:"id"`
	Name            string `yaml:"name" json:"name"`
	Description     string `yaml:"description" json:"description"`
	DescriptionHTML string `yaml:"-" json:"descriptionHtml"`
	Cuisine         string `yaml:"cuisine" json:"cuisine"`
	Hours           string `yaml:"hours" json:"hours"`
	Location        string `yaml:"location" json:"location"`
	Phone           string `yaml:"phone" json:"phone"`
	Image           string `yaml:"image" json:"image"`
	Featured        bool   `yaml:"featured" json:"featured"`
}

// MenuItem is a dish served by a restaurant.
type MenuItem struct {
	ID          string   `yaml:"id" json:"id"`
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description" json:"description"`
	Price       int      `yaml:"price" json:"price"`
	Category    string   `yaml:"category" json:"category"`
	Image       string   `yaml:"image" json:"image"`
	Restaurant  string   `yaml:"restaurant" json:"restaurant"`
	Featured    bool     `yaml:"featured" json:"featured"`
	Dietary     []string `yaml:"dietary" json:"dietary,omitempty"`
}

// Facility is a hotel service listed on the facilities page.
type Facility struct {
	ID              string `yaml:"id" json:"id"`
	Name            string `yaml:"name" json:"name"`
	Description     string `yaml:"description" json:"description"`
	DescriptionHTML string `yaml:"-" json:"descriptionHtml"`
	Icon            string `yaml:"icon" json:"icon,omitempty"`
	IconSVG         string `yaml:"-" json:"iconSvg,omitempty"`
	Image           string `yaml:"image" json:"image"`
	Category        string `yaml:"category" json:"category"`
	Featured        bool   `yaml:"featured" json:"featured"`
}

// GalleryImage is a photo in the gallery.
type GalleryImage struct {
	ID       string `yaml:"id" json:"id"`
	Src      string `yaml:"src" json:"src"`
	Alt      string `yaml:"alt" json:"alt"`
	Category string `yaml:"category" json:"category"`
	Featured bool   `yaml:"featured" json:"featured"`
}

// Policy is a titled reservation policy.
type Policy struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
}

// Question is a frequently asked question.
type Question struct {
	Question string `yaml:"question" json:"question"`
	Answer   string `yaml:"answer" json:"answer"`
}

// ContactCard is one of the info cards on the contact page.
type ContactCard struct {
	Title   string   `yaml:"title" json:"title"`
	Icon    string   `yaml:"icon" json:"icon,omitempty"`
	IconSVG string   `yaml:"-" json:"iconSvg,omitempty"`
	Details []string `yaml:"details" json:"details"`
}

// Contact holds the hotel's primary contact details.
type Contact struct {
	Street  string        `yaml:"street" json:"street"`
	City    string        `yaml:"city" json:"city"`
	Phone   string        `yaml:"phone" json:"phone"`
	Email   string        `yaml:"email" json:"email"`
	Cards   []ContactCard `yaml:"cards" json:"cards"`
	Subject []Category    `yaml:"subjects" json:"subjects"`
}

// NotFound is the copy of the 404 page.
type NotFound struct {
	Title string `yaml:"title" json:"title"`
	Body  string `yaml:"body" json:"body"`
}

// Site aggregates every piece of page content.
type Site struct {
	Name       string                  `yaml:"name" json:"name"`
	Tagline    string                  `yaml:"tagline" json:"tagline"`
	About      string                  `yaml:"about" json:"about"`
	Nav        []NavLink               `yaml:"nav" json:"nav"`
	QuickLinks []NavLink               `yaml:"quickLinks" json:"quickLinks"`
	Social     []NavLink               `yaml:"social" json:"social"`
	Legal      []NavLink               `yaml:"legal" json:"legal"`
	Contact    Contact                 `yaml:"contact" json:"contact"`
	Heroes     map[string]Hero         `yaml:"heroes" json:"heroes"`
	CTAs       map[string]CallToAction `yaml:"ctas" json:"ctas"`
	Home       Home                    `yaml:"home" json:"home"`

	Amenities   []Amenity  `yaml:"amenities" json:"amenities"`
	RoomFilters []Category `yaml:"roomFilters" json:"roomFilters"`
	Rooms       []Room     `yaml:"rooms" json:"rooms"`
	RoomTypes   []RoomType `yaml:"roomTypes" json:"roomTypes"`

	Restaurants []Restaurant `yaml:"restaurants" json:"restaurants"`
	Menu        []MenuItem   `yaml:"menu" json:"menu"`

	FacilityCategories []Category `yaml:"facilityCategories" json:"facilityCategories"`
	Facilities         []Facility `yaml:"facilities" json:"facilities"`

	GalleryCategories []Category     `yaml:"galleryCategories" json:"galleryCategories"`
	Gallery           []GalleryImage `yaml:"gallery" json:"gallery"`

	Policies []Policy   `yaml:"policies" json:"policies"`
	FAQ      []Question `yaml:"faq" json:"faq"`
	NotFound NotFound   `yaml:"notFound" json:"notFound"`

	// Icons maps icon names to inline SVG markup.
	Icons map[string]string `yaml:"icons" json:"-"`
}
