package content

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data/site.yaml
var embedded embed.FS

// DefaultFile is the content file name looked up inside a content directory.
const DefaultFile = "site.yaml"

// ErrInvalidContent wraps every consistency failure reported by Load.
var ErrInvalidContent = errors.New("content: invalid site content")

// Default parses the content bundled with the binary.
func Default() (*Site, error) {
	return Load(embedded, "data/"+DefaultFile)
}

// MustDefault is Default for package-level initialisation; it panics when the
// bundled content is broken.
func MustDefault() *Site {
	site, err := Default()
	if err != nil {
		panic(err)
	}
	return site
}

// Load reads, validates and resolves the content file at name in fsys.
func Load(fsys fs.FS, name string) (*Site, error) {
	if fsys == nil {
		return nil, fmt.Errorf("content: filesystem is nil")
	}
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("content: read %s: %w", name, err)
	}
	return Parse(data)
}

// Parse decodes raw YAML content, validates cross references and renders
// descriptions and icons.
func Parse(data []byte) (*Site, error) {
	var site Site
	if err := yaml.Unmarshal(data, &site); err != nil {
		return nil, fmt.Errorf("content: decode: %w", err)
	}
	if err := site.validate(); err != nil {
		return nil, err
	}
	if err := site.resolve(); err != nil {
		return nil, err
	}
	return &site, nil
}

func (s *Site) validate() error {
	var problems []string
	report := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if strings.TrimSpace(s.Name) == "" {
		report("site name is empty")
	}

	amenities := make(map[string]struct{}, len(s.Amenities))
	for _, a := range s.Amenities {
		checkID(report, "amenity", a.ID, amenities)
	}

	rooms := map[string]struct{}{}
	for _, room := range s.Rooms {
		checkID(report, "room", room.ID, rooms)
		if room.Price <= 0 {
			report("room %q: price must be positive", room.ID)
		}
		for _, id := range room.Amenities {
			if _, ok := amenities[id]; !ok {
				report("room %q: unknown amenity %q", room.ID, id)
			}
		}
	}
	checkCategories(report, "room filter", s.RoomFilters)

	roomTypes := map[string]struct{}{}
	for _, rt := range s.RoomTypes {
		checkID(report, "room type", rt.ID, roomTypes)
		if rt.Price <= 0 {
			report("room type %q: price must be positive", rt.ID)
		}
	}

	restaurants := map[string]struct{}{}
	for _, r := range s.Restaurants {
		checkID(report, "restaurant", r.ID, restaurants)
	}
	menu := map[string]struct{}{}
	for _, item := range s.Menu {
		checkID(report, "menu item", item.ID, menu)
		if _, ok := restaurants[item.Restaurant]; !ok {
			report("menu item %q: unknown restaurant %q", item.ID, item.Restaurant)
		}
	}

	facilityCats := checkCategories(report, "facility category", s.FacilityCategories)
	facilities := map[string]struct{}{}
	for _, f := range s.Facilities {
		checkID(report, "facility", f.ID, facilities)
		if _, ok := facilityCats[f.Category]; !ok {
			report("facility %q: unknown category %q", f.ID, f.Category)
		}
	}

	galleryCats := checkCategories(report, "gallery category", s.GalleryCategories)
	images := map[string]struct{}{}
	for _, img := range s.Gallery {
		checkID(report, "gallery image", img.ID, images)
		if _, ok := galleryCats[img.Category]; !ok {
			report("gallery image %q: unknown category %q", img.ID, img.Category)
		}
	}

	for _, name := range s.iconRefs() {
		if _, ok := s.Icons[name]; !ok {
			report("unknown icon %q", name)
		}
	}

	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrInvalidContent, strings.Join(problems, "; "))
}

func checkID(report func(string, ...any), kind, id string, seen map[string]struct{}) {
	if strings.TrimSpace(id) == "" {
		report("%s with empty id", kind)
		return
	}
	if _, dup := seen[id]; dup {
		report("duplicate %s id %q", kind, id)
		return
	}
	seen[id] = struct{}{}
}

// checkCategories returns the declared category IDs, excluding "all".
func checkCategories(report func(string, ...any), kind string, cats []Category) map[string]struct{} {
	seen := map[string]struct{}{}
	for _, c := range cats {
		checkID(report, kind, c.ID, seen)
	}
	delete(seen, AllCategory)
	return seen
}

func (s *Site) iconRefs() []string {
	var refs []string
	add := func(name string) {
		if name != "" {
			refs = append(refs, name)
		}
	}
	for _, f := range s.Home.Features {
		add(f.Icon)
	}
	for _, f := range s.Home.Smart {
		add(f.Icon)
	}
	for _, f := range s.Facilities {
		add(f.Icon)
	}
	for _, c := range s.Contact.Cards {
		add(c.Icon)
	}
	return refs
}

func (s *Site) resolve() error {
	amenities := make(map[string]Amenity, len(s.Amenities))
	for _, a := range s.Amenities {
		amenities[a.ID] = a
	}
	for i := range s.Rooms {
		room := &s.Rooms[i]
		room.AmenityList = make([]Amenity, 0, len(room.Amenities))
		for _, id := range room.Amenities {
			room.AmenityList = append(room.AmenityList, amenities[id])
		}
		room.DescriptionHTML = RenderMarkdown(room.Description)
	}
	for i := range s.Restaurants {
		s.Restaurants[i].DescriptionHTML = RenderMarkdown(s.Restaurants[i].Description)
	}

	icons := make(map[string]string, len(s.Icons))
	for name, inner := range s.Icons {
		svg := renderIcon(inner)
		if svg == "" {
			return fmt.Errorf("%w: icon %q is empty after sanitizing", ErrInvalidContent, name)
		}
		icons[name] = svg
	}
	for i := range s.Facilities {
		f := &s.Facilities[i]
		f.DescriptionHTML = RenderMarkdown(f.Description)
		f.IconSVG = icons[f.Icon]
	}
	for i := range s.Home.Features {
		s.Home.Features[i].IconSVG = icons[s.Home.Features[i].Icon]
	}
	for i := range s.Home.Smart {
		s.Home.Smart[i].IconSVG = icons[s.Home.Smart[i].Icon]
	}
	for i := range s.Contact.Cards {
		s.Contact.Cards[i].IconSVG = icons[s.Contact.Cards[i].Icon]
	}
	return nil
}
