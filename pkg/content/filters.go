package content

import "strings"

// SelectCategory returns raw when it names one of cats and AllCategory
// otherwise.
func SelectCategory(cats []Category, raw string) string {
	raw = strings.TrimSpace(strings.ToLower(raw))
	for _, c := range cats {
		if c.ID == raw {
			return raw
		}
	}
	return AllCategory
}

// RoomsByFilter returns the rooms whose ID starts with filter. AllCategory
// and the empty string return every room.
func (s *Site) RoomsByFilter(filter string) []Room {
	if filter == "" || filter == AllCategory {
		return append([]Room(nil), s.Rooms...)
	}
	out := make([]Room, 0, len(s.Rooms))
	for _, room := range s.Rooms {
		if strings.HasPrefix(room.ID, filter) {
			out = append(out, room)
		}
	}
	return out
}

// FeaturedRooms returns the rooms flagged as featured.
func (s *Site) FeaturedRooms() []Room {
	var out []Room
	for _, room := range s.Rooms {
		if room.Featured {
			out = append(out, room)
		}
	}
	return out
}

// RoomType looks up a reservation room type by ID.
func (s *Site) RoomType(id string) (RoomType, bool) {
	for _, rt := range s.RoomTypes {
		if rt.ID == id {
			return rt, true
		}
	}
	return RoomType{}, false
}

// Restaurant looks up a restaurant by ID.
func (s *Site) Restaurant(id string) (Restaurant, bool) {
	for _, r := range s.Restaurants {
		if r.ID == id {
			return r, true
		}
	}
	return Restaurant{}, false
}

// MenuByRestaurant returns the menu items served by restaurant. AllCategory
// and the empty string return the whole menu.
func (s *Site) MenuByRestaurant(restaurant string) []MenuItem {
	if restaurant == "" || restaurant == AllCategory {
		return append([]MenuItem(nil), s.Menu...)
	}
	out := make([]MenuItem, 0, len(s.Menu))
	for _, item := range s.Menu {
		if item.Restaurant == restaurant {
			out = append(out, item)
		}
	}
	return out
}

// FacilitiesByCategory filters facilities by category.
func (s *Site) FacilitiesByCategory(category string) []Facility {
	if category == "" || category == AllCategory {
		return append([]Facility(nil), s.Facilities...)
	}
	out := make([]Facility, 0, len(s.Facilities))
	for _, f := range s.Facilities {
		if f.Category == category {
			out = append(out, f)
		}
	}
	return out
}

// FeaturedFacilities returns the facilities flagged as featured.
func (s *Site) FeaturedFacilities() []Facility {
	var out []Facility
	for _, f := range s.Facilities {
		if f.Featured {
			out = append(out, f)
		}
	}
	return out
}

// GalleryByCategory filters gallery images by category.
func (s *Site) GalleryByCategory(category string) []GalleryImage {
	if category == "" || category == AllCategory {
		return append([]GalleryImage(nil), s.Gallery...)
	}
	out := make([]GalleryImage, 0, len(s.Gallery))
	for _, img := range s.Gallery {
		if img.Category == category {
			out = append(out, img)
		}
	}
	return out
}

// FeaturedImages returns the gallery images flagged as featured.
func (s *Site) FeaturedImages() []GalleryImage {
	var out []GalleryImage
	for _, img := range s.Gallery {
		if img.Featured {
			out = append(out, img)
		}
	}
	return out
}

// Lightbox is the open state of the gallery viewer.
type Lightbox struct {
	Current  GalleryImage `json:"current"`
	Previous GalleryImage `json:"previous"`
	Next     GalleryImage `json:"next"`
	Index    int          `json:"index"`
	Total    int          `json:"total"`
}

// Neighbours locates id in images and returns the lightbox state with the
// previous and next image, wrapping around at both ends.
func Neighbours(images []GalleryImage, id string) (Lightbox, bool) {
	for i, img := range images {
		if img.ID != id {
			continue
		}
		n := len(images)
		return Lightbox{
			Current:  img,
			Previous: images[(i-1+n)%n],
			Next:     images[(i+1)%n],
			Index:    i + 1,
			Total:    n,
		}, true
	}
	return Lightbox{}, false
}
