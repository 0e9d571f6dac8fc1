package content_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-hotelsite/pkg/content"
)

func ids[T any](items []T, id func(T) string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, id(item))
	}
	return out
}

func roomID(r content.Room) string          { return r.ID }
func menuID(m content.MenuItem) string      { return m.ID }
func imageID(g content.GalleryImage) string { return g.ID }
func facilityID(f content.Facility) string  { return f.ID }

func TestDefaultContentLoads(t *testing.T) {
	site, err := content.Default()
	if err != nil {
		t.Fatalf("load default content: %v", err)
	}

	if got := len(site.Rooms); got != 6 {
		t.Fatalf("expected 6 rooms, got %d", got)
	}
	if got := len(site.Amenities); got != 12 {
		t.Fatalf("expected 12 amenities, got %d", got)
	}
	if got := len(site.Gallery); got != 12 {
		t.Fatalf("expected 12 gallery images, got %d", got)
	}

	wantNav := []string{"Home", "Accommodations", "Dining", "Facilities", "Gallery", "Contact"}
	if diff := cmp.Diff(wantNav, ids(site.Nav, func(l content.NavLink) string { return l.Label })); diff != "" {
		t.Fatalf("nav mismatch (-want +got):\n%s", diff)
	}

	presidential := site.Rooms[4]
	if presidential.ID != "suite-2" || len(presidential.AmenityList) != len(site.Amenities) {
		t.Fatalf("expected presidential suite with every amenity, got %+v", presidential)
	}
	if !strings.Contains(presidential.DescriptionHTML, "<strong>most luxurious</strong>") {
		t.Fatalf("expected rendered markdown, got %q", presidential.DescriptionHTML)
	}
	for _, f := range site.Facilities {
		if !strings.Contains(f.IconSVG, "<svg") {
			t.Fatalf("facility %s: expected resolved icon, got %q", f.ID, f.IconSVG)
		}
	}
}

func TestRoomsByFilter(t *testing.T) {
	site := content.MustDefault()

	cases := map[string][]string{
		"all":      {"standard-1", "deluxe-1", "suite-1", "family-1", "suite-2", "deluxe-2"},
		"deluxe":   {"deluxe-1", "deluxe-2"},
		"suite":    {"suite-1", "suite-2"},
		"family":   {"family-1"},
		"standard": {"standard-1"},
	}
	for filter, want := range cases {
		if diff := cmp.Diff(want, ids(site.RoomsByFilter(filter), roomID)); diff != "" {
			t.Fatalf("filter %q mismatch (-want +got):\n%s", filter, diff)
		}
	}
}

func TestSelectCategory(t *testing.T) {
	site := content.MustDefault()
	if got := content.SelectCategory(site.RoomFilters, " Suite "); got != "suite" {
		t.Fatalf("expected suite, got %q", got)
	}
	if got := content.SelectCategory(site.RoomFilters, "penthouse"); got != content.AllCategory {
		t.Fatalf("expected unknown filter to fall back to all, got %q", got)
	}
}

func TestMenuAndFacilityFilters(t *testing.T) {
	site := content.MustDefault()

	if diff := cmp.Diff([]string{"item1", "item3", "item5"}, ids(site.MenuByRestaurant("skyline"), menuID)); diff != "" {
		t.Fatalf("skyline menu mismatch (-want +got):\n%s", diff)
	}
	if got := len(site.MenuByRestaurant(content.AllCategory)); got != 6 {
		t.Fatalf("expected full menu, got %d", got)
	}
	if diff := cmp.Diff([]string{"spa", "gym"}, ids(site.FacilitiesByCategory("wellness"), facilityID)); diff != "" {
		t.Fatalf("wellness mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"spa", "pool", "conference"}, ids(site.FeaturedFacilities(), facilityID)); diff != "" {
		t.Fatalf("featured facilities mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"event-1", "event-2", "event-3"}, ids(site.GalleryByCategory("events"), imageID)); diff != "" {
		t.Fatalf("events mismatch (-want +got):\n%s", diff)
	}

	rt, ok := site.RoomType("presidential")
	if !ok || rt.Price != 450 {
		t.Fatalf("expected presidential at 450, got %+v (%v)", rt, ok)
	}
	if _, ok := site.RoomType("penthouse"); ok {
		t.Fatalf("expected unknown room type lookup to fail")
	}
}

func TestNeighboursWrapAround(t *testing.T) {
	site := content.MustDefault()
	rooms := site.GalleryByCategory("rooms")

	first, ok := content.Neighbours(rooms, "room-1")
	if !ok {
		t.Fatalf("expected room-1 to be found")
	}
	if first.Previous.ID != "room-3" || first.Next.ID != "room-2" || first.Index != 1 || first.Total != 3 {
		t.Fatalf("unexpected lightbox %+v", first)
	}

	last, _ := content.Neighbours(rooms, "room-3")
	if last.Next.ID != "room-1" {
		t.Fatalf("expected wrap to first image, got %s", last.Next.ID)
	}

	if _, ok := content.Neighbours(rooms, "event-1"); ok {
		t.Fatalf("expected image outside the filtered list to be missing")
	}
}

func TestParseRejectsBrokenReferences(t *testing.T) {
	doc := `
name: Test
amenities:
  - { id: wifi, name: WiFi }
rooms:
  - { id: a-1, name: A, price: 10, amenities: [wifi, sauna] }
  - { id: a-1, name: B, price: 10 }
restaurants:
  - { id: r1, name: R }
menu:
  - { id: m1, name: M, restaurant: r2 }
`
	_, err := content.Parse([]byte(doc))
	if !errors.Is(err, content.ErrInvalidContent) {
		t.Fatalf("expected ErrInvalidContent, got %v", err)
	}
	for _, fragment := range []string{`unknown amenity "sauna"`, `duplicate room id "a-1"`, `unknown restaurant "r2"`} {
		if !strings.Contains(err.Error(), fragment) {
			t.Fatalf("expected %q in %v", fragment, err)
		}
	}
}

func TestLoadFromFS(t *testing.T) {
	fsys := fstest.MapFS{
		"site.yaml": {Data: []byte("name: Mini\nroomTypes:\n  - { id: standard, name: Standard, price: 99 }\n")},
	}
	site, err := content.Load(fsys, "site.yaml")
	require.NoError(t, err)
	require.Equal(t, "Mini", site.Name)

	_, err = content.Load(fsys, "missing.yaml")
	require.Error(t, err)
}

func TestRenderMarkdownSanitizes(t *testing.T) {
	out := content.RenderMarkdown("Hello *there* <script>alert(1)</script> [site](https://example.com)")
	require.Contains(t, out, "<em>there</em>")
	require.NotContains(t, out, "<script>")
	require.Contains(t, out, `target="_blank"`)

	require.Equal(t, "Tom & Jerry", content.SanitizeText("<b>Tom</b> & Jerry"))
}

func TestStoreWatchReloads(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, content.DefaultFile)
	require.NoError(t, os.WriteFile(path, []byte("name: Before\n"), 0o644))

	reloaded := make(chan string, 4)
	store := content.NewStore(content.MustDefault(),
		content.WithDebounce(20*time.Millisecond),
		content.WithReloadHook(func(s *content.Site) {
			select {
			case reloaded <- s.Name:
			default:
			}
		}),
	)
	require.NoError(t, store.LoadDir(dir))
	require.Equal(t, "Before", <-reloaded)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- store.Watch(ctx, dir) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	require.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte("name: After\n"), 0o644)
		select {
		case name := <-reloaded:
			return name == "After"
		case <-time.After(100 * time.Millisecond):
			return false
		}
	}, 5*time.Second, 50*time.Millisecond)
	require.Equal(t, "After", store.Site().Name)
}

func TestStoreKeepsContentOnInvalidReload(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, content.DefaultFile), []byte("name: ''\n"), 0o644))

	site := content.MustDefault()
	store := content.NewStore(site)
	require.ErrorIs(t, store.LoadDir(dir), content.ErrInvalidContent)
	require.Same(t, site, store.Site())
}
