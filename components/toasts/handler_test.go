package toasts

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-hotelsite/pkg/notify"
	"github.com/goliatone/go-hotelsite/pkg/notify/notifytest"
)

type handlerResponse struct {
	Data Snapshot `json:"data"`
}

func newSurface(t *testing.T) *notify.Surface {
	t.Helper()
	surface := notify.NewSurface(notify.WithClock(notifytest.NewManualClock()))
	t.Cleanup(surface.Unmount)
	return surface
}

func withBroadcaster(req *http.Request, b *notify.Broadcaster) *http.Request {
	return req.WithContext(notify.WithBroadcaster(req.Context(), b))
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) Snapshot {
	t.Helper()
	if ct := strings.TrimSpace(rec.Header().Get("Content-Type")); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("expected JSON content-type, got %q", ct)
	}
	var payload handlerResponse
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return payload.Data
}

func TestHandler_EmptySlot(t *testing.T) {
	surface := newSurface(t)
	h := NewHandler()

	req := withBroadcaster(httptest.NewRequest(http.MethodGet, "/api/toast", nil), surface.Broadcaster())
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	got := decode(t, rec)
	if got.Visible || got.Text != "" || got.Seq != 0 || got.Kind != "info" {
		t.Fatalf("unexpected snapshot %#v", got)
	}
	if rec.Header().Get("Cache-Control") != "no-store" {
		t.Fatalf("expected no-store cache header")
	}
}

func TestHandler_ReturnsCurrentNotification(t *testing.T) {
	surface := newSurface(t)
	surface.Broadcaster().Notify(notify.KindSuccess, "Thank you for subscribing!", notify.WithDuration(3*time.Second))

	req := withBroadcaster(httptest.NewRequest(http.MethodGet, "/api/toast", nil), surface.Broadcaster())
	rec := httptest.NewRecorder()
	NewHandler().ServeHTTP(rec, req)

	want := Snapshot{Kind: "success", Text: "Thank you for subscribing!", Visible: true, DurationMS: 3000, Seq: 1}
	if got := decode(t, rec); got != want {
		t.Fatalf("unexpected snapshot\nwant: %#v\n got: %#v", want, got)
	}
}

func TestDismissHandler_HidesNotification(t *testing.T) {
	surface := newSurface(t)
	surface.Broadcaster().Notify(notify.KindError, "Please fill in all required fields.")

	req := withBroadcaster(httptest.NewRequest(http.MethodPost, "/api/toast/dismiss", nil), surface.Broadcaster())
	rec := httptest.NewRecorder()
	DismissHandlerWithOptions(DefaultOptions()).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if got := decode(t, rec); got.Visible || got.Seq != 1 {
		t.Fatalf("expected hidden snapshot, got %#v", got)
	}
	if _, visible := surface.Visible(); visible {
		t.Fatalf("expected surface to be hidden")
	}
}

func TestHandler_MethodNotAllowed(t *testing.T) {
	surface := newSurface(t)

	rec := httptest.NewRecorder()
	NewHandler().ServeHTTP(rec, withBroadcaster(httptest.NewRequest(http.MethodPost, "/api/toast", nil), surface.Broadcaster()))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	DismissHandlerWithOptions(DefaultOptions()).ServeHTTP(rec, withBroadcaster(httptest.NewRequest(http.MethodGet, "/api/toast/dismiss", nil), surface.Broadcaster()))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", rec.Code)
	}
}

func TestHandler_MissingBroadcaster(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/toast", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
}

func TestHandler_UnmountedSurface(t *testing.T) {
	surface := notify.NewSurface()
	b := surface.Broadcaster()
	surface.Unmount()

	rec := httptest.NewRecorder()
	DismissHandlerWithOptions(DefaultOptions()).ServeHTTP(rec, withBroadcaster(httptest.NewRequest(http.MethodPost, "/api/toast/dismiss", nil), b))
	if rec.Code != http.StatusGone {
		t.Fatalf("expected status 410, got %d", rec.Code)
	}
}

func TestHandler_DismissAfterSweepIsGone(t *testing.T) {
	surface := notify.NewSurface(notify.WithClock(notifytest.NewManualClock()))
	surface.Broadcaster().Notify(notify.KindInfo, "stale")
	h := DismissHandlerWithOptions(NewOptions(WithResolver(func(*http.Request) (*notify.Broadcaster, error) {
		b := surface.Broadcaster()
		surface.Unmount()
		return b, nil
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/toast/dismiss", nil))
	if rec.Code != http.StatusGone {
		t.Fatalf("expected status 410, got %d", rec.Code)
	}
}

func TestHandler_LongPollReturnsWhenSurfaceUnmounts(t *testing.T) {
	surface := notify.NewSurface(notify.WithClock(notifytest.NewManualClock()))
	b := surface.Broadcaster()
	b.Notify(notify.KindInfo, "pending", notify.WithDuration(0))

	done := make(chan *httptest.ResponseRecorder, 1)
	go func() {
		req := withBroadcaster(httptest.NewRequest(http.MethodGet, "/api/toast?after=1&wait=25", nil), b)
		rec := httptest.NewRecorder()
		NewHandler().ServeHTTP(rec, req)
		done <- rec
	}()
	surface.Unmount()

	select {
	case rec := <-done:
		switch rec.Code {
		case http.StatusGone:
		case http.StatusOK:
			if got := decode(t, rec); got.Visible {
				t.Fatalf("expected hidden snapshot, got %#v", got)
			}
		default:
			t.Fatalf("unexpected status %d", rec.Code)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("long-poll did not return after unmount")
	}
}

func TestHandler_GuardRejects(t *testing.T) {
	surface := newSurface(t)
	h := NewHandler(WithGuard(func(r *http.Request) error {
		return StatusError{Code: http.StatusUnauthorized}
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, withBroadcaster(httptest.NewRequest(http.MethodGet, "/api/toast", nil), surface.Broadcaster()))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rec.Code)
	}
}

func TestHandler_CustomResolver(t *testing.T) {
	surface := newSurface(t)
	surface.Broadcaster().Notify(notify.KindWarning, "Too many submissions")
	h := NewHandler(WithResolver(func(*http.Request) (*notify.Broadcaster, error) {
		return surface.Broadcaster(), nil
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/toast", nil))
	if got := decode(t, rec); got.Kind != "warning" {
		t.Fatalf("unexpected snapshot %#v", got)
	}
}

func TestHandler_LongPollReturnsImmediatelyWhenBehind(t *testing.T) {
	surface := newSurface(t)
	surface.Broadcaster().Notify(notify.KindInfo, "first")
	surface.Broadcaster().Notify(notify.KindInfo, "second")

	req := withBroadcaster(httptest.NewRequest(http.MethodGet, "/api/toast?after=1&wait=20", nil), surface.Broadcaster())
	rec := httptest.NewRecorder()
	NewHandler().ServeHTTP(rec, req)

	if got := decode(t, rec); got.Seq != 2 || got.Text != "second" {
		t.Fatalf("unexpected snapshot %#v", got)
	}
}

func TestHandler_LongPollWakesOnChange(t *testing.T) {
	surface := newSurface(t)
	b := surface.Broadcaster()
	b.Notify(notify.KindInfo, "first")

	req := withBroadcaster(httptest.NewRequest(http.MethodGet, "/api/toast?after=1&wait=5", nil), b)
	done := make(chan *httptest.ResponseRecorder, 1)
	go func() {
		rec := httptest.NewRecorder()
		NewHandler().ServeHTTP(rec, req)
		done <- rec
	}()

	deadline := time.After(10 * time.Second)
	for {
		select {
		case rec := <-done:
			if got := decode(t, rec); got.Seq < 2 {
				t.Fatalf("expected a newer notification, got %#v", got)
			}
			return
		case <-time.After(10 * time.Millisecond):
			b.Notify(notify.KindSuccess, "second")
		case <-deadline:
			t.Fatalf("long poll never returned")
		}
	}
}

func TestHandler_LongPollStopsWithRequest(t *testing.T) {
	surface := newSurface(t)
	surface.Broadcaster().Notify(notify.KindInfo, "first")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodGet, "/api/toast?after=1&wait=20", nil).WithContext(notify.WithBroadcaster(ctx, surface.Broadcaster()))
	rec := httptest.NewRecorder()
	NewHandler().ServeHTTP(rec, req)

	if got := decode(t, rec); got.Seq != 1 {
		t.Fatalf("unexpected snapshot %#v", got)
	}
}

func TestClampWait(t *testing.T) {
	opts := NewOptions(WithMaxWait(10 * time.Second))
	cases := map[int]time.Duration{
		-1: 0,
		0:  0,
		3:  3 * time.Second,
		60: 10 * time.Second,
	}
	for in, want := range cases {
		if got := clampWait(in, opts); got != want {
			t.Fatalf("clampWait(%d) = %s, want %s", in, got, want)
		}
	}
}
