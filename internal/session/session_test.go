package session

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-hotelsite/internal/metrics"
	"github.com/goliatone/go-hotelsite/internal/ratelimit"
	"github.com/goliatone/go-hotelsite/pkg/forms"
	"github.com/goliatone/go-hotelsite/pkg/notify"
	"github.com/goliatone/go-hotelsite/pkg/notify/notifytest"
	"github.com/goliatone/go-hotelsite/pkg/render"
	"github.com/goliatone/go-hotelsite/pkg/theming"
)

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newManager(t *testing.T, opts ...Option) (*Manager, *fakeClock, *notifytest.ManualClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)}
	timers := notifytest.NewManualClock()
	base := []Option{
		WithClock(clock.Now),
		WithIDs(sequentialIDs()),
		WithIdleTTL(10 * time.Minute),
		WithNotifyOptions(notify.WithClock(timers)),
	}
	m := New(append(base, opts...)...)
	t.Cleanup(m.Close)
	return m, clock, timers
}

func TestEnsureStartsAndResumesSessions(t *testing.T) {
	m, _, _ := newManager(t)

	rec := httptest.NewRecorder()
	s := m.Ensure(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, "id-1", s.ID)
	require.Equal(t, "id-2", s.CSRFToken())

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, DefaultCookie, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/contact", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	again := m.Ensure(rec, req)
	assert.Same(t, s, again)
	assert.Empty(t, rec.Result().Cookies())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: DefaultCookie, Value: "stale"})
	fresh := m.Ensure(httptest.NewRecorder(), req)
	assert.NotEqual(t, s.ID, fresh.ID)
	assert.Equal(t, 2, m.Len())
}

func TestSweepUnmountsIdleSessions(t *testing.T) {
	mt := metrics.New()
	limiter := ratelimit.New(1, 1, time.Hour)
	m, clock, timers := newManager(t, WithMetrics(mt), WithLimiter(limiter))

	idle := m.Ensure(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	idle.Broadcaster().Notify(notify.KindInfo, "Welcome")
	require.True(t, m.Allow(idle))
	require.Equal(t, 1, timers.Pending())

	clock.Advance(6 * time.Minute)
	active := m.Ensure(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	clock.Advance(5 * time.Minute)

	assert.Equal(t, 1, m.Sweep())
	assert.False(t, idle.Surface().Mounted())
	assert.True(t, active.Surface().Mounted())
	assert.Equal(t, 0, timers.Pending())
	assert.Equal(t, 0, limiter.Len())
	require.NoError(t, testutil.GatherAndCompare(mt.Registry(), strings.NewReader(`
# HELP hotelsite_sessions_active Sessions currently holding a notification surface.
# TYPE hotelsite_sessions_active gauge
hotelsite_sessions_active 1
`), "hotelsite_sessions_active"))

	_, ok := m.Lookup(idle.ID)
	assert.False(t, ok)
}

func TestAllowThrottlesPerSession(t *testing.T) {
	m, _, _ := newManager(t, WithLimiter(ratelimit.New(0.01, 2, time.Hour)))
	a := m.Ensure(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	b := m.Ensure(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.True(t, m.Allow(a))
	assert.True(t, m.Allow(a))
	assert.False(t, m.Allow(a))
	assert.True(t, m.Allow(b))
}

func TestSubmitKeepsValidatorAndFlash(t *testing.T) {
	m, _, _ := newManager(t)
	s := m.Ensure(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	form := forms.Newsletter()

	outcome := s.Submit(form, map[string]string{"email": "nope"})
	require.False(t, outcome.OK)
	assert.Equal(t, map[string]string{"email": "Invalid format"}, s.Errors(form))
	assert.Equal(t, "Please enter a valid email address.", s.Surface().Current().Text)

	flash, ok := s.TakeFlash(forms.NewsletterForm)
	require.True(t, ok)
	assert.Equal(t, "nope", flash.Values["email"])
	_, ok = s.TakeFlash(forms.NewsletterForm)
	assert.False(t, ok)

	msg, valid := s.ValidateField(form, "email", "guest@example.com")
	assert.True(t, valid)
	assert.Empty(t, msg)
	assert.Empty(t, s.Errors(form))
}

func TestPreferencesAndCSRF(t *testing.T) {
	m, _, _ := newManager(t, WithDefaultTheme(theming.Dark))
	s := m.Ensure(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, theming.Dark, s.Theme())
	assert.Equal(t, theming.Light, s.ToggleTheme())
	assert.Equal(t, render.LanguageEN, s.Language())
	assert.Equal(t, render.LanguageBN, s.ToggleLanguage())

	assert.True(t, s.VerifyCSRF(s.CSRFToken()))
	assert.False(t, s.VerifyCSRF(""))
	assert.False(t, s.VerifyCSRF("forged"))
}

func TestMiddlewareInjectsBroadcaster(t *testing.T) {
	m, _, _ := newManager(t)
	var got *Session
	h := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var ok bool
		got, ok = FromContext(r.Context())
		require.True(t, ok)
		b := notify.MustFromContext(r.Context())
		assert.Same(t, got.Broadcaster(), b)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.NotNil(t, got)

	_, ok := FromContext(context.Background())
	assert.False(t, ok)
}

func TestRunStopsWithContext(t *testing.T) {
	m, _, _ := newManager(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Run(ctx, time.Millisecond)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
