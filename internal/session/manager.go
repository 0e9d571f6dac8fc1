package session

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-hotelsite/internal/metrics"
	"github.com/goliatone/go-hotelsite/internal/ratelimit"
	"github.com/goliatone/go-hotelsite/pkg/notify"
	"github.com/goliatone/go-hotelsite/pkg/theming"
)

// Defaults applied by New.
const (
	DefaultCookie  = "hotelsite_session"
	DefaultIdleTTL = 30 * time.Minute
)

// Option customises a Manager.
type Option func(*Manager)

// WithCookie sets the cookie name and whether it is marked Secure.
func WithCookie(name string, secure bool) Option {
	return func(m *Manager) {
		if name != "" {
			m.cookie = name
		}
		m.secure = secure
	}
}

// WithIdleTTL sets how long an untouched session survives.
func WithIdleTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.idleTTL = ttl
		}
	}
}

// WithClock overrides the time source used for idle tracking.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

// WithLogger sets the logger session lifecycle events go to.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithMetrics reports session counts and notifications to m.
func WithMetrics(mt *metrics.Metrics) Option {
	return func(m *Manager) {
		m.metrics = mt
	}
}

// WithLimiter throttles form submissions per session.
func WithLimiter(l *ratelimit.Limiter) Option {
	return func(m *Manager) {
		m.limiter = l
	}
}

// WithNotifyOptions is applied to every surface the manager mounts.
func WithNotifyOptions(opts ...notify.Option) Option {
	return func(m *Manager) {
		m.notifyOpts = append(m.notifyOpts, opts...)
	}
}

// WithDefaultTheme sets the variant new sessions start with.
func WithDefaultTheme(variant string) Option {
	return func(m *Manager) {
		if variant != "" {
			m.defaultTheme = variant
		}
	}
}

// WithIDs overrides how session ids and CSRF tokens are generated.
func WithIDs(fn func() string) Option {
	return func(m *Manager) {
		if fn != nil {
			m.newID = fn
		}
	}
}

// Manager owns every live session.
type Manager struct {
	cookie       string
	secure       bool
	idleTTL      time.Duration
	defaultTheme string
	now          func() time.Time
	newID        func() string
	logger       *slog.Logger
	metrics      *metrics.Metrics
	limiter      *ratelimit.Limiter
	notifyOpts   []notify.Option

	mu       sync.Mutex
	sessions map[string]*Session
}

// New builds a Manager.
func New(opts ...Option) *Manager {
	m := &Manager{
		cookie:       DefaultCookie,
		idleTTL:      DefaultIdleTTL,
		defaultTheme: theming.Light,
		now:          time.Now,
		newID:        uuid.NewString,
		logger:       slog.Default(),
		sessions:     map[string]*Session{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	return m
}

// CookieName returns the session cookie name.
func (m *Manager) CookieName() string {
	return m.cookie
}

// Ensure returns the request's session, starting one and setting the cookie
// when the request carries none or an expired one.
func (m *Manager) Ensure(w http.ResponseWriter, r *http.Request) *Session {
	now := m.now()
	if c, err := r.Cookie(m.cookie); err == nil {
		if s, ok := m.Lookup(c.Value); ok {
			s.touch(now)
			return s
		}
	}

	s := m.start(now)
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookie,
		Value:    s.ID,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return s
}

// Lookup returns the live session with id.
func (m *Manager) Lookup(id string) (*Session, bool) {
	if id == "" {
		return nil, false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	return s, ok
}

// Len reports the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Allow reports whether s may submit a form now.
func (m *Manager) Allow(s *Session) bool {
	return m.limiter.Allow(s.ID, m.now())
}

func (m *Manager) start(now time.Time) *Session {
	opts := append([]notify.Option{
		notify.WithLogger(m.logger),
		notify.WithObserver(m.metrics.Notification),
	}, m.notifyOpts...)
	s := newSession(m.newID(), m.newID(), m.defaultTheme, notify.NewSurface(opts...), now)

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	m.metrics.SessionOpened()
	m.logger.Debug("session started", "session", s.ID)
	return s
}

// Sweep evicts sessions idle for longer than the TTL, unmounting their
// surfaces so pending timers are cancelled. It returns how many were
// evicted.
func (m *Manager) Sweep() int {
	now := m.now()
	var idle []*Session

	m.mu.Lock()
	for id, s := range m.sessions {
		if s.idleSince(now) > m.idleTTL {
			idle = append(idle, s)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, s := range idle {
		m.retire(s)
	}
	if len(idle) > 0 {
		m.logger.Debug("sessions evicted", "count", len(idle))
	}
	return len(idle)
}

// Run sweeps every interval until ctx is done.
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = m.idleTTL / 2
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Sweep()
		}
	}
}

// Close unmounts every session.
func (m *Manager) Close() {
	m.mu.Lock()
	all := m.sessions
	m.sessions = map[string]*Session{}
	m.mu.Unlock()

	for _, s := range all {
		m.retire(s)
	}
}

func (m *Manager) retire(s *Session) {
	s.surface.Unmount()
	m.limiter.Forget(s.ID)
	m.metrics.SessionClosed()
}

type contextKey struct{}

// WithSession stores s on ctx along with its broadcaster.
func WithSession(ctx context.Context, s *Session) context.Context {
	ctx = context.WithValue(ctx, contextKey{}, s)
	return notify.WithBroadcaster(ctx, s.Broadcaster())
}

// FromContext returns the session stored by WithSession.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(contextKey{}).(*Session)
	return s, ok && s != nil
}

// Middleware attaches the request's session to its context.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := m.Ensure(w, r)
		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), s)))
	})
}
