// Package server serves the hotel site: the content pages, the form
// endpoints, the toast component and the operational routes.
package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/goliatone/go-hotelsite/components/toasts"
	"github.com/goliatone/go-hotelsite/internal/metrics"
	"github.com/goliatone/go-hotelsite/internal/session"
	"github.com/goliatone/go-hotelsite/pkg/content"
	"github.com/goliatone/go-hotelsite/pkg/forms"
	"github.com/goliatone/go-hotelsite/pkg/orchestrator"
	"github.com/goliatone/go-hotelsite/pkg/renderers/vanilla"
	"github.com/goliatone/go-hotelsite/pkg/theming"
)

const (
	defaultAddr  = ":8080"
	defaultGrace = 10 * time.Second
)

// Option customises a Server.
type Option func(*Server)

// WithAddr sets the listen address used by Run.
func WithAddr(addr string) Option {
	return func(s *Server) {
		if addr != "" {
			s.addr = addr
		}
	}
}

// WithGrace bounds how long shutdown waits for in-flight requests.
func WithGrace(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.grace = d
		}
	}
}

// WithPages sets the page pipeline.
func WithPages(o *orchestrator.Orchestrator) Option {
	return func(s *Server) {
		s.pages = o
	}
}

// WithForms sets the forms the POST routes submit to. It must be the same
// set the page pipeline renders.
func WithForms(set forms.Set) Option {
	return func(s *Server) {
		s.forms = set
	}
}

// WithSessions sets the session manager.
func WithSessions(m *session.Manager) Option {
	return func(s *Server) {
		s.sessions = m
	}
}

// WithMetrics enables request and form counters and the /metrics route.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithLogger sets the request and lifecycle logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithAssets overrides the static files served under theming.AssetsPrefix.
func WithAssets(assets fs.FS) Option {
	return func(s *Server) {
		if assets != nil {
			s.assets = assets
		}
	}
}

// WithSweepInterval sets how often idle sessions are evicted while Run is
// active.
func WithSweepInterval(d time.Duration) Option {
	return func(s *Server) {
		s.sweepEvery = d
	}
}

// Server is the site's HTTP front end.
type Server struct {
	addr       string
	grace      time.Duration
	sweepEvery time.Duration
	pages      *orchestrator.Orchestrator
	forms      forms.Set
	sessions   *session.Manager
	metrics    *metrics.Metrics
	logger     *slog.Logger
	assets     fs.FS

	mux     *http.ServeMux
	handler http.Handler
}

// New wires the routes and middleware.
func New(opts ...Option) (*Server, error) {
	s := &Server{
		addr:   defaultAddr,
		grace:  defaultGrace,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.forms == nil || s.pages == nil {
		site, err := content.Default()
		if err != nil {
			return nil, fmt.Errorf("server: default content: %w", err)
		}
		src := forms.Static(site)
		if s.forms == nil {
			s.forms = forms.SiteForms(src, forms.WithLogger(s.logger))
		}
		if s.pages == nil {
			s.pages = orchestrator.New(orchestrator.WithContent(src), orchestrator.WithForms(s.forms))
		}
	}
	if s.sessions == nil {
		s.sessions = session.New(session.WithLogger(s.logger), session.WithMetrics(s.metrics))
	}
	if s.assets == nil {
		s.assets = vanilla.AssetsFS()
	}

	s.mux = http.NewServeMux()
	if err := s.routes(); err != nil {
		return nil, err
	}

	var h http.Handler = s.mux
	h = s.csrf(h)
	h = s.observe(h)
	h = s.sessions.Middleware(h)
	h = s.recoverer(h)
	s.handler = h
	return s, nil
}

// Handler returns the fully wrapped handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run listens on the configured address until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("server: listen %s: %w", s.addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done, then shuts down within
// the grace period and unmounts every session.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	// Request contexts end when shutdown starts so toast long-polls return
	// instead of holding Shutdown until the grace period runs out.
	baseCtx, stopRequests := context.WithCancel(context.WithoutCancel(ctx))
	defer stopRequests()
	httpServer := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return baseCtx },
	}
	httpServer.RegisterOnShutdown(stopRequests)

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go s.sessions.Run(sweepCtx, s.sweepEvery)

	errChan := make(chan error, 1)
	go func() {
		if err := httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()
	s.logger.Info("listening", "addr", ln.Addr().String())

	select {
	case err, ok := <-errChan:
		s.sessions.Close()
		if ok {
			return fmt.Errorf("server: serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.grace)
	defer cancel()
	err := httpServer.Shutdown(shutdownCtx)
	s.sessions.Close()
	if err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

func (s *Server) routes() error {
	s.mux.HandleFunc("GET /{$}", s.page(orchestrator.PageHome))
	s.mux.HandleFunc("GET /accommodations", s.page(orchestrator.PageAccommodations))
	s.mux.HandleFunc("GET /dining", s.page(orchestrator.PageDining))
	s.mux.HandleFunc("GET /facilities", s.page(orchestrator.PageFacilities))
	s.mux.HandleFunc("GET /gallery", s.page(orchestrator.PageGallery))
	s.mux.HandleFunc("GET /contact", s.page(orchestrator.PageContact))
	s.mux.HandleFunc("GET /reservations", s.page(orchestrator.PageReservations))

	s.mux.HandleFunc("POST /contact", s.submit(forms.ContactForm))
	s.mux.HandleFunc("POST /reservations", s.submit(forms.ReservationForm))
	s.mux.HandleFunc("POST /newsletter", s.submit(forms.NewsletterForm))
	s.mux.HandleFunc("POST /api/forms/{form}/validate", s.validateField)

	s.mux.HandleFunc("POST /preferences/theme", s.toggleTheme)
	s.mux.HandleFunc("POST /preferences/language", s.toggleLanguage)

	if _, err := toasts.RegisterRoutes(s.mux, "/"); err != nil {
		return fmt.Errorf("server: toast routes: %w", err)
	}

	s.mux.Handle("GET "+theming.AssetsPrefix+"/", http.StripPrefix(theming.AssetsPrefix+"/", http.FileServerFS(s.assets)))
	s.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if s.metrics != nil {
		s.mux.Handle("GET /metrics", s.metrics.Handler())
	}
	s.mux.HandleFunc("/", s.notFound)
	return nil
}
