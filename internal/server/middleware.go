package server

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/goliatone/go-hotelsite/internal/session"
	"github.com/goliatone/go-hotelsite/pkg/render"
)

// CSRFHeader carries the session token on script requests.
const CSRFHeader = "X-CSRF-Token"

type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (r *statusRecorder) WriteHeader(code int) {
	if r.status == 0 {
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(p []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(p)
	r.bytes += n
	return n, err
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

func (r *statusRecorder) Status() int {
	if r.status == 0 {
		return http.StatusOK
	}
	return r.status
}

// recoverer turns handler panics into 500 responses.
func (s *Server) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			s.logger.Error("panic serving request",
				"method", r.Method,
				"path", r.URL.Path,
				"panic", fmt.Sprint(rec),
				"stack", string(debug.Stack()),
			)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}()
		next.ServeHTTP(w, r)
	})
}

// observe logs every request and counts it by route pattern.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		_, route := s.mux.Handler(r)
		rec := &statusRecorder{ResponseWriter: w}

		next.ServeHTTP(rec, r)

		s.metrics.Request(route, rec.Status())
		attrs := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.Status(),
			"bytes", rec.bytes,
			"duration", time.Since(start),
		}
		if sess, ok := session.FromContext(r.Context()); ok {
			attrs = append(attrs, "session", sess.ID)
		}
		s.logger.Info("request", attrs...)
	})
}

// csrf rejects state-changing requests that do not echo the session token
// in the _csrf form field or the X-CSRF-Token header.
func (s *Server) csrf(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			next.ServeHTTP(w, r)
			return
		}

		sess := mustSession(r)
		token := r.Header.Get(CSRFHeader)
		if token == "" {
			token = r.PostFormValue(render.CSRFField)
		}
		if !sess.VerifyCSRF(token) {
			s.logger.Warn("csrf token rejected", "path", r.URL.Path, "session", sess.ID)
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
