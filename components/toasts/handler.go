package toasts

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/goliatone/go-hotelsite/pkg/notify"
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

var errSurfaceGone = StatusError{Code: http.StatusGone, Err: notify.ErrOutsideSurface}

type snapshotResponse struct {
	Data Snapshot `json:"data"`
}

// Handler builds the snapshot handler with default options plus overrides.
func Handler(fns ...OptionFn) http.Handler {
	return NewHandler(fns...)
}

func NewHandler(fns ...OptionFn) http.Handler {
	opts := NewOptions(fns...)
	return HandlerWithOptions(opts)
}

// HandlerWithOptions serves GET/HEAD snapshots, optionally long-polling for
// a change past the "after" sequence number.
func HandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r == nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		b, ok := authorize(w, r, opts)
		if !ok {
			return
		}
		if !b.Mounted() {
			writeError(w, errSurfaceGone, http.StatusGone)
			return
		}

		current := b.Current()
		after, hasAfter := parseUint(r.URL.Query().Get(opts.AfterParam))
		wait := clampWait(parseInt(r.URL.Query().Get(opts.WaitParam)), opts)
		if hasAfter && wait > 0 && !changedSince(current, after) {
			current = waitForChange(r.Context(), b, after, wait)
		}

		writeSnapshot(w, r, current)
	})
}

// DismissHandlerWithOptions serves POST requests that close the current
// notification.
func DismissHandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r == nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		b, ok := authorize(w, r, opts)
		if !ok {
			return
		}
		// A sweep may unmount the surface at any point, so the check and
		// the dismissal happen under the broadcaster lock.
		if err := b.TryDismiss(); err != nil {
			writeError(w, errSurfaceGone, http.StatusGone)
			return
		}
		writeSnapshot(w, r, b.Current())
	})
}

func authorize(w http.ResponseWriter, r *http.Request, opts Options) (*notify.Broadcaster, bool) {
	if opts.Guard != nil {
		if err := opts.Guard(r); err != nil {
			writeError(w, err, http.StatusForbidden)
			return nil, false
		}
	}
	b, err := opts.Resolve(r)
	if err != nil {
		writeError(w, err, http.StatusInternalServerError)
		return nil, false
	}
	if b == nil {
		writeError(w, errSurfaceGone, http.StatusGone)
		return nil, false
	}
	return b, true
}

// changedSince reports whether a newer notification replaced the one the
// client saw. Hiding keeps the seq, so waitForChange also wakes on any
// published state change.
func changedSince(n notify.Notification, seq uint64) bool {
	return n.Seq != seq
}

func waitForChange(ctx context.Context, b *notify.Broadcaster, after uint64, wait time.Duration) notify.Notification {
	changed := make(chan notify.Notification, 1)
	unsubscribe := b.Subscribe(func(n notify.Notification) {
		select {
		case changed <- n:
		default:
		}
	})
	defer unsubscribe()

	// The slot may have moved, or been unmounted, between the first read
	// and Subscribe.
	if current := b.Current(); changedSince(current, after) || !b.Mounted() {
		return current
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case n := <-changed:
		return n
	case <-timer.C:
	case <-ctx.Done():
	}
	return b.Current()
}

func writeSnapshot(w http.ResponseWriter, r *http.Request, n notify.Notification) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodHead {
		return
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(snapshotResponse{Data: NewSnapshot(n)})
}

func writeError(w http.ResponseWriter, err error, fallback int) {
	if w == nil {
		return
	}
	code := fallback
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
		if code <= 0 {
			code = fallback
		}
	}
	http.Error(w, http.StatusText(code), code)
}

func parseInt(raw string) int {
	if raw == "" {
		return 0
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return value
}

func parseUint(raw string) (uint64, bool) {
	if raw == "" {
		return 0, false
	}
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}
