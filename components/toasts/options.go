package toasts

import (
	"net/http"
	"time"

	"github.com/goliatone/go-hotelsite/pkg/notify"
)

type GuardFunc func(r *http.Request) error

// ResolveFunc returns the broadcaster that belongs to the request.
type ResolveFunc func(r *http.Request) (*notify.Broadcaster, error)

type Options struct {
	RoutePath   string
	DismissPath string
	AfterParam  string
	WaitParam   string
	MaxWait     time.Duration
	Guard       GuardFunc
	Resolve     ResolveFunc
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath:   "/api/toast",
		DismissPath: "/api/toast/dismiss",
		AfterParam:  "after",
		WaitParam:   "wait",
		MaxWait:     25 * time.Second,
		Resolve:     FromContext,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.RoutePath == "" {
		opts.RoutePath = "/api/toast"
	}
	if opts.DismissPath == "" {
		opts.DismissPath = "/api/toast/dismiss"
	}
	if opts.AfterParam == "" {
		opts.AfterParam = "after"
	}
	if opts.WaitParam == "" {
		opts.WaitParam = "wait"
	}
	if opts.MaxWait < 0 {
		opts.MaxWait = 0
	}
	if opts.Resolve == nil {
		opts.Resolve = FromContext
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

func WithDismissPath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.DismissPath = path
	}
}

func WithMaxWait(d time.Duration) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxWait = d
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

func WithResolver(fn ResolveFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Resolve = fn
	}
}

// FromContext is the default ResolveFunc. A request without an injected
// broadcaster is a wiring error and maps to 500.
func FromContext(r *http.Request) (*notify.Broadcaster, error) {
	b, ok := notify.FromContext(r.Context())
	if !ok {
		return nil, StatusError{Code: http.StatusInternalServerError, Err: notify.ErrOutsideSurface}
	}
	return b, nil
}

func clampWait(seconds int, opts Options) time.Duration {
	if seconds <= 0 {
		return 0
	}
	wait := time.Duration(seconds) * time.Second
	if wait > opts.MaxWait {
		return opts.MaxWait
	}
	return wait
}
