package notify

import "context"

type contextKey struct{}

// WithBroadcaster returns a copy of ctx carrying b.
func WithBroadcaster(ctx context.Context, b *Broadcaster) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, contextKey{}, b)
}

// FromContext returns the broadcaster stored in ctx, if any.
func FromContext(ctx context.Context) (*Broadcaster, bool) {
	if ctx == nil {
		return nil, false
	}
	b, ok := ctx.Value(contextKey{}).(*Broadcaster)
	if !ok || b == nil {
		return nil, false
	}
	return b, true
}

// MustFromContext returns the broadcaster stored in ctx and panics with
// ErrOutsideSurface when none was injected.
func MustFromContext(ctx context.Context) *Broadcaster {
	b, ok := FromContext(ctx)
	if !ok {
		panic(ErrOutsideSurface)
	}
	return b
}
