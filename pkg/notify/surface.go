package notify

import "log/slog"

// Surface is the display side of the broadcaster. It is mounted on
// construction and owns the broadcaster until Unmount.
type Surface struct {
	broadcaster *Broadcaster
}

// NewSurface mounts a new surface with its own broadcaster.
func NewSurface(opts ...Option) *Surface {
	cfg := config{
		clock:           SystemClock(),
		logger:          slog.Default(),
		defaultDuration: DefaultDuration,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &Surface{broadcaster: newBroadcaster(cfg)}
}

// Broadcaster returns the broadcaster owned by the surface.
func (s *Surface) Broadcaster() *Broadcaster {
	if s == nil {
		return nil
	}
	return s.broadcaster
}

// Current returns what the surface should render right now.
func (s *Surface) Current() Notification {
	if s == nil {
		return Notification{}
	}
	return s.broadcaster.Current()
}

// Visible returns the current notification and whether it is visible.
func (s *Surface) Visible() (Notification, bool) {
	current := s.Current()
	return current, current.Visible
}

// Close is the surface's manual close affordance.
func (s *Surface) Close() {
	if s == nil {
		panic(ErrOutsideSurface)
	}
	s.broadcaster.Dismiss()
}

// Unmount cancels any pending timer and detaches the broadcaster. Further
// use of the broadcaster panics with ErrOutsideSurface. Unmount is
// idempotent.
func (s *Surface) Unmount() {
	if s == nil || s.broadcaster == nil {
		return
	}
	s.broadcaster.unmount()
}

// Mounted reports whether Unmount has not been called yet.
func (s *Surface) Mounted() bool {
	if s == nil {
		return false
	}
	return s.broadcaster.Mounted()
}
