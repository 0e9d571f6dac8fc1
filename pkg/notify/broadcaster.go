package notify

import (
	"errors"
	"log/slog"
	"sync"
	"time"
)

// ErrOutsideSurface is the panic value raised when a Broadcaster is used
// without a mounted Surface.
var ErrOutsideSurface = errors.New("notify: broadcaster used outside of a mounted surface")

// Option configures a Surface before it mounts.
type Option func(*config)

type config struct {
	clock           Clock
	logger          *slog.Logger
	defaultDuration time.Duration
	observers       []func(Notification)
}

// WithClock overrides the timer source. Tests use a manual clock.
func WithClock(clock Clock) Option {
	return func(cfg *config) {
		if clock != nil {
			cfg.clock = clock
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *config) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

// WithDefaultDuration changes the duration applied when Notify is called
// without WithDuration. Negative values are ignored.
func WithDefaultDuration(d time.Duration) Option {
	return func(cfg *config) {
		if d >= 0 {
			cfg.defaultDuration = d
		}
	}
}

// WithObserver registers a permanent subscriber, for example a metrics hook.
func WithObserver(fn func(Notification)) Option {
	return func(cfg *config) {
		if fn != nil {
			cfg.observers = append(cfg.observers, fn)
		}
	}
}

// NotifyOption customises a single Notify call.
type NotifyOption func(*request)

type request struct {
	duration    time.Duration
	hasDuration bool
	onClose     func()
}

// WithDuration sets how long the notification stays visible. Zero disables
// auto-dismiss; negative values are treated as zero.
func WithDuration(d time.Duration) NotifyOption {
	return func(r *request) {
		if d < 0 {
			d = 0
		}
		r.duration = d
		r.hasDuration = true
	}
}

// WithOnClose registers fn to run when this notification closes, either by
// its timer or by Dismiss. It never runs for a notification that was
// superseded by a newer Notify call.
func WithOnClose(fn func()) NotifyOption {
	return func(r *request) {
		r.onClose = fn
	}
}

// Broadcaster is the single globally reachable slot for the latest message.
// Obtain one from Surface.Broadcaster; the zero value is not usable.
type Broadcaster struct {
	mu sync.Mutex

	clock           Clock
	logger          *slog.Logger
	defaultDuration time.Duration

	mounted bool
	current Notification
	seq     uint64
	timer   Timer
	onClose func()

	observers   []func(Notification)
	subscribers map[int]func(Notification)
	nextSub     int
}

func newBroadcaster(cfg config) *Broadcaster {
	return &Broadcaster{
		clock:           cfg.clock,
		logger:          cfg.logger,
		defaultDuration: cfg.defaultDuration,
		mounted:         true,
		current:         Notification{Kind: KindInfo},
		observers:       append([]func(Notification){}, cfg.observers...),
		subscribers:     make(map[int]func(Notification)),
	}
}

// Notify replaces the current notification with a new visible one. Any timer
// armed for the previous notification is cancelled before the new one is
// armed.
func (b *Broadcaster) Notify(kind Kind, text string, opts ...NotifyOption) {
	if b == nil {
		panic(ErrOutsideSurface)
	}

	req := request{}
	for _, opt := range opts {
		if opt != nil {
			opt(&req)
		}
	}

	b.mu.Lock()
	if !b.mounted {
		b.mu.Unlock()
		panic(ErrOutsideSurface)
	}

	duration := b.defaultDuration
	if req.hasDuration {
		duration = req.duration
	}

	b.stopTimerLocked()
	b.seq++
	b.current = Notification{
		Kind:     kind,
		Text:     text,
		Duration: duration,
		Visible:  true,
		Seq:      b.seq,
	}
	b.onClose = req.onClose
	if duration > 0 {
		seq := b.seq
		b.timer = b.clock.AfterFunc(duration, func() { b.expire(seq) })
	}
	snapshot, listeners := b.current, b.listenersLocked()
	b.mu.Unlock()

	b.logger.Debug("notification shown", "kind", kind, "seq", snapshot.Seq, "duration", duration)
	publish(listeners, snapshot)
}

// Dismiss hides the current notification. It is a no-op when nothing is
// visible.
func (b *Broadcaster) Dismiss() {
	if err := b.TryDismiss(); err != nil {
		panic(err)
	}
}

// TryDismiss is Dismiss for callers that may race with unmounting, such as
// HTTP handlers. It returns ErrOutsideSurface instead of panicking.
func (b *Broadcaster) TryDismiss() error {
	if b == nil {
		return ErrOutsideSurface
	}

	b.mu.Lock()
	if !b.mounted {
		b.mu.Unlock()
		return ErrOutsideSurface
	}
	b.stopTimerLocked()
	if !b.current.Visible {
		b.mu.Unlock()
		return nil
	}
	b.current.Visible = false
	onClose := b.onClose
	b.onClose = nil
	snapshot, listeners := b.current, b.listenersLocked()
	b.mu.Unlock()

	b.logger.Debug("notification dismissed", "seq", snapshot.Seq)
	publish(listeners, snapshot)
	if onClose != nil {
		onClose()
	}
	return nil
}

// Current returns a snapshot of the slot.
func (b *Broadcaster) Current() Notification {
	if b == nil {
		return Notification{}
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current
}

// Subscribe registers fn for every state change and returns a func that
// removes it. Subscribers run outside the broadcaster lock.
func (b *Broadcaster) Subscribe(fn func(Notification)) func() {
	if b == nil || fn == nil {
		return func() {}
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextSub
	b.nextSub++
	b.subscribers[id] = fn

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subscribers, id)
	}
}

// Mounted reports whether the owning surface is still mounted.
func (b *Broadcaster) Mounted() bool {
	if b == nil {
		return false
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.mounted
}

func (b *Broadcaster) expire(seq uint64) {
	b.mu.Lock()
	if !b.mounted || seq != b.seq || !b.current.Visible {
		b.mu.Unlock()
		return
	}
	b.timer = nil
	b.current.Visible = false
	onClose := b.onClose
	b.onClose = nil
	snapshot, listeners := b.current, b.listenersLocked()
	b.mu.Unlock()

	b.logger.Debug("notification expired", "seq", seq)
	publish(listeners, snapshot)
	if onClose != nil {
		onClose()
	}
}

// unmount tears the slot down. Subscribers see the hidden state once so
// anything waiting on a change wakes up.
func (b *Broadcaster) unmount() {
	b.mu.Lock()
	if !b.mounted {
		b.mu.Unlock()
		return
	}
	b.stopTimerLocked()
	b.mounted = false
	b.current.Visible = false
	b.onClose = nil
	snapshot, listeners := b.current, b.listenersLocked()
	b.subscribers = make(map[int]func(Notification))
	b.mu.Unlock()

	publish(listeners, snapshot)
}

func (b *Broadcaster) stopTimerLocked() {
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}

func (b *Broadcaster) listenersLocked() []func(Notification) {
	out := make([]func(Notification), 0, len(b.observers)+len(b.subscribers))
	out = append(out, b.observers...)
	for _, fn := range b.subscribers {
		out = append(out, fn)
	}
	return out
}

func publish(listeners []func(Notification), n Notification) {
	for _, fn := range listeners {
		fn(n)
	}
}
