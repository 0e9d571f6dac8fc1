package notify

import (
	"fmt"
	"strings"
	"time"
)

// Kind selects the presentation of a notification. It carries no behaviour.
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
	KindWarning Kind = "warning"
)

// DefaultDuration is applied when Notify is called without WithDuration.
const DefaultDuration = 5000 * time.Millisecond

// Kinds lists every supported kind in display order.
func Kinds() []Kind {
	return []Kind{KindSuccess, KindError, KindInfo, KindWarning}
}

// Valid reports whether k is one of the supported kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindSuccess, KindError, KindInfo, KindWarning:
		return true
	default:
		return false
	}
}

// ParseKind normalises raw into a Kind.
func ParseKind(raw string) (Kind, error) {
	kind := Kind(strings.ToLower(strings.TrimSpace(raw)))
	if !kind.Valid() {
		return "", fmt.Errorf("notify: unknown kind %q", raw)
	}
	return kind, nil
}

// Notification is the state of the broadcaster's single slot.
type Notification struct {
	Kind     Kind
	Text     string
	Duration time.Duration
	Visible  bool
	// Seq increases with every Notify call so observers can tell two
	// notifications with the same text apart.
	Seq uint64
}

// DurationMillis returns Duration in whole milliseconds.
func (n Notification) DurationMillis() int64 {
	return n.Duration.Milliseconds()
}

// AutoDismiss reports whether the notification hides itself.
func (n Notification) AutoDismiss() bool {
	return n.Duration > 0
}
