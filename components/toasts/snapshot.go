package toasts

import "github.com/goliatone/go-hotelsite/pkg/notify"

// Snapshot is the wire form of a notification.
type Snapshot struct {
	Kind       string `json:"kind"`
	Text       string `json:"text"`
	Visible    bool   `json:"visible"`
	DurationMS int64  `json:"durationMs"`
	Seq        uint64 `json:"seq"`
}

// NewSnapshot converts n for the wire.
func NewSnapshot(n notify.Notification) Snapshot {
	return Snapshot{
		Kind:       string(n.Kind),
		Text:       n.Text,
		Visible:    n.Visible,
		DurationMS: n.DurationMillis(),
		Seq:        n.Seq,
	}
}
