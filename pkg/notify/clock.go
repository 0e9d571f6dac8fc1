package notify

import "time"

// Timer is a cancellable one-shot timer.
type Timer interface {
	Stop() bool
}

// Clock schedules deferred callbacks. The broadcaster only ever holds one
// armed Timer at a time.
type Clock interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

type systemClock struct{}

func (systemClock) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// SystemClock returns the Clock backed by time.AfterFunc.
func SystemClock() Clock {
	return systemClock{}
}
