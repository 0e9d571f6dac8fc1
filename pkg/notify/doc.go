// Package notify implements the single-slot transient notification channel
// used by the site's forms and layout.
//
// A Surface owns exactly one Broadcaster for the lifetime of its mount. Any
// caller holding the Broadcaster can request a message with Notify; the most
// recent request always wins and replaces whatever was visible. Notifications
// auto-dismiss after their duration (DefaultDuration unless overridden), and a
// duration of zero keeps the message visible until Dismiss is called.
//
// Using a Broadcaster after its Surface has been unmounted, or a nil
// Broadcaster, is a wiring bug and panics with ErrOutsideSurface.
//
//	surface := notify.NewSurface()
//	defer surface.Unmount()
//
//	b := surface.Broadcaster()
//	b.Notify(notify.KindSuccess, "Thank you for your message!")
package notify
