// Package toasts exposes a session's notification slot over HTTP so the
// browser-side toast surface can poll it and close it.
//
// GET {base}/api/toast returns a JSON snapshot of the current notification.
// With ?after=<seq>&wait=<seconds> the request blocks until the slot changes
// past seq or the wait elapses. POST {base}/api/toast/dismiss hides the
// current notification and returns the new snapshot.
//
// The broadcaster is resolved per request; by default it is read from the
// request context with notify.FromContext.
package toasts
