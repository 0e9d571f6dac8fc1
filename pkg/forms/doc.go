// Package forms declares the site's contact, reservation and newsletter
// forms. Rules are loaded from the embedded rules/*.yaml documents and
// extended in code with checks that need site content (known room types) or
// more than one field (stay dates).
//
// A submission is validated with the session's validation.Validator and the
// result is reported through the session's notify.Broadcaster:
//
//	form := forms.Contact()
//	v := form.NewValidator()
//	outcome := form.Submit(surface.Broadcaster(), v, values)
//	if !outcome.OK {
//		// re-render with outcome.Values and outcome.Errors
//	}
package forms
