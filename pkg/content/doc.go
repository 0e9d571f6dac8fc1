// Package content loads the hotel's page content (rooms, dining, facilities,
// gallery, policies) from YAML, validates cross references and exposes the
// listing filters the pages use.
package content
