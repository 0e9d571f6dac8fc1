// Package orchestrator wires the content → page builder → transformer →
// renderer pipeline behind a single Generate call so HTTP handlers only
// decide which page to show.
package orchestrator
