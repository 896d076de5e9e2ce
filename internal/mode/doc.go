// Package mode decides whether a run executes on the host or inside the
// isolated build container.
//
// Everything downstream of the CLI dispatches on an explicit [Mode] value.
// Filesystem probing is confined to [Detect], the single adapter at the
// process boundary.
package mode
