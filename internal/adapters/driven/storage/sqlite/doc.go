// Package sqlite provides SQLite-backed persistence for the relational
// document record and the pipeline run tracker.
//
// Uses modernc.org/sqlite (pure Go, no CGO required).
package sqlite
