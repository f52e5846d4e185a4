// Package projectstore persists saved project definitions in SQLite.
package projectstore
