// Package logging builds slog loggers with console and JSON output.
package logging
