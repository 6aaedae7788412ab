// Package logging assembles structured slog loggers and formatting helpers used
// across mkvtrack.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context helpers so an invocation id set by the CLI is
// attached to every log line. The package also provides a no-op logger for
// tests and library code that is handed no logger.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits records with the same keys.
package logging
