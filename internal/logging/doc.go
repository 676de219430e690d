// Package logging assembles structured slog loggers and formatting helpers used
// across foxcap.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so batch runs tag every line with
// their correlation ID. The package also provides a no-op logger for tests and
// wiring code that cannot fail.
package logging
