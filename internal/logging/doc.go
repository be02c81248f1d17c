// Package logging assembles structured slog loggers and formatting helpers used
// across subtrans.
//
// It owns the console and JSON handlers, centralizes level parsing, and
// exposes context-aware helpers so pipeline code can tag log lines with the
// active stage and run correlation ID. Log output goes to stderr so stdout
// stays reserved for the final result line. The package also provides a
// no-op logger for tests and wiring code that cannot fail.
package logging
