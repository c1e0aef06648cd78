// Package logging assembles structured slog loggers and formatting helpers
// used across shodan.
//
// It owns the configurable console/JSON handlers, centralizes level and
// output plumbing, and exposes attribute helpers so components emit warnings
// with the same event_type / error_hint / impact shape. The package also
// provides a no-op logger for tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so CLI output and
// log files stay consistent.
package logging
