// Package logging assembles structured slog loggers used across crunchlist.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context helpers so commands can tag every log line
// with the operation being performed. A no-op logger is provided for tests and
// wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits records with the same shape.
package logging
