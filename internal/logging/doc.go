// Package logging assembles structured slog loggers used across auxpatch.
//
// It owns the console and JSON handlers, maps configured level names onto
// slog levels, and exposes context helpers so every line written during a
// patch run carries the run id. A no-op logger is provided for tests and for
// wiring code that must not fail.
//
// Diagnostics go to stderr by default; the report lines a command prints for
// the user are not log output and are written to the command's stdout.
package logging
