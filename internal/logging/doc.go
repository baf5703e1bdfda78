// Package logging assembles the structured slog loggers used across the
// organizer pipeline.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and provides per-run log files with retention pruning. Run
// output intended for the operator goes to stdout through the CLI; these
// loggers carry the structured trail (run IDs, phase transitions, per-file
// outcomes) to the log directory and, in verbose mode, to stderr.
//
// Prefer these constructors over hand-rolled slog setup so every component
// emits data with the same shape.
package logging
