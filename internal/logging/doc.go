// Package logging assembles structured slog loggers and formatting helpers used
// by vidsort.
//
// It owns the console/JSON handlers, level and output plumbing, the per-run
// session identifier, and retention of old session logs. Interactive output
// never goes through these loggers: stdout belongs to the prompt, while the
// session log records what happened to every file.
package logging
