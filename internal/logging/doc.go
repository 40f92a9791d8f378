// Package logging assembles structured slog loggers and formatting helpers used
// across judgeboot.
//
// It owns the configurable console/JSON handlers, centralizes level and output
// plumbing, and exposes field helpers so pipeline code tags log lines with the
// run, judge, file, and sample being processed. The package also provides a
// no-op logger for tests and wiring code that cannot fail.
package logging
