// Package logs locates and tails per-run log files.
//
// Every build writes judgeboot-<run id>.log into the configured log
// directory. The CLI uses Last to print the end of a run's log and Follow to
// stream new lines while a build is still writing, reading with bounded
// memory regardless of file size.
package logs
