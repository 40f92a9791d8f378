// Package pipeline turns judge folders into bootstrap corpora.
//
// A Runner processes judges strictly one at a time. For each judge it cleans
// every file into sentences, tokenizes them against the vocabulary filter,
// drops empty sentences and documents, then writes the configured number of
// bootstrap resamples. Judges that yield nothing usable, or that had an
// unreadable file, are collected in a ProblemLog reported at the end of the
// run. Every outcome is recorded in the run ledger so later runs can resume.
//
// Run holds an exclusive file lock for its duration; a second concurrent run
// against the same state directory fails fast with ErrRunLocked.
package pipeline
