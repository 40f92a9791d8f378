// Package ledger records pipeline runs and per-judge outcomes in SQLite.
//
// Every run gets a UUID row holding its seed, roots, and final counts; every
// judge processed in that run gets a result row with its status, the reasons
// it was flagged as problematic, and the sentence/token/sample totals the
// pipeline logged. The CLI reads the ledger to report past runs, and resumed
// runs consult it to skip judges already completed into the same output root.
//
// The database is treated as a local run history rather than a long-term
// archive. Schema changes bump the version in schema.go; users delete the
// database to adopt the new schema.
package ledger
