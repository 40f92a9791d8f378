// Package preflight provides readiness checks for the filesystem paths a
// bootstrap run depends on.
//
// The build command calls RunAll after creating the output and state
// directories; any failed check aborts the run before a judge is touched.
// The "config validate" command prints the same results as a table.
package preflight
