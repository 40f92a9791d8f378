// Package main hosts the judgeboot CLI entrypoint and command graph.
//
// The Cobra-based command tree builds bootstrap corpora from judge folders,
// reports past runs from the ledger, inspects the vocabulary list, and
// scaffolds configuration. It centralizes configuration resolution and
// logging setup so subcommands can focus on output instead of wiring.
//
// Keep this package lean: the pipeline itself lives in internal/pipeline and
// its collaborators; commands here only assemble them and render results.
package main
