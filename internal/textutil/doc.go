// Package textutil provides the text normalization used to turn raw opinion
// text into vocabulary-ready tokens.
//
// The primary use cases are:
//   - Splitting raw text into sentences on a fixed delimiter
//   - Cleaning sentences into lowercase, letter-only, single-spaced form
//   - Tokenizing cleaned sentences into words, splitting English contractions
//
// Clean is idempotent: feeding its output back in returns it unchanged.
package textutil
