// Package vocab loads the fixed reference word list tokens are filtered
// against, along with the stop words that are always rejected.
//
// Vocabulary files come in three shapes: a Python pickle of a list, tuple, or
// set of strings (the format the list was originally produced in), a JSON
// array of strings, or plain text with one word per line.
package vocab
