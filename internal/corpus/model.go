package corpus

import (
	"errors"
	"fmt"
)

var (
	// ErrNoCleanSentences marks a judge whose files produced no cleaned text.
	ErrNoCleanSentences = errors.New("no usable content after cleaning")
	// ErrNoTokens marks a judge whose cleaned text kept no vocabulary tokens.
	ErrNoTokens = errors.New("no usable tokens after tokenization")
)

// Judge is one folder of opinion text files.
type Judge struct {
	Name string
	Path string
}

// Sentence is an ordered run of vocabulary-filtered tokens.
type Sentence []string

// Document is the ordered sentences of one opinion file.
type Document []Sentence

// CleanDocument holds the cleaned sentences of one file before tokenization.
type CleanDocument struct {
	File      string
	Sentences []string
}

// FileError records a file that could not be read.
type FileError struct {
	File string
	Err  error
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.File, e.Err)
}

func (e FileError) Unwrap() error {
	return e.Err
}

// CleanResult is the outcome of cleaning one judge folder.
type CleanResult struct {
	Documents  []CleanDocument
	FileErrors []FileError
	FilesTotal int
}

// SentenceCount totals cleaned sentences across documents.
func (r CleanResult) SentenceCount() int {
	total := 0
	for _, doc := range r.Documents {
		total += len(doc.Sentences)
	}
	return total
}

// Stats counts the sentences and tokens in docs.
func Stats(docs []Document) (sentences int, tokens int) {
	for _, doc := range docs {
		sentences += len(doc)
		for _, sentence := range doc {
			tokens += len(sentence)
		}
	}
	return sentences, tokens
}
