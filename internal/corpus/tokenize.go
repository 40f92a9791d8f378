package corpus

import (
	"judgeboot/internal/textutil"
)

// TokenFilter decides whether a token is kept.
type TokenFilter interface {
	Apply(tokens []string) []string
}

// TokenizeDocuments tokenizes every cleaned sentence and keeps only tokens the
// filter accepts. Sentences with no surviving tokens are dropped, as are
// documents left with no sentences. onDocument, when non-nil, is called once
// per input document.
func TokenizeDocuments(docs []CleanDocument, filter TokenFilter, onDocument func()) []Document {
	out := make([]Document, 0, len(docs))
	for _, doc := range docs {
		var kept Document
		for _, sentence := range doc.Sentences {
			tokens := filter.Apply(textutil.Tokenize(sentence))
			if len(tokens) > 0 {
				kept = append(kept, Sentence(tokens))
			}
		}
		if onDocument != nil {
			onDocument()
		}
		if len(kept) > 0 {
			out = append(out, kept)
		}
	}
	return out
}

// DropEmpty removes empty sentences, then documents left empty. Already
// clean input comes back with the same contents.
func DropEmpty(docs []Document) []Document {
	out := make([]Document, 0, len(docs))
	for _, doc := range docs {
		kept := make(Document, 0, len(doc))
		for _, sentence := range doc {
			if len(sentence) > 0 {
				kept = append(kept, sentence)
			}
		}
		if len(kept) > 0 {
			out = append(out, kept)
		}
	}
	return out
}
