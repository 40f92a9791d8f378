package vocab

// Filter decides which tokens survive tokenization: a token is kept when it
// is in the vocabulary and is not a stop word.
type Filter struct {
	vocab *Set
	stop  map[string]struct{}
}

// NewFilter combines a vocabulary with a stop-word list.
func NewFilter(vocabulary *Set, stopWords []string) *Filter {
	stop := make(map[string]struct{}, len(stopWords))
	for _, word := range stopWords {
		stop[word] = struct{}{}
	}
	return &Filter{vocab: vocabulary, stop: stop}
}

// Keep reports whether token passes the filter.
func (f *Filter) Keep(token string) bool {
	if f == nil {
		return false
	}
	if _, stop := f.stop[token]; stop {
		return false
	}
	return f.vocab.Contains(token)
}

// Apply returns the tokens that pass, preserving order. The result is nil
// when nothing survives.
func (f *Filter) Apply(tokens []string) []string {
	var kept []string
	for _, token := range tokens {
		if f.Keep(token) {
			kept = append(kept, token)
		}
	}
	return kept
}

// Vocabulary exposes the underlying word set.
func (f *Filter) Vocabulary() *Set {
	if f == nil {
		return nil
	}
	return f.vocab
}
