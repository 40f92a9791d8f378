package textutil

import (
	"strings"
	"unicode"
)

// contractionSuffixes are split off the word they end, longest first.
var contractionSuffixes = []string{"n't", "'re", "'ve", "'ll", "'s", "'d", "'m"}

// Tokenize splits a sentence into word tokens in the Penn Treebank manner:
// whitespace separates words, punctuation becomes its own token, and English
// contraction suffixes ("n't", "'s", "'ll", ...) are split from their stem.
func Tokenize(sentence string) []string {
	if strings.TrimSpace(sentence) == "" {
		return nil
	}
	tokens := make([]string, 0, len(sentence)/5+1)
	for _, field := range strings.Fields(sentence) {
		tokens = appendFieldTokens(tokens, field)
	}
	return tokens
}

func appendFieldTokens(dst []string, field string) []string {
	runes := []rune(field)
	start := -1
	flush := func(end int) {
		if start >= 0 {
			dst = appendWord(dst, string(runes[start:end]))
			start = -1
		}
	}
	for i, r := range runes {
		if isWordRune(runes, i) {
			if start < 0 {
				start = i
			}
			continue
		}
		flush(i)
		dst = append(dst, string(r))
	}
	flush(len(runes))
	return dst
}

// isWordRune reports whether runes[i] belongs to a word. Letters and digits
// always do; apostrophes and hyphens only when attached to a word character on
// the left, so "judge's" and "well-known" stay whole.
func isWordRune(runes []rune, i int) bool {
	r := runes[i]
	if unicode.IsLetter(r) || unicode.IsDigit(r) {
		return true
	}
	if r != '\'' && r != '-' {
		return false
	}
	if i == 0 || !(unicode.IsLetter(runes[i-1]) || unicode.IsDigit(runes[i-1])) {
		return false
	}
	if r == '-' {
		return i+1 < len(runes) && (unicode.IsLetter(runes[i+1]) || unicode.IsDigit(runes[i+1]))
	}
	return true
}

func appendWord(dst []string, word string) []string {
	lower := strings.ToLower(word)
	for _, suffix := range contractionSuffixes {
		if len(lower) > len(suffix) && strings.HasSuffix(lower, suffix) {
			cut := len(word) - len(suffix)
			return append(dst, word[:cut], word[cut:])
		}
	}
	if strings.HasSuffix(word, "'") && len(word) > 1 {
		return append(dst, word[:len(word)-1], "'")
	}
	return append(dst, word)
}
