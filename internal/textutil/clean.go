package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var lowerCaser = cases.Lower(language.English)

// SplitSentences breaks raw text into sentence candidates on delimiter.
// Pieces are returned untouched; callers clean and discard empties.
func SplitSentences(text, delimiter string) []string {
	if delimiter == "" {
		return []string{text}
	}
	return strings.Split(text, delimiter)
}

// Clean normalizes one sentence. Text is NFKC-normalized and lowercased, then
// every rune that is not a letter becomes a separator. Apostrophes survive only
// between two letters so contractions stay intact. Separators collapse to a
// single space with none at either end.
func Clean(sentence string) string {
	if sentence == "" {
		return ""
	}
	runes := []rune(lowerCaser.String(norm.NFKC.String(sentence)))

	var b strings.Builder
	b.Grow(len(runes))
	pendingSpace := false
	for i, r := range runes {
		keep := unicode.IsLetter(r)
		if !keep && isApostrophe(r) {
			keep = i > 0 && i+1 < len(runes) && unicode.IsLetter(runes[i-1]) && unicode.IsLetter(runes[i+1])
			r = '\''
		}
		if !keep {
			pendingSpace = b.Len() > 0
			continue
		}
		if pendingSpace {
			b.WriteByte(' ')
			pendingSpace = false
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isApostrophe(r rune) bool {
	switch r {
	case '\'', '’', '‘', 'ʼ':
		return true
	}
	return false
}
