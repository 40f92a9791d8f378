package vocab

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/nlpodyssey/gopickle/pickle"
	"github.com/nlpodyssey/gopickle/types"
)

// Format identifies how a vocabulary file is encoded.
type Format string

const (
	FormatPickle Format = "pickle"
	FormatJSON   Format = "json"
	FormatText   Format = "text"
)

// ErrEmpty is returned when a vocabulary file holds no words.
var ErrEmpty = errors.New("vocabulary is empty")

// pickleProtoOpcode starts every pickle written with protocol 2 or later.
const pickleProtoOpcode = 0x80

// Options tunes how entries are read.
type Options struct {
	Lowercase bool
}

// Set is an immutable collection of vocabulary words.
type Set struct {
	words  map[string]struct{}
	order  []string
	format Format
}

// Contains reports whether word is in the vocabulary.
func (s *Set) Contains(word string) bool {
	if s == nil {
		return false
	}
	_, ok := s.words[word]
	return ok
}

// Len returns the number of distinct words.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.words)
}

// Format reports the encoding the set was loaded from.
func (s *Set) Format() Format {
	if s == nil {
		return ""
	}
	return s.format
}

// Head returns up to n words in file order.
func (s *Set) Head(n int) []string {
	if s == nil || n <= 0 {
		return nil
	}
	if n > len(s.order) {
		n = len(s.order)
	}
	return append([]string(nil), s.order[:n]...)
}

// New builds a set from in-memory words, dropping empty entries and
// duplicates. Entries are matched exactly as given.
func New(words []string, opts Options) (*Set, error) {
	return build(words, FormatText, opts)
}

// Load reads a vocabulary file, detecting its format from the extension or,
// for extensionless files, from the leading bytes.
func Load(path string, opts Options) (*Set, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vocabulary: %w", err)
	}

	format := DetectFormat(path, content)
	var words []string
	switch format {
	case FormatPickle:
		words, err = decodePickle(content)
	case FormatJSON:
		words, err = decodeJSON(content)
	default:
		words, err = decodeText(content)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s vocabulary %s: %w", format, filepath.Base(path), err)
	}

	set, err := build(words, format, opts)
	if err != nil {
		return nil, fmt.Errorf("vocabulary %s: %w", filepath.Base(path), err)
	}
	return set, nil
}

// DetectFormat picks a decoder for a vocabulary file.
func DetectFormat(path string, content []byte) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pkl", ".pickle", ".p":
		return FormatPickle
	case ".json":
		return FormatJSON
	case ".txt", ".text", ".lst":
		return FormatText
	}
	if len(content) > 0 && content[0] == pickleProtoOpcode {
		return FormatPickle
	}
	if trimmed := bytes.TrimSpace(content); len(trimmed) > 0 && trimmed[0] == '[' {
		return FormatJSON
	}
	return FormatText
}

func decodePickle(content []byte) ([]string, error) {
	unpickler := pickle.NewUnpickler(bytes.NewReader(content))
	value, err := unpickler.Load()
	if err != nil {
		return nil, err
	}

	var items []any
	switch v := value.(type) {
	case *types.List:
		items = []any(*v)
	case *types.Tuple:
		items = []any(*v)
	case *types.Set:
		for item := range *v {
			items = append(items, item)
		}
	case *types.FrozenSet:
		for item := range *v {
			items = append(items, item)
		}
	default:
		return nil, fmt.Errorf("expected a pickled list of str, got %T", value)
	}

	words := make([]string, 0, len(items))
	for i, item := range items {
		word, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("entry %d: expected str, got %T", i, item)
		}
		words = append(words, word)
	}
	return words, nil
}

func decodeJSON(content []byte) ([]string, error) {
	var words []string
	if err := json.Unmarshal(content, &words); err != nil {
		return nil, err
	}
	return words, nil
}

func decodeText(content []byte) ([]string, error) {
	if !utf8.Valid(content) {
		return nil, errors.New("file is not valid UTF-8 text")
	}
	lines := strings.Split(strings.ReplaceAll(string(content), "\r\n", "\n"), "\n")
	words := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, line)
	}
	return words, nil
}

func build(words []string, format Format, opts Options) (*Set, error) {
	set := &Set{
		words:  make(map[string]struct{}, len(words)),
		order:  make([]string, 0, len(words)),
		format: format,
	}
	for _, word := range words {
		if opts.Lowercase {
			word = strings.ToLower(word)
		}
		if word == "" {
			continue
		}
		if _, ok := set.words[word]; ok {
			continue
		}
		set.words[word] = struct{}{}
		set.order = append(set.order, word)
	}
	if len(set.words) == 0 {
		return nil, ErrEmpty
	}
	return set, nil
}
