package testsupport

import (
	"path/filepath"
	"strings"
	"testing"

	"judgeboot/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
	words   []string
}

// DefaultVocabulary is written to the vocabulary file of every test config
// unless WithVocabulary replaces it.
var DefaultVocabulary = []string{
	"the", "court", "held", "that", "appeal", "is", "denied", "motion",
	"granted", "plaintiff", "defendant", "claims", "fail", "judgment",
	"affirmed", "reversed", "st", "nd", "rd", "th", "we", "do", "n't", "'s",
}

// NewConfig produces a config seeded with unique temp directories per test.
// The input root exists and is empty; the vocabulary file holds
// DefaultVocabulary. Options run before the vocabulary file is written.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.InputRoot = filepath.Join(base, "judges")
	cfgVal.Paths.OutputRoot = filepath.Join(base, "out")
	cfgVal.Paths.VocabularyFile = filepath.Join(base, "vocab.txt")
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Paths.LogDir = ""
	cfgVal.Bootstrap.Seed = 1

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}
	words := DefaultVocabulary
	for _, opt := range opts {
		opt(builder)
	}
	if builder.words != nil {
		words = builder.words
	}

	MkdirAll(t, cfgVal.Paths.InputRoot)
	WriteText(t, cfgVal.Paths.VocabularyFile, strings.Join(words, "\n")+"\n")
	return builder.cfg
}

// WithVocabulary overrides the words written to the vocabulary file.
func WithVocabulary(words ...string) ConfigOption {
	return func(b *configBuilder) {
		b.words = words
	}
}

// WithSamples sets the number of bootstrap samples per judge.
func WithSamples(n int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Bootstrap.Samples = n
	}
}

// WithSeed fixes the bootstrap seed.
func WithSeed(seed uint64) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Bootstrap.Seed = seed
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.InputRoot)
}
