package bootstrap

import (
	"hash/fnv"
	"math/rand/v2"
	"strings"

	"judgeboot/internal/corpus"
)

// Resample draws len(items) elements from items uniformly with replacement.
func Resample[T any](rng *rand.Rand, items []T) []T {
	if len(items) == 0 {
		return nil
	}
	out := make([]T, len(items))
	for i := range out {
		out[i] = items[rng.IntN(len(items))]
	}
	return out
}

// NewRand returns the random stream for one judge in a run.
func NewRand(seed uint64, judge string) *rand.Rand {
	return rand.New(rand.NewPCG(seed, judgeStream(judge)))
}

func judgeStream(judge string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(judge))
	return h.Sum64()
}

// NewSeed picks a fresh run seed. Zero is never returned so it can keep
// meaning "unset" in configuration.
func NewSeed() uint64 {
	for {
		if seed := rand.Uint64(); seed != 0 {
			return seed
		}
	}
}

// Flatten serializes documents into one corpus string. Each document starts
// with the separator token (when non-empty) followed by its tokens in order,
// and every token is joined by a single space.
func Flatten(docs []corpus.Document, separator string) string {
	var b strings.Builder
	first := true
	write := func(token string) {
		if !first {
			b.WriteByte(' ')
		}
		b.WriteString(token)
		first = false
	}
	for _, doc := range docs {
		if separator != "" {
			write(separator)
		}
		for _, sentence := range doc {
			for _, token := range sentence {
				write(token)
			}
		}
	}
	return b.String()
}
