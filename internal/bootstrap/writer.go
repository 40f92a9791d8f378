package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"path/filepath"
	"strings"

	"judgeboot/internal/corpus"
	"judgeboot/internal/fileutil"
)

// ErrInvalidJudgeName is returned for a judge name that is not a single path
// element under the output root.
var ErrInvalidJudgeName = errors.New("judge name is not a folder name")

// Sample describes one written bootstrap corpus.
type Sample struct {
	Index     int
	Path      string
	Documents int
	Bytes     int64
	SHA256    string
}

// Writer writes a judge's bootstrap samples under Root.
type Writer struct {
	Root      string
	Samples   int
	Separator string
	// FileName renders the file name for a 1-based sample index.
	FileName func(index int) string
	// OnSample, when set, is called after each sample is written.
	OnSample func(Sample)
}

// JudgeDir returns the output directory for a judge: the judge folder name
// joined verbatim under Root, so distinct input folders never share output.
func (w *Writer) JudgeDir(judge string) string {
	return filepath.Join(w.Root, judge)
}

func validJudgeName(judge string) bool {
	switch judge {
	case "", ".", "..":
		return false
	}
	return !strings.ContainsAny(judge, `/\`) && !strings.ContainsRune(judge, 0)
}

// WriteSamples draws w.Samples independent resamples of docs from rng and
// writes them to <Root>/<judge>/<FileName(i)> for i = 1..Samples.
func (w *Writer) WriteSamples(ctx context.Context, judge string, docs []corpus.Document, rng *rand.Rand) ([]Sample, error) {
	if len(docs) == 0 {
		return nil, fmt.Errorf("bootstrap %s: %w", judge, corpus.ErrNoTokens)
	}
	if !validJudgeName(judge) {
		return nil, fmt.Errorf("bootstrap %q: %w", judge, ErrInvalidJudgeName)
	}
	if w.FileName == nil {
		return nil, fmt.Errorf("bootstrap %s: file name pattern not configured", judge)
	}

	dir := w.JudgeDir(judge)
	samples := make([]Sample, 0, w.Samples)
	for index := 1; index <= w.Samples; index++ {
		if err := ctx.Err(); err != nil {
			return samples, err
		}
		drawn := Resample(rng, docs)
		data := []byte(Flatten(drawn, w.Separator))
		path := filepath.Join(dir, w.FileName(index))
		if err := fileutil.WriteFileAtomic(path, data, 0o644); err != nil {
			return samples, fmt.Errorf("write sample %d for %s: %w", index, judge, err)
		}
		sample := Sample{
			Index:     index,
			Path:      path,
			Documents: len(drawn),
			Bytes:     int64(len(data)),
			SHA256:    fileutil.SHA256Hex(data),
		}
		samples = append(samples, sample)
		if w.OnSample != nil {
			w.OnSample(sample)
		}
	}
	return samples, nil
}
