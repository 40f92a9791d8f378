package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"judgeboot/internal/corpus"
)

func TestResamplePreservesCountAndDrawsFromInput(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e"}
	rng := NewRand(7, "judge")

	for round := 0; round < 50; round++ {
		got := Resample(rng, items)
		if len(got) != len(items) {
			t.Fatalf("round %d: len = %d, want %d", round, len(got), len(items))
		}
		for _, item := range got {
			if !strings.Contains("abcde", item) {
				t.Fatalf("round %d: drew %q which is not in the input", round, item)
			}
		}
	}

	if got := Resample(rng, []string{}); got != nil {
		t.Fatalf("expected nil for empty input, got %v", got)
	}
}

func TestResampleDrawsWithReplacement(t *testing.T) {
	items := make([]int, 20)
	for i := range items {
		items[i] = i
	}
	rng := NewRand(3, "replacement")

	sawDuplicate := false
	for round := 0; round < 20 && !sawDuplicate; round++ {
		seen := map[int]bool{}
		for _, v := range Resample(rng, items) {
			if seen[v] {
				sawDuplicate = true
				break
			}
			seen[v] = true
		}
	}
	if !sawDuplicate {
		t.Fatal("expected at least one repeated draw across 20 resamples of 20 items")
	}
}

func TestNewRandIsDeterministicPerJudge(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7, 8}
	a := Resample(NewRand(42, "smith"), items)
	b := Resample(NewRand(42, "smith"), items)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("same seed and judge diverged (-a +b):\n%s", diff)
	}

	differs := false
	for _, judge := range []string{"jones", "brown", "white"} {
		if !cmp.Equal(a, Resample(NewRand(42, judge), items)) {
			differs = true
		}
	}
	if !differs {
		t.Fatal("expected different judges to get different streams")
	}
	if NewSeed() == 0 {
		t.Fatal("NewSeed returned zero")
	}
}

func TestFlatten(t *testing.T) {
	docs := []corpus.Document{
		{{"the", "court"}, {"held"}},
		{{}, {"appeal", "denied"}},
	}

	if got, want := Flatten(docs, "\n"), "\n the court held \n appeal denied"; got != want {
		t.Fatalf("Flatten with separator = %q, want %q", got, want)
	}
	if got, want := Flatten(docs, ""), "the court held appeal denied"; got != want {
		t.Fatalf("Flatten without separator = %q, want %q", got, want)
	}
	if got := Flatten(nil, "\n"); got != "" {
		t.Fatalf("Flatten(nil) = %q, want empty", got)
	}
}

func TestWriterWritesNumberedSamples(t *testing.T) {
	root := t.TempDir()
	var notified []int
	w := &Writer{
		Root:      root,
		Samples:   4,
		Separator: "\n",
		FileName:  func(i int) string { return fmt.Sprintf("corpus_bstrap_sample_%d.txt", i) },
		OnSample:  func(s Sample) { notified = append(notified, s.Index) },
	}
	docs := []corpus.Document{
		{{"the", "court"}},
		{{"appeal"}},
		{{"denied"}, {"held"}},
	}

	samples, err := w.WriteSamples(context.Background(), "Hon. Smith", docs, NewRand(1, "Hon. Smith"))
	if err != nil {
		t.Fatalf("WriteSamples returned error: %v", err)
	}
	if len(samples) != 4 {
		t.Fatalf("expected 4 samples, got %d", len(samples))
	}
	if diff := cmp.Diff([]int{1, 2, 3, 4}, notified); diff != "" {
		t.Fatalf("OnSample mismatch (-want +got):\n%s", diff)
	}

	dir := filepath.Join(root, "Hon. Smith")
	for i, sample := range samples {
		wantPath := filepath.Join(dir, fmt.Sprintf("corpus_bstrap_sample_%d.txt", i+1))
		if sample.Path != wantPath {
			t.Fatalf("sample %d path = %q, want %q", i+1, sample.Path, wantPath)
		}
		if sample.Documents != len(docs) {
			t.Fatalf("sample %d documents = %d, want %d", i+1, sample.Documents, len(docs))
		}
		content, err := os.ReadFile(sample.Path)
		if err != nil {
			t.Fatalf("read sample %d: %v", i+1, err)
		}
		if int64(len(content)) != sample.Bytes {
			t.Fatalf("sample %d bytes = %d, file has %d", i+1, sample.Bytes, len(content))
		}
		if got := strings.Count(string(content), "\n"); got != len(docs) {
			t.Fatalf("sample %d has %d document separators, want %d", i+1, got, len(docs))
		}
		if strings.Contains(string(content), "  ") {
			t.Fatalf("sample %d contains an empty token: %q", i+1, content)
		}
	}
}

func TestWriterIsReproducible(t *testing.T) {
	docs := []corpus.Document{{{"a"}}, {{"b"}}, {{"c"}}, {{"d"}}}
	run := func() []string {
		w := &Writer{Root: t.TempDir(), Samples: 3, FileName: func(i int) string { return fmt.Sprintf("%d.txt", i) }}
		samples, err := w.WriteSamples(context.Background(), "judge", docs, NewRand(99, "judge"))
		if err != nil {
			t.Fatalf("WriteSamples: %v", err)
		}
		sums := make([]string, 0, len(samples))
		for _, s := range samples {
			sums = append(sums, s.SHA256)
		}
		return sums
	}
	if diff := cmp.Diff(run(), run()); diff != "" {
		t.Fatalf("same seed produced different samples (-first +second):\n%s", diff)
	}
}

func TestWriterRejectsEmptyInputAndCancellation(t *testing.T) {
	w := &Writer{Root: t.TempDir(), Samples: 2, FileName: func(i int) string { return fmt.Sprintf("%d.txt", i) }}
	if _, err := w.WriteSamples(context.Background(), "judge", nil, NewRand(1, "judge")); !errors.Is(err, corpus.ErrNoTokens) {
		t.Fatalf("expected ErrNoTokens, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	samples, err := w.WriteSamples(ctx, "judge", []corpus.Document{{{"a"}}}, NewRand(1, "judge"))
	if !errors.Is(err, context.Canceled) || len(samples) != 0 {
		t.Fatalf("expected cancellation before any sample, got %d samples, err=%v", len(samples), err)
	}
}

func TestWriterKeepsJudgeFolderNamesVerbatim(t *testing.T) {
	root := t.TempDir()
	w := &Writer{Root: root, Samples: 1, Separator: "\n", FileName: func(i int) string { return fmt.Sprintf("%d.txt", i) }}
	docs := map[string][]corpus.Document{
		"smith:j": {{{"appeal", "denied"}}},
		"smith-j": {{{"motion", "granted"}}},
	}
	for judge, judgeDocs := range docs {
		if w.JudgeDir(judge) != filepath.Join(root, judge) {
			t.Fatalf("JudgeDir(%q) = %q", judge, w.JudgeDir(judge))
		}
		if _, err := w.WriteSamples(context.Background(), judge, judgeDocs, NewRand(1, judge)); err != nil {
			t.Fatalf("WriteSamples(%q): %v", judge, err)
		}
	}
	for judge, want := range map[string]string{"smith:j": "\n appeal denied", "smith-j": "\n motion granted"} {
		got, err := os.ReadFile(filepath.Join(root, judge, "1.txt"))
		if err != nil {
			t.Fatalf("read %s sample: %v", judge, err)
		}
		if string(got) != want {
			t.Fatalf("%s sample = %q, want %q", judge, got, want)
		}
	}
}

func TestWriterRejectsNamesOutsideRoot(t *testing.T) {
	root := t.TempDir()
	w := &Writer{Root: root, Samples: 1, FileName: func(i int) string { return fmt.Sprintf("%d.txt", i) }}
	for _, judge := range []string{"", ".", "..", "a/b", `a\b`} {
		_, err := w.WriteSamples(context.Background(), judge, []corpus.Document{{{"a"}}}, NewRand(1, judge))
		if !errors.Is(err, ErrInvalidJudgeName) {
			t.Fatalf("WriteSamples(%q): expected ErrInvalidJudgeName, got %v", judge, err)
		}
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatalf("read root: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected nothing written, found %d entries", len(entries))
	}
}
