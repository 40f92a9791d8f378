package corpus

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"judgeboot/internal/textutil"
)

// CleanOptions controls how raw files become cleaned sentences.
type CleanOptions struct {
	Delimiter string
	// OnFile, when set, is called once per file after it is handled.
	OnFile func(file string)
}

// CleanJudge reads every file in the judge folder in name order, splits it
// into sentences on the delimiter and cleans each one. Blank sentences are
// dropped, and so are files left with no sentences. Unreadable files are
// recorded in FileErrors and skipped; only context cancellation or an
// unreadable folder returns an error.
func CleanJudge(ctx context.Context, judge Judge, opts CleanOptions) (CleanResult, error) {
	entries, err := os.ReadDir(judge.Path)
	if err != nil {
		return CleanResult{}, fmt.Errorf("list judge folder %s: %w", judge.Name, err)
	}

	result := CleanResult{FilesTotal: len(entries)}
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		name := entry.Name()
		doc, err := cleanFile(filepath.Join(judge.Path, name), opts.Delimiter)
		if opts.OnFile != nil {
			opts.OnFile(name)
		}
		if err != nil {
			result.FileErrors = append(result.FileErrors, FileError{File: name, Err: err})
			continue
		}
		if len(doc) == 0 {
			continue
		}
		result.Documents = append(result.Documents, CleanDocument{File: name, Sentences: doc})
	}
	return result, nil
}

func cleanFile(path, delimiter string) ([]string, error) {
	text, err := ReadText(path)
	if err != nil {
		return nil, err
	}
	var sentences []string
	for _, piece := range textutil.SplitSentences(text, delimiter) {
		cleaned := textutil.Clean(piece)
		if strings.TrimSpace(cleaned) == "" {
			continue
		}
		sentences = append(sentences, cleaned)
	}
	return sentences, nil
}
