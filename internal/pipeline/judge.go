package pipeline

import (
	"context"
	"fmt"
	"os"

	"judgeboot/internal/bootstrap"
	"judgeboot/internal/corpus"
	"judgeboot/internal/ledger"
	"judgeboot/internal/logging"
)

// ProcessJudge cleans, tokenizes and bootstraps one judge folder.
//
// Unreadable files and judges without usable content are not errors: they
// flag the result as problematic. The returned error is reserved for
// cancellation and output write failures, both of which end the run.
func (r *Runner) ProcessJudge(ctx context.Context, judge corpus.Judge) (JudgeResult, error) {
	start := r.now()
	result, err := r.processJudge(ctx, judge)
	result.Duration = r.now().Sub(start)
	return result, err
}

func (r *Runner) processJudge(ctx context.Context, judge corpus.Judge) (JudgeResult, error) {
	logger := logging.ForJudge(r.logger, judge.Name)
	result := JudgeResult{Judge: judge.Name}

	logger.Info("processing judge",
		logging.String(logging.FieldStage, "cleaning"),
		logging.String("path", judge.Path),
	)

	cleaned, err := r.clean(ctx, judge)
	if err != nil {
		if ctx.Err() != nil {
			return result, err
		}
		logger.Warn("judge folder unreadable", logging.Error(err))
		result.Status = ledger.JudgeSkippedEmpty
		result.flag(err.Error())
		return result, nil
	}
	result.FilesTotal = cleaned.FilesTotal
	result.FilesFailed = len(cleaned.FileErrors)
	for _, fileErr := range cleaned.FileErrors {
		logger.Warn("failed to read file",
			logging.String(logging.FieldFile, fileErr.File),
			logging.Error(fileErr.Err),
		)
		result.flag(fileErr.Error())
	}

	result.CleanSentences = cleaned.SentenceCount()
	logger.Info("cleaned sentences",
		logging.Int("documents", len(cleaned.Documents)),
		logging.Int("sentences", result.CleanSentences),
	)
	if result.CleanSentences == 0 {
		logger.Warn("skipping judge", logging.Error(corpus.ErrNoCleanSentences))
		result.Status = ledger.JudgeSkippedEmpty
		result.flag(corpus.ErrNoCleanSentences.Error())
		return result, nil
	}

	docs := r.tokenize(judge, cleaned.Documents)
	result.TokSentences, result.Tokens = corpus.Stats(docs)
	logger.Info("tokenized sentences",
		logging.String(logging.FieldStage, "tokenizing"),
		logging.Int("documents", len(docs)),
		logging.Int("sentences", result.TokSentences),
		logging.Int("tokens", result.Tokens),
	)
	if result.TokSentences == 0 || result.Tokens == 0 {
		logger.Warn("skipping judge", logging.Error(corpus.ErrNoTokens))
		result.Status = ledger.JudgeSkippedNoTokens
		result.flag(corpus.ErrNoTokens.Error())
		return result, nil
	}

	docs = corpus.DropEmpty(docs)
	result.OutputDir = r.writer.JudgeDir(judge.Name)

	logger.Info("writing bootstrap samples",
		logging.String(logging.FieldStage, "bootstrapping"),
		logging.Int("samples", r.writer.Samples),
		logging.Int("documents", len(docs)),
	)
	samples, err := r.bootstrap(ctx, judge, docs)
	result.Samples = samples
	if err != nil {
		return result, err
	}
	result.Status = ledger.JudgeCompleted
	logger.Info("finished judge",
		logging.Int("samples", len(samples)),
		logging.Int64("bytes", result.BytesWritten()),
		logging.String("output_dir", result.OutputDir),
	)
	return result, nil
}

func (r *Runner) clean(ctx context.Context, judge corpus.Judge) (corpus.CleanResult, error) {
	var tracker Tracker = nopTracker{}
	defer func() { tracker.Done() }()
	opts := corpus.CleanOptions{
		Delimiter: r.cfg.Tokenize.SentenceDelimiter,
		OnFile: func(string) {
			tracker.Increment()
		},
	}
	if n, err := countEntries(judge.Path); err == nil {
		tracker = r.progress(fmt.Sprintf("[%s] cleaning", judge.Name), n)
	}
	return corpus.CleanJudge(ctx, judge, opts)
}

func (r *Runner) tokenize(judge corpus.Judge, docs []corpus.CleanDocument) []corpus.Document {
	tracker := r.progress(fmt.Sprintf("[%s] tokenizing", judge.Name), len(docs))
	defer tracker.Done()
	return corpus.TokenizeDocuments(docs, r.filter, tracker.Increment)
}

func (r *Runner) bootstrap(ctx context.Context, judge corpus.Judge, docs []corpus.Document) ([]bootstrap.Sample, error) {
	tracker := r.progress(fmt.Sprintf("[%s] bootstrapping", judge.Name), r.writer.Samples)
	defer tracker.Done()

	writer := *r.writer
	logger := logging.ForJudge(r.logger, judge.Name)
	writer.OnSample = func(sample bootstrap.Sample) {
		logger.Info("sample written",
			logging.Int(logging.FieldSample, sample.Index),
			logging.Int64("bytes", sample.Bytes),
			logging.String("sha256", sample.SHA256),
		)
		tracker.Increment()
	}
	rng := bootstrap.NewRand(r.seed, judge.Name)
	return writer.WriteSamples(ctx, judge.Name, docs, rng)
}

func countEntries(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}
	return len(entries), nil
}
