package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gofrs/flock"

	"judgeboot/internal/corpus"
	"judgeboot/internal/ledger"
	"judgeboot/internal/logging"
)

// Run processes every selected judge in name order and records each outcome
// in the ledger. Problematic judges never stop the run; cancellation and
// output write failures do, and are returned alongside the partial summary.
func (r *Runner) Run(ctx context.Context) (Summary, error) {
	if r.store == nil {
		return Summary{}, errors.New("run ledger not configured")
	}

	lock := flock.New(r.cfg.LockPath())
	ok, err := lock.TryLock()
	if err != nil {
		return Summary{}, fmt.Errorf("acquire run lock: %w", err)
	}
	if !ok {
		return Summary{}, fmt.Errorf("%w (lock %s)", ErrRunLocked, r.cfg.LockPath())
	}
	defer func() {
		_ = lock.Unlock()
	}()

	judges, err := corpus.DiscoverJudges(r.cfg.Paths.InputRoot, corpus.Selection{
		Skip: r.cfg.Selection.Skip,
		Only: r.cfg.Selection.Judges,
	})
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{Seed: r.seed, StartedAt: r.now()}
	if r.resume {
		judges, summary.Resumed, err = r.skipCompleted(ctx, judges)
		if err != nil {
			return Summary{}, err
		}
	}

	run, err := r.store.BeginRun(ctx, ledger.RunInfo{
		ID:         r.runID,
		Seed:       r.seed,
		InputRoot:  r.cfg.Paths.InputRoot,
		OutputRoot: r.cfg.Paths.OutputRoot,
		Samples:    r.cfg.Bootstrap.Samples,
	})
	if err != nil {
		return Summary{}, fmt.Errorf("begin run: %w", err)
	}
	summary.RunID = run.ID
	base := r.logger
	r.logger = base.With(logging.String(logging.FieldRunID, run.ID))
	defer func() { r.logger = base }()
	logger := r.logger
	logger.Info("run started",
		logging.Int("judges", len(judges)),
		logging.Int("resumed", len(summary.Resumed)),
		logging.Uint64("seed", r.seed),
		logging.Int("samples", r.cfg.Bootstrap.Samples),
	)

	var problems ProblemLog
	runErr := r.processAll(ctx, judges, run.ID, &summary, &problems)

	summary.Problems = problems.Problems()
	summary.Duration = r.now().Sub(summary.StartedAt)
	summary.Status = runStatus(runErr)

	finishErr := r.store.FinishRun(context.WithoutCancel(ctx), run.ID, ledger.RunOutcome{
		Status:            summary.Status,
		JudgesTotal:       len(summary.Judges),
		JudgesProblematic: problems.Len(),
		Err:               runErr,
	})
	if runErr != nil {
		logger.Error("run aborted",
			logging.Error(runErr),
			logging.Int("judges_processed", len(summary.Judges)),
		)
		return summary, runErr
	}
	if finishErr != nil {
		return summary, fmt.Errorf("finish run: %w", finishErr)
	}

	if problems.Len() > 0 {
		logger.Warn("problematic judges",
			logging.Int("count", problems.Len()),
			logging.Strings("judges", problems.Judges()),
		)
	} else {
		logger.Info("no problematic judges encountered")
	}
	logger.Info("all judges processed",
		logging.Int("judges", len(summary.Judges)),
		logging.Int("completed", summary.Completed()),
		logging.Int("problematic", problems.Len()),
		logging.Duration("duration", summary.Duration),
	)
	return summary, nil
}

func (r *Runner) processAll(ctx context.Context, judges []corpus.Judge, runID string, summary *Summary, problems *ProblemLog) error {
	for _, judge := range judges {
		if err := ctx.Err(); err != nil {
			return err
		}
		result, err := r.ProcessJudge(ctx, judge)
		if err != nil {
			result.Status = ledger.JudgeFailed
			result.flag(err.Error())
		}
		summary.Judges = append(summary.Judges, result)
		if result.Problematic {
			noteProblems(problems, result)
		}
		if err != nil {
			_ = r.store.RecordJudge(context.WithoutCancel(ctx), runID, result.record(r.now()))
			return fmt.Errorf("judge %s: %w", judge.Name, err)
		}
		if err := r.store.RecordJudge(ctx, runID, result.record(r.now())); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) skipCompleted(ctx context.Context, judges []corpus.Judge) ([]corpus.Judge, []string, error) {
	done, err := r.store.CompletedJudges(ctx, r.cfg.Paths.OutputRoot)
	if err != nil {
		return nil, nil, fmt.Errorf("resume: %w", err)
	}
	remaining := make([]corpus.Judge, 0, len(judges))
	var skipped []string
	for _, judge := range judges {
		if done[judge.Name] {
			skipped = append(skipped, judge.Name)
			continue
		}
		remaining = append(remaining, judge)
	}
	if len(skipped) > 0 {
		r.logger.Info("resuming run",
			logging.Int("already_completed", len(skipped)),
			logging.String("first_remaining", firstName(remaining)),
		)
	}
	return remaining, skipped, nil
}

func noteProblems(problems *ProblemLog, result JudgeResult) {
	if len(result.Reasons) == 0 {
		problems.Add(result.Judge, "")
		return
	}
	for _, reason := range result.Reasons {
		problems.Add(result.Judge, reason)
	}
}

func runStatus(err error) ledger.RunStatus {
	switch {
	case err == nil:
		return ledger.RunCompleted
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ledger.RunCanceled
	default:
		return ledger.RunFailed
	}
}

func firstName(judges []corpus.Judge) string {
	if len(judges) == 0 {
		return ""
	}
	return strings.TrimSpace(judges[0].Name)
}
