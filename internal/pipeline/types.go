package pipeline

import (
	"errors"
	"time"

	"judgeboot/internal/bootstrap"
	"judgeboot/internal/ledger"
)

// ErrRunLocked is returned when another run holds the state directory lock.
var ErrRunLocked = errors.New("another judgeboot run is in progress")

// JudgeResult is the outcome of processing one judge folder.
type JudgeResult struct {
	Judge          string             `json:"judge"`
	Status         ledger.JudgeStatus `json:"status"`
	Problematic    bool               `json:"problematic"`
	Reasons        []string           `json:"reasons,omitempty"`
	FilesTotal     int                `json:"files_total"`
	FilesFailed    int                `json:"files_failed"`
	CleanSentences int                `json:"clean_sentences"`
	TokSentences   int                `json:"tok_sentences"`
	Tokens         int                `json:"tokens"`
	OutputDir      string             `json:"output_dir,omitempty"`
	Samples        []bootstrap.Sample `json:"-"`
	Duration       time.Duration      `json:"duration"`
}

// BytesWritten totals the size of every written sample.
func (r JudgeResult) BytesWritten() int64 {
	var total int64
	for _, sample := range r.Samples {
		total += sample.Bytes
	}
	return total
}

func (r *JudgeResult) flag(reason string) {
	r.Problematic = true
	if reason != "" {
		r.Reasons = append(r.Reasons, reason)
	}
}

func (r JudgeResult) record(finished time.Time) ledger.JudgeRecord {
	return ledger.JudgeRecord{
		Judge:          r.Judge,
		Status:         r.Status,
		Problematic:    r.Problematic,
		Reasons:        r.Reasons,
		FilesTotal:     r.FilesTotal,
		FilesFailed:    r.FilesFailed,
		CleanSentences: r.CleanSentences,
		TokSentences:   r.TokSentences,
		Tokens:         r.Tokens,
		SamplesWritten: len(r.Samples),
		BytesWritten:   r.BytesWritten(),
		OutputDir:      r.OutputDir,
		FinishedAt:     finished,
	}
}

// Summary describes a finished (or aborted) run.
type Summary struct {
	RunID     string           `json:"run_id"`
	Seed      uint64           `json:"seed"`
	Status    ledger.RunStatus `json:"status"`
	StartedAt time.Time        `json:"started_at"`
	Duration  time.Duration    `json:"duration"`
	Judges    []JudgeResult    `json:"judges"`
	// Resumed lists judges skipped because an earlier run completed them.
	Resumed  []string  `json:"resumed,omitempty"`
	Problems []Problem `json:"problematic"`
}

// Completed counts judges whose samples were all written.
func (s Summary) Completed() int {
	n := 0
	for _, judge := range s.Judges {
		if judge.Status == ledger.JudgeCompleted {
			n++
		}
	}
	return n
}
