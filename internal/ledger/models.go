package ledger

import "time"

// RunStatus is the lifecycle state of a run row.
type RunStatus string

const (
	RunRunning   RunStatus = "running"
	RunCompleted RunStatus = "completed"
	RunFailed    RunStatus = "failed"
	RunCanceled  RunStatus = "canceled"
)

// JudgeStatus is the outcome of processing one judge folder.
type JudgeStatus string

const (
	// JudgeCompleted means every bootstrap sample was written.
	JudgeCompleted JudgeStatus = "completed"
	// JudgeSkippedEmpty means no sentence survived cleaning.
	JudgeSkippedEmpty JudgeStatus = "skipped_empty"
	// JudgeSkippedNoTokens means no vocabulary token survived tokenization.
	JudgeSkippedNoTokens JudgeStatus = "skipped_no_tokens"
	// JudgeFailed means the run aborted while writing this judge's samples.
	JudgeFailed JudgeStatus = "failed"
)

// RunInfo carries the parameters recorded when a run begins.
type RunInfo struct {
	// ID, when set, is used as the run ID instead of a fresh UUID.
	ID         string
	Seed       uint64
	InputRoot  string
	OutputRoot string
	Samples    int
}

// Run is one row of the runs table.
type Run struct {
	ID                string    `json:"id"`
	StartedAt         time.Time `json:"started_at"`
	FinishedAt        time.Time `json:"finished_at"`
	Seed              uint64    `json:"seed"`
	InputRoot         string    `json:"input_root"`
	OutputRoot        string    `json:"output_root"`
	Samples           int       `json:"samples"`
	JudgesTotal       int       `json:"judges_total"`
	JudgesProblematic int       `json:"judges_problematic"`
	Status            RunStatus `json:"status"`
	ErrorMessage      string    `json:"error,omitempty"`
}

// RunOutcome carries the totals recorded when a run ends.
type RunOutcome struct {
	Status            RunStatus
	JudgesTotal       int
	JudgesProblematic int
	Err               error
}

// JudgeRecord is one row of the judge_results table.
type JudgeRecord struct {
	RunID          string      `json:"run_id"`
	Judge          string      `json:"judge"`
	Status         JudgeStatus `json:"status"`
	Problematic    bool        `json:"problematic"`
	Reasons        []string    `json:"reasons,omitempty"`
	FilesTotal     int         `json:"files_total"`
	FilesFailed    int         `json:"files_failed"`
	CleanSentences int         `json:"clean_sentences"`
	TokSentences   int         `json:"tok_sentences"`
	Tokens         int         `json:"tokens"`
	SamplesWritten int         `json:"samples_written"`
	BytesWritten   int64       `json:"bytes_written"`
	OutputDir      string      `json:"output_dir,omitempty"`
	FinishedAt     time.Time   `json:"finished_at"`
}
