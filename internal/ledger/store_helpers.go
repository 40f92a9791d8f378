package ledger

import (
	"database/sql"
	"encoding/json"
	"strconv"
	"time"
)

const runColumns = "id, started_at, finished_at, seed, input_root, output_root, samples, judges_total, judges_problematic, status, error_message"

const judgeColumns = "run_id, judge, status, problematic, reasons_json, files_total, files_failed, clean_sentences, tok_sentences, tokens, samples_written, bytes_written, output_dir, finished_at"

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*Run, error) {
	var (
		id          string
		startedRaw  string
		finishedRaw sql.NullString
		seedRaw     string
		inputRoot   string
		outputRoot  string
		samples     int
		total       int
		problematic int
		status      string
		errMsg      sql.NullString
	)
	if err := row.Scan(
		&id,
		&startedRaw,
		&finishedRaw,
		&seedRaw,
		&inputRoot,
		&outputRoot,
		&samples,
		&total,
		&problematic,
		&status,
		&errMsg,
	); err != nil {
		return nil, err
	}
	seed, err := strconv.ParseUint(seedRaw, 10, 64)
	if err != nil {
		return nil, err
	}
	return &Run{
		ID:                id,
		StartedAt:         parseTime(startedRaw),
		FinishedAt:        parseTime(finishedRaw.String),
		Seed:              seed,
		InputRoot:         inputRoot,
		OutputRoot:        outputRoot,
		Samples:           samples,
		JudgesTotal:       total,
		JudgesProblematic: problematic,
		Status:            RunStatus(status),
		ErrorMessage:      errMsg.String,
	}, nil
}

func collectRuns(rows *sql.Rows) ([]*Run, error) {
	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func scanJudge(row scanner) (JudgeRecord, error) {
	var (
		rec         JudgeRecord
		status      string
		problematic int
		reasons     sql.NullString
		outputDir   sql.NullString
		finishedRaw string
	)
	if err := row.Scan(
		&rec.RunID,
		&rec.Judge,
		&status,
		&problematic,
		&reasons,
		&rec.FilesTotal,
		&rec.FilesFailed,
		&rec.CleanSentences,
		&rec.TokSentences,
		&rec.Tokens,
		&rec.SamplesWritten,
		&rec.BytesWritten,
		&outputDir,
		&finishedRaw,
	); err != nil {
		return JudgeRecord{}, err
	}
	rec.Status = JudgeStatus(status)
	rec.Problematic = problematic != 0
	rec.OutputDir = outputDir.String
	rec.FinishedAt = parseTime(finishedRaw)
	if reasons.Valid && reasons.String != "" {
		if err := json.Unmarshal([]byte(reasons.String), &rec.Reasons); err != nil {
			return JudgeRecord{}, err
		}
	}
	return rec, nil
}

// timeLayout is fixed width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}
	}
	return t
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
