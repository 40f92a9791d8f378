package ledger

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrRunNotFound is returned when no run matches a lookup.
var ErrRunNotFound = errors.New("run not found")

// ErrAmbiguousRun is returned when a run ID prefix matches more than one run.
var ErrAmbiguousRun = errors.New("ambiguous run id prefix")

// Store manages the run ledger backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the ledger database at path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("ledger path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create ledger directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// BeginRun inserts a new run in the running state.
func (s *Store) BeginRun(ctx context.Context, info RunInfo) (*Run, error) {
	id := strings.TrimSpace(info.ID)
	if id == "" {
		id = uuid.NewString()
	}
	run := &Run{
		ID:         id,
		StartedAt:  time.Now().UTC(),
		Seed:       info.Seed,
		InputRoot:  info.InputRoot,
		OutputRoot: info.OutputRoot,
		Samples:    info.Samples,
		Status:     RunRunning,
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, seed, input_root, output_root, samples, status)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		formatTime(run.StartedAt),
		strconv.FormatUint(run.Seed, 10),
		run.InputRoot,
		run.OutputRoot,
		run.Samples,
		string(run.Status),
	)
	if err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}
	return run, nil
}

// RecordJudge stores the outcome of one judge, replacing any earlier row for
// the same judge within the run.
func (s *Store) RecordJudge(ctx context.Context, runID string, rec JudgeRecord) error {
	if strings.TrimSpace(rec.Judge) == "" {
		return errors.New("record judge: empty judge name")
	}
	finished := rec.FinishedAt
	if finished.IsZero() {
		finished = time.Now()
	}
	reasons, err := encodeReasons(rec.Reasons)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO judge_results (
            run_id, judge, status, problematic, reasons_json,
            files_total, files_failed, clean_sentences, tok_sentences, tokens,
            samples_written, bytes_written, output_dir, finished_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID,
		rec.Judge,
		string(rec.Status),
		boolToInt(rec.Problematic),
		reasons,
		rec.FilesTotal,
		rec.FilesFailed,
		rec.CleanSentences,
		rec.TokSentences,
		rec.Tokens,
		rec.SamplesWritten,
		rec.BytesWritten,
		nullableString(rec.OutputDir),
		formatTime(finished),
	)
	if err != nil {
		return fmt.Errorf("record judge %s: %w", rec.Judge, err)
	}
	return nil
}

// FinishRun stamps the run with its final status and totals.
func (s *Store) FinishRun(ctx context.Context, runID string, outcome RunOutcome) error {
	status := outcome.Status
	if status == "" {
		status = RunCompleted
	}
	var errMsg any
	if outcome.Err != nil {
		errMsg = outcome.Err.Error()
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE runs SET finished_at = ?, status = ?, judges_total = ?, judges_problematic = ?, error_message = ?
         WHERE id = ?`,
		formatTime(time.Now()),
		string(status),
		outcome.JudgesTotal,
		outcome.JudgesProblematic,
		errMsg,
		runID,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("finish run %s: %w", runID, ErrRunNotFound)
	}
	return nil
}

// LatestRun returns the most recently started run, or nil when the ledger is empty.
func (s *Store) LatestRun(ctx context.Context) (*Run, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+runColumns+" FROM runs ORDER BY started_at DESC, rowid DESC LIMIT 1")
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest run: %w", err)
	}
	return run, nil
}

// GetRun resolves a full run ID or a unique prefix of one.
func (s *Store) GetRun(ctx context.Context, idOrPrefix string) (*Run, error) {
	prefix := strings.TrimSpace(idOrPrefix)
	if prefix == "" {
		return nil, ErrRunNotFound
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+runColumns+" FROM runs WHERE substr(id, 1, ?) = ? ORDER BY started_at DESC LIMIT 2",
		len(prefix), prefix)
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	defer rows.Close()

	runs, err := collectRuns(rows)
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	switch len(runs) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, prefix)
	case 1:
		return runs[0], nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrAmbiguousRun, prefix)
	}
}

// ListRuns returns runs newest first. A non-positive limit returns all runs.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]*Run, error) {
	query := "SELECT " + runColumns + " FROM runs ORDER BY started_at DESC, rowid DESC"
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	runs, err := collectRuns(rows)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

// ListJudgeResults returns a run's judge rows ordered by judge name.
func (s *Store) ListJudgeResults(ctx context.Context, runID string) ([]JudgeRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+judgeColumns+" FROM judge_results WHERE run_id = ? ORDER BY judge", runID)
	if err != nil {
		return nil, fmt.Errorf("list judge results: %w", err)
	}
	defer rows.Close()

	var records []JudgeRecord
	for rows.Next() {
		rec, err := scanJudge(rows)
		if err != nil {
			return nil, fmt.Errorf("scan judge result: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list judge results: %w", err)
	}
	return records, nil
}

// CompletedJudges reports the judges whose most recent result for outputRoot
// is completed. A later skipped or failed result clears an earlier completion.
func (s *Store) CompletedJudges(ctx context.Context, outputRoot string) (map[string]bool, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT jr.judge, jr.status
         FROM judge_results jr
         JOIN runs r ON r.id = jr.run_id
         WHERE r.output_root = ?
         ORDER BY jr.finished_at, jr.rowid`,
		outputRoot)
	if err != nil {
		return nil, fmt.Errorf("completed judges: %w", err)
	}
	defer rows.Close()

	latest := make(map[string]JudgeStatus)
	for rows.Next() {
		var judge, status string
		if err := rows.Scan(&judge, &status); err != nil {
			return nil, fmt.Errorf("scan completed judge: %w", err)
		}
		latest[judge] = JudgeStatus(status)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("completed judges: %w", err)
	}

	done := make(map[string]bool, len(latest))
	for judge, status := range latest {
		if status == JudgeCompleted {
			done[judge] = true
		}
	}
	return done, nil
}

func encodeReasons(reasons []string) (any, error) {
	if len(reasons) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(reasons)
	if err != nil {
		return nil, fmt.Errorf("encode reasons: %w", err)
	}
	return string(data), nil
}
