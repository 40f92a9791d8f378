package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"

	"judgeboot/internal/ledger"
	"judgeboot/internal/pipeline"
)

var judgeHeaders = []string{"Judge", "Status", "Files", "Failed", "Sentences", "Tokens", "Samples", "Size"}

var judgeAligns = []columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight, alignRight}

func renderBuildSummary(w io.Writer, summary pipeline.Summary, logPath string) {
	fmt.Fprintf(w, "Run %s (%s, seed %d)\n", summary.RunID, summary.Status, summary.Seed)

	if len(summary.Judges) > 0 {
		rows := make([][]string, 0, len(summary.Judges))
		for _, result := range summary.Judges {
			rows = append(rows, judgeRow(
				result.Judge,
				string(result.Status),
				result.FilesTotal,
				result.FilesFailed,
				result.TokSentences,
				result.Tokens,
				len(result.Samples),
				result.BytesWritten(),
			))
		}
		fmt.Fprintln(w, renderTable(judgeHeaders, rows, judgeAligns))
	} else {
		fmt.Fprintln(w, "No judges processed")
	}
	if len(summary.Resumed) > 0 {
		fmt.Fprintf(w, "Skipped %d judge(s) completed by an earlier run\n", len(summary.Resumed))
	}

	fmt.Fprintf(w, "Completed %d of %d judge(s) in %s\n",
		summary.Completed(), len(summary.Judges), summary.Duration.Round(time.Millisecond))
	renderProblems(w, summary.Problems)
	if logPath != "" {
		fmt.Fprintf(w, "Log: %s\n", logPath)
	}
}

func renderRunReport(w io.Writer, run *ledger.Run, records []ledger.JudgeRecord) {
	fmt.Fprintf(w, "Run:         %s\n", run.ID)
	fmt.Fprintf(w, "Status:      %s\n", run.Status)
	fmt.Fprintf(w, "Started:     %s (%s)\n", run.StartedAt.Local().Format(time.DateTime), humanize.Time(run.StartedAt))
	if !run.FinishedAt.IsZero() {
		fmt.Fprintf(w, "Duration:    %s\n", run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond))
	}
	fmt.Fprintf(w, "Seed:        %d\n", run.Seed)
	fmt.Fprintf(w, "Samples:     %d per judge\n", run.Samples)
	fmt.Fprintf(w, "Input root:  %s\n", run.InputRoot)
	fmt.Fprintf(w, "Output root: %s\n", run.OutputRoot)
	if run.ErrorMessage != "" {
		fmt.Fprintf(w, "Error:       %s\n", run.ErrorMessage)
	}

	if len(records) == 0 {
		fmt.Fprintln(w, "No judge results recorded")
		return
	}
	rows := make([][]string, 0, len(records))
	var problems []pipeline.Problem
	var total int64
	for _, rec := range records {
		rows = append(rows, judgeRow(
			rec.Judge,
			string(rec.Status),
			rec.FilesTotal,
			rec.FilesFailed,
			rec.TokSentences,
			rec.Tokens,
			rec.SamplesWritten,
			rec.BytesWritten,
		))
		total += rec.BytesWritten
		if rec.Problematic {
			problems = append(problems, pipeline.Problem{Judge: rec.Judge, Reasons: rec.Reasons})
		}
	}
	fmt.Fprintln(w, renderTable(judgeHeaders, rows, judgeAligns))
	fmt.Fprintf(w, "Total written: %s\n", humanize.Bytes(uint64(total)))
	renderProblems(w, problems)
}

func renderRuns(w io.Writer, runs []*ledger.Run) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded")
		return
	}
	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			shortID(run.ID),
			string(run.Status),
			humanize.Time(run.StartedAt),
			humanize.Comma(int64(run.JudgesTotal)),
			humanize.Comma(int64(run.JudgesProblematic)),
			strconv.FormatUint(run.Seed, 10),
			run.OutputRoot,
		})
	}
	fmt.Fprintln(w, renderTable(
		[]string{"Run", "Status", "Started", "Judges", "Problematic", "Seed", "Output"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft},
	))
}

func renderProblems(w io.Writer, problems []pipeline.Problem) {
	if len(problems) == 0 {
		fmt.Fprintln(w, "No problematic judges")
		return
	}
	fmt.Fprintf(w, "Problematic judges (%d):\n", len(problems))
	for _, problem := range problems {
		fmt.Fprintf(w, "  %s\n", problem.Judge)
		for _, reason := range problem.Reasons {
			fmt.Fprintf(w, "    - %s\n", reason)
		}
	}
}

func judgeRow(judge, status string, files, failed, sentences, tokens, samples int, bytes int64) []string {
	size := "-"
	if bytes > 0 {
		size = humanize.Bytes(uint64(bytes))
	}
	return []string{
		judge,
		status,
		humanize.Comma(int64(files)),
		humanize.Comma(int64(failed)),
		humanize.Comma(int64(sentences)),
		humanize.Comma(int64(tokens)),
		strconv.Itoa(samples),
		size,
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
