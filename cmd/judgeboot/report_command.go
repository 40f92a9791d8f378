package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"judgeboot/internal/ledger"
)

type reportOutput struct {
	Run    *ledger.Run          `json:"run"`
	Judges []ledger.JudgeRecord `json:"judges"`
}

func newReportCommand(ctx *commandContext) *cobra.Command {
	var runID string
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show per-judge results of the latest or a given run",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openLedger()
			if err != nil {
				return err
			}
			defer store.Close()

			var run *ledger.Run
			if id := strings.TrimSpace(runID); id != "" {
				run, err = store.GetRun(cmd.Context(), id)
			} else {
				run, err = store.LatestRun(cmd.Context())
			}
			if err != nil {
				return err
			}
			if run == nil {
				return errors.New("no runs recorded yet; run `judgeboot build` first")
			}

			records, err := store.ListJudgeResults(cmd.Context(), run.ID)
			if err != nil {
				return err
			}
			if jsonOut {
				if records == nil {
					records = []ledger.JudgeRecord{}
				}
				return writeJSON(cmd, reportOutput{Run: run, Judges: records})
			}
			renderRunReport(cmd.OutOrStdout(), run, records)
			return nil
		},
	}

	cmd.Flags().StringVar(&runID, "run", "", "Run ID or unique prefix (defaults to the latest run)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the report as JSON")
	return cmd
}

func newRunsCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recorded runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 0 {
				return fmt.Errorf("--limit must be >= 0 (got %d)", limit)
			}
			store, err := ctx.openLedger()
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if jsonOut {
				if runs == nil {
					runs = []*ledger.Run{}
				}
				return writeJSON(cmd, runs)
			}
			renderRuns(cmd.OutOrStdout(), runs)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 10, "Maximum runs to list (0 for all)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print runs as JSON")
	return cmd
}
