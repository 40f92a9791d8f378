package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"judgeboot/internal/ledger"
	"judgeboot/internal/logs"
)

func newLogsCommand(ctx *commandContext) *cobra.Command {
	var (
		runID  string
		lines  int
		follow bool
	)

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print the log of the latest or a given run",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if strings.TrimSpace(cfg.Paths.LogDir) == "" {
				return errors.New("paths.log_dir is not configured; runs only log to the terminal")
			}

			store, err := ctx.openLedger()
			if err != nil {
				return err
			}
			var run *ledger.Run
			if id := strings.TrimSpace(runID); id != "" {
				run, err = store.GetRun(cmd.Context(), id)
			} else {
				run, err = store.LatestRun(cmd.Context())
			}
			_ = store.Close()
			if err != nil {
				return err
			}
			if run == nil {
				return errors.New("no runs recorded yet; run `judgeboot build` first")
			}

			path := logs.RunPath(cfg.Paths.LogDir, run.ID)
			tail, offset, err := logs.Last(path, lines)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, line := range tail {
				fmt.Fprintln(out, line)
			}
			if !follow {
				return nil
			}

			err = logs.Follow(cmd.Context(), path, offset, 250*time.Millisecond, func(line string) {
				fmt.Fprintln(out, line)
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVar(&runID, "run", "", "Run ID or unique prefix (defaults to the latest run)")
	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "Number of trailing lines to print")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Keep printing new lines until interrupted")
	return cmd
}
