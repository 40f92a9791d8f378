package main

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"judgeboot/internal/logging"
	"judgeboot/internal/pipeline"
	"judgeboot/internal/preflight"
	"judgeboot/internal/vocab"
)

type buildOutput struct {
	pipeline.Summary
	LogPath    string `json:"log_path,omitempty"`
	LedgerPath string `json:"ledger_path"`
}

func newBuildCommand(ctx *commandContext) *cobra.Command {
	var (
		resume  bool
		judges  []string
		seed    uint64
		samples int
		skip    int
		jsonOut bool
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Clean, tokenize and bootstrap every judge folder",
		Long: `Build reads every judge folder under the input root, cleans and tokenizes
its files against the vocabulary, and writes bootstrap-resampled corpora to
<output_root>/<judge>/. Judges with unreadable files or no usable content are
listed as problematic at the end of the run.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			cfg := *loaded
			flags := cmd.Flags()
			if flags.Changed("seed") {
				cfg.Bootstrap.Seed = seed
			}
			if flags.Changed("samples") {
				cfg.Bootstrap.Samples = samples
			}
			if flags.Changed("skip") {
				cfg.Selection.Skip = skip
			}
			if len(judges) > 0 {
				cfg.Selection.Judges = trimNames(judges)
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			if err := cfg.EnsureDirectories(); err != nil {
				return fmt.Errorf("ensure directories: %w", err)
			}
			if err := preflight.Failures(preflight.RunAll(&cfg)); err != nil {
				return err
			}

			runID := uuid.NewString()
			runLog, err := logging.NewFromConfig(&cfg, runID)
			if err != nil {
				return fmt.Errorf("init logging: %w", err)
			}
			defer runLog.Close()
			logger, logPath := runLog.Logger, runLog.Path

			set, err := vocab.Load(cfg.Paths.VocabularyFile, vocab.Options{Lowercase: cfg.Tokenize.LowercaseVocabulary})
			if err != nil {
				return fmt.Errorf("load vocabulary: %w", err)
			}
			logger.Info("vocabulary loaded",
				logging.String(logging.FieldComponent, "vocab"),
				logging.String("path", cfg.Paths.VocabularyFile),
				logging.String("format", string(set.Format())),
				logging.Int("words", set.Len()),
			)
			filter := vocab.NewFilter(set, cfg.Tokenize.StopWords)

			store, err := ctx.openLedger()
			if err != nil {
				return err
			}
			defer store.Close()

			runner := pipeline.New(&cfg, filter, store, logger,
				pipeline.WithRunID(runID),
				pipeline.WithResume(resume),
				pipeline.WithProgress(progressFor(cmd.ErrOrStderr())),
			)
			summary, runErr := runner.Run(cmd.Context())
			if runErr != nil && summary.RunID == "" {
				return runErr
			}

			if jsonOut {
				if err := writeJSON(cmd, buildOutput{Summary: summary, LogPath: logPath, LedgerPath: store.Path()}); err != nil {
					return err
				}
			} else {
				renderBuildSummary(cmd.OutOrStdout(), summary, logPath)
			}
			return runErr
		},
	}

	cmd.Flags().BoolVar(&resume, "resume", false, "Skip judges already completed into this output root")
	cmd.Flags().StringSliceVar(&judges, "judge", nil, "Only process the named judge folder (repeatable)")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "Bootstrap seed (0 picks a fresh seed)")
	cmd.Flags().IntVar(&samples, "samples", 0, "Bootstrap samples per judge")
	cmd.Flags().IntVar(&skip, "skip", 0, "Skip this many judges from the front of the sorted list")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print the run summary as JSON")
	return cmd
}

func trimNames(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
