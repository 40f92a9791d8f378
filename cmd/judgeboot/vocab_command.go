package main

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"judgeboot/internal/vocab"
)

type vocabOutput struct {
	Path      string   `json:"path"`
	Format    string   `json:"format"`
	Words     int      `json:"words"`
	StopWords []string `json:"stop_words"`
	Sample    []string `json:"sample"`
}

func newVocabCommand(ctx *commandContext) *cobra.Command {
	vocabCmd := &cobra.Command{
		Use:   "vocab",
		Short: "Vocabulary utilities",
	}
	vocabCmd.AddCommand(newVocabInspectCommand(ctx))
	return vocabCmd
}

func newVocabInspectCommand(ctx *commandContext) *cobra.Command {
	var head int
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Load the vocabulary and show its size and first entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			set, err := vocab.Load(cfg.Paths.VocabularyFile, vocab.Options{Lowercase: cfg.Tokenize.LowercaseVocabulary})
			if err != nil {
				return fmt.Errorf("load vocabulary: %w", err)
			}

			out := vocabOutput{
				Path:      cfg.Paths.VocabularyFile,
				Format:    string(set.Format()),
				Words:     set.Len(),
				StopWords: cfg.Tokenize.StopWords,
				Sample:    set.Head(head),
			}
			if jsonOut {
				return writeJSON(cmd, out)
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Vocabulary: %s\n", out.Path)
			fmt.Fprintf(w, "Format:     %s\n", out.Format)
			fmt.Fprintf(w, "Words:      %s\n", humanize.Comma(int64(out.Words)))
			fmt.Fprintf(w, "Stop words: %s\n", strings.Join(out.StopWords, ", "))
			if len(out.Sample) > 0 {
				fmt.Fprintf(w, "First %d:    %s\n", len(out.Sample), strings.Join(out.Sample, " "))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&head, "head", "n", 10, "Number of leading entries to show")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Print vocabulary details as JSON")
	return cmd
}
