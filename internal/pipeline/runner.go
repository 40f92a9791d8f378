package pipeline

import (
	"log/slog"
	"time"

	"judgeboot/internal/bootstrap"
	"judgeboot/internal/config"
	"judgeboot/internal/ledger"
	"judgeboot/internal/logging"
	"judgeboot/internal/vocab"
)

// Runner executes the judge pipeline for one configuration.
type Runner struct {
	cfg      *config.Config
	filter   *vocab.Filter
	store    *ledger.Store
	logger   *slog.Logger
	progress ProgressFactory
	writer   *bootstrap.Writer
	seed     uint64
	runID    string
	resume   bool
	now      func() time.Time
}

// Option configures optional Runner behavior.
type Option func(*Runner)

// WithProgress sets the progress display used for each phase.
func WithProgress(factory ProgressFactory) Option {
	return func(r *Runner) {
		if factory != nil {
			r.progress = factory
		}
	}
}

// WithResume skips judges the ledger already shows as completed for the
// same output root.
func WithResume(enabled bool) Option {
	return func(r *Runner) {
		r.resume = enabled
	}
}

// WithRunID fixes the ID recorded for the run.
func WithRunID(id string) Option {
	return func(r *Runner) {
		r.runID = id
	}
}

// New constructs a Runner. A zero bootstrap seed in cfg is replaced by a
// fresh random seed, reported by Seed.
func New(cfg *config.Config, filter *vocab.Filter, store *ledger.Store, logger *slog.Logger, opts ...Option) *Runner {
	if logger == nil {
		logger = logging.NewNop()
	}
	r := &Runner{
		cfg:      cfg,
		filter:   filter,
		store:    store,
		logger:   logging.NewComponentLogger(logger, "pipeline"),
		progress: NoProgress,
		seed:     cfg.Bootstrap.Seed,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.seed == 0 {
		r.seed = bootstrap.NewSeed()
	}
	r.writer = &bootstrap.Writer{
		Root:      cfg.Paths.OutputRoot,
		Samples:   cfg.Bootstrap.Samples,
		Separator: cfg.Bootstrap.DocumentSeparator,
		FileName:  cfg.SampleFileName,
	}
	return r
}

// Seed returns the seed driving every resample in this runner.
func (r *Runner) Seed() uint64 {
	return r.seed
}
