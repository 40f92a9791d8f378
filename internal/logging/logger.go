package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"judgeboot/internal/config"
	"judgeboot/internal/logs"
)

// Options describes logger construction parameters.
type Options struct {
	Level       string
	Format      string
	Development bool
	// Writer receives log output; stdout when nil.
	Writer io.Writer
}

// New constructs a slog logger using the provided options.
func New(opts Options) (*slog.Logger, error) {
	level := parseLevel(opts.Level)
	levelVar := new(slog.LevelVar)
	levelVar.Set(level)

	outputWriter := opts.Writer
	if outputWriter == nil {
		outputWriter = os.Stdout
	}

	addSource := opts.Development || level <= slog.LevelDebug

	format := strings.ToLower(strings.TrimSpace(opts.Format))
	if format == "" {
		format = "console"
	}

	var handler slog.Handler
	switch format {
	case "json":
		handler = newJSONHandler(outputWriter, levelVar, addSource)
	case "console":
		handler = newPrettyHandler(outputWriter, levelVar, addSource)
	default:
		return nil, fmt.Errorf("log format: unsupported value %q", opts.Format)
	}

	return slog.New(handler), nil
}

// RunLog is the logger for one pipeline run. Close releases the run's log
// file, if one was opened.
type RunLog struct {
	Logger *slog.Logger
	// Path is the run's log file, empty when no log directory is configured.
	Path string
	file *os.File
}

// Close closes the run log file. It is safe to call more than once.
func (l *RunLog) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

// NewFromConfig creates a logger for a pipeline run. Output always goes to
// stderr so command output on stdout stays machine readable; when a log
// directory is configured each run also gets its own file, which the caller
// releases with Close.
func NewFromConfig(cfg *config.Config, runID string) (*RunLog, error) {
	if cfg == nil {
		logger, err := New(Options{Level: "info", Format: "console", Writer: os.Stderr})
		if err != nil {
			return nil, err
		}
		return &RunLog{Logger: logger}, nil
	}

	run := &RunLog{}
	var writer io.Writer = os.Stderr
	if cfg.Paths.LogDir != "" {
		run.Path = logs.RunPath(cfg.Paths.LogDir, runID)
		file, err := openLogFile(run.Path)
		if err != nil {
			return nil, err
		}
		run.file = file
		writer = io.MultiWriter(os.Stderr, file)
	}

	logger, err := New(Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Writer: writer,
	})
	if err != nil {
		_ = run.Close()
		return nil, err
	}
	run.Logger = logger
	return run, nil
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o664)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	return file, nil
}

func newJSONHandler(w io.Writer, lvl *slog.LevelVar, addSource bool) slog.Handler {
	opts := slog.HandlerOptions{
		Level:     lvl,
		AddSource: addSource,
		ReplaceAttr: func(groups []string, attr slog.Attr) slog.Attr {
			switch attr.Key {
			case slog.TimeKey:
				attr.Key = "ts"
				if attr.Value.Kind() == slog.KindTime {
					attr.Value = slog.StringValue(attr.Value.Time().UTC().Format(time.RFC3339))
				}
			case slog.LevelKey:
				attr.Value = slog.StringValue(strings.ToLower(attr.Value.String()))
			case slog.SourceKey:
				if src, ok := attr.Value.Any().(*slog.Source); ok && src != nil {
					attr.Value = slog.StringValue(fmt.Sprintf("%s:%d", filepath.Base(src.File), src.Line))
				}
			}
			return attr
		},
	}
	return slog.NewJSONHandler(w, &opts)
}
