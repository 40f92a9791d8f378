package pipeline

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

// Tracker advances one progress display.
type Tracker interface {
	Increment()
	Done()
}

// ProgressFactory opens a tracker for a phase with a known number of steps.
type ProgressFactory func(description string, total int) Tracker

// NoProgress discards all progress updates.
func NoProgress(string, int) Tracker {
	return nopTracker{}
}

// ProgressFor returns terminal progress bars when f is a terminal and
// NoProgress otherwise.
func ProgressFor(f *os.File) ProgressFactory {
	if f == nil {
		return NoProgress
	}
	fd := f.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return TerminalProgress(f)
	}
	return NoProgress
}

// TerminalProgress renders colored progress bars to w.
func TerminalProgress(w io.Writer) ProgressFactory {
	return func(description string, total int) Tracker {
		bar := progressbar.NewOptions(total,
			progressbar.OptionSetWriter(w),
			progressbar.OptionSetDescription(color.BlueString(description)),
			progressbar.OptionSetItsString("items"),
			progressbar.OptionShowCount(),
			progressbar.OptionShowIts(),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "█",
				SaucerHead:    "█",
				SaucerPadding: "░",
				BarStart:      "[",
				BarEnd:        "]",
			}),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowElapsedTimeOnFinish(),
			progressbar.OptionSetRenderBlankState(true),
			progressbar.OptionOnCompletion(func() {
				fmt.Fprintln(w)
			}),
		)
		return barTracker{bar: bar}
	}
}

type barTracker struct {
	bar *progressbar.ProgressBar
}

func (t barTracker) Increment() {
	_ = t.bar.Add(1)
}

func (t barTracker) Done() {
	_ = t.bar.Finish()
}

type nopTracker struct{}

func (nopTracker) Increment() {}

func (nopTracker) Done() {}
