package logs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func writeLines(t *testing.T, path string, lines ...string) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	for _, line := range lines {
		if _, err := f.WriteString(line + "\n"); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
}

func TestRunPath(t *testing.T) {
	if got := RunPath("/logs", "abc"); got != filepath.Join("/logs", "judgeboot-abc.log") {
		t.Fatalf("RunPath = %q", got)
	}
	if got := FileName(" "); got != "judgeboot.log" {
		t.Fatalf("FileName(blank) = %q", got)
	}
}

func TestLastReturnsTrailingLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")
	writeLines(t, path, "one", "two", "three", "four")

	tests := []struct {
		name string
		n    int
		want []string
	}{
		{name: "fewer than file", n: 2, want: []string{"three", "four"}},
		{name: "exactly file", n: 4, want: []string{"one", "two", "three", "four"}},
		{name: "more than file", n: 10, want: []string{"one", "two", "three", "four"}},
		{name: "zero", n: 0, want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, offset, err := Last(path, tt.n)
			if err != nil {
				t.Fatalf("Last: %v", err)
			}
			if diff := cmp.Diff(tt.want, lines); diff != "" {
				t.Fatalf("lines mismatch (-want +got):\n%s", diff)
			}
			if offset != int64(len("one\ntwo\nthree\nfour\n")) {
				t.Fatalf("offset = %d", offset)
			}
		})
	}
}

func TestLastMissingFile(t *testing.T) {
	_, _, err := Last(filepath.Join(t.TempDir(), "nope.log"), 5)
	if !errors.Is(err, ErrNoLogFile) {
		t.Fatalf("expected ErrNoLogFile, got %v", err)
	}
}

func TestFollowEmitsAppendedLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.log")
	writeLines(t, path, "before")
	_, offset, err := Last(path, 1)
	if err != nil {
		t.Fatalf("Last: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var (
		mu  sync.Mutex
		got []string
	)
	done := make(chan error, 1)
	go func() {
		done <- Follow(ctx, path, offset, 10*time.Millisecond, func(line string) {
			mu.Lock()
			got = append(got, line)
			if len(got) == 2 {
				cancel()
			}
			mu.Unlock()
		})
	}()

	writeLines(t, path, "after one", "after two")

	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Fatalf("Follow returned %v", err)
	}
	mu.Lock()
	defer mu.Unlock()
	if strings.Join(got, "|") != "after one|after two" {
		t.Fatalf("unexpected lines %q", got)
	}
}
