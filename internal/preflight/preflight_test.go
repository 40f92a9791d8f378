package preflight

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"judgeboot/internal/testsupport"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if !strings.Contains(result.Detail, "does not exist") {
		t.Fatalf("unexpected detail %q", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckReadableDirectory_Empty(t *testing.T) {
	result := CheckReadableDirectory("input", "")
	if result.Passed {
		t.Fatal("expected failure for unset path")
	}
}

func TestCheckReadableFile(t *testing.T) {
	dir := t.TempDir()
	f := filepath.Join(dir, "vocab.txt")
	if err := os.WriteFile(f, []byte("court\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if result := CheckReadableFile("vocab", f); !result.Passed {
		t.Fatalf("expected pass, got: %s", result.Detail)
	}
	if result := CheckReadableFile("vocab", dir); result.Passed {
		t.Fatal("expected failure for directory")
	}
	if result := CheckReadableFile("vocab", filepath.Join(dir, "missing.pkl")); result.Passed {
		t.Fatal("expected failure for missing file")
	}
}

func TestRunAllPassesForPreparedConfig(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}

	results := RunAll(cfg)
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	if err := Failures(results); err != nil {
		t.Fatalf("expected all checks to pass: %v", err)
	}
}

func TestFailuresListsEveryFailedCheck(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Paths.InputRoot = filepath.Join(testsupport.BaseDir(cfg), "missing-judges")
	cfg.Paths.VocabularyFile = filepath.Join(testsupport.BaseDir(cfg), "missing.pkl")
	if err := os.MkdirAll(cfg.Paths.OutputRoot, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(cfg.Paths.StateDir, 0o755); err != nil {
		t.Fatal(err)
	}

	err := Failures(RunAll(cfg))
	if err == nil {
		t.Fatal("expected preflight failure")
	}
	msg := err.Error()
	for _, want := range []string{"Input root", "Vocabulary file"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("expected %q in %q", want, msg)
		}
	}
	if strings.Contains(msg, "Output root") {
		t.Fatalf("output root should pass: %q", msg)
	}
}

func TestRunAllNilConfig(t *testing.T) {
	if results := RunAll(nil); results != nil {
		t.Fatalf("expected nil results, got %v", results)
	}
}
