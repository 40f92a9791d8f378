package testsupport

import (
	"os"
	"path/filepath"
	"testing"
)

// MkdirAll creates dir and its parents or fails the test.
func MkdirAll(t testing.TB, dir string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
}

// WriteText writes content to path, creating parent directories.
func WriteText(t testing.TB, path, content string) {
	t.Helper()
	WriteBytes(t, path, []byte(content))
}

// WriteBytes writes raw bytes to path, creating parent directories.
func WriteBytes(t testing.TB, path string, content []byte) {
	t.Helper()
	MkdirAll(t, filepath.Dir(path))
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// WriteJudge creates a judge folder under root holding the given files
// (name -> content) and returns its path.
func WriteJudge(t testing.TB, root, judge string, files map[string]string) string {
	t.Helper()
	dir := filepath.Join(root, judge)
	MkdirAll(t, dir)
	for name, content := range files {
		WriteText(t, filepath.Join(dir, name), content)
	}
	return dir
}

// ReadText returns the contents of path or fails the test.
func ReadText(t testing.TB, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(content)
}
