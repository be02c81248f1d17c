package testsupport

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// SampleSRT is a two-cue subtitle file with LF line endings.
const SampleSRT = "1\n00:00:01,000 --> 00:00:02,000\nHello world\n\n" +
	"2\n00:00:03,500 --> 00:00:05,000\nHow are you?\nFine, thanks.\n\n"

// WriteFile writes content to dir/name, creating dir, and returns the path.
func WriteFile(t testing.TB, dir, name, content string) string {
	t.Helper()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// Touch sets the modification time of path to now minus age.
func Touch(t testing.TB, path string, age time.Duration) {
	t.Helper()

	when := time.Now().Add(-age)
	if err := os.Chtimes(path, when, when); err != nil {
		t.Fatalf("chtimes %s: %v", path, err)
	}
}

// ReadFile returns the content of path as a string.
func ReadFile(t testing.TB, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}
