package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"subtrans/internal/deps"
	"subtrans/internal/testsupport"
)

func TestRenderStatusLineNoColor(t *testing.T) {
	got := renderStatusLine("yt-dlp", statusError, "binary missing", false)
	want := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, "yt-dlp:", "[ERROR] binary missing")
	if got != want {
		t.Fatalf("renderStatusLine mismatch\n got: %q\nwant: %q", got, want)
	}
}

func TestRenderStatusLineWithColor(t *testing.T) {
	got := renderStatusLine("yt-dlp", statusOK, "Ready", true)
	if !strings.HasPrefix(got, ansiGreen) {
		t.Fatalf("expected green prefix, got %q", got)
	}
	if !strings.HasSuffix(got, ansiReset) {
		t.Fatalf("expected reset suffix, got %q", got)
	}
}

func TestDependencyLines(t *testing.T) {
	statuses := []deps.Status{
		{Name: "yt-dlp", Command: "yt-dlp", Available: true},
		{Name: "FFmpeg", Command: "ffmpeg", Optional: true, Detail: `binary "ffmpeg" not found`, Description: "Used by yt-dlp to convert subtitles to SRT"},
		{Name: "other", Command: "other"},
	}
	lines := dependencyLines(statuses, map[string]string{"yt-dlp": "2025.01.15"}, false)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	requireContains(t, lines[0], "[OK] Ready (command: yt-dlp, version 2025.01.15)")
	requireContains(t, lines[1], "[WARN] binary \"ffmpeg\" not found; used by yt-dlp")
	requireContains(t, lines[2], "[ERROR] not available")
}

func TestShouldColorizeNonFile(t *testing.T) {
	if shouldColorize(io.Discard) {
		t.Fatalf("expected non-file writer to disable color")
	}
}

func TestDepsCommandReportsVersion(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries())
	configPath := filepath.Join(testsupport.BaseDir(cfg), "config.toml")
	writeTestConfig(t, configPath, cfg)

	out, _, err := runCLI(t, []string{"deps"}, configPath)
	if err != nil {
		t.Fatalf("deps: %v", err)
	}
	requireContains(t, out, "yt-dlp:")
	requireContains(t, out, "version 2025.01.15")
	requireContains(t, out, "FFmpeg:")
}

func TestDepsCommandFailsWhenYtDlpMissing(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	cfg.Download.Binary = filepath.Join(testsupport.BaseDir(cfg), "no-such-yt-dlp")
	configPath := filepath.Join(testsupport.BaseDir(cfg), "config.toml")
	writeTestConfig(t, configPath, cfg)

	out, _, err := runCLI(t, []string{"deps"}, configPath)
	if err == nil {
		t.Fatal("expected missing dependency error")
	}
	requireContains(t, err.Error(), "yt-dlp")
	requireContains(t, out, "[ERROR]")
}

func TestLanguagesCommand(t *testing.T) {
	out, _, err := runCLI(t, []string{"languages"}, "")
	if err != nil {
		t.Fatalf("languages: %v", err)
	}
	requireContains(t, out, "Code")
	requireContains(t, out, "Persian")
	requireContains(t, out, "fas")
	requireContains(t, out, "pt-BR")
	if strings.Contains(out, ansiReset) {
		t.Fatalf("expected no colour codes for a buffer, got %q", out)
	}
}

func TestRenderTablePadsShortRows(t *testing.T) {
	out := renderTable([]string{"A", "B"}, [][]string{{"only"}}, []columnAlignment{alignLeft, alignRight}, false)
	requireContains(t, out, "only")
	if renderTable(nil, nil, nil, false) != "" {
		t.Fatal("expected empty table without headers")
	}
}

func TestDepsCommandProbesBackend(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries())
	server := newTranslateServer(t, map[string]string{"Good morning": "Bonjour"})
	cfg.Translate.GoogleBaseURL = server.URL
	configPath := filepath.Join(testsupport.BaseDir(cfg), "config.toml")
	writeTestConfig(t, configPath, cfg)

	out, _, err := runCLI(t, []string{"deps", "--probe-backend"}, configPath)
	if err != nil {
		t.Fatalf("deps --probe-backend: %v", err)
	}
	requireContains(t, out, "Backend google:")
	requireContains(t, out, "reachable")
	requireContains(t, out, "[WARN]")
}

func TestDepsCommandProbeBackendFailure(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries())
	server := newTranslateServer(t, map[string]string{})
	cfg.Translate.GoogleBaseURL = server.URL
	configPath := filepath.Join(testsupport.BaseDir(cfg), "config.toml")
	writeTestConfig(t, configPath, cfg)

	_, _, err := runCLI(t, []string{"deps", "--probe-backend"}, configPath)
	if err == nil {
		t.Fatal("expected backend probe failure")
	}
	requireContains(t, err.Error(), "translation backend check failed")
}
