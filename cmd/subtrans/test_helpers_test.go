package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"subtrans/internal/config"
)

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir config dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

// newTranslateServer serves gtx responses from translations. Unknown inputs
// get a 500 so callers can exercise the keep-original path.
func newTranslateServer(t *testing.T, translations map[string]string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("q")
		translated, ok := translations[q]
		if !ok {
			http.Error(w, "unexpected input", http.StatusInternalServerError)
			return
		}
		payload, _ := json.Marshal([]any{[][]any{{translated, q}}})
		_, _ = w.Write(payload)
	}))
	t.Cleanup(server.Close)
	return server
}

// writeYtDlpStub writes a shell script that mimics yt-dlp: it writes an SRT
// file next to the --output template and prints the info JSON. When
// reportPath is false the JSON omits the file path.
func writeYtDlpStub(t *testing.T, dir string, reportPath bool) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell stub requires a POSIX shell")
	}
	reported := "$srt"
	if !reportPath {
		reported = ""
	}
	script := strings.Join([]string{
		"#!/bin/sh",
		`out=""`,
		`while [ $# -gt 0 ]; do`,
		`  case "$1" in`,
		`    --output) out="$2"; shift ;;`,
		`  esac`,
		`  shift`,
		`done`,
		`dir=$(dirname "$out")`,
		`srt="$dir/clip [abc123].en.srt"`,
		`printf '1\n00:00:01,000 --> 00:00:02,000\nHello world\n\n' > "$srt"`,
		`printf '{"id":"abc123","title":"clip","requested_subtitles":{"en":{"ext":"srt","filepath":"%s"}}}\n' "` + reported + `"`,
		"",
	}, "\n")
	path := filepath.Join(dir, "yt-dlp-stub")
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write yt-dlp stub: %v", err)
	}
	return path
}

func writeFailingYtDlpStub(t *testing.T, dir string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell stub requires a POSIX shell")
	}
	script := "#!/bin/sh\necho 'ERROR: [generic] Unsupported URL: nope' >&2\nexit 1\n"
	path := filepath.Join(dir, "yt-dlp-failing")
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write yt-dlp stub: %v", err)
	}
	return path
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
