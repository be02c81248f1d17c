package ytdlp

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"subtrans/internal/services"
)

func TestNewCLIWithBinary(t *testing.T) {
	cli := NewCLI(WithBinary("/opt/yt-dlp"))
	if cli.Binary() != "/opt/yt-dlp" {
		t.Fatalf("expected binary override to be applied, got %q", cli.Binary())
	}
	if NewCLI(WithBinary("  ")).Binary() != "yt-dlp" {
		t.Fatal("expected blank override to keep default binary")
	}
}

func TestBuildArgs(t *testing.T) {
	cli := NewCLI()
	args := cli.BuildArgs(Request{
		URL:              "https://youtu.be/abc",
		OutputDir:        "/tmp/subs",
		Language:         "de",
		IncludeAutomatic: true,
	})

	if args[0] != "--no-config" {
		t.Fatalf("expected --no-config first, got %v", args)
	}
	assertFlag(t, args, "--sub-langs", "de")
	assertFlag(t, args, "--sub-format", "srt/best")
	assertFlag(t, args, "--convert-subs", "srt")
	assertFlag(t, args, "--output", filepath.Join("/tmp/subs", "%(title).90s [%(id)s].%(ext)s"))
	for _, flag := range []string{"--skip-download", "--write-subs", "--write-auto-subs", "--dump-single-json", "--no-simulate", "--no-warnings"} {
		if findArg(args, flag) < 0 {
			t.Fatalf("expected %s in args %v", flag, args)
		}
	}
	if args[len(args)-2] != "--" || args[len(args)-1] != "https://youtu.be/abc" {
		t.Fatalf("expected URL after --, got %v", args)
	}
}

func TestBuildArgsDefaultsLanguageAndHonoursWarnings(t *testing.T) {
	cli := NewCLI(WithShowWarnings(true))
	args := cli.BuildArgs(Request{URL: "u", OutputDir: "/out"})
	assertFlag(t, args, "--sub-langs", "en")
	if findArg(args, "--no-warnings") >= 0 {
		t.Fatalf("expected warnings left enabled, got %v", args)
	}
	if findArg(args, "--write-auto-subs") >= 0 {
		t.Fatalf("expected automatic captions off, got %v", args)
	}
}

func TestDownloadRequiresURLAndOutputDir(t *testing.T) {
	cli := NewCLI()
	if _, err := cli.Download(context.Background(), Request{OutputDir: "/tmp"}); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error for empty url, got %v", err)
	}
	if _, err := cli.Download(context.Background(), Request{URL: "u"}); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error for empty output dir, got %v", err)
	}
}

func TestDownloadParsesRequestedSubtitles(t *testing.T) {
	setHelperCommand(t, "success")

	result, err := NewCLI().Download(context.Background(), Request{URL: "https://youtu.be/abc", OutputDir: "/tmp/subs"})
	if err != nil {
		t.Fatalf("Download returned error: %v", err)
	}
	if result.ID != "abc" || result.Title != "Demo" {
		t.Fatalf("unexpected metadata: %+v", result)
	}
	sub, ok := result.RequestedSubtitles["en"]
	if !ok {
		t.Fatalf("expected en entry, got %+v", result.RequestedSubtitles)
	}
	if sub.Filepath != "/tmp/subs/Demo [abc].en.srt" || sub.Ext != "srt" {
		t.Fatalf("unexpected subtitle entry: %+v", sub)
	}
	if len(result.Warnings) != 2 {
		t.Fatalf("expected stdout and stderr warnings, got %v", result.Warnings)
	}
}

func TestDownloadFailureIsExternalToolError(t *testing.T) {
	setHelperCommand(t, "failure")

	_, err := NewCLI().Download(context.Background(), Request{URL: "bad", OutputDir: "/tmp"})
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
	if got := err.Error(); !strings.Contains(got, "ERROR: unsupported URL") {
		t.Fatalf("expected stderr summary in error, got %q", got)
	}
}

func TestDownloadWithoutJSONFails(t *testing.T) {
	setHelperCommand(t, "nojson")

	if _, err := NewCLI().Download(context.Background(), Request{URL: "u", OutputDir: "/tmp"}); !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
}

func TestDownloadMissingBinary(t *testing.T) {
	cli := NewCLI(WithBinary(filepath.Join(t.TempDir(), "missing-yt-dlp")))
	_, err := cli.Download(context.Background(), Request{URL: "u", OutputDir: "/tmp"})
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected external tool error, got %v", err)
	}
}

func TestParseOutputNullRequestedSubtitles(t *testing.T) {
	result, err := ParseOutput([]byte(`{"id":"x","title":"t","requested_subtitles":null}` + "\n"))
	if err != nil {
		t.Fatalf("ParseOutput returned error: %v", err)
	}
	if len(result.RequestedSubtitles) != 0 {
		t.Fatalf("expected no requested subtitles, got %+v", result.RequestedSubtitles)
	}
}

func TestVersion(t *testing.T) {
	setHelperCommand(t, "version")

	version, err := NewCLI().Version(context.Background())
	if err != nil {
		t.Fatalf("Version returned error: %v", err)
	}
	if version != "2025.01.15" {
		t.Fatalf("unexpected version %q", version)
	}
}

func setHelperCommand(t *testing.T, mode string) {
	t.Helper()
	original := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		cmd := exec.CommandContext(ctx, os.Args[0], "-test.run=TestHelperProcess")
		cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1", fmt.Sprintf("YTDLP_HELPER_MODE=%s", mode))
		return cmd
	}
	t.Cleanup(func() {
		commandContext = original
	})
}

func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}

	switch os.Getenv("YTDLP_HELPER_MODE") {
	case "success":
		fmt.Println("[info] abc: Writing video subtitles")
		fmt.Println(`{"id":"abc","title":"Demo","requested_subtitles":{"en":{"ext":"srt","name":"English","filepath":"/tmp/subs/Demo [abc].en.srt"}}}`)
		fmt.Fprintln(os.Stderr, "WARNING: nsig extraction failed")
		os.Exit(0)
	case "failure":
		fmt.Fprintln(os.Stderr, "ERROR: unsupported URL: bad")
		os.Exit(1)
	case "nojson":
		fmt.Println("nothing to see")
		os.Exit(0)
	case "version":
		fmt.Println("2025.01.15")
		os.Exit(0)
	default:
		os.Exit(0)
	}
}

func assertFlag(t *testing.T, args []string, flag, value string) {
	t.Helper()
	idx := findArg(args, flag)
	if idx < 0 || idx+1 >= len(args) {
		t.Fatalf("expected %s in args %v", flag, args)
	}
	if args[idx+1] != value {
		t.Fatalf("expected %s %q, got %q", flag, value, args[idx+1])
	}
}

func findArg(args []string, target string) int {
	for i, arg := range args {
		if arg == target {
			return i
		}
	}
	return -1
}
