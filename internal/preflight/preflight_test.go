package preflight

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"subtrans/internal/testsupport"
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
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
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

func TestCheckTranslator_OK(t *testing.T) {
	backend := &testsupport.FakeTranslator{Responses: map[string]string{"Good morning": "Bonjour"}}
	result := CheckTranslator(context.Background(), "Backend", backend)
	if !result.Passed {
		t.Fatalf("expected pass, got: %s", result.Detail)
	}
	calls := backend.Calls()
	if len(calls) != 1 || calls[0].Source != "en" || calls[0].Target != "fr" {
		t.Fatalf("unexpected probe calls %+v", calls)
	}
}

func TestCheckTranslator_Failure(t *testing.T) {
	backend := &testsupport.FakeTranslator{Failures: map[string]error{"Good morning": errors.New("http 403")}}
	result := CheckTranslator(context.Background(), "Backend", backend)
	if result.Passed {
		t.Fatal("expected failure")
	}
	if result.Detail != "http 403" {
		t.Fatalf("unexpected detail %q", result.Detail)
	}
}

func TestCheckTranslator_Timeout(t *testing.T) {
	backend := &testsupport.FakeTranslator{Failures: map[string]error{"Good morning": context.DeadlineExceeded}}
	result := CheckTranslator(context.Background(), "Backend", backend)
	if result.Passed || result.Detail != "probe timed out (translation service unresponsive)" {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestRunAll_NilConfig(t *testing.T) {
	if results := RunAll(context.Background(), nil, nil); results != nil {
		t.Fatal("expected nil results for nil config")
	}
}

func TestRunAll_WithoutBackend(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	if err := cfg.EnsureOutputDir(); err != nil {
		t.Fatal(err)
	}

	results := RunAll(context.Background(), cfg, nil)
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if !results[0].Passed {
		t.Errorf("check %q failed: %s", results[0].Name, results[0].Detail)
	}
}

func TestRunAll_IncludesBackendProbe(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	backend := &testsupport.FakeTranslator{Passthrough: true}

	results := RunAll(context.Background(), cfg, backend)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[1].Name != "Backend google" || !results[1].Passed {
		t.Fatalf("unexpected backend result %+v", results[1])
	}
}

func TestCheckSystemDeps(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithStubbedBinaries())
	statuses := CheckSystemDeps(cfg)
	if len(statuses) != 2 {
		t.Fatalf("expected yt-dlp and FFmpeg statuses, got %d", len(statuses))
	}
	if statuses[0].Name != "yt-dlp" || !statuses[0].Available {
		t.Fatalf("expected stubbed yt-dlp to be available, got %+v", statuses[0])
	}
	if statuses[1].Name != "FFmpeg" || !statuses[1].Optional {
		t.Fatalf("unexpected FFmpeg status %+v", statuses[1])
	}
}
