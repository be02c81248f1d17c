package preflight

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"time"

	"subtrans/internal/config"
	"subtrans/internal/deps"
)

const translatorProbeTimeout = 30 * time.Second

// Translator is the subset of a translation backend the probe needs.
type Translator interface {
	Translate(ctx context.Context, text, source, target string) (string, error)
}

// CheckTranslator sends one short English phrase to the backend and expects
// a non-empty answer. It makes a single attempt.
func CheckTranslator(ctx context.Context, name string, backend Translator) Result {
	checkCtx, cancel := context.WithTimeout(ctx, translatorProbeTimeout)
	defer cancel()

	translated, err := backend.Translate(checkCtx, "Good morning", "en", "fr")
	if err != nil {
		return Result{Name: name, Detail: summarizeError(err)}
	}
	if strings.TrimSpace(translated) == "" {
		return Result{Name: name, Detail: "backend returned an empty translation"}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("reachable (%q)", translated)}
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist; it is created on the first run)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := checkReadWrite(path); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckSystemDeps evaluates the external binaries for the given config.
func CheckSystemDeps(cfg *config.Config) []deps.Status {
	statuses := deps.CheckBinaries([]deps.Requirement{deps.YtDlpRequirement(cfg.Download.Binary)})
	return append(statuses, deps.CheckFFmpegForYtDlp(cfg.Download.Binary))
}

func summarizeError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return "probe timed out (translation service unresponsive)"
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return "probe timed out (translation service unreachable)"
	}
	return err.Error()
}
