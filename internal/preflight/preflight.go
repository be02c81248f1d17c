package preflight

import (
	"context"

	"subtrans/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll checks the output directory and, when backend is non-nil, probes the
// translation backend with a single request.
func RunAll(ctx context.Context, cfg *config.Config, backend Translator) []Result {
	if cfg == nil {
		return nil
	}

	results := []Result{CheckDirectoryAccess("Output dir", cfg.Paths.OutputDir)}
	if backend != nil {
		results = append(results, CheckTranslator(ctx, "Backend "+cfg.Translate.Backend, backend))
	}
	return results
}
