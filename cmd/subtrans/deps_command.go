package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"subtrans/internal/deps"
	"subtrans/internal/preflight"
	"subtrans/internal/services/ytdlp"
)

const versionProbeTimeout = 10 * time.Second

func newDepsCommand(ctx *commandContext) *cobra.Command {
	var probeBackend bool

	cmd := &cobra.Command{
		Use:   "deps",
		Short: "Check that yt-dlp, FFmpeg, and the output directory are usable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			statuses := preflight.CheckSystemDeps(cfg)

			versions := make(map[string]string, 1)
			if statuses[0].Available {
				probeCtx, cancel := context.WithTimeout(cmd.Context(), versionProbeTimeout)
				version, err := ytdlp.NewCLI(ytdlp.WithBinary(statuses[0].Path)).Version(probeCtx)
				cancel()
				if err == nil && version != "" {
					versions[statuses[0].Name] = version
				}
			}

			var backend preflight.Translator
			var backendErr error
			if probeBackend {
				backend, backendErr = translationBackend(cfg, "")
			}
			checks := preflight.RunAll(cmd.Context(), cfg, backend)
			if backendErr != nil {
				checks = append(checks, preflight.Result{Name: "Backend " + cfg.Translate.Backend, Detail: backendErr.Error()})
			}

			out := cmd.OutOrStdout()
			colorize := shouldColorize(out)
			for _, line := range dependencyLines(statuses, versions, colorize) {
				fmt.Fprintln(out, line)
			}
			for _, check := range checks {
				fmt.Fprintln(out, checkLine(check, colorize))
			}

			if missing := deps.MissingRequired(statuses); len(missing) > 0 {
				names := make([]string, 0, len(missing))
				for _, status := range missing {
					names = append(names, status.Name)
				}
				return fmt.Errorf("missing required dependencies: %s", strings.Join(names, ", "))
			}
			if probeBackend {
				if last := checks[len(checks)-1]; !last.Passed {
					return fmt.Errorf("translation backend check failed: %s", last.Detail)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&probeBackend, "probe-backend", false, "Also send one test request to the translation backend")
	return cmd
}

// checkLine renders a preflight result. A missing output directory is only a
// warning because runs create it.
func checkLine(check preflight.Result, colorize bool) string {
	kind := statusOK
	if !check.Passed {
		kind = statusError
		if strings.Contains(check.Detail, "does not exist") {
			kind = statusWarn
		}
	}
	return renderStatusLine(check.Name, kind, check.Detail, colorize)
}

func dependencyLines(statuses []deps.Status, versions map[string]string, colorize bool) []string {
	lines := make([]string, 0, len(statuses))
	for _, status := range statuses {
		if status.Available {
			message := fmt.Sprintf("Ready (command: %s)", status.Command)
			if version := versions[status.Name]; version != "" {
				message = fmt.Sprintf("Ready (command: %s, version %s)", status.Command, version)
			}
			lines = append(lines, renderStatusLine(status.Name, statusOK, message, colorize))
			continue
		}
		detail := strings.TrimSpace(status.Detail)
		if detail == "" {
			detail = "not available"
		}
		kind := statusError
		if status.Optional {
			kind = statusWarn
			detail = fmt.Sprintf("%s; %s", detail, strings.ToLower(status.Description))
		}
		lines = append(lines, renderStatusLine(status.Name, kind, detail, colorize))
	}
	return lines
}
