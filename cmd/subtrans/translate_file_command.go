package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"subtrans/internal/logging"
)

func newTranslateFileCommand(ctx *commandContext) *cobra.Command {
	var target string
	var source string
	var backendName string

	cmd := &cobra.Command{
		Use:   "translate-file <file.srt>",
		Short: "Translate a local SRT file without downloading",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("provide the path to the subtitle file. Example: subtrans translate-file movie.srt --target fa\nRun subtrans translate-file --help for more details")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			sourceFile := strings.TrimSpace(args[0])
			if sourceFile == "" {
				return fmt.Errorf("subtitle file path is required")
			}
			sourceFile, _ = filepath.Abs(sourceFile)
			info, err := os.Stat(sourceFile)
			if err != nil {
				if os.IsNotExist(err) {
					return fmt.Errorf("subtitle file %q not found", sourceFile)
				}
				return fmt.Errorf("stat subtitle file: %w", err)
			}
			if info.IsDir() {
				return fmt.Errorf("subtitle path %q is a directory", sourceFile)
			}

			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			langs, err := resolveLanguages(cfg, source, target)
			if err != nil {
				return err
			}
			backend, err := translationBackend(cfg, backendName)
			if err != nil {
				return err
			}
			logger, err := ctx.logger(cmd, cfg)
			if err != nil {
				return err
			}
			runCtx, runID := newRunContext(cmd)
			logger = logging.WithContext(runCtx, logger)
			defer func() { reportFailure(logger, err) }()
			logger.Debug("translate-file started",
				logging.String("run_id", runID),
				logging.String("source_file", sourceFile),
			)
			return translateAndReport(runCtx, cmd, logger, backend, sourceFile, langs)
		},
	}

	cmd.Flags().StringVarP(&target, "target", "t", "", "Target language code")
	cmd.Flags().StringVarP(&source, "source", "s", "", "Source language code; omitted means auto-detect")
	cmd.Flags().StringVar(&backendName, "backend", "", "Translation backend: google or llm (default translate.backend)")
	_ = cmd.MarkFlagRequired("target")
	return cmd
}
