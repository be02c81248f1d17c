package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"subtrans/internal/config"
	"subtrans/internal/language"
	"subtrans/internal/logging"
	"subtrans/internal/services"
	"subtrans/internal/services/ytdlp"
	"subtrans/internal/subtitles"
)

type pipelineOptions struct {
	target        string
	source        string
	outputDir     string
	backend       string
	fromClipboard bool
}

// languagePair holds the normalized languages for one run. source is empty
// when auto-detection was requested.
type languagePair struct {
	source string
	target string
}

func resolveLanguages(cfg *config.Config, sourceFlag, targetFlag string) (languagePair, error) {
	target := language.Normalize(targetFlag)
	if err := language.Validate(target); err != nil {
		return languagePair{}, services.Wrap(services.ErrValidation, "cli", "target", "invalid --target", err)
	}
	source := language.Normalize(sourceFlag)
	switch source {
	case "":
		source = cfg.Translate.SourceLanguage
	case language.Auto:
		source = ""
	default:
		if err := language.Validate(source); err != nil {
			return languagePair{}, services.Wrap(services.ErrValidation, "cli", "source", "invalid --source", err)
		}
	}
	return languagePair{source: source, target: target}, nil
}

// newRunContext stamps a fresh run ID on the command context.
func newRunContext(cmd *cobra.Command) (context.Context, string) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	runID := uuid.NewString()
	return services.WithRequestID(ctx, runID), runID
}

func resolveOutputDir(cfg *config.Config, flagValue string) (string, error) {
	dir := strings.TrimSpace(flagValue)
	if dir == "" {
		return cfg.Paths.OutputDir, nil
	}
	expanded, err := config.ExpandPath(dir)
	if err != nil {
		return "", fmt.Errorf("resolve output directory: %w", err)
	}
	return expanded, nil
}

func runPipeline(cmd *cobra.Command, ctx *commandContext, opts pipelineOptions, args []string) (err error) {
	reference, err := resolveReference(args, opts.fromClipboard)
	if err != nil {
		return err
	}
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	langs, err := resolveLanguages(cfg, opts.source, opts.target)
	if err != nil {
		return err
	}
	backend, err := translationBackend(cfg, opts.backend)
	if err != nil {
		return err
	}
	outputDir, err := resolveOutputDir(cfg, opts.outputDir)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return services.Wrap(services.ErrConfiguration, "cli", "outdir", fmt.Sprintf("create %s", outputDir), err)
	}
	logger, err := ctx.logger(cmd, cfg)
	if err != nil {
		return err
	}

	runCtx, runID := newRunContext(cmd)
	logger = logging.WithContext(runCtx, logger)
	defer func() { reportFailure(logger, err) }()
	downloader := ytdlp.NewCLI(
		ytdlp.WithBinary(cfg.Download.Binary),
		ytdlp.WithTimeout(time.Duration(cfg.Download.TimeoutSeconds)*time.Second),
		ytdlp.WithShowWarnings(cfg.Download.ShowWarnings),
		ytdlp.WithLogger(logger),
	)
	logger.Debug("run started",
		logging.String("run_id", runID),
		logging.String("reference", reference),
		logging.String("output_dir", outputDir),
		logging.String("target", langs.target),
		logging.String("yt_dlp", downloader.Binary()),
	)

	acquirer := subtitles.NewAcquirer(downloader, subtitles.AcquireConfig{
		DefaultLanguage:  cfg.Download.DefaultLanguage,
		OutputTemplate:   cfg.Download.OutputTemplate,
		SubtitleFormat:   cfg.Download.SubtitleFormat,
		IncludeAutomatic: cfg.Download.IncludeAutomatic,
	}, logger)

	srtPath, err := acquirer.Acquire(services.WithStage(runCtx, "acquire"), reference, outputDir, langs.source)
	if err != nil {
		return fmt.Errorf("acquire subtitles: %w", err)
	}

	return translateAndReport(runCtx, cmd, logger, backend, srtPath, langs)
}

// reportFailure logs a fatal run error with a next-step hint for the user.
// Cancellation is not an error worth reporting.
func reportFailure(logger *slog.Logger, err error) {
	if err == nil || errors.Is(err, context.Canceled) {
		return
	}
	logging.ErrorWithContext(logger, "subtitle run failed", "run_failed",
		logging.Error(err),
		logging.String(logging.FieldErrorHint, services.Hint(err)),
	)
}

func translateAndReport(ctx context.Context, cmd *cobra.Command, logger *slog.Logger, backend subtitles.LineTranslator, srtPath string, langs languagePair) error {
	translator := subtitles.NewTranslator(backend, logger)
	started := time.Now()
	result, err := translator.TranslateFile(services.WithStage(ctx, "translate"), srtPath, langs.target, langs.source)
	if err != nil {
		return fmt.Errorf("translate subtitles: %w", err)
	}
	logger.Info("translation written",
		logging.String("path", result.OutputPath),
		logging.Duration("elapsed", time.Since(started)),
	)
	fmt.Fprintf(cmd.OutOrStdout(), "saved: %s\n", result.OutputPath)
	return nil
}
