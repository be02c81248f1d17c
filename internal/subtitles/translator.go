package subtitles

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"subtrans/internal/fileutil"
	"subtrans/internal/language"
	"subtrans/internal/logging"
	"subtrans/internal/services"
)

// LineTranslator translates a single line of text. An empty or "auto"
// source asks the backend to detect the language.
type LineTranslator interface {
	Translate(ctx context.Context, text, source, target string) (string, error)
}

// Result summarizes one translation pass.
type Result struct {
	OutputPath string
	Translated int
	Kept       int
	Structural int
}

// Translator rewrites SRT files line by line.
type Translator struct {
	backend LineTranslator
	logger  *slog.Logger
}

// NewTranslator constructs a Translator around backend.
func NewTranslator(backend LineTranslator, logger *slog.Logger) *Translator {
	return &Translator{
		backend: backend,
		logger:  logging.NewComponentLogger(logger, "translator"),
	}
}

var foldNewlines = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// TranslateFile writes OutputPath(sourceFile, targetLanguage) with every text
// line translated. Lines are processed in order, one backend call at a time.
// The output appears only after the whole file was processed; a cancelled
// context leaves no output behind.
func (t *Translator) TranslateFile(ctx context.Context, sourceFile, targetLanguage, sourceLanguage string) (Result, error) {
	var result Result
	if t.backend == nil {
		return result, services.Wrap(services.ErrConfiguration, "translate", "backend", "no translation backend configured", nil)
	}
	target := strings.TrimSpace(targetLanguage)
	if target == "" {
		return result, services.Wrap(services.ErrValidation, "translate", "target", "target language required", nil)
	}
	source := strings.TrimSpace(sourceLanguage)
	if source == "" {
		source = language.Auto
	}

	in, err := os.Open(sourceFile)
	if err != nil {
		marker := services.ErrTransient
		if errors.Is(err, fs.ErrNotExist) {
			marker = services.ErrNotFound
		}
		return result, services.Wrap(marker, "translate", "open", sourceFile, err)
	}
	defer in.Close()

	result.OutputPath = OutputPath(sourceFile, target)
	out, err := fileutil.CreateAtomic(result.OutputPath, 0o644)
	if err != nil {
		return result, services.Wrap(services.ErrTransient, "translate", "create output", result.OutputPath, err)
	}
	defer out.Abort() //nolint:errcheck

	logger := logging.WithContext(ctx, t.logger)
	start := time.Now()
	reader := newLineReader(in)
	writer := bufio.NewWriter(out)
	lineNo := 0
	for {
		raw, readErr := reader.ReadString('\n')
		if readErr != nil && !errors.Is(readErr, io.EOF) {
			return result, services.Wrap(services.ErrTransient, "translate", "read", sourceFile, readErr)
		}
		if raw != "" {
			lineNo++
			rendered, err := t.renderLine(ctx, logger, raw, lineNo, source, target, &result)
			if err != nil {
				return result, err
			}
			if _, err := writer.WriteString(rendered); err != nil {
				return result, services.Wrap(services.ErrTransient, "translate", "write", result.OutputPath, err)
			}
		}
		if readErr != nil {
			break
		}
	}

	if err := writer.Flush(); err != nil {
		return result, services.Wrap(services.ErrTransient, "translate", "write", result.OutputPath, err)
	}
	if err := out.Commit(); err != nil {
		return result, services.Wrap(services.ErrTransient, "translate", "commit", result.OutputPath, err)
	}

	logger.Debug("subtitle translation finished",
		logging.String("output", result.OutputPath),
		logging.Int("lines", lineNo),
		logging.Int("translated", result.Translated),
		logging.Int("kept_original", result.Kept),
		logging.Int("structural", result.Structural),
		logging.Duration("elapsed", time.Since(start)),
	)
	return result, nil
}

func (t *Translator) renderLine(ctx context.Context, logger *slog.Logger, raw string, lineNo int, source, target string, result *Result) (string, error) {
	body, terminator := splitTerminator(raw)
	if Classify(body).Structural() {
		result.Structural++
		return raw, nil
	}
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("translate line %d: %w", lineNo, err)
	}

	translated, err := t.backend.Translate(ctx, strings.TrimSpace(body), source, target)
	if err == nil {
		translated = strings.TrimSpace(foldNewlines.Replace(translated))
		if translated == "" {
			err = errors.New("empty translation")
		}
	}
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", fmt.Errorf("translate line %d: %w", lineNo, ctxErr)
		}
		logger.Debug("line kept untranslated",
			logging.Int("line", lineNo),
			logging.Error(err),
		)
		result.Kept++
		return raw, nil
	}

	result.Translated++
	if terminator != "\r\n" {
		terminator = "\n"
	}
	return translated + terminator, nil
}
