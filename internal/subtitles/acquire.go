package subtitles

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"subtrans/internal/logging"
	"subtrans/internal/services"
	"subtrans/internal/services/ytdlp"
)

// ErrNoSubtitles marks every acquisition failure.
var ErrNoSubtitles = errors.New("no subtitle file acquired")

const lockFileName = ".subtrans.lock"

// Downloader fetches subtitle tracks for a video reference.
type Downloader interface {
	Download(ctx context.Context, req ytdlp.Request) (*ytdlp.Result, error)
}

// AcquireConfig holds the download preferences shared by every request.
type AcquireConfig struct {
	// DefaultLanguage is requested when the caller names no language.
	DefaultLanguage  string
	OutputTemplate   string
	SubtitleFormat   string
	IncludeAutomatic bool
}

// Acquirer downloads subtitles and resolves the file that was written.
type Acquirer struct {
	downloader Downloader
	cfg        AcquireConfig
	logger     *slog.Logger
}

// NewAcquirer constructs an Acquirer around downloader.
func NewAcquirer(downloader Downloader, cfg AcquireConfig, logger *slog.Logger) *Acquirer {
	if strings.TrimSpace(cfg.DefaultLanguage) == "" {
		cfg.DefaultLanguage = "en"
	}
	return &Acquirer{
		downloader: downloader,
		cfg:        cfg,
		logger:     logging.NewComponentLogger(logger, "acquirer"),
	}
}

// Acquire downloads subtitles for reference into outputDir and returns the
// path of the .srt file to translate. outputDir must already exist.
func (a *Acquirer) Acquire(ctx context.Context, reference, outputDir, subtitleLanguage string) (string, error) {
	lang := strings.TrimSpace(subtitleLanguage)
	if lang == "" {
		lang = a.cfg.DefaultLanguage
	}
	logger := logging.WithContext(ctx, a.logger)

	lock := flock.New(filepath.Join(outputDir, lockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return "", services.Wrap(services.ErrTransient, "acquire", "lock", outputDir, err)
	}
	if !locked {
		return "", services.Wrap(services.ErrValidation, "acquire", "lock",
			fmt.Sprintf("another subtrans run is using %s", outputDir), ErrNoSubtitles)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			logger.Debug("release output directory lock failed", logging.Error(err))
		}
	}()

	started := time.Now()
	result, err := a.downloader.Download(ctx, ytdlp.Request{
		URL:              reference,
		OutputDir:        outputDir,
		Language:         lang,
		OutputTemplate:   a.cfg.OutputTemplate,
		SubtitleFormat:   a.cfg.SubtitleFormat,
		IncludeAutomatic: a.cfg.IncludeAutomatic,
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", fmt.Errorf("%w: %w", ErrNoSubtitles, err)
	}
	for _, warning := range result.Warnings {
		logger.Debug("yt-dlp output", logging.String("line", warning))
	}

	if path, ok := reportedPath(result, lang); ok {
		logger.Info("subtitle downloaded",
			logging.String("path", path),
			logging.String("language", lang),
			logging.Duration("elapsed", time.Since(started)),
		)
		return path, nil
	}

	candidates, err := srtCandidates(outputDir)
	if err != nil {
		return "", services.Wrap(services.ErrTransient, "acquire", "scan output", outputDir, err)
	}
	if len(candidates) == 0 {
		return "", services.Wrap(services.ErrNotFound, "acquire", "locate",
			fmt.Sprintf("no %s subtitles found for %s", lang, reference), ErrNoSubtitles)
	}
	if len(candidates) > 1 {
		logging.WarnWithContext(logger, "yt-dlp reported no subtitle path; using newest .srt", "subtitle_path_guessed",
			logging.String("path", candidates[0]),
			logging.Int("candidates", len(candidates)),
			logging.String(logging.FieldImpact, "an older subtitle from a previous run may be translated"),
			logging.String(logging.FieldErrorHint, "use an empty --outdir to avoid ambiguity"),
		)
	}
	logger.Info("subtitle located",
		logging.String("path", candidates[0]),
		logging.String("language", lang),
		logging.Duration("elapsed", time.Since(started)),
	)
	return candidates[0], nil
}

// reportedPath checks the requested language first, then the other
// requested_subtitles keys in sorted order.
func reportedPath(result *ytdlp.Result, lang string) (string, bool) {
	if result == nil || len(result.RequestedSubtitles) == 0 {
		return "", false
	}
	keys := make([]string, 0, len(result.RequestedSubtitles))
	for key := range result.RequestedSubtitles {
		if key != lang {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	if _, ok := result.RequestedSubtitles[lang]; ok {
		keys = append([]string{lang}, keys...)
	}
	for _, key := range keys {
		reported := strings.TrimSpace(result.RequestedSubtitles[key].Filepath)
		if reported == "" {
			continue
		}
		// Conversion to SRT may leave the pre-conversion extension in the JSON.
		paths := []string{reported}
		if ext := filepath.Ext(reported); !strings.EqualFold(ext, ".srt") {
			paths = append([]string{strings.TrimSuffix(reported, ext) + ".srt"}, paths...)
		}
		for _, path := range paths {
			if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
				return path, true
			}
		}
	}
	return "", false
}

// srtCandidates lists .srt files in dir, newest first, skipping translated
// outputs. Equal modification times sort by name.
func srtCandidates(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	type candidate struct {
		path    string
		modTime time.Time
	}
	var found []candidate
	for _, entry := range entries {
		name := entry.Name()
		if !entry.Type().IsRegular() || !strings.EqualFold(filepath.Ext(name), ".srt") || IsTranslatedOutput(name) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		found = append(found, candidate{path: filepath.Join(dir, name), modTime: info.ModTime()})
	}
	sort.Slice(found, func(i, j int) bool {
		if !found[i].modTime.Equal(found[j].modTime) {
			return found[i].modTime.After(found[j].modTime)
		}
		return found[i].path < found[j].path
	})
	paths := make([]string, len(found))
	for i, c := range found {
		paths[i] = c.path
	}
	return paths, nil
}
