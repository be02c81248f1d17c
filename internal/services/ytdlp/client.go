package ytdlp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"subtrans/internal/logging"
	"subtrans/internal/services"
)

var commandContext = exec.CommandContext

const (
	defaultBinary   = "yt-dlp"
	defaultLanguage = "en"
	defaultTemplate = "%(title).90s [%(id)s].%(ext)s"
	defaultFormat   = "srt"
)

// Request describes one subtitle download.
type Request struct {
	URL            string
	OutputDir      string
	Language       string
	OutputTemplate string
	SubtitleFormat string
	// IncludeAutomatic also requests auto-generated captions.
	IncludeAutomatic bool
}

// RequestedSubtitle is one entry of yt-dlp's requested_subtitles map.
type RequestedSubtitle struct {
	Ext      string `json:"ext"`
	Name     string `json:"name"`
	Filepath string `json:"filepath"`
}

// Result carries the parts of the info JSON the caller needs.
type Result struct {
	ID                 string                       `json:"id"`
	Title              string                       `json:"title"`
	RequestedSubtitles map[string]RequestedSubtitle `json:"requested_subtitles"`
	Warnings           []string                     `json:"-"`
}

// Option configures the CLI client.
type Option func(*CLI)

// WithBinary overrides the default binary name.
func WithBinary(binary string) Option {
	return func(c *CLI) {
		if binary = strings.TrimSpace(binary); binary != "" {
			c.binary = binary
		}
	}
}

// WithTimeout bounds a single yt-dlp invocation. Zero disables the bound.
func WithTimeout(timeout time.Duration) Option {
	return func(c *CLI) {
		if timeout >= 0 {
			c.timeout = timeout
		}
	}
}

// WithShowWarnings keeps yt-dlp's own warnings enabled.
func WithShowWarnings(show bool) Option {
	return func(c *CLI) {
		c.showWarnings = show
	}
}

// WithLogger attaches a logger for command tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(c *CLI) {
		c.logger = logging.NewComponentLogger(logger, "yt-dlp")
	}
}

// CLI wraps the yt-dlp executable.
type CLI struct {
	binary       string
	timeout      time.Duration
	showWarnings bool
	logger       *slog.Logger
}

// NewCLI constructs a CLI client using defaults.
func NewCLI(opts ...Option) *CLI {
	cli := &CLI{binary: defaultBinary, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(cli)
	}
	return cli
}

// Binary reports the executable the client runs.
func (c *CLI) Binary() string {
	return c.binary
}

// BuildArgs assembles the yt-dlp argument list for req.
func (c *CLI) BuildArgs(req Request) []string {
	lang := strings.TrimSpace(req.Language)
	if lang == "" {
		lang = defaultLanguage
	}
	template := strings.TrimSpace(req.OutputTemplate)
	if template == "" {
		template = defaultTemplate
	}
	format := strings.TrimSpace(req.SubtitleFormat)
	if format == "" {
		format = defaultFormat
	}

	// --no-config first so user config files cannot change the output layout.
	args := []string{
		"--no-config",
		"--skip-download",
		"--write-subs",
	}
	if req.IncludeAutomatic {
		args = append(args, "--write-auto-subs")
	}
	args = append(args,
		"--sub-langs", lang,
		"--sub-format", format+"/best",
		"--convert-subs", format,
		"--output", filepath.Join(req.OutputDir, template),
		"--dump-single-json",
		"--no-simulate",
		"--no-progress",
	)
	if !c.showWarnings {
		args = append(args, "--no-warnings")
	}
	args = append(args, "--", req.URL)
	return args
}

// Download runs yt-dlp for req and decodes the info JSON it prints.
func (c *CLI) Download(ctx context.Context, req Request) (*Result, error) {
	if strings.TrimSpace(req.URL) == "" {
		return nil, services.Wrap(services.ErrValidation, "acquire", "yt-dlp", "video reference required", nil)
	}
	if strings.TrimSpace(req.OutputDir) == "" {
		return nil, services.Wrap(services.ErrValidation, "acquire", "yt-dlp", "output directory required", nil)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	args := c.BuildArgs(req)
	logger := logging.WithContext(ctx, c.logger)
	logger.Debug("running yt-dlp", logging.String("binary", c.binary), logging.Any("args", args))

	var stdout, stderr bytes.Buffer
	cmd := commandContext(ctx, c.binary, args...) //nolint:gosec
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	start := time.Now()
	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if errors.Is(err, exec.ErrNotFound) {
			return nil, services.Wrap(services.ErrExternalTool, "acquire", "yt-dlp", fmt.Sprintf("binary %q not found", c.binary), err)
		}
		return nil, services.Wrap(services.ErrExternalTool, "acquire", "yt-dlp", tail(stderr.String()), err)
	}
	logger.Debug("yt-dlp finished", logging.Duration("elapsed", time.Since(start)))

	result, err := ParseOutput(stdout.Bytes())
	if err != nil {
		return nil, services.Wrap(services.ErrExternalTool, "acquire", "yt-dlp", "decode info json", err)
	}
	result.Warnings = append(result.Warnings, splitLines(stderr.String())...)
	return result, nil
}

// ParseOutput finds the info JSON line in yt-dlp's stdout. Other non-empty
// lines are returned as warnings.
func ParseOutput(out []byte) (*Result, error) {
	var jsonLine string
	var warnings []string
	for _, line := range splitLines(string(out)) {
		if strings.HasPrefix(line, "{") {
			jsonLine = line
			continue
		}
		warnings = append(warnings, line)
	}
	if jsonLine == "" {
		return nil, errors.New("no JSON object in yt-dlp output")
	}
	var result Result
	if err := json.Unmarshal([]byte(jsonLine), &result); err != nil {
		return nil, fmt.Errorf("unmarshal yt-dlp output: %w", err)
	}
	result.Warnings = warnings
	return &result, nil
}

// Version runs yt-dlp --version.
func (c *CLI) Version(ctx context.Context) (string, error) {
	out, err := commandContext(ctx, c.binary, "--version").CombinedOutput() //nolint:gosec
	if err != nil {
		return "", fmt.Errorf("%s --version: %w", c.binary, err)
	}
	return strings.TrimSpace(string(out)), nil
}

func splitLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// tail returns the last non-empty stderr line, which is where yt-dlp puts
// its ERROR: summary.
func tail(stderr string) string {
	lines := splitLines(stderr)
	if len(lines) == 0 {
		return "command failed"
	}
	return lines[len(lines)-1]
}
