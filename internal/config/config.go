package config

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"subtrans/internal/fileutil"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	OutputDir string `toml:"output_dir" yaml:"output_dir"`
}

// Download contains configuration for the yt-dlp subtitle download.
type Download struct {
	Binary           string `toml:"binary" yaml:"binary"`
	DefaultLanguage  string `toml:"default_language" yaml:"default_language"`
	OutputTemplate   string `toml:"output_template" yaml:"output_template"`
	SubtitleFormat   string `toml:"subtitle_format" yaml:"subtitle_format"`
	IncludeAutomatic bool   `toml:"include_automatic" yaml:"include_automatic"`
	ShowWarnings     bool   `toml:"show_warnings" yaml:"show_warnings"`
	TimeoutSeconds   int    `toml:"timeout_seconds" yaml:"timeout_seconds"`
}

// Translate contains configuration for the per-line translation pass.
type Translate struct {
	// Backend selects the translation service: "google" or "llm".
	Backend string `toml:"backend" yaml:"backend"`
	// SourceLanguage is used when --source is not given. Empty means auto-detect.
	SourceLanguage string `toml:"source_language" yaml:"source_language"`
	TimeoutSeconds int    `toml:"timeout_seconds" yaml:"timeout_seconds"`
	GoogleBaseURL  string `toml:"google_base_url" yaml:"google_base_url"`
}

// LLM contains connection settings for the chat-completion translation backend.
type LLM struct {
	APIKey         string `toml:"api_key" yaml:"api_key"`
	BaseURL        string `toml:"base_url" yaml:"base_url"`
	Model          string `toml:"model" yaml:"model"`
	Referer        string `toml:"referer" yaml:"referer"`
	Title          string `toml:"title" yaml:"title"`
	TimeoutSeconds int    `toml:"timeout_seconds" yaml:"timeout_seconds"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format" yaml:"format"`
	Level  string `toml:"level" yaml:"level"`
}

// Config encapsulates all configuration values for subtrans.
//
// Configuration sections by subsystem:
//   - Paths: where subtitles are downloaded and written
//   - Download: yt-dlp binary and subtitle request options
//   - Translate: backend selection and request timeout
//   - LLM: chat-completion backend connection settings
//   - Logging: log format and level
type Config struct {
	Paths     Paths     `toml:"paths" yaml:"paths"`
	Download  Download  `toml:"download" yaml:"download"`
	Translate Translate `toml:"translate" yaml:"translate"`
	LLM       LLM       `toml:"llm" yaml:"llm"`
	Logging   Logging   `toml:"logging" yaml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized. A missing file is not an error; defaults are used.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		data, err := os.ReadFile(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		if err := decode(resolvedPath, data, &cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func decode(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, cfg)
	default:
		return toml.NewDecoder(bytes.NewReader(data)).Decode(cfg)
	}
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("subtrans.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureOutputDir creates the subtitle output directory, including parents.
func (c *Config) EnsureOutputDir() error {
	if err := os.MkdirAll(c.Paths.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", c.Paths.OutputDir, err)
	}
	return nil
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if err := fileutil.WriteFileAtomic(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// LLMConfig contains the LLM settings handed to the translation client.
type LLMConfig struct {
	APIKey         string
	BaseURL        string
	Model          string
	Referer        string
	Title          string
	TimeoutSeconds int
}

// GetLLM returns the LLM connection settings. The translate timeout applies
// when the [llm] section does not set its own.
func (c *Config) GetLLM() LLMConfig {
	timeout := c.LLM.TimeoutSeconds
	if timeout <= 0 {
		timeout = c.Translate.TimeoutSeconds
	}
	return LLMConfig{
		APIKey:         strings.TrimSpace(c.LLM.APIKey),
		BaseURL:        strings.TrimSpace(c.LLM.BaseURL),
		Model:          strings.TrimSpace(c.LLM.Model),
		Referer:        strings.TrimSpace(c.LLM.Referer),
		Title:          strings.TrimSpace(c.LLM.Title),
		TimeoutSeconds: timeout,
	}
}
