package config

import (
	"fmt"
	"os"
	"strings"

	"subtrans/internal/language"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeDownload()
	c.normalizeTranslate()
	c.normalizeLLM()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if strings.TrimSpace(c.Paths.OutputDir) == "" {
		c.Paths.OutputDir = defaultOutputDir
	}
	var err error
	if c.Paths.OutputDir, err = expandPath(c.Paths.OutputDir); err != nil {
		return fmt.Errorf("paths.output_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeDownload() {
	c.Download.Binary = strings.TrimSpace(c.Download.Binary)
	if c.Download.Binary == "" {
		c.Download.Binary = defaultYtDlpBinary
	}
	c.Download.DefaultLanguage = language.Normalize(c.Download.DefaultLanguage)
	if c.Download.DefaultLanguage == "" {
		c.Download.DefaultLanguage = defaultSubtitleLanguage
	}
	c.Download.OutputTemplate = strings.TrimSpace(c.Download.OutputTemplate)
	if c.Download.OutputTemplate == "" {
		c.Download.OutputTemplate = defaultOutputTemplate
	}
	c.Download.SubtitleFormat = strings.ToLower(strings.TrimSpace(c.Download.SubtitleFormat))
	if c.Download.SubtitleFormat == "" {
		c.Download.SubtitleFormat = defaultSubtitleFormat
	}
	if c.Download.TimeoutSeconds <= 0 {
		c.Download.TimeoutSeconds = defaultDownloadTimeoutSeconds
	}
}

func (c *Config) normalizeTranslate() {
	c.Translate.Backend = strings.ToLower(strings.TrimSpace(c.Translate.Backend))
	if c.Translate.Backend == "" {
		c.Translate.Backend = defaultTranslateBackend
	}
	c.Translate.SourceLanguage = language.Normalize(c.Translate.SourceLanguage)
	if c.Translate.SourceLanguage == language.Auto {
		c.Translate.SourceLanguage = ""
	}
	if c.Translate.TimeoutSeconds <= 0 {
		c.Translate.TimeoutSeconds = defaultTranslateTimeout
	}
	c.Translate.GoogleBaseURL = strings.TrimSpace(c.Translate.GoogleBaseURL)
	if c.Translate.GoogleBaseURL == "" {
		c.Translate.GoogleBaseURL = defaultGoogleBaseURL
	}
}

func (c *Config) normalizeLLM() {
	c.LLM.BaseURL = strings.TrimSpace(c.LLM.BaseURL)
	if c.LLM.BaseURL == "" {
		c.LLM.BaseURL = defaultLLMBaseURL
	}
	c.LLM.Model = strings.TrimSpace(c.LLM.Model)
	if c.LLM.Model == "" {
		c.LLM.Model = defaultLLMModel
	}
	c.LLM.Referer = strings.TrimSpace(c.LLM.Referer)
	if c.LLM.Referer == "" {
		c.LLM.Referer = defaultLLMReferer
	}
	c.LLM.Title = strings.TrimSpace(c.LLM.Title)
	if c.LLM.Title == "" {
		c.LLM.Title = defaultLLMTitle
	}
	c.LLM.APIKey = strings.TrimSpace(c.LLM.APIKey)
	if c.LLM.APIKey == "" {
		if value, ok := os.LookupEnv("SUBTRANS_LLM_API_KEY"); ok {
			c.LLM.APIKey = strings.TrimSpace(value)
		} else if value, ok := os.LookupEnv("OPENROUTER_API_KEY"); ok {
			c.LLM.APIKey = strings.TrimSpace(value)
		}
	}
	if c.LLM.TimeoutSeconds < 0 {
		c.LLM.TimeoutSeconds = 0
	}
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
