package config

import (
	"errors"
	"fmt"
	"strings"

	"subtrans/internal/language"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateDownload(); err != nil {
		return err
	}
	if err := c.validateTranslate(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateDownload() error {
	if strings.TrimSpace(c.Download.OutputTemplate) == "" {
		return errors.New("download.output_template must be set")
	}
	if !strings.Contains(c.Download.OutputTemplate, "%(ext)s") {
		return errors.New("download.output_template must end with the %(ext)s field so subtitle files keep their extension")
	}
	if err := language.Validate(c.Download.DefaultLanguage); err != nil {
		return fmt.Errorf("download.default_language: %w", err)
	}
	return nil
}

func (c *Config) validateTranslate() error {
	switch c.Translate.Backend {
	case BackendGoogle:
	case BackendLLM:
		if strings.TrimSpace(c.LLM.APIKey) == "" {
			return errors.New("llm.api_key must be set when translate.backend is \"llm\" (or set SUBTRANS_LLM_API_KEY)")
		}
	default:
		return fmt.Errorf("translate.backend: unsupported value %q (use %q or %q)", c.Translate.Backend, BackendGoogle, BackendLLM)
	}
	if c.Translate.SourceLanguage != "" {
		if err := language.Validate(c.Translate.SourceLanguage); err != nil {
			return fmt.Errorf("translate.source_language: %w", err)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q (use \"console\" or \"json\")", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
}
