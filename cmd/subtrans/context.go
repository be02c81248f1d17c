package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"subtrans/internal/config"
	"subtrans/internal/logging"
	"subtrans/internal/services"
	"subtrans/internal/services/googletranslate"
	"subtrans/internal/services/llm"
	"subtrans/internal/subtitles"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		if err := loadDotEnv(".env"); err != nil {
			c.configErr = err
			return
		}
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = services.Wrap(services.ErrConfiguration, "config", "load", "invalid configuration", err)
			return
		}
		if level := c.logLevel(); level != "" {
			switch level {
			case "debug", "info", "warn", "error":
				cfg.Logging.Level = level
			default:
				c.configErr = services.Wrap(services.ErrValidation, "config", "log-level", fmt.Sprintf("unsupported value %q", level), nil)
				return
			}
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

func (c *commandContext) logLevel() string {
	if c.logLevelFlag == nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(*c.logLevelFlag))
}

// logger builds the run logger on the command's stderr so stdout only
// carries command results.
func (c *commandContext) logger(cmd *cobra.Command, cfg *config.Config) (*slog.Logger, error) {
	opts := logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Writer: cmd.ErrOrStderr(),
	}
	logger, err := logging.New(opts)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}
	return logger, nil
}

// translationBackend returns the line translator selected by override, or by
// translate.backend when override is empty.
func translationBackend(cfg *config.Config, override string) (subtitles.LineTranslator, error) {
	backend := strings.ToLower(strings.TrimSpace(override))
	if backend == "" {
		backend = cfg.Translate.Backend
	}
	timeout := time.Duration(cfg.Translate.TimeoutSeconds) * time.Second
	switch backend {
	case config.BackendGoogle:
		return googletranslate.NewClient(
			googletranslate.WithBaseURL(cfg.Translate.GoogleBaseURL),
			googletranslate.WithTimeout(timeout),
		), nil
	case config.BackendLLM:
		settings := cfg.GetLLM()
		if settings.APIKey == "" {
			return nil, services.Wrap(services.ErrConfiguration, "translate", "backend", "llm backend requires llm.api_key or SUBTRANS_LLM_API_KEY", nil)
		}
		return llm.NewClient(llm.Config{
			APIKey:         settings.APIKey,
			BaseURL:        settings.BaseURL,
			Model:          settings.Model,
			Referer:        settings.Referer,
			Title:          settings.Title,
			TimeoutSeconds: settings.TimeoutSeconds,
		}), nil
	default:
		return nil, services.Wrap(services.ErrValidation, "translate", "backend", fmt.Sprintf("unsupported backend %q (use %q or %q)", backend, config.BackendGoogle, config.BackendLLM), nil)
	}
}

// loadDotEnv exports variables from path without overriding the environment.
// A missing file is not an error.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
