package config

const (
	defaultConfigPath             = "~/.config/subtrans/config.toml"
	defaultOutputDir              = "./subs"
	defaultYtDlpBinary            = "yt-dlp"
	defaultSubtitleLanguage       = "en"
	defaultOutputTemplate         = "%(title).90s [%(id)s].%(ext)s"
	defaultSubtitleFormat         = "srt"
	defaultDownloadTimeoutSeconds = 300
	defaultTranslateBackend       = BackendGoogle
	defaultTranslateTimeout       = 15
	defaultGoogleBaseURL          = "https://translate.googleapis.com/translate_a/single"
	defaultLLMBaseURL             = "https://openrouter.ai/api/v1/chat/completions"
	defaultLLMModel               = "google/gemini-3-flash-preview"
	defaultLLMReferer             = "https://github.com/subtrans/subtrans"
	defaultLLMTitle               = "subtrans"
	defaultLogFormat              = "console"
	defaultLogLevel               = "info"
)

// Translation backends accepted by translate.backend.
const (
	BackendGoogle = "google"
	BackendLLM    = "llm"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
		},
		Download: Download{
			Binary:           defaultYtDlpBinary,
			DefaultLanguage:  defaultSubtitleLanguage,
			OutputTemplate:   defaultOutputTemplate,
			SubtitleFormat:   defaultSubtitleFormat,
			IncludeAutomatic: true,
			TimeoutSeconds:   defaultDownloadTimeoutSeconds,
		},
		Translate: Translate{
			Backend:        defaultTranslateBackend,
			TimeoutSeconds: defaultTranslateTimeout,
			GoogleBaseURL:  defaultGoogleBaseURL,
		},
		LLM: LLM{
			BaseURL: defaultLLMBaseURL,
			Model:   defaultLLMModel,
			Referer: defaultLLMReferer,
			Title:   defaultLLMTitle,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
