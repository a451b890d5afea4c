package config

const (
	defaultLogDir                      = "~/.local/share/voicerec/logs"
	defaultLogFormat                   = "console"
	defaultLogLevel                    = "info"
	defaultPronunciationBaseURL        = "https://%s.speech.scoring.net/v1/assess"
	defaultPronunciationLanguage       = "en-US"
	defaultPronunciationTimeoutSeconds = 30
	defaultSNRWindowSeconds            = 0.1
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			LogDir: defaultLogDir,
		},
		Pronunciation: Pronunciation{
			Enabled:        false,
			BaseURL:        defaultPronunciationBaseURL,
			Language:       defaultPronunciationLanguage,
			TimeoutSeconds: defaultPronunciationTimeoutSeconds,
		},
		Metrics: Metrics{
			SNRWindowSeconds: defaultSNRWindowSeconds,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
