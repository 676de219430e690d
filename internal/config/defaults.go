package config

const (
	defaultConfigPath     = "~/.config/foxcap/config.toml"
	defaultOutputDir      = "~/foxcap/output"
	defaultCatalogDB      = "~/.local/share/foxcap/catalog.db"
	defaultLogDir         = "~/.local/share/foxcap/logs"
	defaultCaptionBaseURL = "https://cdn.littlefox.co.kr/cn/captionxml"
	defaultUserAgent      = "foxcap/dev"
	defaultRequestTimeout = 30
	defaultConcurrency    = 20
	defaultRetryAttempts  = 3
	defaultRetryBackoffMS = 500
	defaultLogFormat      = "console"
	defaultLogLevel       = "info"

	maxConcurrency = 256
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
			CatalogDB: defaultCatalogDB,
			LogDir:    defaultLogDir,
		},
		Source: Source{
			CaptionBaseURL: defaultCaptionBaseURL,
			UserAgent:      defaultUserAgent,
			RequestTimeout: defaultRequestTimeout,
		},
		Download: Download{
			Concurrency:    defaultConcurrency,
			RetryAttempts:  defaultRetryAttempts,
			RetryBackoffMS: defaultRetryBackoffMS,
			SkipExisting:   true,
		},
		Convert: Convert{
			WriteTxt: true,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
