package testsupport

import (
	"path/filepath"
	"testing"

	"foxcap/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.OutputDir = filepath.Join(base, "output")
	cfgVal.Paths.CatalogDB = filepath.Join(base, "data", "catalog.db")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Source.CaptionBaseURL = "http://127.0.0.1:1/captionxml"
	cfgVal.Download.Concurrency = 4
	cfgVal.Download.RetryBackoffMS = 1

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithCaptionBaseURL points the caption host at a test server.
func WithCaptionBaseURL(url string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Source.CaptionBaseURL = url
	}
}

// WithConcurrency overrides the worker count for download and convert runs.
func WithConcurrency(n int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Download.Concurrency = n
	}
}

// WithEnsuredDirectories creates the config's directories up front.
func WithEnsuredDirectories() ConfigOption {
	return func(b *configBuilder) {
		if err := b.cfg.EnsureDirectories(); err != nil {
			b.t.Fatalf("ensure directories: %v", err)
		}
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.OutputDir)
}
