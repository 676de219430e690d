package config

import (
	"errors"
	"fmt"
	"net/url"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateSource(); err != nil {
		return err
	}
	if err := c.validateDownload(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateSource() error {
	parsed, err := url.Parse(c.Source.CaptionBaseURL)
	if err != nil {
		return fmt.Errorf("source.caption_base_url: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("source.caption_base_url must be an http(s) url, got %q", c.Source.CaptionBaseURL)
	}
	if parsed.Host == "" {
		return errors.New("source.caption_base_url must include a host")
	}
	if c.Source.RequestTimeout <= 0 {
		return errors.New("source.request_timeout must be positive (seconds)")
	}
	return nil
}

func (c *Config) validateDownload() error {
	if c.Download.Concurrency <= 0 {
		return errors.New("download.concurrency must be positive")
	}
	if c.Download.Concurrency > maxConcurrency {
		return fmt.Errorf("download.concurrency must be at most %d", maxConcurrency)
	}
	if c.Download.RetryAttempts <= 0 {
		return errors.New("download.retry_attempts must be positive")
	}
	if c.Download.RetryBackoffMS < 0 {
		return errors.New("download.retry_backoff_ms must be >= 0")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
}
