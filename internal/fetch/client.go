package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultUserAgent   = "foxcap/dev"
	defaultHTTPTimeout = 30 * time.Second
	defaultMaxBytes    = 8 << 20
)

// Config describes the HTTP client configuration.
type Config struct {
	UserAgent  string
	Timeout    time.Duration
	MaxBytes   int64
	HTTPClient *http.Client
}

// Client downloads documents over HTTP.
type Client struct {
	userAgent string
	maxBytes  int64
	http      *http.Client
}

// StatusError reports a non-success HTTP response.
type StatusError struct {
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	msg := fmt.Sprintf("fetch %s: status %d", e.URL, e.StatusCode)
	if body := strings.TrimSpace(e.Body); body != "" {
		msg += ": " + body
	}
	return msg
}

// ErrTooLarge reports a response body over the configured limit.
var ErrTooLarge = errors.New("response body exceeds size limit")

// New creates a Client from cfg, filling defaults for zero values.
func New(cfg Config) *Client {
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	maxBytes := cfg.MaxBytes
	if maxBytes <= 0 {
		maxBytes = defaultMaxBytes
	}
	client := cfg.HTTPClient
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultHTTPTimeout
		}
		client = &http.Client{Timeout: timeout}
	}
	return &Client{userAgent: userAgent, maxBytes: maxBytes, http: client}
}

// Fetch GETs rawURL and returns the response body.
func (c *Client) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if c == nil {
		return nil, errors.New("fetch: client is nil")
	}
	resp, err := c.get(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{URL: rawURL, StatusCode: resp.StatusCode, Body: string(body)}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("fetch %s: read body: %w", rawURL, err)
	}
	if int64(len(data)) > c.maxBytes {
		return nil, fmt.Errorf("fetch %s: %w (%d bytes)", rawURL, ErrTooLarge, c.maxBytes)
	}
	return data, nil
}

// Probe GETs rawURL, discards the body, and returns the status code.
// Any HTTP response counts as reachable; only transport failures error.
func (c *Client) Probe(ctx context.Context, rawURL string) (int, error) {
	if c == nil {
		return 0, errors.New("fetch: client is nil")
	}
	resp, err := c.get(ctx, rawURL)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
	return resp.StatusCode, nil
}

func (c *Client) get(ctx context.Context, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: build request: %w", rawURL, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	return resp, nil
}
