package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"foxcap/internal/captions"
	"foxcap/internal/catalog"
	"foxcap/internal/fetch"
	"foxcap/internal/fileutil"
	"foxcap/internal/logging"
)

// Fetcher retrieves a document by URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// DownloadOptions tunes a download run.
type DownloadOptions struct {
	Concurrency  int
	SkipExisting bool
	Retry        fetch.Policy
}

// DownloadResult reports what happened to one episode.
type DownloadResult struct {
	Series   string
	Episode  catalog.Episode
	Path     string
	Status   Status
	Attempts int
	Err      error
}

// Downloader saves caption documents for catalog episodes into the layout.
type Downloader struct {
	fetcher Fetcher
	layout  catalog.Layout
	opts    DownloadOptions
	logger  *slog.Logger
}

// NewDownloader wires a downloader. A nil logger discards output.
func NewDownloader(fetcher Fetcher, layout catalog.Layout, opts DownloadOptions, logger *slog.Logger) *Downloader {
	return &Downloader{
		fetcher: fetcher,
		layout:  layout,
		opts:    opts,
		logger:  logging.NewComponentLogger(logger, "downloader"),
	}
}

type downloadJob struct {
	series  catalog.Series
	episode catalog.Episode
}

// Run downloads every episode in c. Results come back in catalog order. The
// returned error is non-nil only when ctx ended the run early; per-episode
// failures are reported in the results.
func (d *Downloader) Run(ctx context.Context, c *catalog.Catalog) ([]DownloadResult, error) {
	if d.fetcher == nil {
		return nil, errors.New("downloader: fetcher is nil")
	}
	var jobs []downloadJob
	for _, s := range c.Series() {
		for _, ep := range s.Episodes {
			jobs = append(jobs, downloadJob{series: s, episode: ep})
		}
	}

	logger := logging.WithContext(ctx, d.logger)
	logger.Info("download started",
		logging.String(logging.FieldEventType, "download_start"),
		logging.Int("episodes", len(jobs)),
		logging.Int("concurrency", d.opts.Concurrency),
	)
	start := time.Now()

	results := make([]DownloadResult, len(jobs))
	started := runPool(ctx, d.opts.Concurrency, len(jobs), func(ctx context.Context, i int) {
		results[i] = d.downloadOne(ctx, logger, jobs[i])
	})
	for i, ok := range started {
		if !ok {
			results[i] = DownloadResult{
				Series:  jobs[i].series.Title,
				Episode: jobs[i].episode,
				Path:    d.layout.CaptionPath(jobs[i].series, jobs[i].episode),
				Status:  StatusFailed,
				Err:     ctx.Err(),
			}
		}
	}

	summary := SummarizeDownloads(results)
	logger.Info("download finished",
		logging.String(logging.FieldEventType, "download_complete"),
		logging.Int("downloaded", summary.Done),
		logging.Int("skipped", summary.Skipped),
		logging.Int("failed", summary.Failed),
		logging.Duration("elapsed", time.Since(start)),
	)
	return results, ctx.Err()
}

func (d *Downloader) downloadOne(ctx context.Context, logger *slog.Logger, job downloadJob) DownloadResult {
	path := d.layout.CaptionPath(job.series, job.episode)
	result := DownloadResult{Series: job.series.Title, Episode: job.episode, Path: path}
	epLogger := logger.With(
		logging.String(logging.FieldSeries, job.series.Title),
		logging.Int(logging.FieldEpisode, job.episode.Number),
	)

	if d.opts.SkipExisting {
		exists, err := fileutil.NonEmptyFileExists(path)
		if err != nil {
			result.Status, result.Err = StatusFailed, fmt.Errorf("check existing caption: %w", err)
			return result
		}
		if exists {
			epLogger.Debug("caption already present", logging.String(logging.FieldDocument, path))
			result.Status = StatusSkipped
			return result
		}
	}

	var data []byte
	err := fetch.Retry(ctx, d.opts.Retry, func(ctx context.Context) error {
		result.Attempts++
		var fetchErr error
		data, fetchErr = d.fetcher.Fetch(ctx, job.episode.CaptionURL)
		return fetchErr
	}, func(attempt int, backoff time.Duration, err error) {
		epLogger.Warn("caption fetch failed, retrying",
			logging.Int("attempt", attempt),
			logging.Duration("backoff", backoff),
			logging.Error(err),
		)
	})
	if err == nil {
		_, err = captions.ParseBytes(data)
	}
	if err == nil {
		err = fileutil.WriteFileAtomic(path, data, 0o644)
	}
	if err != nil {
		result.Status, result.Err = StatusFailed, err
		logging.WarnWithContext(epLogger, "caption download failed", "download_failed",
			logging.String("url", job.episode.CaptionURL),
			logging.Int("attempts", result.Attempts),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "rerun foxcap download; existing captions are skipped"),
			logging.String(logging.FieldImpact, "episode has no caption file"),
		)
		return result
	}

	epLogger.Debug("caption saved", logging.String(logging.FieldDocument, path), logging.Int("bytes", len(data)))
	result.Status = StatusDone
	return result
}

// SummarizeDownloads tallies download results.
func SummarizeDownloads(results []DownloadResult) Summary {
	var s Summary
	for _, r := range results {
		s.add(r.Status)
	}
	return s
}
