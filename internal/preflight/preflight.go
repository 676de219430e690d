package preflight

import (
	"context"

	"foxcap/internal/config"
	"foxcap/internal/fetch"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes every preflight check for the given config.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}
	client := fetch.New(fetch.Config{
		UserAgent: cfg.Source.UserAgent,
		Timeout:   cfg.RequestTimeout(),
	})
	return []Result{
		CheckDirectoryAccess("Output directory", cfg.Paths.OutputDir),
		CheckDirectoryAccess("Log directory", cfg.Paths.LogDir),
		CheckCatalog(ctx, cfg.Paths.CatalogDB),
		CheckCaptionHost(ctx, client, cfg.Source.CaptionBaseURL),
	}
}

// Failed reports whether any result did not pass.
func Failed(results []Result) bool {
	for _, r := range results {
		if !r.Passed {
			return true
		}
	}
	return false
}
