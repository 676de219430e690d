package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"foxcap/internal/catalog"
	"foxcap/internal/fetch"
	"foxcap/internal/pipeline"
)

const maxRetryBackoff = 30 * time.Second

func newDownloadCommand(ctx *commandContext) *cobra.Command {
	var concurrency int
	var seriesName string

	cmd := &cobra.Command{
		Use:   "download",
		Short: "Download caption XML for every catalog episode",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			runCtx := runContext(cmd)

			loaded, err := ctx.loadCatalog(runCtx)
			if err != nil {
				return err
			}
			if name := strings.TrimSpace(seriesName); name != "" {
				series, err := loaded.Lookup(name)
				if err != nil {
					return err
				}
				if loaded, err = catalog.New(series); err != nil {
					return err
				}
			}

			workers := cfg.Download.Concurrency
			if cmd.Flags().Changed("concurrency") {
				if concurrency < 1 {
					return fmt.Errorf("--concurrency must be at least 1")
				}
				workers = concurrency
			}

			lock, err := pipeline.LockOutput(cfg.Paths.OutputDir)
			if err != nil {
				return err
			}
			defer lock.Release()

			client := fetch.New(fetch.Config{
				UserAgent: cfg.Source.UserAgent,
				Timeout:   cfg.RequestTimeout(),
			})
			downloader := pipeline.NewDownloader(client, catalog.Layout{Root: cfg.Paths.OutputDir}, pipeline.DownloadOptions{
				Concurrency:  workers,
				SkipExisting: cfg.Download.SkipExisting,
				Retry: fetch.Policy{
					Attempts:       cfg.Download.RetryAttempts,
					InitialBackoff: cfg.RetryBackoff(),
					MaxBackoff:     maxRetryBackoff,
				},
			}, logger)

			results, runErr := downloader.Run(runCtx, loaded)
			summary := pipeline.SummarizeDownloads(results)
			printDownloadReport(cmd.OutOrStdout(), results, summary)
			if runErr != nil {
				return runErr
			}
			if summary.Failed > 0 {
				return fmt.Errorf("%d of %d caption downloads failed", summary.Failed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "Parallel downloads (defaults to download.concurrency)")
	cmd.Flags().StringVar(&seriesName, "series", "", "Only download this series (title or slug)")
	return cmd
}

func printDownloadReport(out io.Writer, results []pipeline.DownloadResult, summary pipeline.Summary) {
	var failed [][]string
	for _, r := range results {
		if r.Status != pipeline.StatusFailed {
			continue
		}
		failed = append(failed, []string{r.Series, strconv.Itoa(r.Episode.Number), r.Episode.Title, errorText(r.Err)})
	}
	if len(failed) > 0 {
		fmt.Fprintln(out, renderTable(
			[]string{"Series", "#", "Episode", "Error"},
			failed,
			[]columnAlignment{alignLeft, alignRight, alignLeft, alignLeft},
		))
	}
	fmt.Fprintf(out, "Downloaded %d, skipped %d, failed %d\n", summary.Done, summary.Skipped, summary.Failed)
}

func errorText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
