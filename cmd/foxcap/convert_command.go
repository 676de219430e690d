package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"foxcap/internal/config"
	"foxcap/internal/fileutil"
	"foxcap/internal/pipeline"
)

func newConvertCommand(ctx *commandContext) *cobra.Command {
	var concurrency int
	var noTxt bool
	var forceMerge bool

	cmd := &cobra.Command{
		Use:   "convert [dir]",
		Short: "Convert every caption XML under a directory to SRT",
		Long: "Convert walks the output directory (or the given directory) for caption\n" +
			"XML documents and writes an .srt file, plus an optional .txt transcript,\n" +
			"beside each one. Malformed documents are reported and skipped.",
		Args: cobra.MaximumNArgs(1),
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

			root := cfg.Paths.OutputDir
			if len(args) == 1 {
				if root, err = config.ExpandPath(args[0]); err != nil {
					return fmt.Errorf("resolve directory: %w", err)
				}
			}

			opts := pipeline.ConvertOptions{
				Concurrency: cfg.Download.Concurrency,
				WriteTxt:    cfg.Convert.WriteTxt && !noTxt,
				ForceMerge:  cfg.Convert.ForceMerge || forceMerge,
			}
			if cmd.Flags().Changed("concurrency") {
				if concurrency < 1 {
					return fmt.Errorf("--concurrency must be at least 1")
				}
				opts.Concurrency = concurrency
			}

			lock, err := pipeline.LockOutput(root)
			if err != nil {
				return err
			}
			defer lock.Release()

			results, runErr := pipeline.NewConverter(opts, logger).ConvertTree(runCtx, root)
			summary := pipeline.SummarizeConversions(results)
			printConvertReport(cmd.OutOrStdout(), results, summary)
			if runErr != nil {
				return runErr
			}
			if summary.Failed > 0 {
				return fmt.Errorf("%d of %d caption documents failed to convert", summary.Failed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&concurrency, "concurrency", 0, "Parallel conversions (defaults to download.concurrency)")
	cmd.Flags().BoolVar(&noTxt, "no-txt", false, "Skip plain-text transcripts")
	cmd.Flags().BoolVar(&forceMerge, "force-merge", false, "Merge fragments even when documents carry no word markers")

	cmd.AddCommand(newConvertFileCommand(ctx))
	return cmd
}

func printConvertReport(out io.Writer, results []pipeline.ConvertResult, summary pipeline.Summary) {
	var failed [][]string
	for _, r := range results {
		if r.Status == pipeline.StatusFailed {
			failed = append(failed, []string{r.Source, errorText(r.Err)})
		}
	}
	if len(failed) > 0 {
		fmt.Fprintln(out, renderTable([]string{"Document", "Error"}, failed, nil))
	}
	fmt.Fprintf(out, "Converted %d, failed %d\n", summary.Done, summary.Failed)
}

func newConvertFileCommand(ctx *commandContext) *cobra.Command {
	var srtPath string
	var txtPath string
	var forceMerge bool

	cmd := &cobra.Command{
		Use:   "file <xml>",
		Short: "Convert one caption XML document",
		Long: "Convert a single caption document. Without --srt or --txt the SRT text\n" +
			"is written to stdout.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			source, err := config.ExpandPath(strings.TrimSpace(args[0]))
			if err != nil {
				return fmt.Errorf("resolve source: %w", err)
			}
			data, err := os.ReadFile(source)
			if err != nil {
				return fmt.Errorf("read caption: %w", err)
			}
			doc, err := pipeline.ConvertDocument(data, cfg.Convert.ForceMerge || forceMerge)
			if err != nil {
				return fmt.Errorf("%s: %w", source, err)
			}
			for _, issue := range doc.Validation {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: %s\n", issue)
			}

			srtPath, txtPath = strings.TrimSpace(srtPath), strings.TrimSpace(txtPath)
			if srtPath == "" && txtPath == "" {
				_, err := cmd.OutOrStdout().Write(doc.SRT)
				return err
			}
			if srtPath != "" {
				if err := writeOutput(srtPath, doc.SRT); err != nil {
					return err
				}
			}
			if txtPath != "" {
				if err := writeOutput(txtPath, doc.Text); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&srtPath, "srt", "", "Write SRT output to this path")
	cmd.Flags().StringVar(&txtPath, "txt", "", "Write the plain-text transcript to this path")
	cmd.Flags().BoolVar(&forceMerge, "force-merge", false, "Merge fragments even without word markers")
	return cmd
}

func writeOutput(path string, data []byte) error {
	expanded, err := config.ExpandPath(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}
	if expanded == "" {
		return errors.New("output path is empty")
	}
	if err := fileutil.WriteFileAtomic(expanded, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", expanded, err)
	}
	return nil
}
