package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"foxcap/internal/catalog"
	"foxcap/internal/config"
	"foxcap/internal/logging"
)

func newCatalogCommand(ctx *commandContext) *cobra.Command {
	catalogCmd := &cobra.Command{
		Use:   "catalog",
		Short: "Import and inspect the series catalog",
	}

	catalogCmd.AddCommand(newCatalogImportCommand(ctx))
	catalogCmd.AddCommand(newCatalogListCommand(ctx))

	return catalogCmd
}

func newCatalogImportCommand(ctx *commandContext) *cobra.Command {
	var urlsPath string
	var seriesPath string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Replace the stored catalog with a urls.json listing",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(urlsPath) == "" {
				return errors.New("--urls is required")
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			runCtx := runContext(cmd)

			imported, err := decodeURLsFile(urlsPath, cfg.Source.CaptionBaseURL)
			if err != nil {
				return err
			}
			if strings.TrimSpace(seriesPath) != "" {
				refs, err := decodeSeriesFile(seriesPath)
				if err != nil {
					return err
				}
				imported, err = catalog.AttachSeriesIDs(imported, refs)
				if err != nil {
					return fmt.Errorf("attach series ids: %w", err)
				}
			}

			err = ctx.withStore(func(store *catalog.Store) error {
				return store.Save(runCtx, imported)
			})
			if err != nil {
				return fmt.Errorf("save catalog: %w", err)
			}

			logging.WithContext(runCtx, logger).Info("catalog imported",
				logging.String(logging.FieldEventType, "catalog_import"),
				logging.String("source", urlsPath),
				logging.Int("series", len(imported.Series())),
				logging.Int("episodes", imported.EpisodeCount()),
			)
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d series (%d episodes)\n", len(imported.Series()), imported.EpisodeCount())
			return nil
		},
	}

	cmd.Flags().StringVar(&urlsPath, "urls", "", "JSON file mapping series titles to episode lists")
	cmd.Flags().StringVar(&seriesPath, "series", "", "Optional JSON file listing series titles and site IDs")
	return cmd
}

func decodeURLsFile(path, captionBaseURL string) (*catalog.Catalog, error) {
	expanded, err := config.ExpandPath(path)
	if err != nil {
		return nil, fmt.Errorf("resolve urls path: %w", err)
	}
	file, err := os.Open(expanded)
	if err != nil {
		return nil, fmt.Errorf("open urls file: %w", err)
	}
	defer file.Close()
	imported, err := catalog.DecodeLegacyURLs(file, captionBaseURL)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", expanded, err)
	}
	return imported, nil
}

func decodeSeriesFile(path string) ([]catalog.SeriesRef, error) {
	expanded, err := config.ExpandPath(path)
	if err != nil {
		return nil, fmt.Errorf("resolve series path: %w", err)
	}
	file, err := os.Open(expanded)
	if err != nil {
		return nil, fmt.Errorf("open series file: %w", err)
	}
	defer file.Close()
	refs, err := catalog.DecodeLegacySeries(file)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", expanded, err)
	}
	return refs, nil
}

func newCatalogListCommand(ctx *commandContext) *cobra.Command {
	var seriesName string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored series, or the episodes of one series",
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := ctx.loadCatalog(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if name := strings.TrimSpace(seriesName); name != "" {
				series, err := loaded.Lookup(name)
				if err != nil {
					return err
				}
				fmt.Fprintln(out, renderEpisodeTable(series))
				return nil
			}
			fmt.Fprintln(out, renderSeriesTable(loaded.Series()))
			return nil
		},
	}

	cmd.Flags().StringVar(&seriesName, "series", "", "Show the episodes of this series (title or slug)")
	return cmd
}

func renderSeriesTable(series []catalog.Series) string {
	rows := make([][]string, 0, len(series))
	for i, s := range series {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			s.Title,
			s.Slug(),
			valueOrDash(s.ID),
			strconv.Itoa(len(s.Episodes)),
		})
	}
	return renderTable(
		[]string{"#", "Series", "Slug", "Site ID", "Episodes"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight},
	)
}

func renderEpisodeTable(series catalog.Series) string {
	rows := make([][]string, 0, len(series.Episodes))
	for _, ep := range series.Episodes {
		stream := "no"
		if ep.StreamURL != "" {
			stream = "yes"
		}
		rows = append(rows, []string{strconv.Itoa(ep.Number), ep.Title, ep.ID, stream})
	}
	return renderTable(
		[]string{"#", "Episode", "ID", "Stream"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft},
	)
}

func valueOrDash(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}
