package testsupport

import (
	"context"
	"fmt"
	"testing"

	"foxcap/internal/catalog"
	"foxcap/internal/config"
	"foxcap/internal/textutil"
)

// MustOpenStore opens the catalog store for tests and registers cleanup.
func MustOpenStore(t testing.TB, cfg *config.Config) *catalog.Store {
	t.Helper()

	store, err := catalog.Open(cfg.Paths.CatalogDB)
	if err != nil {
		t.Fatalf("catalog.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// SeedCatalog saves c into the config's catalog database.
func SeedCatalog(t testing.TB, cfg *config.Config, c *catalog.Catalog) {
	t.Helper()

	store := MustOpenStore(t, cfg)
	if err := store.Save(context.Background(), c); err != nil {
		t.Fatalf("store.Save: %v", err)
	}
}

// NewCatalog builds a single-series catalog with one episode per title.
// Caption URLs point at baseURL/{series-slug}-{n}.xml.
func NewCatalog(t testing.TB, baseURL, seriesTitle string, titles ...string) *catalog.Catalog {
	t.Helper()

	episodes := make([]catalog.Episode, 0, len(titles))
	for i, title := range titles {
		id := EpisodeID(seriesTitle, i+1)
		ep, err := catalog.NewEpisode(i+1, id, title, catalog.CaptionURL(baseURL, id), "")
		if err != nil {
			t.Fatalf("catalog.NewEpisode: %v", err)
		}
		episodes = append(episodes, ep)
	}
	series, err := catalog.NewSeries(seriesTitle, "", episodes)
	if err != nil {
		t.Fatalf("catalog.NewSeries: %v", err)
	}
	c, err := catalog.New(series)
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	return c
}

// EpisodeID is the episode identifier NewCatalog assigns.
func EpisodeID(seriesTitle string, number int) string {
	return fmt.Sprintf("%s-%d", textutil.TitleSlug(seriesTitle), number)
}
