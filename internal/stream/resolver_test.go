package stream_test

import (
	"context"
	"errors"
	"testing"

	"foxcap/internal/catalog"
	"foxcap/internal/stream"
)

func buildCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	withStream, err := catalog.NewEpisode(1, "C1", "Morning", "https://cdn.example.com/C1.xml", "https://cdn.example.com/C1/index.m3u8")
	if err != nil {
		t.Fatalf("NewEpisode: %v", err)
	}
	without, err := catalog.NewEpisode(2, "C2", "Evening", "https://cdn.example.com/C2.xml", "")
	if err != nil {
		t.Fatalf("NewEpisode: %v", err)
	}
	series, err := catalog.NewSeries("Fox Tales", "", []catalog.Episode{withStream, without})
	if err != nil {
		t.Fatalf("NewSeries: %v", err)
	}
	cat, err := catalog.New(series)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return cat
}

func TestLookupResolvesRecordedStream(t *testing.T) {
	cat := buildCatalog(t)
	got, err := stream.Lookup(context.Background(), stream.CatalogResolver{}, cat, "fox-tales", 1)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if got.String() != "https://cdn.example.com/C1/index.m3u8" {
		t.Fatalf("url = %q", got)
	}
}

func TestLookupErrors(t *testing.T) {
	cat := buildCatalog(t)
	ctx := context.Background()

	if _, err := stream.Lookup(ctx, stream.CatalogResolver{}, cat, "fox-tales", 2); !errors.Is(err, stream.ErrStreamUnavailable) {
		t.Fatalf("expected ErrStreamUnavailable, got %v", err)
	}
	if _, err := stream.Lookup(ctx, stream.CatalogResolver{}, cat, "fox-tales", 9); !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if _, err := stream.Lookup(cancelled, stream.CatalogResolver{}, cat, "fox-tales", 1); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
