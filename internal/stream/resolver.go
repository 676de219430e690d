// Package stream resolves the media stream URL for a catalog episode.
package stream

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"foxcap/internal/catalog"
)

// ErrStreamUnavailable reports an episode with no known stream.
var ErrStreamUnavailable = errors.New("stream unavailable")

// Resolver maps an episode handle to its stream URL.
type Resolver interface {
	Resolve(ctx context.Context, series catalog.Series, ep catalog.Episode) (*url.URL, error)
}

// CatalogResolver answers from the stream URLs recorded in the catalog.
type CatalogResolver struct{}

// Resolve returns ep.StreamURL, or ErrStreamUnavailable when none is recorded.
func (CatalogResolver) Resolve(ctx context.Context, series catalog.Series, ep catalog.Episode) (*url.URL, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if ep.StreamURL == "" {
		return nil, fmt.Errorf("%s episode %d: %w", series.Title, ep.Number, ErrStreamUnavailable)
	}
	parsed, err := url.Parse(ep.StreamURL)
	if err != nil {
		return nil, fmt.Errorf("%s episode %d: parse stream url: %w", series.Title, ep.Number, err)
	}
	return parsed, nil
}

// Lookup finds an episode in c and resolves it with r.
func Lookup(ctx context.Context, r Resolver, c *catalog.Catalog, seriesName string, number int) (*url.URL, error) {
	series, ep, err := c.Episode(seriesName, number)
	if err != nil {
		return nil, err
	}
	return r.Resolve(ctx, series, ep)
}
