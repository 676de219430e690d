package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"foxcap/internal/textutil"
)

type legacyEpisode struct {
	Title     string `json:"title"`
	ID        string `json:"id"`
	XMLURL    string `json:"xml_url"`
	StreamURL string `json:"stream_url"`
}

// SeriesRef is one entry of a legacy series.json export.
type SeriesRef struct {
	Title string `json:"title"`
	ID    string `json:"id"`
}

// DecodeLegacyURLs reads a urls.json export keyed by series title. Series keep
// their document order and episodes are numbered by array position. Episodes
// without an xml_url get one derived from captionBaseURL.
func DecodeLegacyURLs(r io.Reader, captionBaseURL string) (*Catalog, error) {
	dec := json.NewDecoder(r)
	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	var series []Series
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("read series key: %w", err)
		}
		title, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("read series key: unexpected token %v", tok)
		}

		var entries []legacyEpisode
		if err := dec.Decode(&entries); err != nil {
			return nil, fmt.Errorf("series %q: decode episodes: %w", title, err)
		}

		episodes := make([]Episode, 0, len(entries))
		for i, entry := range entries {
			captionURL := strings.TrimSpace(entry.XMLURL)
			if captionURL == "" && strings.TrimSpace(entry.ID) != "" {
				captionURL = CaptionURL(captionBaseURL, entry.ID)
			}
			ep, err := NewEpisode(i+1, entry.ID, entry.Title, captionURL, entry.StreamURL)
			if err != nil {
				return nil, fmt.Errorf("series %q: %w", title, err)
			}
			episodes = append(episodes, ep)
		}

		s, err := NewSeries(title, "", episodes)
		if err != nil {
			return nil, err
		}
		series = append(series, s)
	}

	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	return New(series...)
}

// DecodeLegacySeries reads a series.json export.
func DecodeLegacySeries(r io.Reader) ([]SeriesRef, error) {
	var refs []SeriesRef
	if err := json.NewDecoder(r).Decode(&refs); err != nil {
		return nil, fmt.Errorf("decode series list: %w", err)
	}
	for i := range refs {
		refs[i].Title = strings.TrimSpace(refs[i].Title)
		refs[i].ID = strings.TrimSpace(refs[i].ID)
		if refs[i].Title == "" {
			return nil, fmt.Errorf("%w: series entry %d has no title", ErrInvalidRecord, i+1)
		}
	}
	return refs, nil
}

// AttachSeriesIDs returns a copy of c with series IDs filled from refs,
// matched by title slug. Series without a matching ref keep their ID.
func AttachSeriesIDs(c *Catalog, refs []SeriesRef) (*Catalog, error) {
	ids := make(map[string]string, len(refs))
	for _, ref := range refs {
		ids[textutil.TitleSlug(ref.Title)] = ref.ID
	}
	series := c.Series()
	for i := range series {
		if id, ok := ids[series[i].Slug()]; ok && id != "" {
			series[i].ID = id
		}
	}
	return New(series...)
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("decode urls: unexpected end of input")
		}
		return fmt.Errorf("decode urls: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != want {
		return fmt.Errorf("decode urls: expected %q, got %v", want, tok)
	}
	return nil
}
