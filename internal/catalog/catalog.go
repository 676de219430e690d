package catalog

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"foxcap/internal/textutil"
)

var (
	// ErrInvalidRecord reports a series or episode that failed validation.
	ErrInvalidRecord = errors.New("invalid catalog record")
	// ErrNotFound reports a lookup for a series or episode the catalog lacks.
	ErrNotFound = errors.New("not found in catalog")
)

// Episode is one catalog entry. Number is the 1-based position within its series.
type Episode struct {
	Number     int
	ID         string
	Title      string
	CaptionURL string
	StreamURL  string
}

// NewEpisode validates and returns an episode. StreamURL may be empty when the
// stream has not been discovered.
func NewEpisode(number int, id, title, captionURL, streamURL string) (Episode, error) {
	ep := Episode{
		Number:     number,
		ID:         strings.TrimSpace(id),
		Title:      strings.TrimSpace(title),
		CaptionURL: strings.TrimSpace(captionURL),
		StreamURL:  strings.TrimSpace(streamURL),
	}
	if ep.Number < 1 {
		return Episode{}, fmt.Errorf("%w: episode number must be positive, got %d", ErrInvalidRecord, number)
	}
	if ep.ID == "" {
		return Episode{}, fmt.Errorf("%w: episode %d: id is required", ErrInvalidRecord, number)
	}
	if ep.Title == "" {
		return Episode{}, fmt.Errorf("%w: episode %d: title is required", ErrInvalidRecord, number)
	}
	if err := validateURL(ep.CaptionURL); err != nil {
		return Episode{}, fmt.Errorf("%w: episode %d: caption url: %w", ErrInvalidRecord, number, err)
	}
	if ep.StreamURL != "" {
		if err := validateURL(ep.StreamURL); err != nil {
			return Episode{}, fmt.Errorf("%w: episode %d: stream url: %w", ErrInvalidRecord, number, err)
		}
	}
	return ep, nil
}

// Slug names the episode's directory and files, e.g. "3_the-red-kite".
func (e Episode) Slug() string {
	return fmt.Sprintf("%d_%s", e.Number, textutil.TitleSlug(e.Title))
}

// Series groups episodes under a title. ID is the site's series identifier
// and may be empty for catalogs imported without it.
type Series struct {
	Title    string
	ID       string
	Episodes []Episode
}

// NewSeries validates and returns a series. Episode numbers must be unique.
func NewSeries(title, id string, episodes []Episode) (Series, error) {
	s := Series{
		Title: strings.TrimSpace(title),
		ID:    strings.TrimSpace(id),
	}
	if s.Title == "" {
		return Series{}, fmt.Errorf("%w: series title is required", ErrInvalidRecord)
	}
	seen := make(map[int]struct{}, len(episodes))
	for _, ep := range episodes {
		if _, dup := seen[ep.Number]; dup {
			return Series{}, fmt.Errorf("%w: series %q: duplicate episode number %d", ErrInvalidRecord, s.Title, ep.Number)
		}
		seen[ep.Number] = struct{}{}
	}
	s.Episodes = append([]Episode(nil), episodes...)
	return s, nil
}

// Slug names the series directory.
func (s Series) Slug() string {
	return textutil.TitleSlug(s.Title)
}

// Episode returns the episode with the given number.
func (s Series) Episode(number int) (Episode, bool) {
	for _, ep := range s.Episodes {
		if ep.Number == number {
			return ep, true
		}
	}
	return Episode{}, false
}

// Catalog is an ordered, immutable set of series.
type Catalog struct {
	series []Series
}

// New builds a catalog. Series slugs must be unique because they name
// output directories.
func New(series ...Series) (*Catalog, error) {
	seen := make(map[string]string, len(series))
	for _, s := range series {
		slug := s.Slug()
		if other, dup := seen[slug]; dup {
			return nil, fmt.Errorf("%w: series %q and %q share directory %q", ErrInvalidRecord, other, s.Title, slug)
		}
		seen[slug] = s.Title
	}
	return &Catalog{series: append([]Series(nil), series...)}, nil
}

// Series returns the catalog's series in order.
func (c *Catalog) Series() []Series {
	if c == nil {
		return nil
	}
	return append([]Series(nil), c.series...)
}

// Lookup finds a series by title or slug.
func (c *Catalog) Lookup(name string) (Series, error) {
	if c != nil {
		slug := textutil.TitleSlug(name)
		for _, s := range c.series {
			if s.Title == strings.TrimSpace(name) || s.Slug() == slug {
				return s, nil
			}
		}
	}
	return Series{}, fmt.Errorf("series %q: %w", name, ErrNotFound)
}

// Episode finds one episode by series name and number.
func (c *Catalog) Episode(seriesName string, number int) (Series, Episode, error) {
	s, err := c.Lookup(seriesName)
	if err != nil {
		return Series{}, Episode{}, err
	}
	ep, ok := s.Episode(number)
	if !ok {
		return Series{}, Episode{}, fmt.Errorf("series %q episode %d: %w", s.Title, number, ErrNotFound)
	}
	return s, ep, nil
}

// EpisodeCount returns the number of episodes across all series.
func (c *Catalog) EpisodeCount() int {
	if c == nil {
		return 0
	}
	total := 0
	for _, s := range c.series {
		total += len(s.Episodes)
	}
	return total
}

// CaptionURL builds the caption document URL for an episode ID.
func CaptionURL(baseURL, episodeID string) string {
	return strings.TrimRight(strings.TrimSpace(baseURL), "/") + "/" + url.PathEscape(strings.TrimSpace(episodeID)) + ".xml"
}

func validateURL(raw string) error {
	if raw == "" {
		return errors.New("is required")
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q", parsed.Scheme)
	}
	if parsed.Host == "" {
		return errors.New("missing host")
	}
	return nil
}
