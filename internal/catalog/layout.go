package catalog

import "path/filepath"

// Layout maps catalog entries onto the output tree:
// {root}/{series}/{n}_{title}/{n}_{title}.{xml,srt,txt}.
type Layout struct {
	Root string
}

// SeriesDir returns the directory holding every episode of s.
func (l Layout) SeriesDir(s Series) string {
	return filepath.Join(l.Root, s.Slug())
}

// EpisodeDir returns the directory for one episode.
func (l Layout) EpisodeDir(s Series, ep Episode) string {
	return filepath.Join(l.SeriesDir(s), ep.Slug())
}

// CaptionPath is where the downloaded caption XML lives.
func (l Layout) CaptionPath(s Series, ep Episode) string {
	return l.episodeFile(s, ep, ".xml")
}

// SRTPath is where the converted subtitles are written.
func (l Layout) SRTPath(s Series, ep Episode) string {
	return l.episodeFile(s, ep, ".srt")
}

// TextPath is where the plain-text transcript is written.
func (l Layout) TextPath(s Series, ep Episode) string {
	return l.episodeFile(s, ep, ".txt")
}

func (l Layout) episodeFile(s Series, ep Episode, ext string) string {
	return filepath.Join(l.EpisodeDir(s, ep), ep.Slug()+ext)
}
