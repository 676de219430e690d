package subtitles

import (
	"strings"
	"time"

	"foxcap/internal/captions"
)

const (
	wordMarkerOpen  = "[@"
	wordMarkerClose = "@]"
)

var markerReplacer = strings.NewReplacer(wordMarkerOpen, "", wordMarkerClose, "")

// IsWordLevel reports whether any fragment carries a word-boundary marker.
// One marked fragment classifies the whole stream.
func IsWordLevel(fragments []captions.Fragment) bool {
	for _, fragment := range fragments {
		if strings.Contains(fragment.Text, wordMarkerOpen) {
			return true
		}
	}
	return false
}

// StripMarkers removes every [@ and @] marker from text.
func StripMarkers(text string) string {
	return markerReplacer.Replace(text)
}

// Normalize converts fragments into cues. Word-level streams are merged into
// one cue per line with pinyin lines removed; line-level streams map one
// fragment to one cue with markers stripped.
func Normalize(fragments []captions.Fragment) []Cue {
	if IsWordLevel(fragments) {
		return MergeWordFragments(fragments)
	}
	return LineCues(fragments)
}

// LineCues maps fragments 1:1 onto cues, stripping markers but leaving
// timing and line structure untouched.
func LineCues(fragments []captions.Fragment) []Cue {
	cues := make([]Cue, 0, len(fragments))
	for _, fragment := range fragments {
		cues = append(cues, Cue{
			Start:   fragment.Start,
			End:     fragment.End,
			Content: StripMarkers(fragment.Text),
		})
	}
	renumber(cues)
	return cues
}

// MergeWordFragments collapses each run of consecutive fragments with equal
// marker-stripped text into a single cue spanning the run's first start to
// its last end, then strips pinyin lines from each cue. The final open run is
// always emitted.
func MergeWordFragments(fragments []captions.Fragment) []Cue {
	cues := make([]Cue, 0, len(fragments))
	var (
		previous *captions.Fragment
		runStart time.Duration
	)
	for i := range fragments {
		fragment := fragments[i]
		fragment.Text = StripMarkers(fragment.Text)
		if previous == nil {
			runStart = fragment.Start
			previous = &fragment
			continue
		}
		if fragment.Text != previous.Text {
			cues = append(cues, Cue{Start: runStart, End: previous.End, Content: previous.Text})
			runStart = fragment.Start
		}
		previous = &fragment
	}
	if previous != nil {
		cues = append(cues, Cue{Start: runStart, End: previous.End, Content: previous.Text})
	}
	for i := range cues {
		cues[i].Content = StripPhoneticLines(cues[i].Content)
	}
	renumber(cues)
	return cues
}
