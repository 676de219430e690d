package subtitles

import "fmt"

// Validate checks a cue sequence for structural problems. It returns a list
// of issue codes; an empty slice means the sequence is well formed. An empty
// sequence is reported but is not an error for callers that allow it.
func Validate(cues []Cue) []string {
	var issues []string
	if len(cues) == 0 {
		return append(issues, "empty_subtitle_file")
	}
	for i, cue := range cues {
		if cue.Index != i+1 {
			issues = append(issues, fmt.Sprintf("index_gap: cue %d has index %d", i+1, cue.Index))
		}
		if cue.End < cue.Start {
			issues = append(issues, fmt.Sprintf("inverted_timing: cue %d", i+1))
		}
		if i > 0 && cue.Start < cues[i-1].Start {
			issues = append(issues, fmt.Sprintf("start_regression: cue %d", i+1))
		}
	}
	return issues
}
