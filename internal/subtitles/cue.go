package subtitles

import "time"

// Cue is one finalized subtitle entry. Index is 1-based and assigned when a
// cue sequence is produced; Compose renumbers on output.
type Cue struct {
	Index   int
	Start   time.Duration
	End     time.Duration
	Content string
}

func renumber(cues []Cue) {
	for i := range cues {
		cues[i].Index = i + 1
	}
}
