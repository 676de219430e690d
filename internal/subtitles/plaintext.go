package subtitles

import "bytes"

// PlainText writes each cue's content on its own line, discarding timing.
func PlainText(cues []Cue) []byte {
	var buf bytes.Buffer
	for _, cue := range cues {
		buf.WriteString(cue.Content)
		buf.WriteByte('\n')
	}
	return buf.Bytes()
}
