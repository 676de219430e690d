package captions

import "time"

// Fragment is one timed caption unit exactly as it appears in the source document.
type Fragment struct {
	Start time.Duration
	End   time.Duration
	Text  string
}

// Duration returns the span covered by the fragment.
func (f Fragment) Duration() time.Duration {
	return f.End - f.Start
}
