package subtitles

import (
	"strings"
	"testing"
)

func TestValidateReportsIssues(t *testing.T) {
	if issues := Validate(nil); len(issues) != 1 || issues[0] != "empty_subtitle_file" {
		t.Fatalf("unexpected issues for empty input: %v", issues)
	}

	cues := []Cue{
		{Index: 1, Start: ms(100), End: ms(50)},
		{Index: 3, Start: ms(0), End: ms(10)},
	}
	issues := strings.Join(Validate(cues), ";")
	for _, want := range []string{"inverted_timing: cue 1", "index_gap: cue 2", "start_regression: cue 2"} {
		if !strings.Contains(issues, want) {
			t.Fatalf("expected %q in %q", want, issues)
		}
	}
}
