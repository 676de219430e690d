package subtitles

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// toneMarkedVowels is the closed set of pinyin vowels carrying a tone mark.
const toneMarkedVowels = "āáǎàēéěèīíǐìōóǒòūúǔùǖǘǚǜ"

// IsPhoneticLine reports whether line contains a tone-marked vowel. The line
// is composed to NFC first so a base vowel followed by a combining mark counts.
func IsPhoneticLine(line string) bool {
	return strings.ContainsAny(norm.NFC.String(line), toneMarkedVowels)
}

// StripPhoneticLines drops every line containing a tone-marked vowel, rejoins
// the rest with newlines, and trims the result.
func StripPhoneticLines(content string) string {
	lines := strings.Split(content, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if IsPhoneticLine(line) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}
