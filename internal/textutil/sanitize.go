package textutil

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// fileNameReplacer replaces filesystem-unsafe characters with safe alternatives.
var fileNameReplacer = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	"?", "",
	"\"", "",
	"<", "",
	">", "",
	"|", "",
)

// SanitizeFileName replaces filesystem-unsafe characters in a filename.
// Slashes, backslashes, colons, and asterisks become dashes; other unsafe
// characters are removed. The result is trimmed of leading/trailing whitespace.
func SanitizeFileName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	return strings.TrimSpace(fileNameReplacer.Replace(name))
}

// TitleSlug lowercases and trims a display title, turns each space into a
// dash, and strips characters that are unsafe in a path segment. Non-Latin
// characters are preserved. Returns "untitled" when nothing usable remains.
func TitleSlug(title string) string {
	// Casers carry state, so each call gets its own.
	slug := cases.Lower(language.Und).String(strings.TrimSpace(title))
	slug = strings.ReplaceAll(slug, " ", "-")
	slug = SanitizeFileName(slug)
	slug = strings.Trim(slug, ".")
	if slug == "" {
		return "untitled"
	}
	return slug
}
