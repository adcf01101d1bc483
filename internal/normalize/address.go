package normalize

import (
	"regexp"
	"strings"
)

// Separator runs (commas, semicolons and the whitespace around them) collapse to ", "
var reSeparators = regexp.MustCompile(`\s*[,;][\s,;]*`)

var reSpaces = regexp.MustCompile(`\s+`)

// Whole-word street type suffixes, full and abbreviated
var reStreetType = regexp.MustCompile(`(?i)\b(Street|Road|Avenue|Drive|Lane|Crescent|Boulevard|Walk|Place|Way|Loop|Terrace|View|Close|Rise|Field|St|Rd|Ave|Dr|Ln|Cres|Blvd)\b`)

// Normalize cleans punctuation and whitespace into a canonical comma-segmented form.
// Periods become spaces, every run of commas and semicolons becomes a single ", ",
// whitespace runs collapse to one space, and leading/trailing spaces, commas and
// periods are stripped. Normalize is idempotent.
func Normalize(text string) string {
	s := strings.ReplaceAll(text, ".", " ")
	s = reSeparators.ReplaceAllString(s, ", ")
	s = reSpaces.ReplaceAllString(s, " ")
	return strings.Trim(s, " ,.")
}

// Segments normalizes text and splits it on commas into trimmed, non-empty parts
func Segments(text string) []string {
	raw := strings.Split(Normalize(text), ",")
	parts := make([]string, 0, len(raw))
	for _, p := range raw {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// LooksLikeStreet reports whether text contains a street type such as Road or Ave as a whole word
func LooksLikeStreet(text string) bool {
	return reStreetType.MatchString(text)
}
