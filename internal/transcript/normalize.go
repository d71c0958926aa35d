package transcript

import (
	"regexp"
	"strings"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	pageMarker    = regexp.MustCompile(`Page \d+ of \d+`)
	lineBreak     = regexp.MustCompile(`\r\n|\r|\n`)
)

// Normalize collapses whitespace, strips "Page n of m" markers and trims the result.
// An empty result is valid; callers drop it.
func Normalize(raw string) string {
	out := collapseSpaces(raw)
	// Removing one marker can splice two fragments into a new one.
	for pageMarker.MatchString(out) {
		out = collapseSpaces(pageMarker.ReplaceAllString(out, ""))
	}
	return out
}

func collapseSpaces(s string) string {
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}

// SplitLines breaks raw text into normalized, non-empty lines.
func SplitLines(raw string) []string {
	parts := lineBreak.Split(raw, -1)
	lines := make([]string, 0, len(parts))
	for _, p := range parts {
		if clean := Normalize(p); clean != "" {
			lines = append(lines, clean)
		}
	}
	return lines
}
