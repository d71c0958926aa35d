package transcript

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	minSpeakerLen = 2
	maxSpeakerLen = 50
)

type speakerRule struct {
	name    string
	pattern *regexp.Regexp
}

// Evaluated in order; the first rule whose pattern matches and whose speaker
// survives the length gate wins.
var speakerRules = []speakerRule{
	{name: "name-colon", pattern: regexp.MustCompile(`^([A-Z][a-zA-Z\s.]+?):\s*(.+)$`)},
	{name: "caps-dash", pattern: regexp.MustCompile(`^([A-Z][A-Z\s.]+?)\s*[-:]\s*(.+)$`)},
}

var (
	speakerNoise = regexp.MustCompile(`[()\d]+`)

	// speakerTurnLine is the loose turn anchor used when no opening phrase exists.
	speakerTurnLine = regexp.MustCompile(`^[A-Z][a-zA-Z\s.]+:\s`)
)

// DetectSpeaker reports whether line opens a new speaker turn. When it does not,
// speaker is empty and message is the whole trimmed line.
func DetectSpeaker(line string) (speaker, message string) {
	line = strings.TrimSpace(line)
	for _, rule := range speakerRules {
		m := rule.pattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		name := cleanSpeaker(m[1])
		if n := utf8.RuneCountInString(name); n >= minSpeakerLen && n <= maxSpeakerLen {
			return name, strings.TrimSpace(m[2])
		}
	}
	return "", line
}

func cleanSpeaker(raw string) string {
	name := speakerNoise.ReplaceAllString(strings.TrimSpace(raw), "")
	return strings.Join(strings.Fields(name), " ")
}
