package transcript

import (
	"fmt"
	"regexp"
	"strings"
)

// Rules holds the transcript-specific vocabulary. Every list is tried in order and
// the first hit wins, so more specific entries belong first.
type Rules struct {
	CallStartPatterns []string
	QAStartPatterns   []string
	QuestionSpeakers  []string
	AnswerSpeakers    []string
	CompanyNames      []string
	MaxChunkChars     int
}

func DefaultRules() Rules {
	return Rules{
		CallStartPatterns: []string{
			`Moderator.*Ladies and gentlemen`,
			`good day and welcome`,
			`welcome to.*earnings`,
		},
		QAStartPatterns: []string{
			`question.*answer.*session`,
			`begin the question`,
			`first question.*from.*line`,
			`open.*lines.*Q&A`,
		},
		QuestionSpeakers: []string{"analyst", "participant", "investor"},
		AnswerSpeakers:   []string{"ceo", "cfo", "dr.", "mr."},
		MaxChunkChars:    DefaultMaxChunkChars,
	}
}

func compileInsensitive(patterns []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return nil, fmt.Errorf("compile pattern %q failed: %w", p, err)
		}
		out = append(out, re)
	}
	return out, nil
}

func lowerAll(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			out = append(out, w)
		}
	}
	return out
}
