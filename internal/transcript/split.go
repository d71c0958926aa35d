package transcript

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// SplitLongText splits text into chunks of at most maxChars characters, breaking
// only between sentences. A sentence longer than maxChars is cut to exactly
// maxChars characters.
func SplitLongText(text string, maxChars int) []string {
	if maxChars <= 0 {
		maxChars = DefaultMaxChunkChars
	}
	if utf8.RuneCountInString(text) <= maxChars {
		return []string{text}
	}

	var (
		chunks  []string
		current string
	)
	for _, sentence := range splitSentences(text) {
		if utf8.RuneCountInString(current)+utf8.RuneCountInString(sentence)+1 <= maxChars {
			if current == "" {
				current = sentence
			} else {
				current = strings.TrimSpace(current + " " + sentence)
			}
			continue
		}
		if current != "" {
			chunks = append(chunks, current)
		}
		current = truncateRunes(sentence, maxChars)
	}
	if current != "" {
		chunks = append(chunks, current)
	}
	return chunks
}

// splitSentences breaks after '.', '!' or '?' when whitespace follows.
func splitSentences(text string) []string {
	var (
		sentences []string
		start     int
	)
	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		if !isSentenceEnd(runes[i]) || i+1 >= len(runes) || !unicode.IsSpace(runes[i+1]) {
			continue
		}
		sentences = append(sentences, string(runes[start:i+1]))
		j := i + 1
		for j < len(runes) && unicode.IsSpace(runes[j]) {
			j++
		}
		start = j
		i = j - 1
	}
	if start < len(runes) {
		sentences = append(sentences, string(runes[start:]))
	}
	return sentences
}

func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
