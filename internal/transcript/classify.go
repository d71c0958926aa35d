package transcript

import "strings"

var interrogatives = []string{"what", "how", "when", "why"}

type classifyRule struct {
	name     string
	match    func(speaker, message string) bool
	question bool
}

// Classifier tags Q&A turns as question or answer. It is a best-effort heuristic.
type Classifier struct {
	rules []classifyRule
}

func NewClassifier(questionSpeakers, answerSpeakers []string) *Classifier {
	questionWords := lowerAll(questionSpeakers)
	answerWords := lowerAll(answerSpeakers)
	return &Classifier{rules: []classifyRule{
		{
			name:     "question-speaker",
			match:    func(speaker, _ string) bool { return containsAny(strings.ToLower(speaker), questionWords) },
			question: true,
		},
		{
			name:     "answer-speaker",
			match:    func(speaker, _ string) bool { return containsAny(strings.ToLower(speaker), answerWords) },
			question: false,
		},
		{
			name:     "question-mark",
			match:    func(_, message string) bool { return strings.HasSuffix(normalizedMessage(message), "?") },
			question: true,
		},
		{
			name: "interrogative-opening",
			match: func(_, message string) bool {
				msg := normalizedMessage(message)
				for _, w := range interrogatives {
					if strings.HasPrefix(msg, w) {
						return true
					}
				}
				return false
			},
			question: true,
		},
	}}
}

// IsQuestion applies the rules in order; a turn no rule claims is an answer.
func (c *Classifier) IsQuestion(speaker, message string) bool {
	for _, r := range c.rules {
		if r.match(speaker, message) {
			return r.question
		}
	}
	return false
}

func normalizedMessage(message string) string {
	return strings.ToLower(strings.TrimSpace(message))
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
