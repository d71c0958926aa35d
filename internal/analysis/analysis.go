// Package analysis turns transcript chunks into topics, topic summaries and
// grounded answers using a language model.
package analysis

import (
	"context"
	"strings"
	"unicode/utf8"

	"earnings-analyzer/internal/ai"
	"earnings-analyzer/internal/transcript"
)

// excerptChars bounds the transcript text sent with topic and summary prompts.
const excerptChars = 4000

// Completer is the language-model collaborator.
type Completer interface {
	Complete(ctx context.Context, req ai.CompletionRequest) (string, error)
}

// ChunkText joins the non-empty chunk messages with single spaces.
func ChunkText(chunks []transcript.Chunk) string {
	parts := make([]string, 0, len(chunks))
	for _, c := range chunks {
		if c.Message != "" {
			parts = append(parts, c.Message)
		}
	}
	return strings.Join(parts, " ")
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
