package analysis

import (
	"context"
	"errors"
	"fmt"
	"log"

	"earnings-analyzer/internal/ai"
	"earnings-analyzer/internal/transcript"
)

const NoContentSummary = "No content available to summarize."

type Summarizer struct {
	completer Completer
}

func NewSummarizer(completer Completer) *Summarizer {
	return &Summarizer{completer: completer}
}

// Summarize writes a short summary of what chunks say about topic. Failures are
// reported in the returned text.
func (s *Summarizer) Summarize(ctx context.Context, chunks []transcript.Chunk, topic string) string {
	summary, _ := s.SummarizeTopic(ctx, chunks, topic)
	return summary
}

// SummarizeTopic is Summarize that also reports whether the model wrote the text.
func (s *Summarizer) SummarizeTopic(ctx context.Context, chunks []transcript.Chunk, topic string) (string, bool) {
	text := ChunkText(chunks)
	if text == "" {
		return NoContentSummary, false
	}
	if s.completer == nil {
		return fmt.Sprintf("Unable to generate summary for %s. Please check your LLM API configuration.", topic), false
	}

	summary, err := s.completer.Complete(ctx, ai.CompletionRequest{
		Prompt:      summaryPrompt(truncate(text, excerptChars), topic),
		Temperature: 0.2,
		MaxTokens:   400,
	})
	if err != nil {
		log.Printf("generate summary for topic %q failed: %v", topic, err)
		return summaryFailure(topic, err), false
	}
	return summary, true
}

func summaryFailure(topic string, err error) string {
	if ai.IsQuotaExceeded(err) {
		return fmt.Sprintf("Unable to generate summary for %s. Please check your LLM account billing and ensure you have sufficient credits.", topic)
	}
	var se *ai.StatusError
	if errors.As(err, &se) {
		return fmt.Sprintf("Unable to generate summary for %s. API error: status %d.", topic, se.StatusCode)
	}
	return fmt.Sprintf("Unable to generate summary for %s. Please check your LLM API configuration.", topic)
}

func summaryPrompt(excerpt, topic string) string {
	return fmt.Sprintf(`You are an expert earnings call analyst.
Summarize what the transcript content says about the topic %q.

Guidelines:
- Use only information related to this topic
- Keep the numbers, percentages and financial figures that were mentioned
- Name the speaker behind each key point
- Write 3 to 5 sentences in professional business language
- Cover differing perspectives if there are any
- Call out forward-looking statements and guidance

Topic: %s

Transcript Content:
%s

Summary based only on the transcript content:
`, topic, topic, excerpt)
}
