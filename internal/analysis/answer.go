package analysis

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"unicode/utf8"

	"earnings-analyzer/internal/ai"
	"earnings-analyzer/internal/retrieval"
	"earnings-analyzer/internal/transcript"
)

const (
	MsgInvalidQuestion = "Please enter a valid question."
	MsgNoTranscript    = "No transcript loaded."
	MsgNotConfigured   = "Answer generation is not configured. Please set an LLM API key."
	MsgNoRelevantInfo  = "No relevant information found in the transcript for your question."
	MsgRateLimited     = "Rate limit exceeded. Please wait a moment and try again."

	sourceChars        = 500
	previewChars       = 200
	maxDisplaySources  = 3
	minQuestionChars   = 5
	maxQuestionChars   = 500
	highContextChars   = 2000
	mediumContextChars = 1000
)

const (
	ConfidenceHigh   = "High"
	ConfidenceMedium = "Medium"
	ConfidenceLow    = "Low"
)

var (
	ErrQuestionTooShort = errors.New("Question is too short. Please provide a more detailed question.")
	ErrQuestionTooLong  = errors.New("Question is too long. Please keep it under 500 characters.")
)

// Searcher retrieves the chunks most relevant to a question.
type Searcher interface {
	Search(ctx context.Context, question string, chunks []transcript.Chunk, topK int) []retrieval.Result
}

type Answer struct {
	Text       string             `json:"answer"`
	Confidence string             `json:"confidence,omitempty"`
	Sources    []retrieval.Result `json:"sources"`
}

type AnswerOptions struct {
	Temperature float64
	MaxTokens   int
}

type Answerer struct {
	completer Completer
	searcher  Searcher
	opts      AnswerOptions
}

func NewAnswerer(completer Completer, searcher Searcher, opts AnswerOptions) *Answerer {
	return &Answerer{completer: completer, searcher: searcher, opts: opts}
}

// Ask answers question from the chunks retrieved for it. Every outcome, including
// collaborator failures, is reported as answer text.
func (a *Answerer) Ask(ctx context.Context, question string, chunks []transcript.Chunk, topK int) Answer {
	if strings.TrimSpace(question) == "" {
		return Answer{Text: MsgInvalidQuestion, Sources: []retrieval.Result{}}
	}
	if len(chunks) == 0 {
		return Answer{Text: MsgNoTranscript, Sources: []retrieval.Result{}}
	}
	if a.completer == nil {
		return Answer{Text: MsgNotConfigured, Sources: []retrieval.Result{}}
	}

	sources := a.searcher.Search(ctx, question, chunks, topK)
	if len(sources) == 0 {
		return Answer{Text: MsgNoRelevantInfo, Sources: []retrieval.Result{}}
	}

	sourceText := BuildContext(sources)
	text, err := a.completer.Complete(ctx, ai.CompletionRequest{
		System:      answerSystemPrompt,
		Prompt:      answerPrompt(question, sourceText),
		Temperature: a.opts.Temperature,
		MaxTokens:   a.opts.MaxTokens,
		TopP:        0.9,
	})
	if err != nil {
		log.Printf("generate answer failed: %v", err)
		return Answer{Text: answerFailure(err), Sources: sources}
	}

	confidence := ConfidenceLevel(sourceText)
	return Answer{
		Text:       fmt.Sprintf("%s\n\n*Confidence Level: %s (based on available context)*", text, confidence),
		Confidence: confidence,
		Sources:    sources,
	}
}

func answerFailure(err error) string {
	if ai.IsRateLimited(err) {
		return MsgRateLimited
	}
	var se *ai.StatusError
	if errors.As(err, &se) {
		return fmt.Sprintf("LLM API error (status %d). Please check your API key and try again.", se.StatusCode)
	}
	return fmt.Sprintf("Error generating answer: %v", err)
}

// BuildContext renders retrieved chunks as numbered source blocks. Each source is
// flattened to one line and cut to 500 characters.
func BuildContext(sources []retrieval.Result) string {
	blocks := make([]string, len(sources))
	for i, s := range sources {
		text := strings.TrimSpace(strings.ReplaceAll(s.Text, "\n", " "))
		if utf8.RuneCountInString(text) > sourceChars {
			text = truncate(text, sourceChars) + "..."
		}
		blocks[i] = fmt.Sprintf("[Source %d, Relevance: %.2f]\n%s", i+1, s.Similarity, text)
	}
	return strings.Join(blocks, "\n\n")
}

// ConfidenceLevel grades an answer by how much context backed it.
func ConfidenceLevel(sourceText string) string {
	n := utf8.RuneCountInString(sourceText)
	switch {
	case n > highContextChars:
		return ConfidenceHigh
	case n > mediumContextChars:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// FormatResponse appends the top three sources with short previews to answer.
func FormatResponse(answer string, sources []retrieval.Result) string {
	if len(sources) == 0 {
		return answer
	}
	var b strings.Builder
	b.WriteString(answer)
	b.WriteString("\n\n**Sources Used:**\n")
	for i, s := range sources {
		if i == maxDisplaySources {
			break
		}
		preview := s.Text
		if utf8.RuneCountInString(preview) > previewChars {
			preview = truncate(preview, previewChars) + "..."
		}
		fmt.Fprintf(&b, "\n%d. (Relevance: %.2f) %s\n", i+1, s.Similarity, preview)
	}
	return b.String()
}

// ValidateQuestion rejects questions shorter than 5 or longer than 500 characters.
func ValidateQuestion(question string) error {
	if utf8.RuneCountInString(strings.TrimSpace(question)) < minQuestionChars {
		return ErrQuestionTooShort
	}
	if utf8.RuneCountInString(question) > maxQuestionChars {
		return ErrQuestionTooLong
	}
	return nil
}

var sampleQuestions = []string{
	"What was the revenue growth this quarter?",
	"What are the key challenges mentioned by management?",
	"Any updates on new product launches or approvals?",
	"What is the company's outlook for next quarter?",
	"Who are the key management personnel speaking?",
	"What were the main financial highlights?",
	"Any discussion about market competition?",
	"What are the company's future strategic plans?",
	"What was the EBITDA margin performance?",
	"Any guidance provided for the full year?",
	"What are the key risks or challenges ahead?",
	"Any updates on regulatory approvals?",
}

func SampleQuestions() []string {
	out := make([]string, len(sampleQuestions))
	copy(out, sampleQuestions)
	return out
}

const answerSystemPrompt = `You are an assistant that analyzes earnings call transcripts.

Rules:
1. Answer ONLY from the transcript context you are given
2. Cite speaker names, numbers, financial figures and dates when they are available
3. Keep answers to 2-4 sentences unless the question needs more detail
4. If the context does not cover the question, say so plainly
5. Quote the transcript directly when a quote supports the answer
6. Stay with facts stated on the call

Answer format:
- Open with a direct answer
- Back it with specific details from the transcript
- Include the financial metrics, percentages or targets that were mentioned
- Name the speaker behind each key point`

func answerPrompt(question, sourceText string) string {
	return fmt.Sprintf(`
Question: %s

Earnings Call Transcript Context:
%s

Answer using only the information in the transcript context above.
`, question, sourceText)
}
