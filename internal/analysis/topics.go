package analysis

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"regexp"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"earnings-analyzer/internal/ai"
	"earnings-analyzer/internal/transcript"
)

const DefaultMaxTopics = 5

type Topic struct {
	Topic       string `json:"topic"`
	Description string `json:"description"`
}

// FocusAngles are the emphases a regenerated topic list may take.
var FocusAngles = []string{
	"business strategy and financial performance",
	"market dynamics and competitive positioning",
	"operational excellence and growth initiatives",
	"regulatory environment and risk factors",
	"innovation and future opportunities",
}

// AngleChooser picks one focus angle for a regenerated topic list.
type AngleChooser func(angles []string) string

// RandomAngle returns an AngleChooser backed by a time-seeded source.
func RandomAngle() AngleChooser {
	var mu sync.Mutex
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	return func(angles []string) string {
		mu.Lock()
		defer mu.Unlock()
		return angles[r.Intn(len(angles))]
	}
}

var (
	topicNumbering = regexp.MustCompile(`^\d+\.\s*`)
	topicBullet    = regexp.MustCompile(`^[\-\*]\s*`)
)

type TopicExtractor struct {
	completer   Completer
	chooseAngle AngleChooser
}

// NewTopicExtractor returns a TopicExtractor. A nil completer yields the
// fallback topics; a nil chooser uses RandomAngle.
func NewTopicExtractor(completer Completer, chooser AngleChooser) *TopicExtractor {
	if chooser == nil {
		chooser = RandomAngle()
	}
	return &TopicExtractor{completer: completer, chooseAngle: chooser}
}

// Extract asks the model for up to maxTopics topics covering chunks. Chunks with
// no text yield no topics; any model failure yields FallbackTopics.
func (e *TopicExtractor) Extract(ctx context.Context, chunks []transcript.Chunk, maxTopics int, regenerate bool) []Topic {
	topics, _ := e.ExtractTopics(ctx, chunks, maxTopics, regenerate)
	return topics
}

// ExtractTopics is Extract that also reports whether the topics came from the
// model.
func (e *TopicExtractor) ExtractTopics(ctx context.Context, chunks []transcript.Chunk, maxTopics int, regenerate bool) ([]Topic, bool) {
	if maxTopics <= 0 {
		maxTopics = DefaultMaxTopics
	}
	text := ChunkText(chunks)
	if text == "" {
		return []Topic{}, false
	}
	if e.completer == nil {
		return FallbackTopics(), false
	}

	emphasis := "Focus on the most important business topics."
	temperature := 0.2
	if regenerate {
		emphasis = fmt.Sprintf("Focus particularly on %s. Offer fresh angles rather than the usual earnings call themes.", e.chooseAngle(FocusAngles))
		temperature = 0.4
	}

	raw, err := e.completer.Complete(ctx, ai.CompletionRequest{
		Prompt:      topicPrompt(truncate(text, excerptChars), maxTopics, emphasis),
		Temperature: temperature,
		MaxTokens:   600,
		TopP:        0.9,
	})
	if err != nil {
		if ai.IsQuotaExceeded(err) {
			log.Printf("generate topics failed, check llm billing and quota: %v", err)
		} else {
			log.Printf("generate topics failed: %v", err)
		}
		return FallbackTopics(), false
	}
	return ParseTopics(raw, maxTopics), true
}

func topicPrompt(excerpt string, maxTopics int, emphasis string) string {
	return fmt.Sprintf(`You are an expert earnings call analyst.
Read the transcript section below and identify the %d most important business topics.
%s

Guidelines:
- Use specific topic names, never generic ones such as "Management Discussion"
- Stick to concrete matters: financials, strategy, operations, market conditions
- Mention figures, metrics or named initiatives where the transcript gives them
- Rank topics by how much an investor would care

Answer with one topic per line in the form:
Topic Name: Description

Transcript Section:
%s
`, maxTopics, emphasis, excerpt)
}

// ParseTopics reads "Name: Description" lines, stripping numbering and bullets.
// Lines without a colon or with a name of three characters or fewer are skipped.
func ParseTopics(raw string, maxTopics int) []Topic {
	topics := []Topic{}
	for _, line := range strings.Split(raw, "\n") {
		if len(topics) >= maxTopics {
			break
		}
		line = strings.TrimSpace(line)
		name, description, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		name = topicNumbering.ReplaceAllString(strings.TrimSpace(name), "")
		name = topicBullet.ReplaceAllString(name, "")
		name = strings.TrimSpace(strings.Trim(name, "*"))
		if utf8.RuneCountInString(name) <= 3 {
			continue
		}
		topics = append(topics, Topic{Topic: name, Description: strings.TrimSpace(description)})
	}
	return topics
}

// FallbackTopics is the fixed topic list used when the model cannot be reached.
func FallbackTopics() []Topic {
	return []Topic{
		{Topic: "Financial Performance", Description: "Revenue, margins and key financial metrics"},
		{Topic: "Business Strategy", Description: "Strategic initiatives and business direction"},
		{Topic: "Market Outlook", Description: "Industry trends and future expectations"},
		{Topic: "Operational Updates", Description: "Business operations and efficiency measures"},
		{Topic: "Risk Factors", Description: "Challenges and risk mitigation strategies"},
	}
}
