package transcript

import (
	"fmt"
	"strings"
)

// Aggregator folds continuation lines into speaker turns and emits chunks within the length limit.
type Aggregator struct {
	classifier    *Classifier
	maxChunkChars int
}

func NewAggregator(classifier *Classifier, maxChunkChars int) *Aggregator {
	if maxChunkChars <= 0 {
		maxChunkChars = DefaultMaxChunkChars
	}
	return &Aggregator{classifier: classifier, maxChunkChars: maxChunkChars}
}

type turnBuffer struct {
	speaker string
	message strings.Builder
}

func (b *turnBuffer) reset(speaker, message string) {
	b.speaker = speaker
	b.message.Reset()
	b.message.WriteString(message)
}

func (b *turnBuffer) append(message string) {
	if b.message.Len() > 0 {
		b.message.WriteByte(' ')
	}
	b.message.WriteString(message)
}

func (b *turnBuffer) text() string {
	return strings.TrimSpace(b.message.String())
}

// Opening chunks lines as prepared remarks with ids C1, C2, ...
func (a *Aggregator) Opening(lines []string) []Chunk {
	chunks := []Chunk{}
	counter := 0
	a.walk(lines, func(speaker, text string) {
		for _, part := range SplitLongText(text, a.maxChunkChars) {
			counter++
			chunks = append(chunks, Chunk{
				ID:      fmt.Sprintf("C%d", counter),
				Speaker: speaker,
				Message: part,
			})
		}
	})
	return chunks
}

// QA chunks lines as Q&A turns; questions and answers are numbered independently.
func (a *Aggregator) QA(lines []string) []Chunk {
	chunks := []Chunk{}
	questions, answers := 0, 0
	a.walk(lines, func(speaker, text string) {
		question := a.classifier.IsQuestion(speaker, text)
		for _, part := range SplitLongText(text, a.maxChunkChars) {
			c := Chunk{Speaker: speaker, Message: part}
			if question {
				questions++
				c.ID = fmt.Sprintf("Q%d", questions)
				c.Type = TypeQuestion
			} else {
				answers++
				c.ID = fmt.Sprintf("A%d", answers)
				c.Type = TypeAnswer
			}
			chunks = append(chunks, c)
		}
	})
	return chunks
}

// walk runs the turn state machine and calls flush once per non-empty turn.
func (a *Aggregator) walk(lines []string, flush func(speaker, text string)) {
	var buf turnBuffer
	emit := func() {
		if text := buf.text(); text != "" {
			flush(buf.speaker, text)
		}
	}
	for _, line := range lines {
		speaker, message := DetectSpeaker(line)
		if speaker != "" {
			emit()
			buf.reset(speaker, message)
			continue
		}
		buf.append(message)
	}
	emit()
}
