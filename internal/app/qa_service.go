package app

import (
	"context"
	"fmt"
	"log"
	"strings"

	"earnings-analyzer/internal/analysis"
	"earnings-analyzer/internal/model"
	"earnings-analyzer/internal/repository"
	"earnings-analyzer/internal/retrieval"
)

// QARecordPublisher hands answered questions to the persistence worker.
type QARecordPublisher interface {
	Publish(ctx context.Context, record model.QARecord) error
}

type QAService struct {
	transcripts *TranscriptService
	qaRepo      *repository.QARecordRepository
	publisher   QARecordPublisher
	completer   analysis.Completer
	answerOpts  analysis.AnswerOptions
	topK        int
}

type AskInput struct {
	AnalystID    uint
	TranscriptID uint
	Question     string
	TopK         int
}

type AskResult struct {
	Question  string          `json:"question"`
	Answer    analysis.Answer `json:"answer"`
	Formatted string          `json:"formatted"`
	Index     retrieval.Stats `json:"index"`
}

type QAHistoryItem struct {
	ID         uint                   `json:"id"`
	Question   string                 `json:"question"`
	Answer     string                 `json:"answer"`
	Confidence string                 `json:"confidence"`
	Sources    []model.QARecordSource `json:"sources"`
	CreatedAt  string                 `json:"created_at"`
}

// NewQAService returns a QAService. A nil completer makes every answer report
// that generation is not configured; a nil publisher stores records inline.
func NewQAService(
	transcripts *TranscriptService,
	qaRepo *repository.QARecordRepository,
	publisher QARecordPublisher,
	completer analysis.Completer,
	answerOpts analysis.AnswerOptions,
	topK int,
) *QAService {
	if topK <= 0 {
		topK = retrieval.DefaultTopK
	}
	return &QAService{
		transcripts: transcripts,
		qaRepo:      qaRepo,
		publisher:   publisher,
		completer:   completer,
		answerOpts:  answerOpts,
		topK:        topK,
	}
}

// Ask answers a question about one transcript and records the exchange.
func (s *QAService) Ask(ctx context.Context, input AskInput) (*AskResult, error) {
	question := strings.TrimSpace(input.Question)
	if err := analysis.ValidateQuestion(question); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidQuestion, err)
	}
	topK := input.TopK
	if topK <= 0 {
		topK = s.topK
	}

	_, entry, err := s.transcripts.Open(input.AnalystID, input.TranscriptID)
	if err != nil {
		return nil, err
	}

	answerer := analysis.NewAnswerer(s.completer, entry, s.answerOpts)
	answer := answerer.Ask(ctx, question, entry.Transcript().AllChunks(), topK)

	record := model.QARecord{
		TranscriptID: input.TranscriptID,
		AnalystID:    input.AnalystID,
		Question:     question,
		Answer:       answer.Text,
		Confidence:   answer.Confidence,
	}
	record.SetSources(recordSources(answer.Sources))
	s.persist(ctx, record)

	return &AskResult{
		Question:  question,
		Answer:    answer,
		Formatted: analysis.FormatResponse(answer.Text, answer.Sources),
		Index:     entry.Stats(),
	}, nil
}

// History lists earlier questions on a transcript, oldest first.
func (s *QAService) History(analystID, transcriptID uint, limit int) ([]QAHistoryItem, error) {
	if _, err := s.transcripts.owned(analystID, transcriptID); err != nil {
		return nil, err
	}
	records, err := s.qaRepo.ListByTranscriptID(transcriptID, limit)
	if err != nil {
		return nil, err
	}
	items := make([]QAHistoryItem, 0, len(records))
	for i := range records {
		r := &records[i]
		items = append(items, QAHistoryItem{
			ID:         r.ID,
			Question:   r.Question,
			Answer:     r.Answer,
			Confidence: r.Confidence,
			Sources:    r.SourceList(),
			CreatedAt:  r.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}
	return items, nil
}

func (s *QAService) persist(ctx context.Context, record model.QARecord) {
	if s.publisher != nil {
		err := s.publisher.Publish(ctx, record)
		if err == nil {
			return
		}
		log.Printf("publish qa record failed, storing inline: %v", err)
	}
	if s.qaRepo == nil {
		return
	}
	if err := s.qaRepo.Create(&record); err != nil {
		log.Printf("store qa record failed: %v", err)
	}
}

func recordSources(results []retrieval.Result) []model.QARecordSource {
	out := make([]model.QARecordSource, len(results))
	for i, r := range results {
		out[i] = model.QARecordSource{Text: r.Text, Similarity: r.Similarity}
	}
	return out
}
