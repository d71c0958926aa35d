package app

import (
	"context"
	"log"
	"strings"

	"earnings-analyzer/internal/analysis"
	"earnings-analyzer/internal/model"
	"earnings-analyzer/internal/transcript"
)

const maxSummaryTopics = 10

type InsightService struct {
	transcripts *TranscriptService
	extractor   *analysis.TopicExtractor
	summarizer  *analysis.Summarizer
	cache       InsightCache
}

type TopicsInput struct {
	AnalystID    uint
	TranscriptID uint
	Section      string
	MaxTopics    int
	Regenerate   bool
}

type SummariesInput struct {
	AnalystID    uint
	TranscriptID uint
	Section      string
	Topics       []string
}

type TopicSummary struct {
	Topic   string `json:"topic"`
	Summary string `json:"summary"`
	Cached  bool   `json:"cached"`
}

func NewInsightService(
	transcripts *TranscriptService,
	extractor *analysis.TopicExtractor,
	summarizer *analysis.Summarizer,
	cache InsightCache,
) *InsightService {
	return &InsightService{
		transcripts: transcripts,
		extractor:   extractor,
		summarizer:  summarizer,
		cache:       cache,
	}
}

// Topics returns the key topics of one section. Cached topics are served unless
// regenerate is set; fallback topics are never cached.
func (s *InsightService) Topics(ctx context.Context, input TopicsInput) ([]analysis.Topic, error) {
	chunks, err := s.sectionChunks(input.AnalystID, input.TranscriptID, input.Section)
	if err != nil {
		return nil, err
	}
	section := normalizeSection(input.Section)

	if !input.Regenerate && s.cache != nil {
		topics, ok, err := s.cache.GetTopics(ctx, input.TranscriptID, section)
		if err != nil {
			log.Printf("read topics cache failed: %v", err)
		} else if ok {
			return topics, nil
		}
	}

	topics, generated := s.extractor.ExtractTopics(ctx, chunks, input.MaxTopics, input.Regenerate)
	if generated && len(topics) > 0 && s.cache != nil {
		if err := s.cache.SetTopics(ctx, input.TranscriptID, section, topics); err != nil {
			log.Printf("write topics cache failed: %v", err)
		}
	}
	return topics, nil
}

// Summaries summarizes each requested topic in order.
func (s *InsightService) Summaries(ctx context.Context, input SummariesInput) ([]TopicSummary, error) {
	topics := cleanTopics(input.Topics)
	if len(topics) == 0 {
		return nil, ErrInvalidInput
	}
	chunks, err := s.sectionChunks(input.AnalystID, input.TranscriptID, input.Section)
	if err != nil {
		return nil, err
	}
	section := normalizeSection(input.Section)

	out := make([]TopicSummary, 0, len(topics))
	for _, topic := range topics {
		if s.cache != nil {
			summary, ok, err := s.cache.GetSummary(ctx, input.TranscriptID, section, topic)
			if err != nil {
				log.Printf("read summary cache failed: %v", err)
			} else if ok {
				out = append(out, TopicSummary{Topic: topic, Summary: summary, Cached: true})
				continue
			}
		}

		summary, generated := s.summarizer.SummarizeTopic(ctx, chunks, topic)
		if generated && s.cache != nil {
			if err := s.cache.SetSummary(ctx, input.TranscriptID, section, topic, summary); err != nil {
				log.Printf("write summary cache failed: %v", err)
			}
		}
		out = append(out, TopicSummary{Topic: topic, Summary: summary})
	}
	return out, nil
}

func (s *InsightService) sectionChunks(analystID, transcriptID uint, section string) ([]transcript.Chunk, error) {
	_, entry, err := s.transcripts.Open(analystID, transcriptID)
	if err != nil {
		return nil, err
	}
	p := entry.Transcript()
	switch normalizeSection(section) {
	case model.SectionOpening:
		return p.OpeningChunks, nil
	case model.SectionQA:
		return p.QAChunks, nil
	default:
		return nil, ErrInvalidSection
	}
}

func normalizeSection(section string) string {
	return strings.ToLower(strings.TrimSpace(section))
}

// cleanTopics drops blank and repeated topic names, keeping the first ten.
func cleanTopics(topics []string) []string {
	seen := make(map[string]struct{}, len(topics))
	out := make([]string, 0, len(topics))
	for _, topic := range topics {
		topic = strings.TrimSpace(topic)
		key := strings.ToLower(topic)
		if topic == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, topic)
		if len(out) == maxSummaryTopics {
			break
		}
	}
	return out
}
