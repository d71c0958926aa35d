package app

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"earnings-analyzer/internal/analysis"
	"earnings-analyzer/internal/model"
	"earnings-analyzer/internal/repository"
	"earnings-analyzer/internal/retrieval"
	"earnings-analyzer/internal/transcript"
)

// InsightCache stores generated topics and summaries per transcript.
type InsightCache interface {
	GetTopics(ctx context.Context, transcriptID uint, section string) ([]analysis.Topic, bool, error)
	SetTopics(ctx context.Context, transcriptID uint, section string, topics []analysis.Topic) error
	GetSummary(ctx context.Context, transcriptID uint, section, topic string) (string, bool, error)
	SetSummary(ctx context.Context, transcriptID uint, section, topic, summary string) error
	DeleteTranscript(ctx context.Context, transcriptID uint) error
}

type TranscriptService struct {
	transcriptRepo *repository.TranscriptRepository
	chunkRepo      *repository.TranscriptChunkRepository
	processor      *transcript.Processor
	workspace      *Workspace
	insightCache   InsightCache
	demoPath       string
}

type UploadInput struct {
	AnalystID uint
	Name      string
	Pages     []string
}

type TranscriptDetail struct {
	Transcript model.Transcript    `json:"transcript"`
	Metadata   transcript.Metadata `json:"metadata"`
	Index      retrieval.Stats     `json:"index"`
}

type QAView struct {
	Chunks    []transcript.Chunk `json:"chunks"`
	Questions []transcript.Chunk `json:"questions"`
	Answers   []transcript.Chunk `json:"answers"`
}

func NewTranscriptService(
	transcriptRepo *repository.TranscriptRepository,
	chunkRepo *repository.TranscriptChunkRepository,
	processor *transcript.Processor,
	workspace *Workspace,
	insightCache InsightCache,
	demoPath string,
) *TranscriptService {
	return &TranscriptService{
		transcriptRepo: transcriptRepo,
		chunkRepo:      chunkRepo,
		processor:      processor,
		workspace:      workspace,
		insightCache:   insightCache,
		demoPath:       demoPath,
	}
}

// Upload segments the extracted pages of an uploaded document and stores the
// result. The retrieval index is built in the background.
func (s *TranscriptService) Upload(ctx context.Context, input UploadInput) (*model.Transcript, error) {
	if input.AnalystID == 0 || len(input.Pages) == 0 {
		return nil, ErrInvalidInput
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = "transcript.pdf"
	}
	processed := s.processor.ProcessPages(input.Pages)
	return s.store(ctx, input.AnalystID, name, model.SourceUpload, processed)
}

// LoadDemo processes the bundled demo transcript for analystID.
func (s *TranscriptService) LoadDemo(ctx context.Context, analystID uint) (*model.Transcript, error) {
	if analystID == 0 {
		return nil, ErrInvalidInput
	}
	if _, err := os.Stat(s.demoPath); err != nil {
		return nil, ErrDemoNotFound
	}
	processed := s.processor.Process(s.demoPath)
	return s.store(ctx, analystID, filepath.Base(s.demoPath), model.SourceDemo, processed)
}

func (s *TranscriptService) store(ctx context.Context, analystID uint, name, source string, processed transcript.ProcessedTranscript) (*model.Transcript, error) {
	if len(processed.OpeningChunks)+len(processed.QAChunks) == 0 {
		return nil, ErrEmptyTranscript
	}

	t := &model.Transcript{
		AnalystID:    analystID,
		Name:         name,
		Source:       source,
		CompanyName:  processed.Metadata.CompanyName,
		CallDate:     processed.Metadata.Date,
		PagesCount:   processed.Metadata.PagesCount,
		OpeningCount: len(processed.OpeningChunks),
		QACount:      len(processed.QAChunks),
	}
	err := s.transcriptRepo.CreateWithChunks(t, func(id uint) []model.TranscriptChunk {
		return model.ChunksFromTranscript(id, processed)
	})
	if err != nil {
		return nil, err
	}

	entry := s.workspace.Put(t.ID, processed)
	transcriptID := t.ID
	go func() {
		stats := entry.Prepare(context.WithoutCancel(ctx))
		log.Printf("transcript %d index %s: chunks=%d embeddings=%d degraded=%t",
			transcriptID, stats.Status, stats.Chunks, stats.Embeddings, stats.Degraded)
	}()
	return t, nil
}

func (s *TranscriptService) List(analystID uint) ([]model.Transcript, error) {
	if analystID == 0 {
		return nil, ErrInvalidInput
	}
	return s.transcriptRepo.ListByAnalystID(analystID)
}

func (s *TranscriptService) Get(analystID, transcriptID uint) (*TranscriptDetail, error) {
	t, entry, err := s.Open(analystID, transcriptID)
	if err != nil {
		return nil, err
	}
	return &TranscriptDetail{
		Transcript: *t,
		Metadata:   entry.Transcript().Metadata,
		Index:      entry.Stats(),
	}, nil
}

// Delete removes the transcript with its chunks, history, cached insights and
// in-memory index.
func (s *TranscriptService) Delete(ctx context.Context, analystID, transcriptID uint) error {
	t, err := s.owned(analystID, transcriptID)
	if err != nil {
		return err
	}
	if err := s.transcriptRepo.DeleteByIDAndAnalystID(t.ID, analystID); err != nil {
		return err
	}
	s.workspace.Remove(t.ID)
	if s.insightCache != nil {
		if err := s.insightCache.DeleteTranscript(ctx, t.ID); err != nil {
			log.Printf("delete insight cache for transcript %d failed: %v", t.ID, err)
		}
	}
	return nil
}

func (s *TranscriptService) Opening(analystID, transcriptID uint) ([]transcript.Chunk, error) {
	_, entry, err := s.Open(analystID, transcriptID)
	if err != nil {
		return nil, err
	}
	return entry.Transcript().OpeningChunks, nil
}

func (s *TranscriptService) QA(analystID, transcriptID uint) (*QAView, error) {
	_, entry, err := s.Open(analystID, transcriptID)
	if err != nil {
		return nil, err
	}
	p := entry.Transcript()
	return &QAView{
		Chunks:    p.QAChunks,
		Questions: p.Questions(),
		Answers:   p.Answers(),
	}, nil
}

// IndexStats reports the retrieval index state. With build set, a missing or
// stale index is built first.
func (s *TranscriptService) IndexStats(ctx context.Context, analystID, transcriptID uint, build bool) (retrieval.Stats, error) {
	_, entry, err := s.Open(analystID, transcriptID)
	if err != nil {
		return retrieval.Stats{}, err
	}
	if build {
		return entry.Prepare(ctx), nil
	}
	return entry.Stats(), nil
}

// Open returns the transcript row and its workspace entry, reloading chunks
// from mysql when the entry is not in memory.
func (s *TranscriptService) Open(analystID, transcriptID uint) (*model.Transcript, *WorkspaceEntry, error) {
	t, err := s.owned(analystID, transcriptID)
	if err != nil {
		return nil, nil, err
	}
	entry, err := s.workspace.Load(t.ID, func() (transcript.ProcessedTranscript, error) {
		rows, err := s.chunkRepo.ListByTranscriptID(t.ID)
		if err != nil {
			return transcript.ProcessedTranscript{}, fmt.Errorf("load transcript chunks failed: %w", err)
		}
		return model.ProcessedFromRows(*t, rows), nil
	})
	if err != nil {
		return nil, nil, err
	}
	return t, entry, nil
}

func (s *TranscriptService) owned(analystID, transcriptID uint) (*model.Transcript, error) {
	if analystID == 0 || transcriptID == 0 {
		return nil, ErrInvalidInput
	}
	t, err := s.transcriptRepo.GetByIDAndAnalystID(transcriptID, analystID)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrTranscriptNotFound
	}
	return t, nil
}
