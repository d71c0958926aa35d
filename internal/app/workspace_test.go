package app

import (
	"context"
	"errors"
	"sync"
	"testing"

	"earnings-analyzer/internal/retrieval"
	"earnings-analyzer/internal/transcript"
)

type countingEmbedder struct {
	mu         sync.Mutex
	batchCalls int
}

func (e *countingEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	e.mu.Lock()
	e.batchCalls++
	e.mu.Unlock()
	out := make([][]float32, len(texts))
	for i, text := range texts {
		out[i] = []float32{float32(len(text)), 1, 0}
	}
	return out, nil
}

func (e *countingEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	return []float32{float32(len(text)), 1, 0}, nil
}

func sampleProcessed() transcript.ProcessedTranscript {
	return transcript.ProcessedTranscript{
		OpeningChunks: []transcript.Chunk{
			{ID: "C1", Speaker: "CEO", Message: "Revenue grew 18% on strong demand."},
		},
		QAChunks: []transcript.Chunk{
			{ID: "Q1", Speaker: "Analyst", Message: "What drove margins?", Type: transcript.TypeQuestion},
			{ID: "A1", Speaker: "CFO", Message: "Mix and pricing drove margins higher.", Type: transcript.TypeAnswer},
		},
		Metadata: transcript.Metadata{CompanyName: "Laurus Labs", Date: "July 2024", PagesCount: 3},
	}
}

func TestWorkspace_LoadCallsLoaderOnce(t *testing.T) {
	ws := NewWorkspace(nil, retrieval.Options{})
	calls := 0
	load := func() (transcript.ProcessedTranscript, error) {
		calls++
		return sampleProcessed(), nil
	}

	first, err := ws.Load(7, load)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	second, err := ws.Load(7, load)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if first != second {
		t.Fatal("expected the same entry on the second load")
	}
	if calls != 1 {
		t.Fatalf("loader calls = %d, want 1", calls)
	}
	if got := first.Transcript().Metadata.CompanyName; got != "Laurus Labs" {
		t.Fatalf("company = %q", got)
	}
}

func TestWorkspace_LoadError(t *testing.T) {
	ws := NewWorkspace(nil, retrieval.Options{})
	wantErr := errors.New("db down")
	_, err := ws.Load(1, func() (transcript.ProcessedTranscript, error) {
		return transcript.ProcessedTranscript{}, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("Load() error = %v, want %v", err, wantErr)
	}
	if ws.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", ws.Len())
	}
}

func TestWorkspace_PutReplacesAndRemove(t *testing.T) {
	ws := NewWorkspace(nil, retrieval.Options{})
	first := ws.Put(3, sampleProcessed())
	second := ws.Put(3, transcript.ProcessedTranscript{})
	if first == second {
		t.Fatal("Put should create a new entry")
	}
	if ws.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", ws.Len())
	}
	ws.Remove(3)
	if ws.Len() != 0 {
		t.Fatalf("Len() after Remove = %d, want 0", ws.Len())
	}
}

func TestWorkspaceEntry_PrepareThenSearch(t *testing.T) {
	embedder := &countingEmbedder{}
	ws := NewWorkspace(embedder, retrieval.Options{BatchSize: 10, Dimension: 3})
	entry := ws.Put(1, sampleProcessed())

	if got := entry.Stats().Status; got != retrieval.StatusNotInitialized {
		t.Fatalf("status before Prepare = %q", got)
	}
	stats := entry.Prepare(context.Background())
	if stats.Status != retrieval.StatusReady || stats.Chunks != 3 || stats.Embeddings != 3 {
		t.Fatalf("Prepare() = %+v", stats)
	}

	results := entry.Search(context.Background(), "margins", entry.Transcript().AllChunks(), 2)
	if len(results) == 0 {
		t.Fatal("expected results")
	}
	if embedder.batchCalls != 1 {
		t.Fatalf("batch calls = %d, want 1 (index reused)", embedder.batchCalls)
	}
}

func TestWorkspaceEntry_NoEmbedderIsLexical(t *testing.T) {
	ws := NewWorkspace(nil, retrieval.Options{})
	entry := ws.Put(1, sampleProcessed())

	results := entry.Search(context.Background(), "what drove margins", entry.Transcript().AllChunks(), 5)
	if len(results) == 0 {
		t.Fatal("expected lexical results")
	}
	stats := entry.Stats()
	if stats.Status != retrieval.StatusLexical || !stats.Degraded {
		t.Fatalf("Stats() = %+v", stats)
	}
}
