package retrieval

import (
	"context"
	"testing"

	"earnings-analyzer/internal/transcript"
)

func TestGate_EmptyInputsSkipEmbedder(t *testing.T) {
	emb := newHashEmbedder()
	g := NewGate(emb, testOptions())

	if got := g.Search(context.Background(), "What was revenue?", nil, 5); len(got) != 0 {
		t.Errorf("expected no results, got %+v", got)
	}
	if got := g.Search(context.Background(), "   ", sampleChunks(), 5); len(got) != 0 {
		t.Errorf("expected no results for blank question, got %+v", got)
	}
	if emb.calls() != 0 {
		t.Errorf("embedder called %d times", emb.calls())
	}
	if s := g.Stats(); s.Status != StatusNotInitialized {
		t.Errorf("status = %q", s.Status)
	}
}

func TestGate_LexicalFallback(t *testing.T) {
	emb := newHashEmbedder()
	emb.failBatch = func(int) bool { return true }
	g := NewGate(emb, testOptions())

	chunks := []transcript.Chunk{{ID: "A1", Message: "revenue growth was strong this quarter"}}
	got := g.Search(context.Background(), "revenue growth", chunks, 5)
	if len(got) != 1 || got[0].Text != chunks[0].Message {
		t.Fatalf("results = %+v", got)
	}
	s := g.Stats()
	if s.Status != StatusLexical || !s.Degraded || s.Chunks != 1 {
		t.Errorf("stats = %+v", s)
	}
}

func TestGate_NilEmbedder(t *testing.T) {
	g := NewGate(nil, Options{})
	got := g.Search(context.Background(), "revenue growth", sampleChunks(), 5)
	if len(got) != 1 {
		t.Fatalf("results = %+v", got)
	}
	if g.Stats().Status != StatusLexical {
		t.Errorf("status = %q", g.Stats().Status)
	}
}

func TestGate_RebuildsOnChange(t *testing.T) {
	emb := newHashEmbedder()
	g := NewGate(emb, testOptions())
	chunks := sampleChunks()

	g.Search(context.Background(), "revenue growth", chunks, 3)
	if emb.batchCalls != 2 {
		t.Fatalf("batch calls = %d, want 2", emb.batchCalls)
	}
	g.Search(context.Background(), "dividend policy", chunks, 3)
	if emb.batchCalls != 2 {
		t.Errorf("unchanged chunks rebuilt the store: %d batch calls", emb.batchCalls)
	}

	edited := sampleChunks()
	edited[0].Message = "What is the guidance for exports?"
	g.Search(context.Background(), "exports", edited, 3)
	if emb.batchCalls != 4 {
		t.Errorf("edited chunks did not rebuild: %d batch calls", emb.batchCalls)
	}

	s := g.Stats()
	if s.Status != StatusReady || s.Chunks != 4 || s.Embeddings != 4 || s.Dimension != 256 {
		t.Errorf("stats = %+v", s)
	}

	g.Reset()
	if g.Stats().Status != StatusNotInitialized {
		t.Errorf("status after reset = %q", g.Stats().Status)
	}
}

func TestGate_ResultsDescending(t *testing.T) {
	g := NewGate(newHashEmbedder(), testOptions())
	got := g.Search(context.Background(), "analyst question on margins and dividend", sampleChunks(), 4)
	if len(got) > 4 {
		t.Fatalf("more than topK results: %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].Similarity > got[i-1].Similarity {
			t.Errorf("results not descending: %+v", got)
		}
	}
}

func TestGate_Prepare(t *testing.T) {
	emb := newHashEmbedder()
	g := NewGate(emb, testOptions())

	if s := g.Prepare(context.Background(), nil); s.Status != StatusNotInitialized {
		t.Errorf("status for no chunks = %q", s.Status)
	}
	s := g.Prepare(context.Background(), sampleChunks())
	if s.Status != StatusReady || s.Chunks != 4 {
		t.Errorf("stats = %+v", s)
	}
	g.Search(context.Background(), "revenue growth", sampleChunks(), 3)
	if emb.batchCalls != 2 {
		t.Errorf("search after prepare rebuilt the store: %d batch calls", emb.batchCalls)
	}
}
