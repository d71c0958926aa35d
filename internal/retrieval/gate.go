package retrieval

import (
	"context"
	"errors"
	"log"
	"strings"
	"sync"

	"earnings-analyzer/internal/transcript"
)

// Gate owns the Store for one transcript. It rebuilds the store whenever the
// chunk sequence changes and falls back to LexicalSearch when embeddings cannot
// serve a query.
type Gate struct {
	embedder Embedder
	opts     Options

	mu          sync.Mutex
	store       *Store
	lexicalOnly bool
	chunkCount  int
}

// NewGate returns a Gate. A nil embedder makes every search lexical.
func NewGate(embedder Embedder, opts Options) *Gate {
	return &Gate{embedder: embedder, opts: opts}
}

// Search returns up to topK results for question over chunks. It never fails:
// any embedding problem degrades to lexical search.
func (g *Gate) Search(ctx context.Context, question string, chunks []transcript.Chunk, topK int) []Result {
	if topK <= 0 {
		topK = DefaultTopK
	}
	if strings.TrimSpace(question) == "" || len(chunks) == 0 {
		return []Result{}
	}

	store := g.ensureStore(ctx, chunks)
	if store == nil {
		return LexicalSearch(question, chunks, topK)
	}
	results, err := store.Search(ctx, question, topK)
	if err != nil {
		log.Printf("vector search failed, using lexical search: %v", err)
		return LexicalSearch(question, chunks, topK)
	}
	return results
}

func (g *Gate) ensureStore(ctx context.Context, chunks []transcript.Chunk) *Store {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.chunkCount = len(chunks)
	if g.store != nil && g.store.Matches(chunks) {
		return g.store
	}
	g.store = nil
	if g.embedder == nil {
		g.lexicalOnly = true
		return nil
	}

	store, err := Build(ctx, g.embedder, chunks, g.opts)
	if err != nil {
		if !errors.Is(err, ErrEmbeddingUnavailable) {
			log.Printf("build vector store failed: %v", err)
		} else {
			log.Printf("embeddings unavailable, using lexical search for %d chunks", len(chunks))
		}
		g.lexicalOnly = true
		return nil
	}
	if store.Degraded() {
		log.Printf("vector store built with %d placeholder batches", store.DegradedBatches())
	}
	g.store = store
	g.lexicalOnly = false
	return store
}

// Prepare builds the store for chunks if it is missing or stale and reports the
// resulting state.
func (g *Gate) Prepare(ctx context.Context, chunks []transcript.Chunk) Stats {
	if len(chunks) > 0 {
		g.ensureStore(ctx, chunks)
	}
	return g.Stats()
}

// Reset drops the current store so the next search rebuilds it.
func (g *Gate) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.store = nil
	g.lexicalOnly = false
	g.chunkCount = 0
}

// Stats reports the state of the current index.
func (g *Gate) Stats() Stats {
	g.mu.Lock()
	defer g.mu.Unlock()

	switch {
	case g.store != nil:
		return Stats{
			Status:          StatusReady,
			Chunks:          g.store.Len(),
			Embeddings:      g.store.index.Len(),
			Dimension:       g.store.Dimension(),
			Degraded:        g.store.Degraded(),
			DegradedBatches: g.store.DegradedBatches(),
		}
	case g.lexicalOnly:
		return Stats{Status: StatusLexical, Chunks: g.chunkCount, Degraded: true}
	default:
		return Stats{Status: StatusNotInitialized}
	}
}
