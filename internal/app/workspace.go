package app

import (
	"context"
	"sync"

	"earnings-analyzer/internal/retrieval"
	"earnings-analyzer/internal/transcript"
)

// Workspace holds the processed transcripts that are currently in memory, each
// with its own retrieval gate.
type Workspace struct {
	embedder retrieval.Embedder
	opts     retrieval.Options

	mu      sync.Mutex
	entries map[uint]*WorkspaceEntry
}

// WorkspaceEntry serializes index rebuilds and queries for one transcript.
type WorkspaceEntry struct {
	processed transcript.ProcessedTranscript

	mu   sync.Mutex
	gate *retrieval.Gate
}

func NewWorkspace(embedder retrieval.Embedder, opts retrieval.Options) *Workspace {
	return &Workspace{
		embedder: embedder,
		opts:     opts,
		entries:  make(map[uint]*WorkspaceEntry),
	}
}

// Put replaces whatever is held for id.
func (w *Workspace) Put(id uint, processed transcript.ProcessedTranscript) *WorkspaceEntry {
	entry := &WorkspaceEntry{
		processed: processed,
		gate:      retrieval.NewGate(w.embedder, w.opts),
	}
	w.mu.Lock()
	w.entries[id] = entry
	w.mu.Unlock()
	return entry
}

// Load returns the entry for id, calling load to rebuild it when absent.
func (w *Workspace) Load(id uint, load func() (transcript.ProcessedTranscript, error)) (*WorkspaceEntry, error) {
	w.mu.Lock()
	entry, ok := w.entries[id]
	w.mu.Unlock()
	if ok {
		return entry, nil
	}

	processed, err := load()
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if existing, ok := w.entries[id]; ok {
		return existing, nil
	}
	entry = &WorkspaceEntry{
		processed: processed,
		gate:      retrieval.NewGate(w.embedder, w.opts),
	}
	w.entries[id] = entry
	return entry, nil
}

func (w *Workspace) Remove(id uint) {
	w.mu.Lock()
	delete(w.entries, id)
	w.mu.Unlock()
}

func (w *Workspace) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.entries)
}

func (e *WorkspaceEntry) Transcript() transcript.ProcessedTranscript {
	return e.processed
}

// Search runs the retrieval gate over chunks while holding the entry lock.
func (e *WorkspaceEntry) Search(ctx context.Context, question string, chunks []transcript.Chunk, topK int) []retrieval.Result {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.gate.Search(ctx, question, chunks, topK)
}

// Prepare builds the index over every chunk ahead of the first question.
func (e *WorkspaceEntry) Prepare(ctx context.Context) retrieval.Stats {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.gate.Prepare(ctx, e.processed.AllChunks())
}

func (e *WorkspaceEntry) Stats() retrieval.Stats {
	return e.gate.Stats()
}
