package retrieval

import (
	"context"
	"errors"
	"hash/fnv"
	"strings"
	"sync"
)

// hashEmbedder maps each lowercase word to a bucket, giving a bag-of-words vector.
type hashEmbedder struct {
	dim int

	mu         sync.Mutex
	batchCalls int
	queryCalls int
	failBatch  func(call int) bool
	failQuery  bool
}

func newHashEmbedder() *hashEmbedder { return &hashEmbedder{dim: 256} }

func (e *hashEmbedder) vector(text string) []float32 {
	v := make([]float32, e.dim)
	for _, w := range strings.Fields(strings.ToLower(text)) {
		h := fnv.New32a()
		h.Write([]byte(w))
		v[h.Sum32()%uint32(e.dim)]++
	}
	return v
}

func (e *hashEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	e.mu.Lock()
	e.batchCalls++
	call := e.batchCalls
	e.mu.Unlock()
	if e.failBatch != nil && e.failBatch(call) {
		return nil, errors.New("embedding service unavailable")
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = e.vector(t)
	}
	return out, nil
}

func (e *hashEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	e.mu.Lock()
	e.queryCalls++
	e.mu.Unlock()
	if e.failQuery {
		return nil, errors.New("embedding service unavailable")
	}
	return e.vector(text), nil
}

func (e *hashEmbedder) calls() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.batchCalls + e.queryCalls
}

// shortBatchEmbedder returns one vector fewer than requested.
type shortBatchEmbedder struct{ hashEmbedder }

func (e *shortBatchEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	out, err := e.hashEmbedder.EmbedBatch(ctx, texts)
	if err != nil || len(out) == 0 {
		return out, err
	}
	return out[:len(out)-1], nil
}
