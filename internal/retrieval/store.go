package retrieval

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"strings"
	"time"

	"earnings-analyzer/internal/transcript"
)

var (
	ErrNoChunks             = errors.New("no chunks to index")
	ErrEmbeddingUnavailable = errors.New("no embedding batch succeeded")
)

type Options struct {
	BatchSize int
	// Dimension is used for placeholder vectors when no batch reports one.
	Dimension int
	// Rand generates placeholder vectors; a time-seeded source when nil.
	Rand *rand.Rand
}

func (o Options) withDefaults() Options {
	if o.BatchSize <= 0 {
		o.BatchSize = DefaultBatchSize
	}
	if o.Dimension <= 0 {
		o.Dimension = DefaultDimension
	}
	if o.Rand == nil {
		o.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return o
}

// Store is an embedding index over one chunk sequence. Position i of the index
// holds the vector of chunks[i]. A Store is never updated in place.
type Store struct {
	embedder        Embedder
	chunks          []transcript.Chunk
	embeddings      [][]float32
	index           *FlatIndex
	fingerprint     string
	degradedBatches int
}

// Build embeds every chunk in sequential batches and indexes the normalized
// vectors. A failed batch is filled with random vectors and the store is marked
// degraded; if no batch succeeds Build returns ErrEmbeddingUnavailable.
func Build(ctx context.Context, embedder Embedder, chunks []transcript.Chunk, opts Options) (*Store, error) {
	if len(chunks) == 0 {
		return nil, ErrNoChunks
	}
	if embedder == nil {
		return nil, ErrEmbeddingUnavailable
	}
	opts = opts.withDefaults()

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = CompositeText(c)
	}

	embeddings := make([][]float32, len(chunks))
	var failed [][2]int
	dim := 0
	total := (len(texts) + opts.BatchSize - 1) / opts.BatchSize
	for start := 0; start < len(texts); start += opts.BatchSize {
		end := start + opts.BatchSize
		if end > len(texts) {
			end = len(texts)
		}
		batchNo := start/opts.BatchSize + 1

		vecs, err := embedder.EmbedBatch(ctx, texts[start:end])
		if err == nil {
			err = validateBatch(vecs, end-start, dim)
		}
		if err != nil {
			log.Printf("embedding batch %d/%d failed, using placeholder vectors: %v", batchNo, total, err)
			failed = append(failed, [2]int{start, end})
			continue
		}
		if dim == 0 {
			dim = len(vecs[0])
		}
		copy(embeddings[start:end], vecs)
	}

	if len(failed) == total {
		return nil, ErrEmbeddingUnavailable
	}
	if dim == 0 {
		dim = opts.Dimension
	}
	for _, r := range failed {
		for i := r[0]; i < r[1]; i++ {
			embeddings[i] = randomVector(opts.Rand, dim)
		}
	}

	index := NewFlatIndex(dim)
	for i, vec := range embeddings {
		v := make([]float32, len(vec))
		copy(v, vec)
		Normalize(v)
		embeddings[i] = v
		if err := index.Add(v); err != nil {
			return nil, fmt.Errorf("index chunk %s failed: %w", chunks[i].ID, err)
		}
	}

	return &Store{
		embedder:        embedder,
		chunks:          chunks,
		embeddings:      embeddings,
		index:           index,
		fingerprint:     Fingerprint(chunks),
		degradedBatches: len(failed),
	}, nil
}

func validateBatch(vecs [][]float32, want, dim int) error {
	if len(vecs) != want {
		return fmt.Errorf("embedding count mismatch: got %d, want %d", len(vecs), want)
	}
	if dim == 0 {
		dim = len(vecs[0])
	}
	for _, v := range vecs {
		if len(v) == 0 || len(v) != dim {
			return fmt.Errorf("embedding dimension %d does not match %d", len(v), dim)
		}
	}
	return nil
}

func randomVector(r *rand.Rand, dim int) []float32 {
	v := make([]float32, dim)
	for i := range v {
		v[i] = r.Float32()
	}
	return v
}

// Search returns the chunks most similar to query, best first, dropping anything
// at or below the noise floor. When the query cannot be embedded it returns the
// first topK chunks at a fixed placeholder similarity. An error means the index
// cannot answer at all and the caller should fall back.
func (s *Store) Search(ctx context.Context, query string, topK int) ([]Result, error) {
	if topK <= 0 {
		topK = DefaultTopK
	}
	raw, err := s.embedder.Embed(ctx, query)
	if err != nil {
		log.Printf("embed query failed, returning leading chunks: %v", err)
		return s.leadingChunks(topK), nil
	}
	q := make([]float32, len(raw))
	copy(q, raw)
	Normalize(q)

	hits, err := s.index.Search(q, topK)
	if err != nil {
		return nil, err
	}
	results := make([]Result, 0, len(hits))
	for _, h := range hits {
		sim := h.Score
		if sim < 0 {
			sim = 0
		}
		text := s.chunks[h.Position].Message
		if text == "" || sim <= noiseFloor {
			continue
		}
		results = append(results, Result{Text: text, Similarity: sim})
	}
	return results, nil
}

func (s *Store) leadingChunks(topK int) []Result {
	results := make([]Result, 0, topK)
	for _, c := range s.chunks {
		if len(results) == topK {
			break
		}
		if c.Message != "" {
			results = append(results, Result{Text: c.Message, Similarity: placeholderSimilarity})
		}
	}
	return results
}

func (s *Store) Len() int { return len(s.chunks) }

func (s *Store) Dimension() int { return s.index.Dimension() }

// Degraded reports whether any chunk is indexed with a placeholder vector.
func (s *Store) Degraded() bool { return s.degradedBatches > 0 }

func (s *Store) DegradedBatches() int { return s.degradedBatches }

// Matches reports whether the store was built from exactly these chunks.
func (s *Store) Matches(chunks []transcript.Chunk) bool {
	return len(s.chunks) == len(chunks) && s.fingerprint == Fingerprint(chunks)
}

// CompositeText is the text embedded for a chunk: speaker, message and type
// joined by " | ", omitting absent fields.
func CompositeText(c transcript.Chunk) string {
	parts := make([]string, 0, 3)
	if c.Speaker != "" {
		parts = append(parts, "Speaker: "+c.Speaker)
	}
	if c.Message != "" {
		parts = append(parts, c.Message)
	}
	if c.Type != "" {
		parts = append(parts, "Type: "+c.Type)
	}
	return strings.Join(parts, " | ")
}

// Fingerprint hashes chunk ids and messages in order.
func Fingerprint(chunks []transcript.Chunk) string {
	h := sha256.New()
	for _, c := range chunks {
		io.WriteString(h, c.ID)
		io.WriteString(h, "\x00")
		io.WriteString(h, c.Message)
		io.WriteString(h, "\x00")
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}
