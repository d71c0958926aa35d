// Package retrieval finds the transcript chunks most relevant to a question, using
// embeddings when available and word overlap when not.
package retrieval

import "context"

const (
	// Results at or below this similarity are treated as noise.
	noiseFloor = 0.1
	// Similarity reported for chunks returned when the query cannot be embedded.
	placeholderSimilarity = 0.3

	DefaultBatchSize = 10
	DefaultDimension = 1536
	DefaultTopK      = 5
)

// Embedder is the embedding collaborator.
type Embedder interface {
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Result is one retrieved chunk message with its similarity score.
type Result struct {
	Text       string  `json:"text"`
	Similarity float32 `json:"similarity"`
}

// Stats describes the current index of a Gate.
type Stats struct {
	Status          string `json:"status"`
	Chunks          int    `json:"chunks"`
	Embeddings      int    `json:"embeddings"`
	Dimension       int    `json:"dimension,omitempty"`
	Degraded        bool   `json:"degraded"`
	DegradedBatches int    `json:"degraded_batches,omitempty"`
}

const (
	StatusNotInitialized = "not_initialized"
	StatusReady          = "ready"
	StatusLexical        = "lexical_only"
)
