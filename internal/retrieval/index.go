package retrieval

import (
	"fmt"
	"math"
	"sort"
)

// FlatIndex is an exhaustive inner-product index. Over L2-normalized vectors the
// inner product equals cosine similarity.
type FlatIndex struct {
	dim     int
	vectors [][]float32
}

func NewFlatIndex(dim int) *FlatIndex {
	return &FlatIndex{dim: dim}
}

func (idx *FlatIndex) Dimension() int { return idx.dim }

func (idx *FlatIndex) Len() int { return len(idx.vectors) }

// Add appends a vector; its position is its id.
func (idx *FlatIndex) Add(vec []float32) error {
	if len(vec) != idx.dim {
		return fmt.Errorf("vector dimension %d does not match index dimension %d", len(vec), idx.dim)
	}
	idx.vectors = append(idx.vectors, vec)
	return nil
}

// Hit is a position in the index and its inner product with the query.
type Hit struct {
	Position int
	Score    float32
}

// Search returns up to k positions ordered by descending inner product with query.
// Ties keep insertion order.
func (idx *FlatIndex) Search(query []float32, k int) ([]Hit, error) {
	if len(query) != idx.dim {
		return nil, fmt.Errorf("query dimension %d does not match index dimension %d", len(query), idx.dim)
	}
	if k <= 0 || len(idx.vectors) == 0 {
		return nil, nil
	}
	hits := make([]Hit, len(idx.vectors))
	for i, v := range idx.vectors {
		hits[i] = Hit{Position: i, Score: dot(query, v)}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Score > hits[j].Score
	})
	if k < len(hits) {
		hits = hits[:k]
	}
	return hits, nil
}

func dot(a, b []float32) float32 {
	var sum float32
	for i := range a {
		sum += a[i] * b[i]
	}
	return sum
}

// Normalize scales vec in place to unit L2 norm. Zero vectors are left unchanged.
func Normalize(vec []float32) {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	if sum == 0 {
		return
	}
	inv := float32(1 / math.Sqrt(sum))
	for i := range vec {
		vec[i] *= inv
	}
}
