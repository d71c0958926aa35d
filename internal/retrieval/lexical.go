package retrieval

import (
	"sort"
	"strings"

	"earnings-analyzer/internal/transcript"
)

// LexicalSearch scores each chunk by Jaccard similarity between the lowercase word
// sets of question and message, keeps scores above the noise floor and returns the
// best topK.
func LexicalSearch(question string, chunks []transcript.Chunk, topK int) []Result {
	if topK <= 0 {
		topK = DefaultTopK
	}
	questionWords := wordSet(question)
	results := make([]Result, 0, len(chunks))
	for _, c := range chunks {
		if c.Message == "" {
			continue
		}
		score := jaccard(questionWords, wordSet(c.Message))
		if score > noiseFloor {
			results = append(results, Result{Text: c.Message, Similarity: score})
		}
	}
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})
	if len(results) > topK {
		results = results[:topK]
	}
	return results
}

func wordSet(text string) map[string]struct{} {
	words := strings.Fields(strings.ToLower(text))
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

func jaccard(a, b map[string]struct{}) float32 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	intersection := 0
	for w := range a {
		if _, ok := b[w]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	return float32(intersection) / float32(union)
}
