package bootstrap

import (
	"log"
	"strings"

	"earnings-analyzer/internal/ai"
	"earnings-analyzer/internal/analysis"
	"earnings-analyzer/internal/config"
	"earnings-analyzer/internal/retrieval"
)

// Models holds the model-backed collaborators. Completer and Embedder stay nil
// when no API key is configured.
type Models struct {
	Completer        analysis.Completer
	Embedder         retrieval.Embedder
	AnswerOptions    analysis.AnswerOptions
	RetrievalOptions retrieval.Options
	TopK             int
}

func NewModels(cfg *config.Config) Models {
	m := Models{
		AnswerOptions: analysis.AnswerOptions{
			Temperature: cfg.LLM.Temperature,
			MaxTokens:   cfg.LLM.MaxTokens,
		},
		RetrievalOptions: retrieval.Options{
			BatchSize: cfg.Embedding.BatchSize,
			Dimension: cfg.Embedding.Dimension,
		},
		TopK: cfg.Embedding.TopK,
	}

	client := ai.NewOpenAICompatibleClient()
	if strings.TrimSpace(cfg.LLM.APIKey) != "" {
		m.Completer = ai.NewChat(client, ai.ChatConfig{
			BaseURL: cfg.LLM.BaseURL,
			APIKey:  cfg.LLM.APIKey,
			Model:   cfg.LLM.Model,
		})
	} else {
		log.Printf("LLM_API_KEY not set, answers and topics will use fallbacks")
	}
	if strings.TrimSpace(cfg.Embedding.APIKey) != "" {
		m.Embedder = ai.NewEmbedder(client, ai.EmbeddingConfig{
			BaseURL: cfg.Embedding.BaseURL,
			APIKey:  cfg.Embedding.APIKey,
			Model:   cfg.Embedding.Model,
		}, cfg.Embedding.RequestsPerSecond)
	} else {
		log.Printf("embedding API key not set, retrieval will use word overlap")
	}
	return m
}
