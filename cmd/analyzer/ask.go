package main

import (
	"strings"

	"github.com/spf13/cobra"

	"earnings-analyzer/internal/analysis"
	"earnings-analyzer/internal/bootstrap"
	"earnings-analyzer/internal/retrieval"
)

var askTopK int

func init() {
	askCmd.Flags().IntVarP(&askTopK, "top-k", "k", 0, "Number of transcript chunks to retrieve (default from config)")
	rootCmd.AddCommand(askCmd)
}

var askCmd = &cobra.Command{
	Use:   "ask <pdf> <question>",
	Short: "Answer a question about a transcript",
	Long: `Process a transcript PDF, index it and answer a question from the most
relevant chunks.

Example:
  analyzer ask data/demo_transcript.pdf "What was the revenue growth this quarter?"`,
	Args: cobra.MinimumNArgs(2),
	RunE: runAsk,
}

type askResult struct {
	Question string          `json:"question"`
	Answer   analysis.Answer `json:"answer"`
	Index    retrieval.Stats `json:"index"`
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := strings.TrimSpace(strings.Join(args[1:], " "))
	if err := analysis.ValidateQuestion(question); err != nil {
		return err
	}

	cfg, processed, err := loadTranscript(args[0])
	if err != nil {
		return err
	}
	models := bootstrap.NewModels(cfg)
	topK := askTopK
	if topK <= 0 {
		topK = models.TopK
	}

	gate := retrieval.NewGate(models.Embedder, models.RetrievalOptions)
	answerer := analysis.NewAnswerer(models.Completer, gate, models.AnswerOptions)
	answer := answerer.Ask(cmd.Context(), question, processed.AllChunks(), topK)

	if humanOutput {
		outputHuman("%s\n", analysis.FormatResponse(answer.Text, answer.Sources))
		return nil
	}
	return outputJSON(askResult{Question: question, Answer: answer, Index: gate.Stats()})
}
