package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"earnings-analyzer/internal/analysis"
	"earnings-analyzer/internal/bootstrap"
	"earnings-analyzer/internal/transcript"
)

var (
	topicsSection    string
	topicsMax        int
	topicsRegenerate bool
	topicsSummarize  bool
)

func init() {
	topicsCmd.Flags().StringVarP(&topicsSection, "section", "s", "opening", "Transcript section: opening or qa")
	topicsCmd.Flags().IntVarP(&topicsMax, "max", "n", analysis.DefaultMaxTopics, "Maximum number of topics")
	topicsCmd.Flags().BoolVar(&topicsRegenerate, "regenerate", false, "Ask for a fresh angle on the topics")
	topicsCmd.Flags().BoolVar(&topicsSummarize, "summarize", false, "Summarize each topic")
	rootCmd.AddCommand(topicsCmd)
}

var topicsCmd = &cobra.Command{
	Use:   "topics <pdf>",
	Short: "List the key topics of a transcript section",
	Long: `Extract the key business topics from the opening remarks or the Q&A
session, optionally with a summary of each.

Example:
  analyzer topics data/demo_transcript.pdf --section qa --summarize`,
	Args: cobra.ExactArgs(1),
	RunE: runTopics,
}

type topicResult struct {
	analysis.Topic
	Summary string `json:"summary,omitempty"`
}

func runTopics(cmd *cobra.Command, args []string) error {
	cfg, processed, err := loadTranscript(args[0])
	if err != nil {
		return err
	}
	chunks, err := sectionChunks(processed, topicsSection)
	if err != nil {
		return err
	}

	models := bootstrap.NewModels(cfg)
	extractor := analysis.NewTopicExtractor(models.Completer, nil)
	summarizer := analysis.NewSummarizer(models.Completer)

	topics := extractor.Extract(cmd.Context(), chunks, topicsMax, topicsRegenerate)
	results := make([]topicResult, len(topics))
	for i, t := range topics {
		results[i] = topicResult{Topic: t}
		if topicsSummarize {
			results[i].Summary = summarizer.Summarize(cmd.Context(), chunks, t.Topic)
		}
	}

	if !humanOutput {
		return outputJSON(results)
	}
	for i, r := range results {
		outputHuman("%d. %s: %s\n", i+1, r.Topic.Topic, r.Description)
		if r.Summary != "" {
			outputHuman("   %s\n", r.Summary)
		}
	}
	return nil
}

func sectionChunks(p transcript.ProcessedTranscript, section string) ([]transcript.Chunk, error) {
	switch section {
	case "opening":
		return p.OpeningChunks, nil
	case "qa":
		return p.QAChunks, nil
	default:
		return nil, fmt.Errorf("unknown section %q (want opening or qa)", section)
	}
}
