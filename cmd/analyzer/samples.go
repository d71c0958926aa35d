package main

import (
	"github.com/spf13/cobra"

	"earnings-analyzer/internal/analysis"
)

func init() {
	rootCmd.AddCommand(samplesCmd)
}

var samplesCmd = &cobra.Command{
	Use:   "samples",
	Short: "Print sample questions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		questions := analysis.SampleQuestions()
		if !humanOutput {
			return outputJSON(questions)
		}
		for _, q := range questions {
			outputHuman("- %s\n", q)
		}
		return nil
	},
}
