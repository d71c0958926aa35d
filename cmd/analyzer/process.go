package main

import (
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(processCmd)
}

var processCmd = &cobra.Command{
	Use:   "process <pdf>",
	Short: "Segment a transcript into opening remarks and Q&A",
	Long: `Segment a transcript PDF and print the opening and Q&A chunks with the
detected company name and call date.

Example:
  analyzer process data/demo_transcript.pdf`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

func runProcess(cmd *cobra.Command, args []string) error {
	_, processed, err := loadTranscript(args[0])
	if err != nil {
		return err
	}

	if !humanOutput {
		return outputJSON(processed)
	}

	m := processed.Metadata
	outputHuman("%s, %s (%d pages)\n", m.CompanyName, m.Date, m.PagesCount)
	outputHuman("Opening remarks: %d chunks\n", len(processed.OpeningChunks))
	outputHuman("Q&A: %d chunks (%d questions, %d answers)\n\n",
		len(processed.QAChunks), len(processed.Questions()), len(processed.Answers()))
	for _, c := range processed.AllChunks() {
		speaker := c.Speaker
		if speaker == "" {
			speaker = "-"
		}
		outputHuman("[%s] %s: %s\n", c.ID, speaker, c.Message)
	}
	return nil
}
