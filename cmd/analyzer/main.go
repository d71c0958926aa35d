// Package main provides the analyzer CLI for working with earnings call
// transcripts without the HTTP service.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const (
	ExitSuccess     = 0
	ExitError       = 1
	ExitConfigError = 2
)

var humanOutput bool

func main() {
	if err := rootCmd.Execute(); err != nil {
		if humanOutput {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		} else {
			outputJSON(ErrorResponse{Error: err.Error()})
		}
		os.Exit(exitCode(err))
	}
}

var rootCmd = &cobra.Command{
	Use:   "analyzer",
	Short: "Analyze earnings call transcripts",
	Long: `analyzer segments earnings call transcript PDFs into opening remarks and
Q&A, and answers questions about them.

Configuration is read from configs/config.toml (or CONFIG_FILE), .env and the
environment. Commands print JSON unless --human is set.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
}
