package main

import (
	"fmt"

	"earnings-analyzer/internal/config"
	"earnings-analyzer/internal/pkg/pdfextract"
	"earnings-analyzer/internal/transcript"
)

// loadTranscript reads config and processes the PDF at path.
func loadTranscript(path string) (*config.Config, transcript.ProcessedTranscript, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, transcript.ProcessedTranscript{}, configError{err}
	}
	processor, err := transcript.NewProcessor(cfg.TranscriptRules(), pdfextract.Extractor{})
	if err != nil {
		return nil, transcript.ProcessedTranscript{}, configError{fmt.Errorf("build transcript processor: %w", err)}
	}

	pages, err := pdfextract.ExtractPages(path)
	if err != nil {
		return nil, transcript.ProcessedTranscript{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return cfg, processor.ProcessPages(pages), nil
}
