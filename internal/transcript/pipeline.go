package transcript

import (
	"log"
	"strings"
)

// PageExtractor returns the text of each page of a document in order.
type PageExtractor interface {
	ExtractPages(path string) ([]string, error)
}

// Processor runs normalization, segmentation and aggregation in one pass.
// It holds no per-document state and may be reused.
type Processor struct {
	extractor      PageExtractor
	segmenter      *Segmenter
	aggregator     *Aggregator
	knownCompanies []string
}

func NewProcessor(rules Rules, extractor PageExtractor) (*Processor, error) {
	segmenter, err := NewSegmenter(rules.CallStartPatterns, rules.QAStartPatterns)
	if err != nil {
		return nil, err
	}
	classifier := NewClassifier(rules.QuestionSpeakers, rules.AnswerSpeakers)
	return &Processor{
		extractor:      extractor,
		segmenter:      segmenter,
		aggregator:     NewAggregator(classifier, rules.MaxChunkChars),
		knownCompanies: rules.CompanyNames,
	}, nil
}

// Process extracts and segments the document at path. An unreadable document
// yields an empty transcript rather than an error.
func (p *Processor) Process(path string) ProcessedTranscript {
	if p.extractor == nil {
		return emptyTranscript(0)
	}
	pages, err := p.extractor.ExtractPages(path)
	if err != nil {
		log.Printf("extract transcript pages failed: %v", err)
		return emptyTranscript(0)
	}
	return p.ProcessPages(pages)
}

// ProcessPages segments already extracted page texts.
func (p *Processor) ProcessPages(pages []string) ProcessedTranscript {
	return p.ProcessText(strings.Join(pages, "\n"), len(pages))
}

// ProcessText segments raw transcript text that spans pagesCount pages.
func (p *Processor) ProcessText(raw string, pagesCount int) ProcessedTranscript {
	if strings.TrimSpace(raw) == "" {
		return emptyTranscript(pagesCount)
	}

	company, date := ExtractMetadata(raw, p.knownCompanies)
	lines := SplitLines(raw)

	callStart := p.segmenter.FindCallStart(lines)
	qaStart := p.segmenter.FindQAStart(lines, callStart)

	return ProcessedTranscript{
		OpeningChunks: p.aggregator.Opening(lines[callStart:qaStart]),
		QAChunks:      p.aggregator.QA(lines[qaStart:]),
		Metadata: Metadata{
			CompanyName: company,
			Date:        date,
			PagesCount:  pagesCount,
		},
	}
}

func emptyTranscript(pagesCount int) ProcessedTranscript {
	return ProcessedTranscript{
		OpeningChunks: []Chunk{},
		QAChunks:      []Chunk{},
		Metadata: Metadata{
			CompanyName: UnknownCompany,
			Date:        UnknownDate,
			PagesCount:  pagesCount,
		},
	}
}
