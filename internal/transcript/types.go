// Package transcript turns raw earnings-call transcript text into speaker-attributed
// chunks split between opening remarks and the Q&A session.
package transcript

const (
	TypeQuestion = "question"
	TypeAnswer   = "answer"

	DefaultMaxChunkChars = 800

	UnknownCompany = "Unknown Company"
	UnknownDate    = "Unknown Date"
)

// Chunk is one bounded, speaker-attributed unit of transcript text.
type Chunk struct {
	ID      string `json:"id"`
	Speaker string `json:"speaker"`
	Message string `json:"message"`
	Type    string `json:"type,omitempty"` // Q&A chunks only
}

type Metadata struct {
	CompanyName string `json:"company_name"`
	Date        string `json:"date"`
	PagesCount  int    `json:"pages_count"`
}

// ProcessedTranscript is the pipeline output. Callers own it; nothing in this
// package mutates it after return.
type ProcessedTranscript struct {
	OpeningChunks []Chunk  `json:"opening_chunks"`
	QAChunks      []Chunk  `json:"qa_chunks"`
	Metadata      Metadata `json:"concall_metadata"`
}

// AllChunks returns opening chunks followed by Q&A chunks in a new slice.
func (p ProcessedTranscript) AllChunks() []Chunk {
	all := make([]Chunk, 0, len(p.OpeningChunks)+len(p.QAChunks))
	all = append(all, p.OpeningChunks...)
	all = append(all, p.QAChunks...)
	return all
}

// Questions returns the Q&A chunks tagged as questions.
func (p ProcessedTranscript) Questions() []Chunk {
	return filterByType(p.QAChunks, TypeQuestion)
}

// Answers returns the Q&A chunks tagged as answers.
func (p ProcessedTranscript) Answers() []Chunk {
	return filterByType(p.QAChunks, TypeAnswer)
}

func filterByType(chunks []Chunk, typ string) []Chunk {
	out := make([]Chunk, 0, len(chunks))
	for _, c := range chunks {
		if c.Type == typ {
			out = append(out, c)
		}
	}
	return out
}
