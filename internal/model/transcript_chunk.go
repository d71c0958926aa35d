package model

import "earnings-analyzer/internal/transcript"

const (
	SectionOpening = "opening"
	SectionQA      = "qa"
)

// TranscriptChunk persists one chunk so a transcript survives restarts. Vectors
// are not stored; the index is rebuilt on first use.
type TranscriptChunk struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	TranscriptID uint   `gorm:"not null;index:idx_chunk_order,priority:1" json:"transcript_id"`
	Section      string `gorm:"size:16;not null;index:idx_chunk_order,priority:2" json:"section"`
	Position     int    `gorm:"not null;index:idx_chunk_order,priority:3" json:"position"`
	ChunkID      string `gorm:"size:16;not null" json:"chunk_id"`
	Speaker      string `gorm:"size:128" json:"speaker"`
	Message      string `gorm:"type:text;not null" json:"message"`
	Type         string `gorm:"size:16" json:"type"`
}

func (c TranscriptChunk) Chunk() transcript.Chunk {
	return transcript.Chunk{ID: c.ChunkID, Speaker: c.Speaker, Message: c.Message, Type: c.Type}
}

// ChunksFromTranscript flattens p into rows, opening chunks first.
func ChunksFromTranscript(transcriptID uint, p transcript.ProcessedTranscript) []TranscriptChunk {
	rows := make([]TranscriptChunk, 0, len(p.OpeningChunks)+len(p.QAChunks))
	for i, c := range p.OpeningChunks {
		rows = append(rows, newChunkRow(transcriptID, SectionOpening, i, c))
	}
	for i, c := range p.QAChunks {
		rows = append(rows, newChunkRow(transcriptID, SectionQA, i, c))
	}
	return rows
}

func newChunkRow(transcriptID uint, section string, position int, c transcript.Chunk) TranscriptChunk {
	return TranscriptChunk{
		TranscriptID: transcriptID,
		Section:      section,
		Position:     position,
		ChunkID:      c.ID,
		Speaker:      c.Speaker,
		Message:      c.Message,
		Type:         c.Type,
	}
}

// ProcessedFromRows rebuilds a ProcessedTranscript from t and its chunk rows.
// Rows must be ordered by section and position.
func ProcessedFromRows(t Transcript, rows []TranscriptChunk) transcript.ProcessedTranscript {
	p := transcript.ProcessedTranscript{
		OpeningChunks: []transcript.Chunk{},
		QAChunks:      []transcript.Chunk{},
		Metadata: transcript.Metadata{
			CompanyName: t.CompanyName,
			Date:        t.CallDate,
			PagesCount:  t.PagesCount,
		},
	}
	for _, r := range rows {
		switch r.Section {
		case SectionOpening:
			p.OpeningChunks = append(p.OpeningChunks, r.Chunk())
		case SectionQA:
			p.QAChunks = append(p.QAChunks, r.Chunk())
		}
	}
	return p
}
