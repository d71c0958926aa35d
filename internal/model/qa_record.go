package model

import (
	"encoding/json"
	"time"
)

// QARecordSource is one retrieved chunk that backed an answer.
type QARecordSource struct {
	Text       string  `json:"text"`
	Similarity float32 `json:"similarity"`
}

type QARecord struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	TranscriptID uint      `gorm:"not null;index" json:"transcript_id"`
	AnalystID    uint      `gorm:"not null;index" json:"analyst_id"`
	Question     string    `gorm:"type:text;not null" json:"question"`
	Answer       string    `gorm:"type:text;not null" json:"answer"`
	Confidence   string    `gorm:"size:16" json:"confidence"`
	Sources      string    `gorm:"type:text" json:"sources_json"` // JSON array of QARecordSource
	CreatedAt    time.Time `json:"created_at"`
}

// SourceList returns the parsed sources; empty on parse error.
func (r *QARecord) SourceList() []QARecordSource {
	if r.Sources == "" {
		return []QARecordSource{}
	}
	var out []QARecordSource
	if err := json.Unmarshal([]byte(r.Sources), &out); err != nil {
		return []QARecordSource{}
	}
	return out
}

// SetSources stores the sources as JSON.
func (r *QARecord) SetSources(sources []QARecordSource) {
	if len(sources) == 0 {
		r.Sources = "[]"
		return
	}
	b, _ := json.Marshal(sources)
	r.Sources = string(b)
}
