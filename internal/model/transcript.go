package model

import "time"

const (
	SourceUpload = "upload"
	SourceDemo   = "demo"
)

// Transcript is one processed earnings call owned by an analyst.
type Transcript struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	AnalystID    uint      `gorm:"not null;index" json:"analyst_id"`
	Name         string    `gorm:"size:256;not null" json:"name"`
	Source       string    `gorm:"size:16;not null" json:"source"`
	CompanyName  string    `gorm:"size:256;not null" json:"company_name"`
	CallDate     string    `gorm:"size:64;not null" json:"call_date"`
	PagesCount   int       `gorm:"not null" json:"pages_count"`
	OpeningCount int       `gorm:"not null" json:"opening_count"`
	QACount      int       `gorm:"not null" json:"qa_count"`
	CreatedAt    time.Time `json:"created_at"`
}
