package repository

import (
	"fmt"

	"gorm.io/gorm"

	"earnings-analyzer/internal/model"
)

type TranscriptChunkRepository struct {
	db *gorm.DB
}

func NewTranscriptChunkRepository(db *gorm.DB) *TranscriptChunkRepository {
	return &TranscriptChunkRepository{db: db}
}

// ListByTranscriptID returns chunks ordered by section (opening sorts before qa),
// then by position.
func (r *TranscriptChunkRepository) ListByTranscriptID(transcriptID uint) ([]model.TranscriptChunk, error) {
	var list []model.TranscriptChunk
	err := r.db.Where("transcript_id = ?", transcriptID).
		Order("section ASC").
		Order("position ASC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("list transcript chunks failed: %w", err)
	}
	return list, nil
}
