package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"earnings-analyzer/internal/model"
)

const chunkInsertBatch = 100

type TranscriptRepository struct {
	db *gorm.DB
}

func NewTranscriptRepository(db *gorm.DB) *TranscriptRepository {
	return &TranscriptRepository{db: db}
}

// CreateWithChunks stores a transcript and its chunks in one transaction. The
// chunk rows receive the new transcript id.
func (r *TranscriptRepository) CreateWithChunks(t *model.Transcript, build func(transcriptID uint) []model.TranscriptChunk) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(t).Error; err != nil {
			return fmt.Errorf("create transcript failed: %w", err)
		}
		chunks := build(t.ID)
		if len(chunks) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(chunks, chunkInsertBatch).Error; err != nil {
			return fmt.Errorf("create transcript chunks failed: %w", err)
		}
		return nil
	})
}

func (r *TranscriptRepository) ListByAnalystID(analystID uint) ([]model.Transcript, error) {
	var list []model.Transcript
	if err := r.db.Where("analyst_id = ?", analystID).Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("list transcripts failed: %w", err)
	}
	return list, nil
}

func (r *TranscriptRepository) GetByIDAndAnalystID(id, analystID uint) (*model.Transcript, error) {
	var t model.Transcript
	if err := r.db.Where("id = ? AND analyst_id = ?", id, analystID).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transcript failed: %w", err)
	}
	return &t, nil
}

// DeleteByIDAndAnalystID removes a transcript with its chunks and Q&A history.
func (r *TranscriptRepository) DeleteByIDAndAnalystID(id, analystID uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND analyst_id = ?", id, analystID).Delete(&model.Transcript{})
		if res.Error != nil {
			return fmt.Errorf("delete transcript failed: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return nil
		}
		if err := tx.Where("transcript_id = ?", id).Delete(&model.TranscriptChunk{}).Error; err != nil {
			return fmt.Errorf("delete transcript chunks failed: %w", err)
		}
		if err := tx.Where("transcript_id = ?", id).Delete(&model.QARecord{}).Error; err != nil {
			return fmt.Errorf("delete qa records failed: %w", err)
		}
		return nil
	})
}
