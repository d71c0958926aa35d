package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"earnings-analyzer/internal/model"
)

type AnalystRepository struct {
	db *gorm.DB
}

func NewAnalystRepository(db *gorm.DB) *AnalystRepository {
	return &AnalystRepository{db: db}
}

func (r *AnalystRepository) Create(analyst *model.Analyst) error {
	if err := r.db.Create(analyst).Error; err != nil {
		return fmt.Errorf("create analyst failed: %w", err)
	}
	return nil
}

func (r *AnalystRepository) GetByUsername(username string) (*model.Analyst, error) {
	return r.getBy("username = ?", username)
}

func (r *AnalystRepository) GetByEmail(email string) (*model.Analyst, error) {
	return r.getBy("email = ?", email)
}

func (r *AnalystRepository) GetByID(id uint) (*model.Analyst, error) {
	return r.getBy("id = ?", id)
}

func (r *AnalystRepository) getBy(query string, arg interface{}) (*model.Analyst, error) {
	var analyst model.Analyst
	if err := r.db.Where(query, arg).First(&analyst).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get analyst failed: %w", err)
	}
	return &analyst, nil
}
