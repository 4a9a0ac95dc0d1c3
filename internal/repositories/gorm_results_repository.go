package repositories

import (
	"context"

	"gorm.io/gorm"

	"mirrormirror/internal/models/db_models"
)

type GormResultsRepository struct {
	db *gorm.DB
}

func NewGormResultsRepository(db *gorm.DB) *GormResultsRepository {
	return &GormResultsRepository{db: db}
}

func (r *GormResultsRepository) Append(ctx context.Context, record *db_models.FortuneRecord) error {
	// Single transactional insert; either the whole record lands or nothing.
	return r.db.WithContext(ctx).Create(record).Error
}

func (r *GormResultsRepository) ListAll(ctx context.Context) ([]db_models.FortuneRecord, error) {
	var records []db_models.FortuneRecord
	err := r.db.WithContext(ctx).
		Order("timestamp ASC").
		Find(&records).Error
	return records, err
}

func (r *GormResultsRepository) ListByName(ctx context.Context, name string) ([]db_models.FortuneRecord, error) {
	var records []db_models.FortuneRecord
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		Order("timestamp ASC").
		Find(&records).Error
	return records, err
}
