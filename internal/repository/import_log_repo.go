package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Yossy-AC/juku-seiseki-admin/internal/models"
)

// ImportLogRepository persists the audit trail of CSV import batches.
type ImportLogRepository interface {
	Create(ctx context.Context, entry *models.ImportLog) error
	List(ctx context.Context, limit int) ([]models.ImportLog, error)
}

type importLogRepository struct {
	db *gorm.DB
}

// NewImportLogRepository constructs the import log repository.
func NewImportLogRepository(db *gorm.DB) ImportLogRepository {
	return &importLogRepository{db: db}
}

func (r *importLogRepository) Create(ctx context.Context, entry *models.ImportLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *importLogRepository) List(ctx context.Context, limit int) ([]models.ImportLog, error) {
	query := r.db.WithContext(ctx).Model(&models.ImportLog{}).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var entries []models.ImportLog
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
