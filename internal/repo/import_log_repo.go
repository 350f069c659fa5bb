// Repository functions for the BatchImportLog audit record. The import
// service drives the lifecycle (create inside its transaction, finalize with
// the batch commit, or re-insert in a recovery transaction); this file keeps
// the read-side queries used by the API.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-screentime-backend/internal/domain"
)

// ListImportLogs returns a page of import logs ordered by start time
// descending (most recent first).
func ListImportLogs(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.BatchImportLog, error) {
	var out []domain.BatchImportLog
	err := db.WithContext(ctx).
		Order("started_at desc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// GetImportLog fetches a single import log by id, or ErrNotFound if missing.
func GetImportLog(ctx context.Context, db *gorm.DB, id uint) (*domain.BatchImportLog, error) {
	var l domain.BatchImportLog
	if err := db.WithContext(ctx).First(&l, id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}
