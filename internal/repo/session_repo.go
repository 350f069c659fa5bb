// Repository functions for the ScreenSession model. Sessions are append-only
// from the API's perspective: create, read, delete, but no update. Aggregate
// stats are recomputed by store triggers on insert and delete.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-screentime-backend/internal/domain"
)

// CreateSession inserts a new screen session row. Employee and workstation
// references and the ended_at > started_at CHECK are validated by the store.
func CreateSession(ctx context.Context, db *gorm.DB, s *domain.ScreenSession) (*domain.ScreenSession, error) {
	s.CreatedAt = time.Now().UTC()
	if err := db.WithContext(ctx).Create(s).Error; err != nil {
		return nil, err
	}
	return s, nil
}

// ListSessions returns a page of sessions ordered by start time descending
// (most recent first).
func ListSessions(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.ScreenSession, error) {
	var out []domain.ScreenSession
	err := db.WithContext(ctx).
		Order("started_at desc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// GetSession fetches a single session by id, or ErrNotFound if missing.
func GetSession(ctx context.Context, db *gorm.DB, id uint) (*domain.ScreenSession, error) {
	var s domain.ScreenSession
	if err := db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

// DeleteSession removes the session identified by id. Returns ErrNotFound
// when the row does not exist.
func DeleteSession(ctx context.Context, db *gorm.DB, id uint) error {
	res := db.WithContext(ctx).Delete(&domain.ScreenSession{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
