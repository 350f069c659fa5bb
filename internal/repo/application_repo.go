// Repository functions for the Application model.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-screentime-backend/internal/domain"
)

// CreateApplication inserts a new application row. Application codes are
// unique; duplicates surface as a store constraint error.
func CreateApplication(ctx context.Context, db *gorm.DB, a *domain.Application) (*domain.Application, error) {
	a.CreatedAt = time.Now().UTC()
	if err := db.WithContext(ctx).Create(a).Error; err != nil {
		return nil, err
	}
	return a, nil
}

// ListApplications returns a page of applications ordered by id.
func ListApplications(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.Application, error) {
	var out []domain.Application
	err := db.WithContext(ctx).
		Order("id").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// GetApplication fetches a single application by id, or ErrNotFound if missing.
func GetApplication(ctx context.Context, db *gorm.DB, id uint) (*domain.Application, error) {
	var a domain.Application
	if err := db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// UpdateApplication replaces the mutable fields of the application identified
// by id and returns the updated row. Returns ErrNotFound when the row does
// not exist.
func UpdateApplication(ctx context.Context, db *gorm.DB, id uint, a *domain.Application) (*domain.Application, error) {
	res := db.WithContext(ctx).
		Model(&domain.Application{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"name":          a.Name,
			"code":          a.Code,
			"category":      a.Category,
			"is_productive": a.IsProductive,
			"is_active":     a.IsActive,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return GetApplication(ctx, db, id)
}

// DeleteApplication removes the application identified by id. Usage rows
// reference applications with ON DELETE RESTRICT, so deleting an application
// that appears in session usage fails with a foreign-key violation.
func DeleteApplication(ctx context.Context, db *gorm.DB, id uint) error {
	res := db.WithContext(ctx).Delete(&domain.Application{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
