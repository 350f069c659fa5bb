// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Department
// model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When a department is not found, functions return gorm.ErrRecordNotFound
//     (also exported in this package as ErrNotFound).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw gorm error is propagated so the HTTP error normalizer can
//     classify the driver diagnostics.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-screentime-backend/internal/domain"
)

// CreateDepartment inserts a new department row. CreatedAt is set to UTC.
// On success, it returns the persisted Department. On failure, it returns
// the raw DB error (unique violations on name/code included).
func CreateDepartment(ctx context.Context, db *gorm.DB, d *domain.Department) (*domain.Department, error) {
	d.CreatedAt = time.Now().UTC()
	if err := db.WithContext(ctx).Create(d).Error; err != nil {
		return nil, err
	}
	return d, nil
}

// ListDepartments returns a page of departments ordered by id. It returns an
// empty slice when the page is past the end.
func ListDepartments(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.Department, error) {
	var out []domain.Department
	err := db.WithContext(ctx).
		Order("id").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// GetDepartment fetches a single department by id, or ErrNotFound if missing.
func GetDepartment(ctx context.Context, db *gorm.DB, id uint) (*domain.Department, error) {
	var d domain.Department
	if err := db.WithContext(ctx).First(&d, id).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

// UpdateDepartment replaces the mutable fields of the department identified
// by id and returns the updated row. Returns ErrNotFound when the row does
// not exist.
func UpdateDepartment(ctx context.Context, db *gorm.DB, id uint, d *domain.Department) (*domain.Department, error) {
	res := db.WithContext(ctx).
		Model(&domain.Department{}).
		Where("id = ?", id).
		Select("name", "code", "description", "is_active").
		Updates(map[string]any{
			"name":        d.Name,
			"code":        d.Code,
			"description": d.Description,
			"is_active":   d.IsActive,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return GetDepartment(ctx, db, id)
}

// DeleteDepartment removes the department identified by id. Dependent
// workstations are cascade-deleted by the store; employee references are set
// to NULL. Returns ErrNotFound when the row does not exist.
func DeleteDepartment(ctx context.Context, db *gorm.DB, id uint) error {
	res := db.WithContext(ctx).Delete(&domain.Department{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
