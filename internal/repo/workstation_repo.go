// Repository functions for the Workstation model. Thin CRUD; uniqueness of
// (hostname, department) and of inventory numbers is enforced by the store
// and surfaces as raw constraint errors.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-screentime-backend/internal/domain"
)

// CreateWorkstation inserts a new workstation row. The department reference
// is validated by the store.
func CreateWorkstation(ctx context.Context, db *gorm.DB, w *domain.Workstation) (*domain.Workstation, error) {
	w.CreatedAt = time.Now().UTC()
	if err := db.WithContext(ctx).Create(w).Error; err != nil {
		return nil, err
	}
	return w, nil
}

// ListWorkstations returns a page of workstations ordered by id.
func ListWorkstations(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.Workstation, error) {
	var out []domain.Workstation
	err := db.WithContext(ctx).
		Order("id").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// GetWorkstation fetches a single workstation by id, or ErrNotFound if missing.
func GetWorkstation(ctx context.Context, db *gorm.DB, id uint) (*domain.Workstation, error) {
	var w domain.Workstation
	if err := db.WithContext(ctx).First(&w, id).Error; err != nil {
		return nil, err
	}
	return &w, nil
}

// UpdateWorkstation replaces the mutable fields of the workstation identified
// by id and returns the updated row. Returns ErrNotFound when the row does
// not exist.
func UpdateWorkstation(ctx context.Context, db *gorm.DB, id uint, w *domain.Workstation) (*domain.Workstation, error) {
	res := db.WithContext(ctx).
		Model(&domain.Workstation{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"hostname":         w.Hostname,
			"inventory_number": w.InventoryNumber,
			"department_id":    w.DepartmentID,
			"os_name":          w.OSName,
			"is_active":        w.IsActive,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return GetWorkstation(ctx, db, id)
}

// DeleteWorkstation removes the workstation identified by id. Sessions and
// assignments are cascade-deleted by the store. Returns ErrNotFound when the
// row does not exist.
func DeleteWorkstation(ctx context.Context, db *gorm.DB, id uint) error {
	res := db.WithContext(ctx).Delete(&domain.Workstation{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
