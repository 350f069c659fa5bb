// Repository functions for the Employee model.
//
// Unlike the other entities, employee updates are partial: the HTTP layer
// accepts a sparse payload and only the provided fields are written. The
// EmployeePatch type carries that sparseness with pointer fields; a nil
// field is left untouched.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-screentime-backend/internal/domain"
)

// EmployeePatch is a sparse employee update. Nil fields are not modified.
type EmployeePatch struct {
	FirstName    *string
	LastName     *string
	Email        *string
	DepartmentID *uint
	PositionID   *uint
	HiredAt      *time.Time
	IsActive     *bool
}

// CreateEmployee inserts a new employee row. Foreign-key references to
// departments and positions are validated by the store.
func CreateEmployee(ctx context.Context, db *gorm.DB, e *domain.Employee) (*domain.Employee, error) {
	if err := db.WithContext(ctx).Create(e).Error; err != nil {
		return nil, err
	}
	return e, nil
}

// ListEmployees returns a page of employees ordered by id.
func ListEmployees(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.Employee, error) {
	var out []domain.Employee
	err := db.WithContext(ctx).
		Order("id").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// GetEmployee fetches a single employee by id, or ErrNotFound if missing.
func GetEmployee(ctx context.Context, db *gorm.DB, id uint) (*domain.Employee, error) {
	var e domain.Employee
	if err := db.WithContext(ctx).First(&e, id).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

// UpdateEmployee applies a sparse patch to the employee identified by id and
// returns the updated row. A patch with no set fields is a no-op that still
// verifies existence. Returns ErrNotFound when the row does not exist.
func UpdateEmployee(ctx context.Context, db *gorm.DB, id uint, patch EmployeePatch) (*domain.Employee, error) {
	updates := map[string]any{}
	if patch.FirstName != nil {
		updates["first_name"] = *patch.FirstName
	}
	if patch.LastName != nil {
		updates["last_name"] = *patch.LastName
	}
	if patch.Email != nil {
		updates["email"] = *patch.Email
	}
	if patch.DepartmentID != nil {
		updates["department_id"] = *patch.DepartmentID
	}
	if patch.PositionID != nil {
		updates["position_id"] = *patch.PositionID
	}
	if patch.HiredAt != nil {
		updates["hired_at"] = *patch.HiredAt
	}
	if patch.IsActive != nil {
		updates["is_active"] = *patch.IsActive
	}

	if len(updates) == 0 {
		return GetEmployee(ctx, db, id)
	}

	res := db.WithContext(ctx).
		Model(&domain.Employee{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return GetEmployee(ctx, db, id)
}

// DeleteEmployee removes the employee identified by id. Sessions and
// workstation assignments are cascade-deleted by the store. Returns
// ErrNotFound when the row does not exist.
func DeleteEmployee(ctx context.Context, db *gorm.DB, id uint) error {
	res := db.WithContext(ctx).Delete(&domain.Employee{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
