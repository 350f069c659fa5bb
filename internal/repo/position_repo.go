// Repository functions for the Position model. Same conventions as the
// department repository: thin CRUD, context-aware, raw DB errors propagated.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-screentime-backend/internal/domain"
)

// CreatePosition inserts a new position row. The level CHECK constraint
// (1..10) is enforced by the store.
func CreatePosition(ctx context.Context, db *gorm.DB, p *domain.Position) (*domain.Position, error) {
	p.CreatedAt = time.Now().UTC()
	if err := db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

// ListPositions returns a page of positions ordered by id.
func ListPositions(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.Position, error) {
	var out []domain.Position
	err := db.WithContext(ctx).
		Order("id").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// GetPosition fetches a single position by id, or ErrNotFound if missing.
func GetPosition(ctx context.Context, db *gorm.DB, id uint) (*domain.Position, error) {
	var p domain.Position
	if err := db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdatePosition replaces the mutable fields of the position identified by id
// and returns the updated row. Returns ErrNotFound when the row does not exist.
func UpdatePosition(ctx context.Context, db *gorm.DB, id uint, p *domain.Position) (*domain.Position, error) {
	res := db.WithContext(ctx).
		Model(&domain.Position{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"name":        p.Name,
			"level":       p.Level,
			"description": p.Description,
			"is_active":   p.IsActive,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return GetPosition(ctx, db, id)
}

// DeletePosition removes the position identified by id. Employee references
// are set to NULL by the store. Returns ErrNotFound when the row does not
// exist.
func DeletePosition(ctx context.Context, db *gorm.DB, id uint) error {
	res := db.WithContext(ctx).Delete(&domain.Position{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
