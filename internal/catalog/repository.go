package catalog

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lucaferrante/fornello-backend/internal/repo"
	"github.com/lucaferrante/fornello-backend/pkg/db/models"
)

// Repository loads menu, customization, and preset data.
type Repository struct {
	repo.Base
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(tx)}
}

func activeOptions(db *gorm.DB) *gorm.DB {
	return db.Where("is_active = ?", true).Order("sort_order, name")
}

func withGroups(db *gorm.DB) *gorm.DB {
	return db.
		Preload("GroupLinks", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order")
		}).
		Preload("GroupLinks.Group", "is_active = ?", true).
		Preload("GroupLinks.Group.Options", activeOptions)
}

// ListMenuItems returns active menu items with their customization
// groups and options, in display order.
func (r *Repository) ListMenuItems(ctx context.Context) ([]models.MenuItem, error) {
	var items []models.MenuItem
	err := withGroups(r.DB(ctx)).
		Where("is_active = ?", true).
		Order("sort_order, name").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// FindMenuItem loads one active menu item with groups and options.
func (r *Repository) FindMenuItem(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	var item models.MenuItem
	err := withGroups(r.DB(ctx)).
		First(&item, "id = ? AND is_active = ?", id, true).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// ListPresets returns active specialty presets with their size prices
// and original selections.
func (r *Repository) ListPresets(ctx context.Context) ([]models.SpecialtyPreset, error) {
	var presets []models.SpecialtyPreset
	err := r.DB(ctx).
		Preload("Prices").
		Preload("Selections").
		Where("is_active = ?", true).
		Order("sort_order, name").
		Find(&presets).Error
	if err != nil {
		return nil, err
	}
	return presets, nil
}

// FindPreset loads one active preset with size prices and selections.
func (r *Repository) FindPreset(ctx context.Context, id uuid.UUID) (*models.SpecialtyPreset, error) {
	var preset models.SpecialtyPreset
	err := r.DB(ctx).
		Preload("Prices").
		Preload("Selections").
		First(&preset, "id = ? AND is_active = ?", id, true).Error
	if err != nil {
		return nil, err
	}
	return &preset, nil
}
