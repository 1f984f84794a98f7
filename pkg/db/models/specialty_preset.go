package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SpecialtyPreset is a named bundle (e.g. "Meat Lovers") that
// pre-populates a full selection set on its base menu item.
type SpecialtyPreset struct {
	ID          uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	MenuItemID  uuid.UUID         `gorm:"column:menu_item_id;type:uuid;not null"`
	Name        string            `gorm:"column:name;not null"`
	Description *string           `gorm:"column:description"`
	BasePrice   decimal.Decimal   `gorm:"column:base_price;type:numeric(10,2);not null"`
	IsActive    bool              `gorm:"column:is_active;not null;default:true"`
	SortOrder   int               `gorm:"column:sort_order;not null;default:0"`
	Prices      []PresetPrice     `gorm:"foreignKey:PresetID;constraint:OnDelete:CASCADE"`
	Selections  []PresetSelection `gorm:"foreignKey:PresetID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
