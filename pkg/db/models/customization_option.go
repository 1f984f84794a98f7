package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lucaferrante/fornello-backend/pkg/enums"
)

// CustomizationOption is one selectable choice within a group.
// PriceModifier is signed; negative modifiers are credits.
type CustomizationOption struct {
	ID            uuid.UUID               `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	GroupID       uuid.UUID               `gorm:"column:group_id;type:uuid;not null"`
	Name          string                  `gorm:"column:name;not null"`
	Description   *string                 `gorm:"column:description"`
	Category      *string                 `gorm:"column:category"`
	PriceModifier decimal.Decimal         `gorm:"column:price_modifier;type:numeric(10,2);not null;default:0"`
	ModifierType  enums.PriceModifierType `gorm:"column:modifier_type;type:price_modifier_type;not null;default:'flat'"`
	IsDefault     bool                    `gorm:"column:is_default;not null;default:false"`
	IsActive      bool                    `gorm:"column:is_active;not null;default:true"`
	SortOrder     int                     `gorm:"column:sort_order;not null;default:0"`
	MaxQuantity   *int                    `gorm:"column:max_quantity"`
	IsVegetarian  bool                    `gorm:"column:is_vegetarian;not null;default:false"`
	IsVegan       bool                    `gorm:"column:is_vegan;not null;default:false"`
	IsGlutenFree  bool                    `gorm:"column:is_gluten_free;not null;default:false"`
	CreatedAt     time.Time               `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time               `gorm:"column:updated_at;autoUpdateTime"`
}
