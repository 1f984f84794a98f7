package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MenuItem represents a sellable entry on the menu.
type MenuItem struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string          `gorm:"column:name;not null"`
	Description *string         `gorm:"column:description"`
	BasePrice   decimal.Decimal `gorm:"column:base_price;type:numeric(10,2);not null"`
	IsActive    bool            `gorm:"column:is_active;not null;default:true"`
	IsAvailable bool            `gorm:"column:is_available;not null;default:true"`
	SortOrder   int             `gorm:"column:sort_order;not null;default:0"`
	PrepMinutes *int            `gorm:"column:prep_minutes"`
	GroupLinks  []MenuItemGroup `gorm:"foreignKey:MenuItemID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
