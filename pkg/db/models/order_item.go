package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItem freezes the resolved unit price and a human-readable
// description of one ordered item.
type OrderItem struct {
	ID          uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID     uuid.UUID         `gorm:"column:order_id;type:uuid;not null"`
	MenuItemID  *uuid.UUID        `gorm:"column:menu_item_id;type:uuid"`
	PresetID    *uuid.UUID        `gorm:"column:preset_id;type:uuid"`
	Name        string            `gorm:"column:name;not null"`
	Description string            `gorm:"column:description;not null;default:''"`
	Quantity    int               `gorm:"column:quantity;not null"`
	UnitPrice   decimal.Decimal   `gorm:"column:unit_price;type:numeric(10,2);not null"`
	TotalPrice  decimal.Decimal   `gorm:"column:total_price;type:numeric(10,2);not null"`
	Notes       *string           `gorm:"column:notes"`
	Options     []OrderItemOption `gorm:"foreignKey:OrderItemID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time         `gorm:"column:created_at;autoCreateTime"`
}
