package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lucaferrante/fornello-backend/pkg/enums"
)

// OrderItemOption records one resolved customization choice with its
// price contribution at order time.
type OrderItemOption struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderItemID  uuid.UUID       `gorm:"column:order_item_id;type:uuid;not null"`
	OptionID     *uuid.UUID      `gorm:"column:option_id;type:uuid"`
	Name         string          `gorm:"column:name;not null"`
	Section      enums.Section   `gorm:"column:section;type:section;not null;default:'whole'"`
	Intensity    enums.Intensity `gorm:"column:intensity;type:intensity;not null;default:'regular'"`
	Quantity     int             `gorm:"column:quantity;not null;default:1"`
	Contribution decimal.Decimal `gorm:"column:contribution;type:numeric(10,2);not null;default:0"`
}
