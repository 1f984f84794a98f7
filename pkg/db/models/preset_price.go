package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PresetPrice fixes a preset's base price for a specific size option.
// When no row matches the selected size the preset's BasePrice applies.
type PresetPrice struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	PresetID     uuid.UUID       `gorm:"column:preset_id;type:uuid;not null"`
	SizeOptionID uuid.UUID       `gorm:"column:size_option_id;type:uuid;not null"`
	Price        decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
}
