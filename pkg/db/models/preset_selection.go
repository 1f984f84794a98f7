package models

import (
	"github.com/google/uuid"

	"github.com/lucaferrante/fornello-backend/pkg/enums"
)

// PresetSelection is one row of a preset's original selection set.
// Rows flagged IsCore (size/crust/sauce) are folded into the preset
// base price and excluded from delta pricing when customers customize.
type PresetSelection struct {
	ID        uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	PresetID  uuid.UUID       `gorm:"column:preset_id;type:uuid;not null"`
	OptionID  uuid.UUID       `gorm:"column:option_id;type:uuid;not null"`
	Quantity  int             `gorm:"column:quantity;not null;default:1"`
	Section   enums.Section   `gorm:"column:section;type:section;not null;default:'whole'"`
	Intensity enums.Intensity `gorm:"column:intensity;type:intensity;not null;default:'regular'"`
	IsCore    bool            `gorm:"column:is_core;not null;default:false"`
}
