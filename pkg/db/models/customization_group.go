package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/lucaferrante/fornello-backend/pkg/enums"
)

// CustomizationGroup is a named dimension of choice on a menu item.
type CustomizationGroup struct {
	ID            uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name          string                `gorm:"column:name;not null"`
	Description   *string               `gorm:"column:description"`
	Kind          enums.GroupKind       `gorm:"column:kind;type:group_kind;not null"`
	IsRequired    bool                  `gorm:"column:is_required;not null;default:false"`
	MinSelections int                   `gorm:"column:min_selections;not null;default:0"`
	MaxSelections *int                  `gorm:"column:max_selections"`
	SortOrder     int                   `gorm:"column:sort_order;not null;default:0"`
	IsActive      bool                  `gorm:"column:is_active;not null;default:true"`
	Options       []CustomizationOption `gorm:"foreignKey:GroupID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
