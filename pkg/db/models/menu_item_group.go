package models

import (
	"github.com/google/uuid"
)

// MenuItemGroup links a menu item to a customization group. IsRequired
// and SortOrder, when set, override the group's own values for this item.
type MenuItemGroup struct {
	ID         uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	MenuItemID uuid.UUID           `gorm:"column:menu_item_id;type:uuid;not null"`
	GroupID    uuid.UUID           `gorm:"column:group_id;type:uuid;not null"`
	IsRequired *bool               `gorm:"column:is_required"`
	SortOrder  *int                `gorm:"column:sort_order"`
	Group      *CustomizationGroup `gorm:"foreignKey:GroupID"`
}
