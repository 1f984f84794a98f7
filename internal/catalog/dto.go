package catalog

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lucaferrante/fornello-backend/pkg/db/models"
	"github.com/lucaferrante/fornello-backend/pkg/enums"
)

// MenuDTO is the full menu payload returned to clients.
type MenuDTO struct {
	Items   []MenuItemDTO `json:"items"`
	Presets []PresetDTO   `json:"presets"`
}

// MenuItemDTO represents one orderable menu item.
type MenuItemDTO struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description *string         `json:"description,omitempty"`
	BasePrice   decimal.Decimal `json:"base_price"`
	IsAvailable bool            `json:"is_available"`
	PrepMinutes *int            `json:"prep_minutes,omitempty"`
	Groups      []GroupDTO      `json:"groups"`
}

// GroupDTO represents a customization group as shown to clients, with
// any per-item required override already applied.
type GroupDTO struct {
	ID            uuid.UUID       `json:"id"`
	Name          string          `json:"name"`
	Description   *string         `json:"description,omitempty"`
	Kind          enums.GroupKind `json:"kind"`
	IsRequired    bool            `json:"is_required"`
	MinSelections int             `json:"min_selections"`
	MaxSelections *int            `json:"max_selections,omitempty"`
	Options       []OptionDTO     `json:"options"`
}

// OptionDTO represents one selectable customization choice.
type OptionDTO struct {
	ID            uuid.UUID               `json:"id"`
	Name          string                  `json:"name"`
	Description   *string                 `json:"description,omitempty"`
	Category      *string                 `json:"category,omitempty"`
	PriceModifier decimal.Decimal         `json:"price_modifier"`
	ModifierType  enums.PriceModifierType `json:"modifier_type"`
	IsDefault     bool                    `json:"is_default"`
	MaxQuantity   *int                    `json:"max_quantity,omitempty"`
	IsVegetarian  bool                    `json:"is_vegetarian"`
	IsVegan       bool                    `json:"is_vegan"`
	IsGlutenFree  bool                    `json:"is_gluten_free"`
}

// PresetDTO represents a specialty preset with its size prices and the
// selection set it pre-populates.
type PresetDTO struct {
	ID          uuid.UUID            `json:"id"`
	MenuItemID  uuid.UUID            `json:"menu_item_id"`
	Name        string               `json:"name"`
	Description *string              `json:"description,omitempty"`
	BasePrice   decimal.Decimal      `json:"base_price"`
	SizePrices  []PresetPriceDTO     `json:"size_prices"`
	Selections  []PresetSelectionDTO `json:"selections"`
}

// PresetPriceDTO fixes a preset base price for one size option.
type PresetPriceDTO struct {
	SizeOptionID uuid.UUID       `json:"size_option_id"`
	Price        decimal.Decimal `json:"price"`
}

// PresetSelectionDTO is one pre-populated selection row.
type PresetSelectionDTO struct {
	OptionID  uuid.UUID       `json:"customization_option_id"`
	Quantity  int             `json:"quantity"`
	Section   enums.Section   `json:"section"`
	Intensity enums.Intensity `json:"intensity"`
	IsCore    bool            `json:"is_core"`
}

func toMenuItemDTO(item models.MenuItem) MenuItemDTO {
	dto := MenuItemDTO{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		BasePrice:   item.BasePrice,
		IsAvailable: item.IsAvailable,
		PrepMinutes: item.PrepMinutes,
		Groups:      []GroupDTO{},
	}
	for _, link := range item.GroupLinks {
		if link.Group == nil || !link.Group.IsActive {
			continue
		}
		dto.Groups = append(dto.Groups, toGroupDTO(link))
	}
	return dto
}

func toGroupDTO(link models.MenuItemGroup) GroupDTO {
	group := link.Group
	required := group.IsRequired
	if link.IsRequired != nil {
		required = *link.IsRequired
	}
	dto := GroupDTO{
		ID:            group.ID,
		Name:          group.Name,
		Description:   group.Description,
		Kind:          group.Kind,
		IsRequired:    required,
		MinSelections: group.MinSelections,
		MaxSelections: group.MaxSelections,
		Options:       make([]OptionDTO, 0, len(group.Options)),
	}
	for _, opt := range group.Options {
		dto.Options = append(dto.Options, OptionDTO{
			ID:            opt.ID,
			Name:          opt.Name,
			Description:   opt.Description,
			Category:      opt.Category,
			PriceModifier: opt.PriceModifier,
			ModifierType:  opt.ModifierType,
			IsDefault:     opt.IsDefault,
			MaxQuantity:   opt.MaxQuantity,
			IsVegetarian:  opt.IsVegetarian,
			IsVegan:       opt.IsVegan,
			IsGlutenFree:  opt.IsGlutenFree,
		})
	}
	return dto
}

func toPresetDTO(preset models.SpecialtyPreset) PresetDTO {
	dto := PresetDTO{
		ID:          preset.ID,
		MenuItemID:  preset.MenuItemID,
		Name:        preset.Name,
		Description: preset.Description,
		BasePrice:   preset.BasePrice,
		SizePrices:  make([]PresetPriceDTO, 0, len(preset.Prices)),
		Selections:  make([]PresetSelectionDTO, 0, len(preset.Selections)),
	}
	for _, price := range preset.Prices {
		dto.SizePrices = append(dto.SizePrices, PresetPriceDTO{
			SizeOptionID: price.SizeOptionID,
			Price:        price.Price,
		})
	}
	for _, sel := range preset.Selections {
		dto.Selections = append(dto.Selections, PresetSelectionDTO{
			OptionID:  sel.OptionID,
			Quantity:  sel.Quantity,
			Section:   sel.Section,
			Intensity: sel.Intensity,
			IsCore:    sel.IsCore,
		})
	}
	return dto
}
