package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/lucaferrante/fornello-backend/internal/pricing"
	"github.com/lucaferrante/fornello-backend/pkg/db/models"
	pkgerrors "github.com/lucaferrante/fornello-backend/pkg/errors"
)

// Service exposes menu and preset read operations plus the pricing
// views the cart and order paths compute against.
type Service interface {
	ListMenu(ctx context.Context) (*MenuDTO, error)
	GetItem(ctx context.Context, id uuid.UUID) (*MenuItemDTO, error)
	GetPreset(ctx context.Context, id uuid.UUID) (*PresetDTO, error)
	PricingItem(ctx context.Context, itemID uuid.UUID) (*pricing.Item, error)
	PricingPreset(ctx context.Context, presetID uuid.UUID) (*pricing.Item, *pricing.Preset, error)
}

type reader interface {
	ListMenuItems(ctx context.Context) ([]models.MenuItem, error)
	FindMenuItem(ctx context.Context, id uuid.UUID) (*models.MenuItem, error)
	ListPresets(ctx context.Context) ([]models.SpecialtyPreset, error)
	FindPreset(ctx context.Context, id uuid.UUID) (*models.SpecialtyPreset, error)
}

type service struct {
	repo reader
}

// NewService constructs a catalog service instance.
func NewService(repo reader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

// ListMenu returns the active menu with presets.
func (s *service) ListMenu(ctx context.Context) (*MenuDTO, error) {
	items, err := s.repo.ListMenuItems(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list menu items")
	}
	presets, err := s.repo.ListPresets(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list presets")
	}

	menu := &MenuDTO{
		Items:   make([]MenuItemDTO, 0, len(items)),
		Presets: make([]PresetDTO, 0, len(presets)),
	}
	for _, item := range items {
		menu.Items = append(menu.Items, toMenuItemDTO(item))
	}
	for _, preset := range presets {
		menu.Presets = append(menu.Presets, toPresetDTO(preset))
	}
	return menu, nil
}

// GetItem returns one menu item with its customization groups.
func (s *service) GetItem(ctx context.Context, id uuid.UUID) (*MenuItemDTO, error) {
	item, err := s.loadItem(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toMenuItemDTO(*item)
	return &dto, nil
}

// GetPreset returns one specialty preset.
func (s *service) GetPreset(ctx context.Context, id uuid.UUID) (*PresetDTO, error) {
	preset, err := s.loadPreset(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toPresetDTO(*preset)
	return &dto, nil
}

// PricingItem builds the pricing view of a menu item.
func (s *service) PricingItem(ctx context.Context, itemID uuid.UUID) (*pricing.Item, error) {
	item, err := s.loadItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	view := toPricingItem(*item)
	return &view, nil
}

// PricingPreset builds the pricing views of a preset and its base item.
func (s *service) PricingPreset(ctx context.Context, presetID uuid.UUID) (*pricing.Item, *pricing.Preset, error) {
	preset, err := s.loadPreset(ctx, presetID)
	if err != nil {
		return nil, nil, err
	}
	item, err := s.loadItem(ctx, preset.MenuItemID)
	if err != nil {
		return nil, nil, err
	}
	itemView := toPricingItem(*item)
	presetView := toPricingPreset(itemView, *preset)
	return &itemView, presetView, nil
}

func (s *service) loadItem(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	item, err := s.repo.FindMenuItem(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "menu item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load menu item")
	}
	return item, nil
}

func (s *service) loadPreset(ctx context.Context, id uuid.UUID) (*models.SpecialtyPreset, error) {
	preset, err := s.repo.FindPreset(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "preset not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load preset")
	}
	return preset, nil
}

// toPricingItem flattens a menu item into the calculator's view,
// applying per-item required overrides from the link rows.
func toPricingItem(item models.MenuItem) pricing.Item {
	view := pricing.Item{
		ID:        item.ID,
		Name:      item.Name,
		BasePrice: item.BasePrice,
	}
	for _, link := range item.GroupLinks {
		if link.Group == nil || !link.Group.IsActive {
			continue
		}
		group := link.Group
		required := group.IsRequired
		if link.IsRequired != nil {
			required = *link.IsRequired
		}
		maxSel := 0
		if group.MaxSelections != nil {
			maxSel = *group.MaxSelections
		}
		pg := pricing.Group{
			ID:            group.ID,
			Name:          group.Name,
			Kind:          group.Kind,
			Required:      required,
			MinSelections: group.MinSelections,
			MaxSelections: maxSel,
		}
		for _, opt := range group.Options {
			maxQty := 0
			if opt.MaxQuantity != nil {
				maxQty = *opt.MaxQuantity
			}
			pg.Options = append(pg.Options, pricing.Option{
				ID:            opt.ID,
				Name:          opt.Name,
				PriceModifier: opt.PriceModifier,
				ModifierType:  opt.ModifierType,
				MaxQuantity:   maxQty,
			})
		}
		view.Groups = append(view.Groups, pg)
	}
	return view
}

// toPricingPreset builds the delta-pricing view. Core components
// (size, crust, sauce) are folded into the preset base, and swapping
// within a core group must stay free, so every option of a group that
// holds a core selection (or a size-priced option) is folded, not just
// the selected id.
func toPricingPreset(item pricing.Item, preset models.SpecialtyPreset) *pricing.Preset {
	view := &pricing.Preset{
		ID:         preset.ID,
		Name:       preset.Name,
		BasePrice:  preset.BasePrice,
		SizePrices: sizePriceIndex(preset.Prices),
		Folded:     map[uuid.UUID]struct{}{},
	}
	foldGroupOf := func(optionID uuid.UUID) {
		for _, group := range item.Groups {
			if !group.HasOption(optionID) {
				continue
			}
			for _, opt := range group.Options {
				view.Folded[opt.ID] = struct{}{}
			}
			return
		}
		// Dangling core row: keep at least the id itself out of the diff.
		view.Folded[optionID] = struct{}{}
	}
	for sizeOptionID := range view.SizePrices {
		foldGroupOf(sizeOptionID)
	}
	for _, sel := range preset.Selections {
		if sel.IsCore {
			foldGroupOf(sel.OptionID)
		}
		view.Original = append(view.Original, pricing.Selection{
			OptionID:  sel.OptionID,
			Quantity:  sel.Quantity,
			Section:   sel.Section,
			Intensity: sel.Intensity,
		})
	}
	return view
}

func sizePriceIndex(prices []models.PresetPrice) map[uuid.UUID]decimal.Decimal {
	index := make(map[uuid.UUID]decimal.Decimal, len(prices))
	for _, price := range prices {
		index[price.SizeOptionID] = price.Price
	}
	return index
}
