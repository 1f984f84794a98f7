package pricing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lucaferrante/fornello-backend/pkg/enums"
)

// Option is the pricing view of a customization option.
type Option struct {
	ID            uuid.UUID
	Name          string
	PriceModifier decimal.Decimal
	ModifierType  enums.PriceModifierType
	MaxQuantity   int // 0 = unlimited
}

// Group is the pricing view of a customization group. MaxSelections of
// zero means unlimited.
type Group struct {
	ID            uuid.UUID
	Name          string
	Kind          enums.GroupKind
	Required      bool
	MinSelections int
	MaxSelections int
	Options       []Option
}

// HasOption reports whether the option id belongs to this group.
func (g Group) HasOption(id uuid.UUID) bool {
	for _, opt := range g.Options {
		if opt.ID == id {
			return true
		}
	}
	return false
}

// Item is the pricing view of a menu item with its customization groups.
type Item struct {
	ID        uuid.UUID
	Name      string
	BasePrice decimal.Decimal
	Groups    []Group
}

// HasOption reports whether the option id belongs to any of the item's
// groups.
func (i Item) HasOption(id uuid.UUID) bool {
	for _, group := range i.Groups {
		if group.HasOption(id) {
			return true
		}
	}
	return false
}

func (i Item) optionIndex() map[uuid.UUID]Option {
	index := map[uuid.UUID]Option{}
	for _, group := range i.Groups {
		for _, opt := range group.Options {
			index[opt.ID] = opt
		}
	}
	return index
}

// Preset carries everything needed to price a customized specialty
// preset: the size-specific bases, the original selection set for
// diffing, and the option ids whose modifiers are already folded into
// the preset base (size, crust, sauce).
type Preset struct {
	ID         uuid.UUID
	Name       string
	BasePrice  decimal.Decimal
	SizePrices map[uuid.UUID]decimal.Decimal
	Folded     map[uuid.UUID]struct{}
	Original   []Selection
}

func (p *Preset) isFolded(id uuid.UUID) bool {
	if p == nil {
		return false
	}
	if _, ok := p.Folded[id]; ok {
		return true
	}
	_, ok := p.SizePrices[id]
	return ok
}
