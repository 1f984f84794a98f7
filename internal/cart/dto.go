package cart

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lucaferrante/fornello-backend/internal/pricing"
)

// Line is one cart entry as persisted in the session store. Prices are
// never stored; every read re-prices against the live catalog.
type Line struct {
	ID         uuid.UUID           `json:"id"`
	MenuItemID uuid.UUID           `json:"menu_item_id"`
	PresetID   *uuid.UUID          `json:"preset_id,omitempty"`
	Quantity   int                 `json:"quantity"`
	Notes      *string             `json:"notes,omitempty"`
	Selections []pricing.Selection `json:"selections"`
}

// Cart is the stored session cart.
type Cart struct {
	SessionID string `json:"session_id"`
	Lines     []Line `json:"lines"`
}

// AddLineInput is the payload to append a cart line. For preset lines
// with no explicit selections, the preset's original selection set is
// seeded automatically.
type AddLineInput struct {
	MenuItemID uuid.UUID           `json:"menu_item_id"`
	PresetID   *uuid.UUID          `json:"preset_id,omitempty"`
	Quantity   int                 `json:"quantity"`
	Notes      *string             `json:"notes,omitempty"`
	Selections []pricing.Selection `json:"selections"`
}

// UpdateLineInput holds optional mutations for an existing line.
// Selections replaces the whole set; Toggle applies one click with the
// owning group's semantics (radio replace, toggle off at the same
// placement, section moves releasing the old section).
type UpdateLineInput struct {
	Quantity   *int                 `json:"quantity,omitempty"`
	Notes      *string              `json:"notes,omitempty"`
	Selections *[]pricing.Selection `json:"selections,omitempty"`
	Toggle     *pricing.Selection   `json:"toggle,omitempty"`
}

// LineDTO is a cart line with its freshly computed price.
type LineDTO struct {
	ID         uuid.UUID           `json:"id"`
	MenuItemID uuid.UUID           `json:"menu_item_id"`
	PresetID   *uuid.UUID          `json:"preset_id,omitempty"`
	Name       string              `json:"name"`
	Quantity   int                 `json:"quantity"`
	Notes      *string             `json:"notes,omitempty"`
	Selections []pricing.Selection `json:"selections"`
	UnitPrice  decimal.Decimal     `json:"unit_price"`
	TotalPrice decimal.Decimal     `json:"total_price"`
	Breakdown  []pricing.QuoteLine `json:"breakdown,omitempty"`
}

// CartDTO is the priced cart returned to clients.
type CartDTO struct {
	SessionID string          `json:"session_id"`
	Lines     []LineDTO       `json:"lines"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}
