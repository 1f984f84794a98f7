package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lucaferrante/fornello-backend/api/responses"
	"github.com/lucaferrante/fornello-backend/api/validators"
	"github.com/lucaferrante/fornello-backend/internal/catalog"
	"github.com/lucaferrante/fornello-backend/internal/pricing"
	"github.com/lucaferrante/fornello-backend/pkg/logger"
)

type quoteRequest struct {
	MenuItemID uuid.UUID           `json:"menu_item_id"`
	PresetID   *uuid.UUID          `json:"preset_id,omitempty"`
	Selections []pricing.Selection `json:"selections"`
}

type quoteResponse struct {
	Valid      bool                `json:"valid"`
	Violations []string            `json:"violations,omitempty"`
	Base       decimal.Decimal     `json:"base"`
	Lines      []pricing.QuoteLine `json:"lines"`
	Total      decimal.Decimal     `json:"total"`
}

// Quote validates a selection set and prices it without touching the
// cart. Clients call this on every edit to keep the displayed price and
// validation state server-computed.
func Quote(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body quoteRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var (
			item   *pricing.Item
			preset *pricing.Preset
			err    error
		)
		if body.PresetID != nil {
			item, preset, err = svc.PricingPreset(r.Context(), *body.PresetID)
		} else {
			item, err = svc.PricingItem(r.Context(), body.MenuItemID)
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		selections := pricing.NormalizeAll(body.Selections)
		if preset != nil && len(selections) == 0 {
			selections = pricing.NormalizeAll(preset.Original)
		}

		violations := pricing.Validate(item.Groups, selections)
		quote := pricing.Price(*item, selections, preset)

		responses.WriteSuccess(w, quoteResponse{
			Valid:      len(violations) == 0,
			Violations: violations,
			Base:       quote.Base,
			Lines:      quote.Lines,
			Total:      quote.Total(),
		})
	}
}
