package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/lucaferrante/fornello-backend/api/middleware"
	"github.com/lucaferrante/fornello-backend/api/responses"
	"github.com/lucaferrante/fornello-backend/api/validators"
	"github.com/lucaferrante/fornello-backend/internal/cart"
	"github.com/lucaferrante/fornello-backend/internal/pricing"
	"github.com/lucaferrante/fornello-backend/pkg/logger"
)

type addCartLineRequest struct {
	MenuItemID uuid.UUID           `json:"menu_item_id" validate:"required"`
	PresetID   *uuid.UUID          `json:"preset_id,omitempty"`
	Quantity   int                 `json:"quantity"`
	Notes      *string             `json:"notes,omitempty"`
	Selections []pricing.Selection `json:"selections"`
}

type updateCartLineRequest struct {
	Quantity   *int                 `json:"quantity,omitempty"`
	Notes      *string              `json:"notes,omitempty"`
	Selections *[]pricing.Selection `json:"selections,omitempty"`
	Toggle     *pricing.Selection   `json:"toggle,omitempty"`
}

// CartFetch returns the priced session cart.
func CartFetch(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dto, err := svc.Get(r.Context(), middleware.SessionID(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// CartAddLine appends an item to the session cart.
func CartAddLine(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body addCartLineRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.AddLine(r.Context(), middleware.SessionID(r.Context()), cart.AddLineInput{
			MenuItemID: body.MenuItemID,
			PresetID:   body.PresetID,
			Quantity:   body.Quantity,
			Notes:      body.Notes,
			Selections: body.Selections,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, dto)
	}
}

// CartUpdateLine applies partial changes to one cart line.
func CartUpdateLine(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lineID, err := validators.ParseUUIDParam(r, "lineId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateCartLineRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.UpdateLine(r.Context(), middleware.SessionID(r.Context()), lineID, cart.UpdateLineInput{
			Quantity:   body.Quantity,
			Notes:      body.Notes,
			Selections: body.Selections,
			Toggle:     body.Toggle,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// CartRemoveLine deletes one cart line.
func CartRemoveLine(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		lineID, err := validators.ParseUUIDParam(r, "lineId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		dto, err := svc.RemoveLine(r.Context(), middleware.SessionID(r.Context()), lineID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// CartClear drops the whole session cart.
func CartClear(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Clear(r.Context(), middleware.SessionID(r.Context())); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "cleared"})
	}
}
