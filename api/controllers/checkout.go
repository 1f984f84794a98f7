package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lucaferrante/fornello-backend/api/middleware"
	"github.com/lucaferrante/fornello-backend/api/responses"
	"github.com/lucaferrante/fornello-backend/api/validators"
	"github.com/lucaferrante/fornello-backend/internal/cart"
	"github.com/lucaferrante/fornello-backend/internal/orders"
	"github.com/lucaferrante/fornello-backend/internal/pricing"
	"github.com/lucaferrante/fornello-backend/pkg/enums"
	pkgerrors "github.com/lucaferrante/fornello-backend/pkg/errors"
	"github.com/lucaferrante/fornello-backend/pkg/logger"
)

type checkoutCustomer struct {
	Name  string  `json:"name" validate:"required,min=1,max=120"`
	Phone string  `json:"phone" validate:"required,min=7,max=32"`
	Email *string `json:"email,omitempty" validate:"omitempty,email"`
}

type checkoutItem struct {
	MenuItemID      uuid.UUID           `json:"menu_item_id"`
	PresetID        *uuid.UUID          `json:"preset_id,omitempty"`
	Quantity        int                 `json:"quantity" validate:"required,gt=0"`
	Notes           *string             `json:"notes,omitempty"`
	Selections      []pricing.Selection `json:"selections"`
	ClientUnitPrice *decimal.Decimal    `json:"client_unit_price,omitempty"`
}

type checkoutRequest struct {
	OrderType       string           `json:"order_type" validate:"required"`
	Customer        checkoutCustomer `json:"customer" validate:"required"`
	DeliveryAddress *string          `json:"delivery_address,omitempty"`
	Tip             decimal.Decimal  `json:"tip"`
	Notes           *string          `json:"notes,omitempty"`
	Items           []checkoutItem   `json:"items" validate:"required,min=1,dive"`
	ClientTotal     *decimal.Decimal `json:"client_total,omitempty"`
}

func sanitizeNotes(notes *string) *string {
	if notes == nil {
		return nil
	}
	cleaned := validators.SanitizeString(*notes, 500)
	if cleaned == "" {
		return nil
	}
	return &cleaned
}

// Checkout places an order and clears the session cart on success.
func Checkout(ordersSvc orders.Service, cartSvc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body checkoutRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orderType, err := enums.ParseOrderType(body.OrderType)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order type"))
			return
		}

		input := orders.CreateOrderInput{
			OrderType: orderType,
			Customer: orders.CustomerInfo{
				Name:  validators.SanitizeString(body.Customer.Name, 120),
				Phone: validators.SanitizeString(body.Customer.Phone, 32),
				Email: body.Customer.Email,
			},
			DeliveryAddress: body.DeliveryAddress,
			Tip:             body.Tip,
			Notes:           sanitizeNotes(body.Notes),
			ClientTotal:     body.ClientTotal,
		}
		for _, item := range body.Items {
			input.Items = append(input.Items, orders.SubmittedItem{
				MenuItemID:      item.MenuItemID,
				PresetID:        item.PresetID,
				Quantity:        item.Quantity,
				Notes:           sanitizeNotes(item.Notes),
				Selections:      item.Selections,
				ClientUnitPrice: item.ClientUnitPrice,
			})
		}

		order, err := ordersSvc.CreateOrder(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if sessionID := middleware.SessionID(r.Context()); sessionID != "" {
			if err := cartSvc.Clear(r.Context(), sessionID); err != nil {
				logg.Warn(r.Context(), "failed to clear cart after checkout: "+err.Error())
			}
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}
