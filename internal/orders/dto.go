package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lucaferrante/fornello-backend/internal/pricing"
	"github.com/lucaferrante/fornello-backend/pkg/db/models"
	"github.com/lucaferrante/fornello-backend/pkg/enums"
)

// CustomerInfo identifies who placed the order.
type CustomerInfo struct {
	Name  string  `json:"name"`
	Phone string  `json:"phone"`
	Email *string `json:"email,omitempty"`
}

// SubmittedItem is one item as submitted at checkout. ClientUnitPrice
// is advisory: the server recomputes every price and its result is the
// one persisted.
type SubmittedItem struct {
	MenuItemID      uuid.UUID           `json:"menu_item_id"`
	PresetID        *uuid.UUID          `json:"preset_id,omitempty"`
	Quantity        int                 `json:"quantity"`
	Notes           *string             `json:"notes,omitempty"`
	Selections      []pricing.Selection `json:"selections"`
	ClientUnitPrice *decimal.Decimal    `json:"client_unit_price,omitempty"`
}

// CreateOrderInput is the validated checkout payload.
type CreateOrderInput struct {
	OrderType       enums.OrderType  `json:"order_type"`
	Customer        CustomerInfo     `json:"customer"`
	DeliveryAddress *string          `json:"delivery_address,omitempty"`
	Tip             decimal.Decimal  `json:"tip"`
	Notes           *string          `json:"notes,omitempty"`
	Items           []SubmittedItem  `json:"items"`
	ClientTotal     *decimal.Decimal `json:"client_total,omitempty"`
}

// UpdateStatusInput moves an order along its lifecycle.
type UpdateStatusInput struct {
	Status enums.OrderStatus `json:"status"`
}

// ListOrdersInput filters the admin order listing.
type ListOrdersInput struct {
	Status *enums.OrderStatus
	Limit  int
}

// OrderDTO is the order payload returned to clients.
type OrderDTO struct {
	ID              uuid.UUID         `json:"id"`
	OrderNumber     string            `json:"order_number"`
	Status          enums.OrderStatus `json:"status"`
	OrderType       enums.OrderType   `json:"order_type"`
	Customer        CustomerInfo      `json:"customer"`
	DeliveryAddress *string           `json:"delivery_address,omitempty"`
	Subtotal        decimal.Decimal   `json:"subtotal"`
	DeliveryFee     decimal.Decimal   `json:"delivery_fee"`
	Tax             decimal.Decimal   `json:"tax"`
	Tip             decimal.Decimal   `json:"tip"`
	Total           decimal.Decimal   `json:"total"`
	Notes           *string           `json:"notes,omitempty"`
	Items           []OrderItemDTO    `json:"items"`
	CreatedAt       time.Time         `json:"created_at"`
}

// OrderItemDTO is one frozen order line.
type OrderItemDTO struct {
	ID          uuid.UUID            `json:"id"`
	MenuItemID  *uuid.UUID           `json:"menu_item_id,omitempty"`
	PresetID    *uuid.UUID           `json:"preset_id,omitempty"`
	Name        string               `json:"name"`
	Description string               `json:"description"`
	Quantity    int                  `json:"quantity"`
	UnitPrice   decimal.Decimal      `json:"unit_price"`
	TotalPrice  decimal.Decimal      `json:"total_price"`
	Notes       *string              `json:"notes,omitempty"`
	Options     []OrderItemOptionDTO `json:"options"`
}

// OrderItemOptionDTO is one frozen customization choice.
type OrderItemOptionDTO struct {
	OptionID     *uuid.UUID      `json:"customization_option_id,omitempty"`
	Name         string          `json:"name"`
	Section      enums.Section   `json:"section"`
	Intensity    enums.Intensity `json:"intensity"`
	Quantity     int             `json:"quantity"`
	Contribution decimal.Decimal `json:"contribution"`
}

func toOrderDTO(order models.Order) OrderDTO {
	dto := OrderDTO{
		ID:          order.ID,
		OrderNumber: order.OrderNumber,
		Status:      order.Status,
		OrderType:   order.OrderType,
		Customer: CustomerInfo{
			Name:  order.CustomerName,
			Phone: order.CustomerPhone,
			Email: order.CustomerEmail,
		},
		DeliveryAddress: order.DeliveryAddress,
		Subtotal:        order.Subtotal,
		DeliveryFee:     order.DeliveryFee,
		Tax:             order.Tax,
		Tip:             order.Tip,
		Total:           order.Total,
		Notes:           order.Notes,
		Items:           make([]OrderItemDTO, 0, len(order.Items)),
		CreatedAt:       order.CreatedAt,
	}
	for _, item := range order.Items {
		itemDTO := OrderItemDTO{
			ID:          item.ID,
			MenuItemID:  item.MenuItemID,
			PresetID:    item.PresetID,
			Name:        item.Name,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  item.TotalPrice,
			Notes:       item.Notes,
			Options:     make([]OrderItemOptionDTO, 0, len(item.Options)),
		}
		for _, opt := range item.Options {
			itemDTO.Options = append(itemDTO.Options, OrderItemOptionDTO{
				OptionID:     opt.OptionID,
				Name:         opt.Name,
				Section:      opt.Section,
				Intensity:    opt.Intensity,
				Quantity:     opt.Quantity,
				Contribution: opt.Contribution,
			})
		}
		dto.Items = append(dto.Items, itemDTO)
	}
	return dto
}
