package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lucaferrante/fornello-backend/pkg/enums"
)

// Order is created at checkout with server-recomputed totals. Only the
// status mutates afterward; line items are frozen.
type Order struct {
	ID              uuid.UUID         `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderNumber     string            `gorm:"column:order_number;not null;uniqueIndex"`
	Status          enums.OrderStatus `gorm:"column:status;type:order_status;not null;default:'pending'"`
	OrderType       enums.OrderType   `gorm:"column:order_type;type:order_type;not null"`
	CustomerName    string            `gorm:"column:customer_name;not null"`
	CustomerPhone   string            `gorm:"column:customer_phone;not null"`
	CustomerEmail   *string           `gorm:"column:customer_email"`
	DeliveryAddress *string           `gorm:"column:delivery_address"`
	Subtotal        decimal.Decimal   `gorm:"column:subtotal;type:numeric(10,2);not null"`
	DeliveryFee     decimal.Decimal   `gorm:"column:delivery_fee;type:numeric(10,2);not null;default:0"`
	Tax             decimal.Decimal   `gorm:"column:tax;type:numeric(10,2);not null"`
	Tip             decimal.Decimal   `gorm:"column:tip;type:numeric(10,2);not null;default:0"`
	Total           decimal.Decimal   `gorm:"column:total;type:numeric(10,2);not null"`
	Notes           *string           `gorm:"column:notes"`
	Items           []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
