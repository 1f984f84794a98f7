package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lucaferrante/fornello-backend/internal/repo"
	"github.com/lucaferrante/fornello-backend/pkg/db/models"
	"github.com/lucaferrante/fornello-backend/pkg/enums"
)

const defaultListLimit = 50

// Repository persists orders with their frozen line items.
type Repository struct {
	repo.Base
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(tx)}
}

// CreateOrder inserts the order together with its items and options.
func (r *Repository) CreateOrder(ctx context.Context, order *models.Order) error {
	return r.DB(ctx).Create(order).Error
}

// FindByID loads an order with all line items and their options.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.DB(ctx).
		Preload("Items.Options").
		Preload("Items").
		First(&order, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// FindByNumber loads an order by its public order number.
func (r *Repository) FindByNumber(ctx context.Context, number string) (*models.Order, error) {
	var order models.Order
	err := r.DB(ctx).
		Preload("Items.Options").
		Preload("Items").
		First(&order, "order_number = ?", number).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// List returns recent orders, optionally filtered by status.
func (r *Repository) List(ctx context.Context, input ListOrdersInput) ([]models.Order, error) {
	limit := input.Limit
	if limit <= 0 || limit > 200 {
		limit = defaultListLimit
	}
	query := r.DB(ctx).
		Preload("Items.Options").
		Preload("Items").
		Order("created_at DESC").
		Limit(limit)
	if input.Status != nil {
		query = query.Where("status = ?", *input.Status)
	}
	var result []models.Order
	if err := query.Find(&result).Error; err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateStatus persists a status change.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) error {
	return r.DB(ctx).
		Model(&models.Order{}).
		Where("id = ?", id).
		Update("status", status).Error
}
