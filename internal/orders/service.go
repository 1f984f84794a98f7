package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/lucaferrante/fornello-backend/internal/pricing"
	"github.com/lucaferrante/fornello-backend/pkg/config"
	"github.com/lucaferrante/fornello-backend/pkg/db/models"
	"github.com/lucaferrante/fornello-backend/pkg/enums"
	pkgerrors "github.com/lucaferrante/fornello-backend/pkg/errors"
	"github.com/lucaferrante/fornello-backend/pkg/logger"
	"github.com/lucaferrante/fornello-backend/pkg/metrics"
	"github.com/lucaferrante/fornello-backend/pkg/money"
)

// Service exposes checkout and order lifecycle operations. All prices
// on a created order are recomputed server-side; client-submitted
// amounts are advisory and only logged when they disagree.
type Service interface {
	CreateOrder(ctx context.Context, input CreateOrderInput) (*OrderDTO, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*OrderDTO, error)
	GetOrderByNumber(ctx context.Context, number string) (*OrderDTO, error)
	ListOrders(ctx context.Context, input ListOrdersInput) ([]OrderDTO, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, input UpdateStatusInput) (*OrderDTO, error)
}

type catalogReader interface {
	PricingItem(ctx context.Context, itemID uuid.UUID) (*pricing.Item, error)
	PricingPreset(ctx context.Context, presetID uuid.UUID) (*pricing.Item, *pricing.Preset, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type service struct {
	repo    *Repository
	runner  txRunner
	catalog catalogReader
	cfg     config.PricingConfig
	metrics *metrics.OrderMetrics
	logg    *logger.Logger
}

// NewService constructs an order service instance.
func NewService(repo *Repository, runner txRunner, catalog catalogReader, cfg config.PricingConfig, m *metrics.OrderMetrics, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("order repository required")
	}
	if runner == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("catalog service required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		repo:    repo,
		runner:  runner,
		catalog: catalog,
		cfg:     cfg,
		metrics: m,
		logg:    logg,
	}, nil
}

// CreateOrder validates the checkout payload, reprices every item, and
// persists the order with frozen line items in one transaction.
func (s *service) CreateOrder(ctx context.Context, input CreateOrderInput) (*OrderDTO, error) {
	start := time.Now()

	if err := validateCreateInput(input); err != nil {
		return nil, err
	}

	order := &models.Order{
		OrderNumber:     generateOrderNumber(),
		Status:          enums.OrderStatusPending,
		OrderType:       input.OrderType,
		CustomerName:    strings.TrimSpace(input.Customer.Name),
		CustomerPhone:   strings.TrimSpace(input.Customer.Phone),
		CustomerEmail:   input.Customer.Email,
		DeliveryAddress: input.DeliveryAddress,
		Tip:             money.Round2(input.Tip),
		Notes:           input.Notes,
	}

	subtotal := decimal.Zero
	for i, submitted := range input.Items {
		item, err := s.buildOrderItem(ctx, i, submitted)
		if err != nil {
			return nil, err
		}
		order.Items = append(order.Items, *item)
		subtotal = subtotal.Add(item.TotalPrice)
	}

	order.Subtotal = money.Round2(subtotal)
	order.DeliveryFee = decimal.Zero
	if input.OrderType == enums.OrderTypeDelivery {
		order.DeliveryFee = s.cfg.DeliveryFee
	}
	order.Tax = money.Round2(order.Subtotal.Mul(s.cfg.TaxRatePercent).Div(decimal.NewFromInt(100)))
	order.Total = order.Subtotal.Add(order.DeliveryFee).Add(order.Tax).Add(order.Tip)

	s.reconcileTotal(ctx, input.ClientTotal, order.Total)

	err := s.runner.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).CreateOrder(ctx, order)
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: create order")
	}

	s.metrics.IncCreated(order.OrderType.String())
	s.metrics.ObserveCheckout(time.Since(start))
	ctx = s.logg.WithOrderID(ctx, order.ID.String())
	s.logg.Info(ctx, fmt.Sprintf("order %s created", order.OrderNumber))

	dto := toOrderDTO(*order)
	return &dto, nil
}

// GetOrder loads one order by id.
func (s *service) GetOrder(ctx context.Context, id uuid.UUID) (*OrderDTO, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapLoadError(err)
	}
	dto := toOrderDTO(*order)
	return &dto, nil
}

// GetOrderByNumber loads one order by its public number.
func (s *service) GetOrderByNumber(ctx context.Context, number string) (*OrderDTO, error) {
	order, err := s.repo.FindByNumber(ctx, strings.TrimSpace(number))
	if err != nil {
		return nil, mapLoadError(err)
	}
	dto := toOrderDTO(*order)
	return &dto, nil
}

// ListOrders returns recent orders for the admin surface.
func (s *service) ListOrders(ctx context.Context, input ListOrdersInput) ([]OrderDTO, error) {
	loaded, err := s.repo.List(ctx, input)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list orders")
	}
	result := make([]OrderDTO, 0, len(loaded))
	for _, order := range loaded {
		result = append(result, toOrderDTO(order))
	}
	return result, nil
}

// UpdateStatus moves an order along its lifecycle, enforcing the
// transition table.
func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, input UpdateStatusInput) (*OrderDTO, error) {
	if !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown order status")
	}

	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, mapLoadError(err)
	}
	if !order.Status.CanTransitionTo(input.Status) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "status transition not allowed").
			WithDetails(map[string]string{
				"from": order.Status.String(),
				"to":   input.Status.String(),
			})
	}

	if err := s.repo.UpdateStatus(ctx, id, input.Status); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update order status")
	}
	order.Status = input.Status

	dto := toOrderDTO(*order)
	return &dto, nil
}

// buildOrderItem reprices one submitted item and freezes the result.
func (s *service) buildOrderItem(ctx context.Context, idx int, submitted SubmittedItem) (*models.OrderItem, error) {
	if submitted.Quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("items[%d]: quantity must be positive", idx))
	}

	var (
		item   *pricing.Item
		preset *pricing.Preset
		err    error
	)
	if submitted.PresetID != nil {
		item, preset, err = s.catalog.PricingPreset(ctx, *submitted.PresetID)
	} else {
		item, err = s.catalog.PricingItem(ctx, submitted.MenuItemID)
	}
	if err != nil {
		return nil, err
	}

	selections := pricing.NormalizeAll(submitted.Selections)
	if preset != nil && len(selections) == 0 {
		selections = pricing.NormalizeAll(preset.Original)
	}
	// A selection id can stop resolving between page load and checkout
	// (option deactivated, stale preset row). Skip the sub-row and keep
	// the order; validation below still fails the item if a required
	// group ends up empty.
	kept := make([]pricing.Selection, 0, len(selections))
	for _, sel := range selections {
		if !item.HasOption(sel.OptionID) {
			s.logg.Warn(ctx, fmt.Sprintf("items[%d]: skipping selection with dangling option %s", idx, sel.OptionID))
			continue
		}
		kept = append(kept, sel)
	}
	selections = kept
	if violations := pricing.Validate(item.Groups, selections); len(violations) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("items[%d]: invalid selections", idx)).
			WithDetails(violations)
	}

	quote := pricing.Price(*item, selections, preset)
	unit := quote.Total()
	s.reconcileUnit(ctx, idx, submitted.ClientUnitPrice, unit)

	name := item.Name
	if preset != nil {
		name = preset.Name
	}
	menuItemID := item.ID
	frozen := &models.OrderItem{
		MenuItemID:  &menuItemID,
		PresetID:    submitted.PresetID,
		Name:        name,
		Description: describeSelections(*item, selections, quote),
		Quantity:    submitted.Quantity,
		UnitPrice:   unit,
		TotalPrice:  unit.Mul(decimal.NewFromInt(int64(submitted.Quantity))),
		Notes:       submitted.Notes,
		Options:     freezeOptions(*item, selections, quote),
	}
	return frozen, nil
}

// reconcileUnit compares a client-submitted unit price with the server
// result. The server price always wins; disagreement beyond the
// configured epsilon is logged and counted.
func (s *service) reconcileUnit(ctx context.Context, idx int, client *decimal.Decimal, server decimal.Decimal) {
	if client == nil {
		return
	}
	if money.Equalish(*client, server, s.cfg.ReconcileEpsilon) {
		return
	}
	s.metrics.IncPriceMismatch()
	s.logg.Warn(ctx, fmt.Sprintf("price mismatch on items[%d]: client %s, server %s", idx, money.FormatUSD(*client), money.FormatUSD(server)))
}

func (s *service) reconcileTotal(ctx context.Context, client *decimal.Decimal, server decimal.Decimal) {
	if client == nil {
		return
	}
	if money.Equalish(*client, server, s.cfg.ReconcileEpsilon) {
		return
	}
	s.metrics.IncPriceMismatch()
	s.logg.Warn(ctx, fmt.Sprintf("order total mismatch: client %s, server %s", money.FormatUSD(*client), money.FormatUSD(server)))
}

type optionPlacement struct {
	optionID uuid.UUID
	section  enums.Section
}

// freezeOptions records each selection with its priced contribution,
// plus an explicit row for every preset component the customer removed.
func freezeOptions(item pricing.Item, selections []pricing.Selection, quote pricing.Quote) []models.OrderItemOption {
	contributions := map[optionPlacement]decimal.Decimal{}
	for _, line := range quote.Lines {
		key := optionPlacement{optionID: line.OptionID, section: line.Section}
		contributions[key] = contributions[key].Add(line.Amount)
	}

	var frozen []models.OrderItemOption
	for _, sel := range selections {
		name := optionName(item, sel.OptionID)
		optionID := sel.OptionID
		frozen = append(frozen, models.OrderItemOption{
			OptionID:     &optionID,
			Name:         name,
			Section:      sel.Section,
			Intensity:    sel.Intensity,
			Quantity:     sel.Quantity,
			Contribution: contributions[optionPlacement{optionID: sel.OptionID, section: sel.Section}],
		})
	}
	for _, line := range quote.Lines {
		if line.Kind != pricing.LineKindRemoved {
			continue
		}
		optionID := line.OptionID
		frozen = append(frozen, models.OrderItemOption{
			OptionID:     &optionID,
			Name:         "No " + line.Name,
			Section:      line.Section,
			Intensity:    line.Intensity,
			Quantity:     line.Quantity,
			Contribution: line.Amount,
		})
	}
	return frozen
}

// describeSelections renders a human-readable summary for kitchen
// tickets, e.g. "Thin, Marinara, Pepperoni (left, extra), No Mushrooms".
func describeSelections(item pricing.Item, selections []pricing.Selection, quote pricing.Quote) string {
	var parts []string
	for _, sel := range selections {
		name := optionName(item, sel.OptionID)
		var qualifiers []string
		if sel.Section != enums.SectionWhole {
			qualifiers = append(qualifiers, sel.Section.String())
		}
		if sel.Intensity != enums.IntensityRegular {
			qualifiers = append(qualifiers, sel.Intensity.String())
		}
		if sel.Quantity > 1 {
			qualifiers = append(qualifiers, fmt.Sprintf("x%d", sel.Quantity))
		}
		if len(qualifiers) > 0 {
			name = fmt.Sprintf("%s (%s)", name, strings.Join(qualifiers, ", "))
		}
		parts = append(parts, name)
	}
	for _, line := range quote.Lines {
		if line.Kind == pricing.LineKindRemoved {
			parts = append(parts, "No "+line.Name)
		}
	}
	return strings.Join(parts, ", ")
}

func optionName(item pricing.Item, id uuid.UUID) string {
	for _, group := range item.Groups {
		for _, opt := range group.Options {
			if opt.ID == id {
				return opt.Name
			}
		}
	}
	return id.String()
}

func validateCreateInput(input CreateOrderInput) error {
	if !input.OrderType.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "unknown order type")
	}
	if strings.TrimSpace(input.Customer.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer name is required")
	}
	if strings.TrimSpace(input.Customer.Phone) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer phone is required")
	}
	if input.OrderType == enums.OrderTypeDelivery {
		if input.DeliveryAddress == nil || strings.TrimSpace(*input.DeliveryAddress) == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "delivery address is required for delivery orders")
		}
	}
	if len(input.Items) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "order must contain at least one item")
	}
	if input.Tip.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "tip cannot be negative")
	}
	return nil
}

func generateOrderNumber() string {
	return "FO-" + strings.ToUpper(uuid.NewString()[:8])
}

func mapLoadError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load order")
}
