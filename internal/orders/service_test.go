package orders

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/lucaferrante/fornello-backend/internal/pricing"
	"github.com/lucaferrante/fornello-backend/pkg/config"
	"github.com/lucaferrante/fornello-backend/pkg/enums"
	pkgerrors "github.com/lucaferrante/fornello-backend/pkg/errors"
	"github.com/lucaferrante/fornello-backend/pkg/logger"
	"github.com/lucaferrante/fornello-backend/pkg/metrics"
)

type sqliteRunner struct {
	db *gorm.DB
}

func (r sqliteRunner) WithTx(_ context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.Transaction(fn)
}

type stubCatalog struct {
	item   pricing.Item
	preset *pricing.Preset
}

func (s *stubCatalog) PricingItem(_ context.Context, itemID uuid.UUID) (*pricing.Item, error) {
	if itemID != s.item.ID {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "menu item not found")
	}
	item := s.item
	return &item, nil
}

func (s *stubCatalog) PricingPreset(_ context.Context, presetID uuid.UUID) (*pricing.Item, *pricing.Preset, error) {
	if s.preset == nil || presetID != s.preset.ID {
		return nil, nil, pkgerrors.New(pkgerrors.CodeNotFound, "preset not found")
	}
	item := s.item
	return &item, s.preset, nil
}

func newOrderFixture() (*stubCatalog, uuid.UUID) {
	toppingID := uuid.New()
	item := pricing.Item{
		ID:        uuid.New(),
		Name:      "Build Your Own Pizza",
		BasePrice: decimal.RequireFromString("12.99"),
		Groups: []pricing.Group{
			{
				ID:   uuid.New(),
				Name: "Toppings",
				Kind: enums.GroupKindMultiSelect,
				Options: []pricing.Option{
					{ID: toppingID, Name: "Pepperoni", PriceModifier: decimal.RequireFromString("1.50"), ModifierType: enums.PriceModifierPerUnit},
				},
			},
		},
	}
	return &stubCatalog{item: item}, toppingID
}

func newOrderTestService(t *testing.T, catalog *stubCatalog) Service {
	t.Helper()
	db := setupOrdersTestDB(t)
	cfg := config.PricingConfig{
		TaxRatePercent:   decimal.RequireFromString("8.25"),
		DeliveryFee:      decimal.RequireFromString("3.99"),
		ReconcileEpsilon: decimal.RequireFromString("0.01"),
	}
	svc, err := NewService(
		NewRepository(db),
		sqliteRunner{db: db},
		catalog,
		cfg,
		metrics.NewOrderMetrics(prometheus.NewRegistry()),
		logger.New(logger.Options{Level: zerolog.ErrorLevel}),
	)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func pickupInput(catalog *stubCatalog, toppingID uuid.UUID) CreateOrderInput {
	return CreateOrderInput{
		OrderType: enums.OrderTypePickup,
		Customer:  CustomerInfo{Name: "Dana", Phone: "555-0100"},
		Tip:       decimal.RequireFromString("5.81"),
		Items: []SubmittedItem{
			{
				MenuItemID: catalog.item.ID,
				Quantity:   1,
				Selections: []pricing.Selection{{OptionID: toppingID}},
			},
		},
	}
}

func TestCreateOrderServerPriceWins(t *testing.T) {
	catalog, toppingID := newOrderFixture()
	svc := newOrderTestService(t, catalog)

	input := pickupInput(catalog, toppingID)
	// client claims a stale, cheaper total; the server recomputes
	// 14.49 subtotal + 1.20 tax + 5.81 tip = 21.50
	clientUnit := decimal.RequireFromString("12.99")
	clientTotal := decimal.RequireFromString("18.00")
	input.Items[0].ClientUnitPrice = &clientUnit
	input.ClientTotal = &clientTotal

	order, err := svc.CreateOrder(context.Background(), input)
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if order.Subtotal.StringFixed(2) != "14.49" {
		t.Fatalf("subtotal = %s, want 14.49", order.Subtotal)
	}
	if order.Tax.StringFixed(2) != "1.20" {
		t.Fatalf("tax = %s, want 1.20", order.Tax)
	}
	if order.Total.StringFixed(2) != "21.50" {
		t.Fatalf("total = %s, want 21.50", order.Total)
	}
	if order.Status != enums.OrderStatusPending {
		t.Fatalf("status = %s, want pending", order.Status)
	}
	if !strings.HasPrefix(order.OrderNumber, "FO-") {
		t.Fatalf("order number %q missing prefix", order.OrderNumber)
	}
}

func TestCreateOrderFreezesLineItems(t *testing.T) {
	catalog, toppingID := newOrderFixture()
	svc := newOrderTestService(t, catalog)

	input := pickupInput(catalog, toppingID)
	input.Items[0].Quantity = 2
	input.Items[0].Selections = []pricing.Selection{{OptionID: toppingID, Section: enums.SectionLeft, Intensity: enums.IntensityExtra}}

	order, err := svc.CreateOrder(context.Background(), input)
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if len(order.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(order.Items))
	}
	item := order.Items[0]
	if item.UnitPrice.StringFixed(2) != "15.24" {
		t.Fatalf("unit price = %s, want 15.24", item.UnitPrice)
	}
	if item.TotalPrice.StringFixed(2) != "30.48" {
		t.Fatalf("total price = %s, want 30.48", item.TotalPrice)
	}
	if !strings.Contains(item.Description, "Pepperoni (left, extra)") {
		t.Fatalf("description %q missing qualifiers", item.Description)
	}
	if len(item.Options) != 1 {
		t.Fatalf("expected 1 frozen option, got %d", len(item.Options))
	}
	opt := item.Options[0]
	if opt.Section != enums.SectionLeft || opt.Intensity != enums.IntensityExtra {
		t.Fatalf("frozen option placement wrong: %+v", opt)
	}
	if opt.Contribution.StringFixed(2) != "2.25" {
		t.Fatalf("contribution = %s, want 2.25", opt.Contribution)
	}
}

func TestCreateOrderDeliveryFeeApplied(t *testing.T) {
	catalog, toppingID := newOrderFixture()
	svc := newOrderTestService(t, catalog)

	input := pickupInput(catalog, toppingID)
	input.OrderType = enums.OrderTypeDelivery
	address := "1 Brick Oven Ln"
	input.DeliveryAddress = &address

	order, err := svc.CreateOrder(context.Background(), input)
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if order.DeliveryFee.StringFixed(2) != "3.99" {
		t.Fatalf("delivery fee = %s, want 3.99", order.DeliveryFee)
	}
	if order.Total.StringFixed(2) != "25.49" {
		t.Fatalf("total = %s, want 25.49", order.Total)
	}
}

func TestCreateOrderPresetRecordsRemovals(t *testing.T) {
	catalog, toppingID := newOrderFixture()
	catalog.preset = &pricing.Preset{
		ID:        uuid.New(),
		Name:      "Meat Lovers",
		BasePrice: decimal.RequireFromString("14.99"),
		Original:  []pricing.Selection{{OptionID: toppingID}},
	}
	svc := newOrderTestService(t, catalog)

	presetID := catalog.preset.ID
	input := CreateOrderInput{
		OrderType: enums.OrderTypePickup,
		Customer:  CustomerInfo{Name: "Dana", Phone: "555-0100"},
		Items: []SubmittedItem{
			{
				MenuItemID: catalog.item.ID,
				PresetID:   &presetID,
				Quantity:   1,
				Selections: []pricing.Selection{},
			},
		},
	}
	// empty selections on a preset seed the original set, so this is
	// an unedited preset at its base price
	order, err := svc.CreateOrder(context.Background(), input)
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if order.Items[0].UnitPrice.StringFixed(2) != "14.99" {
		t.Fatalf("unit price = %s, want 14.99", order.Items[0].UnitPrice)
	}
	if order.Items[0].Name != "Meat Lovers" {
		t.Fatalf("item name = %q, want Meat Lovers", order.Items[0].Name)
	}
}

func TestCreateOrderSkipsDanglingSubmittedOption(t *testing.T) {
	catalog, toppingID := newOrderFixture()
	svc := newOrderTestService(t, catalog)

	input := pickupInput(catalog, toppingID)
	input.Items[0].Selections = []pricing.Selection{
		{OptionID: toppingID},
		{OptionID: uuid.New()}, // deactivated between page load and checkout
	}

	order, err := svc.CreateOrder(context.Background(), input)
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	item := order.Items[0]
	if item.UnitPrice.StringFixed(2) != "14.49" {
		t.Fatalf("unit price = %s, want 14.49", item.UnitPrice)
	}
	if len(item.Options) != 1 {
		t.Fatalf("expected the dangling option skipped, got %d frozen rows", len(item.Options))
	}
}

func TestCreateOrderFailsWhenRequiredGroupUnresolvable(t *testing.T) {
	catalog, _ := newOrderFixture()
	sizeID := uuid.New()
	catalog.item.Groups = append(catalog.item.Groups, pricing.Group{
		ID:            uuid.New(),
		Name:          "Size",
		Kind:          enums.GroupKindSingleSelect,
		Required:      true,
		MinSelections: 1,
		MaxSelections: 1,
		Options: []pricing.Option{
			{ID: sizeID, Name: "Large", PriceModifier: decimal.Zero, ModifierType: enums.PriceModifierFlat},
		},
	})
	svc := newOrderTestService(t, catalog)

	// the only size selection references an option that no longer
	// exists, so after the skip the required group is empty
	input := pickupInput(catalog, uuid.New())

	_, err := svc.CreateOrder(context.Background(), input)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateOrderSkipsDanglingPresetOption(t *testing.T) {
	catalog, toppingID := newOrderFixture()
	catalog.preset = &pricing.Preset{
		ID:        uuid.New(),
		Name:      "Meat Lovers",
		BasePrice: decimal.RequireFromString("14.99"),
		Original: []pricing.Selection{
			{OptionID: toppingID},
			{OptionID: uuid.New()}, // option row deleted from the catalog
		},
	}
	svc := newOrderTestService(t, catalog)

	presetID := catalog.preset.ID
	input := CreateOrderInput{
		OrderType: enums.OrderTypePickup,
		Customer:  CustomerInfo{Name: "Dana", Phone: "555-0100"},
		Items: []SubmittedItem{
			{MenuItemID: catalog.item.ID, PresetID: &presetID, Quantity: 1},
		},
	}

	order, err := svc.CreateOrder(context.Background(), input)
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	item := order.Items[0]
	if item.UnitPrice.StringFixed(2) != "14.99" {
		t.Fatalf("unit price = %s, want 14.99", item.UnitPrice)
	}
	if len(item.Options) != 1 {
		t.Fatalf("expected the dangling option skipped, got %d frozen rows", len(item.Options))
	}
	if item.Options[0].Name != "Pepperoni" {
		t.Fatalf("frozen option = %q, want Pepperoni", item.Options[0].Name)
	}
}

func TestCreateOrderValidationFailures(t *testing.T) {
	catalog, toppingID := newOrderFixture()
	svc := newOrderTestService(t, catalog)
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*CreateOrderInput)
	}{
		{"missingName", func(in *CreateOrderInput) { in.Customer.Name = " " }},
		{"missingPhone", func(in *CreateOrderInput) { in.Customer.Phone = "" }},
		{"badOrderType", func(in *CreateOrderInput) { in.OrderType = "dine_in" }},
		{"noItems", func(in *CreateOrderInput) { in.Items = nil }},
		{"negativeTip", func(in *CreateOrderInput) { in.Tip = decimal.RequireFromString("-1") }},
		{"deliveryWithoutAddress", func(in *CreateOrderInput) { in.OrderType = enums.OrderTypeDelivery }},
		{"zeroQuantity", func(in *CreateOrderInput) { in.Items[0].Quantity = 0 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := pickupInput(catalog, toppingID)
			tc.mutate(&input)
			_, err := svc.CreateOrder(ctx, input)
			typed := pkgerrors.As(err)
			if typed == nil || typed.Code() != pkgerrors.CodeValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestUpdateStatusFollowsTransitionTable(t *testing.T) {
	catalog, toppingID := newOrderFixture()
	svc := newOrderTestService(t, catalog)
	ctx := context.Background()

	order, err := svc.CreateOrder(ctx, pickupInput(catalog, toppingID))
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	updated, err := svc.UpdateStatus(ctx, order.ID, UpdateStatusInput{Status: enums.OrderStatusConfirmed})
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if updated.Status != enums.OrderStatusConfirmed {
		t.Fatalf("status = %s, want confirmed", updated.Status)
	}

	_, err = svc.UpdateStatus(ctx, order.ID, UpdateStatusInput{Status: enums.OrderStatusCompleted})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
}

func TestGetOrderNotFound(t *testing.T) {
	catalog, _ := newOrderFixture()
	svc := newOrderTestService(t, catalog)

	_, err := svc.GetOrder(context.Background(), uuid.New())
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDescribeSelectionsReadsNaturally(t *testing.T) {
	t.Parallel()

	catalog, toppingID := newOrderFixture()
	selections := []pricing.Selection{
		{OptionID: toppingID, Quantity: 2, Section: enums.SectionRight, Intensity: enums.IntensityLight},
	}
	got := describeSelections(catalog.item, pricing.NormalizeAll(selections), pricing.Quote{})
	want := "Pepperoni (right, light, x2)"
	if got != want {
		t.Fatalf("description = %q, want %q", got, want)
	}
}
