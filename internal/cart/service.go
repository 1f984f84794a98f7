package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lucaferrante/fornello-backend/internal/pricing"
	"github.com/lucaferrante/fornello-backend/pkg/config"
	"github.com/lucaferrante/fornello-backend/pkg/enums"
	pkgerrors "github.com/lucaferrante/fornello-backend/pkg/errors"
	"github.com/lucaferrante/fornello-backend/pkg/logger"
	pkgredis "github.com/lucaferrante/fornello-backend/pkg/redis"
)

// Service manages the session cart. Carts live in Redis keyed by
// session id; stored lines carry selections only and every read
// re-prices them against the live catalog, so a stale client can never
// pin an old price.
type Service interface {
	Get(ctx context.Context, sessionID string) (*CartDTO, error)
	AddLine(ctx context.Context, sessionID string, input AddLineInput) (*CartDTO, error)
	UpdateLine(ctx context.Context, sessionID string, lineID uuid.UUID, input UpdateLineInput) (*CartDTO, error)
	RemoveLine(ctx context.Context, sessionID string, lineID uuid.UUID) (*CartDTO, error)
	Clear(ctx context.Context, sessionID string) error
}

type store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	Expire(ctx context.Context, key string, ttl time.Duration) error
}

type catalogReader interface {
	PricingItem(ctx context.Context, itemID uuid.UUID) (*pricing.Item, error)
	PricingPreset(ctx context.Context, presetID uuid.UUID) (*pricing.Item, *pricing.Preset, error)
}

type service struct {
	store   store
	catalog catalogReader
	ttl     time.Duration
	logg    *logger.Logger
}

// NewService constructs a cart service instance.
func NewService(kv store, catalog catalogReader, cfg config.CartConfig, logg *logger.Logger) (Service, error) {
	if kv == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if catalog == nil {
		return nil, fmt.Errorf("catalog service required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{store: kv, catalog: catalog, ttl: cfg.TTL, logg: logg}, nil
}

// Get loads and re-prices the session cart. A missing key is an empty
// cart, not an error.
func (s *service) Get(ctx context.Context, sessionID string) (*CartDTO, error) {
	cart, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.priceCart(ctx, cart)
}

// AddLine validates and appends a new cart line.
func (s *service) AddLine(ctx context.Context, sessionID string, input AddLineInput) (*CartDTO, error) {
	if input.Quantity <= 0 {
		input.Quantity = 1
	}

	line := Line{
		ID:         uuid.New(),
		MenuItemID: input.MenuItemID,
		PresetID:   input.PresetID,
		Quantity:   input.Quantity,
		Notes:      input.Notes,
		Selections: pricing.NormalizeAll(input.Selections),
	}
	if err := s.prepareLine(ctx, &line); err != nil {
		return nil, err
	}

	cart, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	cart.Lines = append(cart.Lines, line)
	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}
	return s.priceCart(ctx, cart)
}

// UpdateLine applies partial changes to an existing line.
func (s *service) UpdateLine(ctx context.Context, sessionID string, lineID uuid.UUID, input UpdateLineInput) (*CartDTO, error) {
	cart, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range cart.Lines {
		if cart.Lines[i].ID == lineID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found")
	}

	line := cart.Lines[idx]
	if input.Quantity != nil {
		if *input.Quantity <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
		}
		line.Quantity = *input.Quantity
	}
	if input.Notes != nil {
		line.Notes = input.Notes
	}
	if input.Selections != nil {
		line.Selections = pricing.NormalizeAll(*input.Selections)
	}
	if input.Toggle != nil {
		item, _, err := s.resolve(ctx, line)
		if err != nil {
			return nil, err
		}
		next, err := applyToggle(item, line.Selections, *input.Toggle)
		if err != nil {
			return nil, err
		}
		line.Selections = next
	}
	if err := s.prepareLine(ctx, &line); err != nil {
		return nil, err
	}

	cart.Lines[idx] = line
	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}
	return s.priceCart(ctx, cart)
}

// RemoveLine deletes one line from the cart.
func (s *service) RemoveLine(ctx context.Context, sessionID string, lineID uuid.UUID) (*CartDTO, error) {
	cart, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	kept := cart.Lines[:0]
	found := false
	for _, line := range cart.Lines {
		if line.ID == lineID {
			found = true
			continue
		}
		kept = append(kept, line)
	}
	if !found {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "cart line not found")
	}
	cart.Lines = kept

	if err := s.save(ctx, cart); err != nil {
		return nil, err
	}
	return s.priceCart(ctx, cart)
}

// Clear drops the session cart entirely.
func (s *service) Clear(ctx context.Context, sessionID string) error {
	if err := s.store.Del(ctx, pkgredis.CartKey(sessionID)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis: clear cart")
	}
	return nil
}

// prepareLine resolves the line's catalog views, seeds preset defaults,
// and enforces selection validity before the line is stored.
func (s *service) prepareLine(ctx context.Context, line *Line) error {
	item, preset, err := s.resolve(ctx, *line)
	if err != nil {
		return err
	}
	if preset != nil && len(line.Selections) == 0 {
		// Stored preset rows can outlive their options; skip those
		// instead of blocking the add.
		kept := make([]pricing.Selection, 0, len(preset.Original))
		for _, sel := range pricing.NormalizeAll(preset.Original) {
			if !item.HasOption(sel.OptionID) {
				s.logg.Warn(ctx, fmt.Sprintf("skipping preset selection with dangling option %s", sel.OptionID))
				continue
			}
			kept = append(kept, sel)
		}
		line.Selections = kept
	} else {
		for _, sel := range line.Selections {
			if !item.HasOption(sel.OptionID) {
				return pkgerrors.New(pkgerrors.CodeValidation, "unknown customization option").
					WithDetails(map[string]string{"customization_option_id": sel.OptionID.String()})
			}
		}
	}
	if violations := pricing.Validate(item.Groups, line.Selections); len(violations) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid selections").WithDetails(violations)
	}
	return nil
}

// applyToggle routes one option click through the owning group's
// mutation semantics.
func applyToggle(item *pricing.Item, current []pricing.Selection, change pricing.Selection) ([]pricing.Selection, error) {
	change = change.Normalize()

	var group *pricing.Group
	for i := range item.Groups {
		if item.Groups[i].HasOption(change.OptionID) {
			group = &item.Groups[i]
			break
		}
	}
	if group == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown customization option").
			WithDetails(map[string]string{"customization_option_id": change.OptionID.String()})
	}

	if group.Kind == enums.GroupKindSingleSelect {
		return pricing.ApplySingleSelect(*group, current, change), nil
	}

	var (
		next    []pricing.Selection
		changed bool
	)
	if change.Section != enums.SectionWhole {
		next, changed = pricing.ToggleSection(*group, current, change)
	} else {
		next, changed = pricing.ToggleMultiSelect(*group, current, change)
	}
	if !changed {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("%s allows a maximum of %d selection(s)", group.Name, group.MaxSelections))
	}
	return next, nil
}

func (s *service) resolve(ctx context.Context, line Line) (*pricing.Item, *pricing.Preset, error) {
	if line.PresetID != nil {
		return s.catalog.PricingPreset(ctx, *line.PresetID)
	}
	item, err := s.catalog.PricingItem(ctx, line.MenuItemID)
	if err != nil {
		return nil, nil, err
	}
	return item, nil, nil
}

func (s *service) priceCart(ctx context.Context, cart *Cart) (*CartDTO, error) {
	dto := &CartDTO{
		SessionID: cart.SessionID,
		Lines:     make([]LineDTO, 0, len(cart.Lines)),
		Subtotal:  decimal.Zero,
	}
	for _, line := range cart.Lines {
		priced, err := s.priceLine(ctx, line)
		if err != nil {
			return nil, err
		}
		dto.Lines = append(dto.Lines, priced)
		dto.Subtotal = dto.Subtotal.Add(priced.TotalPrice)
	}
	return dto, nil
}

func (s *service) priceLine(ctx context.Context, line Line) (LineDTO, error) {
	item, preset, err := s.resolve(ctx, line)
	if err != nil {
		return LineDTO{}, err
	}

	quote := pricing.Price(*item, line.Selections, preset)
	name := item.Name
	if preset != nil {
		name = preset.Name
	}
	unit := quote.Total()
	return LineDTO{
		ID:         line.ID,
		MenuItemID: item.ID,
		PresetID:   line.PresetID,
		Name:       name,
		Quantity:   line.Quantity,
		Notes:      line.Notes,
		Selections: line.Selections,
		UnitPrice:  unit,
		TotalPrice: unit.Mul(decimal.NewFromInt(int64(line.Quantity))),
		Breakdown:  quote.Lines,
	}, nil
}

func (s *service) load(ctx context.Context, sessionID string) (*Cart, error) {
	raw, err := s.store.Get(ctx, pkgredis.CartKey(sessionID))
	if err != nil {
		if errors.Is(err, pkgredis.Nil) {
			return &Cart{SessionID: sessionID}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis: load cart")
	}

	var cart Cart
	if err := json.Unmarshal([]byte(raw), &cart); err != nil {
		// A corrupt payload is unrecoverable; start the session over.
		s.logg.Warn(ctx, fmt.Sprintf("discarding corrupt cart for session %s: %v", sessionID, err))
		return &Cart{SessionID: sessionID}, nil
	}
	cart.SessionID = sessionID

	// Sliding expiry: reading the cart keeps the session alive.
	if err := s.store.Expire(ctx, pkgredis.CartKey(sessionID), s.ttl); err != nil {
		s.logg.Warn(ctx, fmt.Sprintf("could not refresh cart ttl for session %s: %v", sessionID, err))
	}
	return &cart, nil
}

func (s *service) save(ctx context.Context, cart *Cart) error {
	payload, err := json.Marshal(cart)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cart")
	}
	if err := s.store.Set(ctx, pkgredis.CartKey(cart.SessionID), payload, s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis: save cart")
	}
	return nil
}
