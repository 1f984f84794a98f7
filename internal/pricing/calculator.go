package pricing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lucaferrante/fornello-backend/pkg/enums"
	"github.com/lucaferrante/fornello-backend/pkg/money"
)

// LineKind labels a quote line's role in the breakdown.
type LineKind string

const (
	LineKindOption   LineKind = "option"
	LineKindAdded    LineKind = "added"
	LineKindRemoved  LineKind = "removed"
	LineKindAdjusted LineKind = "adjusted"
)

// QuoteLine is one priced contribution in the breakdown. Amount keeps
// full precision; rounding happens on the quote total only.
type QuoteLine struct {
	OptionID  uuid.UUID       `json:"option_id"`
	Name      string          `json:"name"`
	Kind      LineKind        `json:"kind"`
	Quantity  int             `json:"quantity"`
	Section   enums.Section   `json:"section"`
	Intensity enums.Intensity `json:"intensity"`
	Amount    decimal.Decimal `json:"amount"`
}

// Quote is the result of a pricing pass.
type Quote struct {
	Base  decimal.Decimal `json:"base"`
	Lines []QuoteLine     `json:"lines"`

	raw decimal.Decimal
}

// Subtotal returns the full-precision computed amount.
func (q Quote) Subtotal() decimal.Decimal {
	return q.raw
}

// Total returns the display/persistence amount, rounded to cents.
func (q Quote) Total() decimal.Decimal {
	return money.Round2(q.raw)
}

// Price computes the deterministic price of an item for a selection
// set. With a preset, the preset's (size-specific) base applies and
// only the diff against the preset's original selections is priced:
// additions at full price, removals credited at half, intensity
// changes as the signed multiplier difference. The result is clamped
// at zero so removal credits can never drive the price negative.
func Price(item Item, selections []Selection, preset *Preset) Quote {
	options := item.optionIndex()
	selections = NormalizeAll(selections)

	if preset == nil {
		return priceBase(item, selections, options)
	}
	return pricePresetDelta(selections, preset, options)
}

func priceBase(item Item, selections []Selection, options map[uuid.UUID]Option) Quote {
	quote := Quote{Base: item.BasePrice, raw: item.BasePrice}
	for _, sel := range selections {
		opt, ok := options[sel.OptionID]
		if !ok {
			// Unknown ids contribute nothing; callers resolve and
			// reject them at their own boundary.
			continue
		}
		amount := optionContribution(item.BasePrice, opt, sel)
		quote.Lines = append(quote.Lines, quoteLine(opt, sel, LineKindOption, amount))
		quote.raw = quote.raw.Add(amount)
	}
	quote.raw = money.ClampNonNegative(quote.raw)
	return quote
}

func pricePresetDelta(selections []Selection, preset *Preset, options map[uuid.UUID]Option) Quote {
	base := preset.BasePrice
	for _, sel := range selections {
		if sized, ok := preset.SizePrices[sel.OptionID]; ok {
			base = sized
			break
		}
	}

	quote := Quote{Base: base, raw: base}

	current := diffIndex(selections, preset)
	original := diffIndex(NormalizeAll(preset.Original), preset)

	for key, sel := range current {
		opt, ok := options[sel.OptionID]
		if !ok {
			continue
		}
		orig, existed := original[key]
		if !existed {
			amount := optionContribution(base, opt, sel)
			quote.Lines = append(quote.Lines, quoteLine(opt, sel, LineKindAdded, amount))
			quote.raw = quote.raw.Add(amount)
			continue
		}
		if sel.Intensity != orig.Intensity || sel.Quantity != orig.Quantity {
			amount := optionContribution(base, opt, sel).Sub(optionContribution(base, opt, orig))
			quote.Lines = append(quote.Lines, quoteLine(opt, sel, LineKindAdjusted, amount))
			quote.raw = quote.raw.Add(amount)
		}
	}

	for key, orig := range original {
		if _, stillThere := current[key]; stillThere {
			continue
		}
		opt, ok := options[orig.OptionID]
		if !ok {
			continue
		}
		// Removing a preset component refunds half its value.
		credit := optionContribution(base, opt, orig).Mul(removalCreditRate).Neg()
		quote.Lines = append(quote.Lines, quoteLine(opt, orig, LineKindRemoved, credit))
		quote.raw = quote.raw.Add(credit)
	}

	quote.raw = money.ClampNonNegative(quote.raw)
	return quote
}

var removalCreditRate = decimal.RequireFromString("0.5")

var oneHundred = decimal.NewFromInt(100)

// optionContribution prices a single selection per the option's
// modifier type. Intensity scales per-unit modifiers only.
func optionContribution(basePrice decimal.Decimal, opt Option, sel Selection) decimal.Decimal {
	qty := decimal.NewFromInt(int64(sel.Quantity))
	switch opt.ModifierType {
	case enums.PriceModifierFlat:
		return opt.PriceModifier.Mul(qty)
	case enums.PriceModifierPercentage:
		return basePrice.Mul(opt.PriceModifier).Div(oneHundred).Mul(qty)
	case enums.PriceModifierPerUnit:
		return opt.PriceModifier.Mul(sel.Intensity.Multiplier()).Mul(qty)
	}
	return decimal.Zero
}

func diffIndex(selections []Selection, preset *Preset) map[placement]Selection {
	index := map[placement]Selection{}
	for _, sel := range selections {
		if preset.isFolded(sel.OptionID) {
			continue
		}
		index[sel.placementKey()] = sel
	}
	return index
}

func quoteLine(opt Option, sel Selection, kind LineKind, amount decimal.Decimal) QuoteLine {
	return QuoteLine{
		OptionID:  opt.ID,
		Name:      opt.Name,
		Kind:      kind,
		Quantity:  sel.Quantity,
		Section:   sel.Section,
		Intensity: sel.Intensity,
		Amount:    amount,
	}
}
