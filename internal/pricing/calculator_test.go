package pricing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lucaferrante/fornello-backend/pkg/enums"
)

type pizzaFixture struct {
	item        Item
	largeID     uuid.UUID
	thinID      uuid.UUID
	stuffedID   uuid.UUID
	marinaraID  uuid.UUID
	pepperoniID uuid.UUID
	mushroomID  uuid.UUID
}

func newPizzaFixture() pizzaFixture {
	f := pizzaFixture{
		largeID:     uuid.New(),
		thinID:      uuid.New(),
		stuffedID:   uuid.New(),
		marinaraID:  uuid.New(),
		pepperoniID: uuid.New(),
		mushroomID:  uuid.New(),
	}
	f.item = Item{
		ID:        uuid.New(),
		Name:      "Build Your Own Pizza",
		BasePrice: decimal.RequireFromString("12.99"),
		Groups: []Group{
			{
				ID:       uuid.New(),
				Name:     "Size",
				Kind:     enums.GroupKindSingleSelect,
				Required: true,
				MinSelections: 1,
				MaxSelections: 1,
				Options: []Option{
					{ID: f.largeID, Name: "Large", PriceModifier: decimal.Zero, ModifierType: enums.PriceModifierFlat},
				},
			},
			{
				ID:       uuid.New(),
				Name:     "Crust",
				Kind:     enums.GroupKindSingleSelect,
				Required: true,
				MinSelections: 1,
				MaxSelections: 1,
				Options: []Option{
					{ID: f.thinID, Name: "Thin", PriceModifier: decimal.Zero, ModifierType: enums.PriceModifierFlat},
					{ID: f.stuffedID, Name: "Stuffed", PriceModifier: decimal.RequireFromString("2.00"), ModifierType: enums.PriceModifierFlat},
				},
			},
			{
				ID:       uuid.New(),
				Name:     "Sauce",
				Kind:     enums.GroupKindSingleSelect,
				Required: true,
				MinSelections: 1,
				MaxSelections: 1,
				Options: []Option{
					{ID: f.marinaraID, Name: "Marinara", PriceModifier: decimal.Zero, ModifierType: enums.PriceModifierFlat},
				},
			},
			{
				ID:   uuid.New(),
				Name: "Toppings",
				Kind: enums.GroupKindMultiSelect,
				Options: []Option{
					{ID: f.pepperoniID, Name: "Pepperoni", PriceModifier: decimal.RequireFromString("1.50"), ModifierType: enums.PriceModifierPerUnit},
					{ID: f.mushroomID, Name: "Mushrooms", PriceModifier: decimal.RequireFromString("1.00"), ModifierType: enums.PriceModifierPerUnit},
				},
			},
		},
	}
	return f
}

func (f pizzaFixture) baseSelections() []Selection {
	return []Selection{
		{OptionID: f.largeID},
		{OptionID: f.thinID},
		{OptionID: f.marinaraID},
	}
}

func requireTotal(t *testing.T, quote Quote, want string) {
	t.Helper()
	if got := quote.Total().StringFixed(2); got != want {
		t.Fatalf("total = %s, want %s", got, want)
	}
}

func TestPriceLargeThinMarinaraPepperoni(t *testing.T) {
	t.Parallel()

	f := newPizzaFixture()
	selections := append(f.baseSelections(), Selection{OptionID: f.pepperoniID, Section: enums.SectionWhole})

	quote := Price(f.item, selections, nil)
	requireTotal(t, quote, "14.49")
}

func TestPriceExtraIntensityScalesTopping(t *testing.T) {
	t.Parallel()

	f := newPizzaFixture()
	selections := append(f.baseSelections(), Selection{OptionID: f.pepperoniID, Intensity: enums.IntensityExtra})

	quote := Price(f.item, selections, nil)
	requireTotal(t, quote, "15.24")
}

func TestPriceIntensityMonotonic(t *testing.T) {
	t.Parallel()

	f := newPizzaFixture()
	totals := map[enums.Intensity]decimal.Decimal{}
	for _, intensity := range []enums.Intensity{enums.IntensityLight, enums.IntensityRegular, enums.IntensityExtra} {
		selections := append(f.baseSelections(), Selection{OptionID: f.pepperoniID, Intensity: intensity})
		totals[intensity] = Price(f.item, selections, nil).Total()
	}

	if !totals[enums.IntensityLight].LessThan(totals[enums.IntensityRegular]) {
		t.Fatalf("light (%s) should cost less than regular (%s)", totals[enums.IntensityLight], totals[enums.IntensityRegular])
	}
	if !totals[enums.IntensityRegular].LessThan(totals[enums.IntensityExtra]) {
		t.Fatalf("regular (%s) should cost less than extra (%s)", totals[enums.IntensityRegular], totals[enums.IntensityExtra])
	}
}

func TestPriceIdempotent(t *testing.T) {
	t.Parallel()

	f := newPizzaFixture()
	selections := append(f.baseSelections(),
		Selection{OptionID: f.pepperoniID, Intensity: enums.IntensityExtra},
		Selection{OptionID: f.mushroomID, Section: enums.SectionLeft},
	)

	first := Price(f.item, selections, nil)
	second := Price(f.item, selections, nil)
	if !first.Total().Equal(second.Total()) {
		t.Fatalf("totals differ: %s vs %s", first.Total(), second.Total())
	}
}

func TestPricePercentageModifier(t *testing.T) {
	t.Parallel()

	partyID := uuid.New()
	item := Item{
		BasePrice: decimal.RequireFromString("20.00"),
		Groups: []Group{
			{
				ID:   uuid.New(),
				Name: "Extras",
				Kind: enums.GroupKindMultiSelect,
				Options: []Option{
					{ID: partyID, Name: "Party Cut", PriceModifier: decimal.RequireFromString("10"), ModifierType: enums.PriceModifierPercentage},
				},
			},
		},
	}

	quote := Price(item, []Selection{{OptionID: partyID}}, nil)
	requireTotal(t, quote, "22.00")
}

func TestPriceUnknownOptionContributesNothing(t *testing.T) {
	t.Parallel()

	f := newPizzaFixture()
	selections := append(f.baseSelections(), Selection{OptionID: uuid.New()})

	quote := Price(f.item, selections, nil)
	requireTotal(t, quote, "12.99")
}

func (f pizzaFixture) newPreset() *Preset {
	return &Preset{
		ID:        uuid.New(),
		Name:      "Meat Lovers",
		BasePrice: decimal.RequireFromString("14.99"),
		SizePrices: map[uuid.UUID]decimal.Decimal{
			f.largeID: decimal.RequireFromString("16.99"),
		},
		Folded: map[uuid.UUID]struct{}{
			f.thinID:     {},
			f.stuffedID:  {},
			f.marinaraID: {},
		},
		Original: []Selection{
			{OptionID: f.thinID},
			{OptionID: f.marinaraID},
			{OptionID: f.mushroomID, Section: enums.SectionWhole},
		},
	}
}

func TestPricePresetUneditedHasNoDelta(t *testing.T) {
	t.Parallel()

	f := newPizzaFixture()
	preset := f.newPreset()
	selections := []Selection{
		{OptionID: f.largeID},
		{OptionID: f.thinID},
		{OptionID: f.marinaraID},
		{OptionID: f.mushroomID, Section: enums.SectionWhole},
	}

	quote := Price(f.item, selections, preset)
	if len(quote.Lines) != 0 {
		t.Fatalf("expected empty diff, got %d lines", len(quote.Lines))
	}
	requireTotal(t, quote, "16.99")
}

func TestPricePresetBasePriceFallback(t *testing.T) {
	t.Parallel()

	f := newPizzaFixture()
	preset := f.newPreset()
	// no size selected: preset base applies
	selections := []Selection{
		{OptionID: f.thinID},
		{OptionID: f.marinaraID},
		{OptionID: f.mushroomID, Section: enums.SectionWhole},
	}

	quote := Price(f.item, selections, preset)
	requireTotal(t, quote, "14.99")
}

func TestPricePresetAddAndRemove(t *testing.T) {
	t.Parallel()

	f := newPizzaFixture()
	preset := f.newPreset()
	// add pepperoni ($1.50, regular), drop the original mushrooms
	// ($1.00, regular, credited at half)
	selections := []Selection{
		{OptionID: f.largeID},
		{OptionID: f.thinID},
		{OptionID: f.marinaraID},
		{OptionID: f.pepperoniID, Section: enums.SectionWhole},
	}

	quote := Price(f.item, selections, preset)
	requireTotal(t, quote, "17.99")
}

func TestPricePresetRemovalCreditsExactlyHalf(t *testing.T) {
	t.Parallel()

	f := newPizzaFixture()
	preset := f.newPreset()
	selections := []Selection{
		{OptionID: f.largeID},
		{OptionID: f.thinID},
		{OptionID: f.marinaraID},
	}

	quote := Price(f.item, selections, preset)
	var credit decimal.Decimal
	for _, line := range quote.Lines {
		if line.Kind == LineKindRemoved {
			credit = line.Amount
		}
	}
	if !credit.Equal(decimal.RequireFromString("-0.50")) {
		t.Fatalf("removal credit = %s, want -0.50", credit)
	}
	requireTotal(t, quote, "16.49")
}

func TestPricePresetIntensityChangePricesDifference(t *testing.T) {
	t.Parallel()

	f := newPizzaFixture()
	preset := f.newPreset()
	// mushrooms regular -> extra: 1.00 x (1.5 - 1.0) = +0.50
	selections := []Selection{
		{OptionID: f.largeID},
		{OptionID: f.thinID},
		{OptionID: f.marinaraID},
		{OptionID: f.mushroomID, Section: enums.SectionWhole, Intensity: enums.IntensityExtra},
	}

	quote := Price(f.item, selections, preset)
	requireTotal(t, quote, "17.49")

	found := false
	for _, line := range quote.Lines {
		if line.Kind == LineKindAdjusted && line.OptionID == f.mushroomID {
			found = true
			if !line.Amount.Equal(decimal.RequireFromString("0.50")) {
				t.Fatalf("adjusted amount = %s, want 0.50", line.Amount)
			}
		}
	}
	if !found {
		t.Fatal("expected an adjusted line for mushrooms")
	}
}

func TestPricePresetFoldedCrustSwapIsFree(t *testing.T) {
	t.Parallel()

	f := newPizzaFixture()
	preset := f.newPreset()
	// stuffed crust normally costs +2.00, but crust is folded into the
	// preset base and never priced as a delta
	selections := []Selection{
		{OptionID: f.largeID},
		{OptionID: f.stuffedID},
		{OptionID: f.marinaraID},
		{OptionID: f.mushroomID, Section: enums.SectionWhole},
	}

	quote := Price(f.item, selections, preset)
	requireTotal(t, quote, "16.99")
}

func TestPriceClampedAtZero(t *testing.T) {
	t.Parallel()

	cheapID := uuid.New()
	toppingID := uuid.New()
	item := Item{
		BasePrice: decimal.RequireFromString("0.10"),
		Groups: []Group{
			{
				ID:   uuid.New(),
				Name: "Toppings",
				Kind: enums.GroupKindMultiSelect,
				Options: []Option{
					{ID: cheapID, Name: "Cheese", PriceModifier: decimal.RequireFromString("5.00"), ModifierType: enums.PriceModifierPerUnit},
					{ID: toppingID, Name: "Olives", PriceModifier: decimal.RequireFromString("4.00"), ModifierType: enums.PriceModifierPerUnit},
				},
			},
		},
	}
	preset := &Preset{
		BasePrice: decimal.RequireFromString("0.10"),
		Original: []Selection{
			{OptionID: cheapID},
			{OptionID: toppingID},
		},
	}

	quote := Price(item, nil, preset)
	if quote.Total().IsNegative() {
		t.Fatalf("total went negative: %s", quote.Total())
	}
	requireTotal(t, quote, "0.00")
}
