package pricing

import (
	"testing"

	"github.com/google/uuid"

	"github.com/lucaferrante/fornello-backend/pkg/enums"
)

func TestApplySingleSelectReplaces(t *testing.T) {
	t.Parallel()

	f := newPizzaFixture()
	crust := f.item.Groups[1]
	current := []Selection{
		{OptionID: f.largeID, Section: enums.SectionWhole, Intensity: enums.IntensityRegular, Quantity: 1},
		{OptionID: f.thinID, Section: enums.SectionWhole, Intensity: enums.IntensityRegular, Quantity: 1},
	}

	out := ApplySingleSelect(crust, current, Selection{OptionID: f.stuffedID})
	if len(out) != 2 {
		t.Fatalf("expected 2 selections, got %d", len(out))
	}
	for _, sel := range out {
		if sel.OptionID == f.thinID {
			t.Fatal("thin crust should have been replaced")
		}
	}
	if out[len(out)-1].OptionID != f.stuffedID {
		t.Fatal("stuffed crust missing after replace")
	}
}

func TestToggleMultiSelectAddsAndRemoves(t *testing.T) {
	t.Parallel()

	f := newPizzaFixture()
	toppings := f.item.Groups[3]

	out, changed := ToggleMultiSelect(toppings, nil, Selection{OptionID: f.pepperoniID})
	if !changed || len(out) != 1 {
		t.Fatalf("add failed: changed=%v len=%d", changed, len(out))
	}

	out, changed = ToggleMultiSelect(toppings, out, Selection{OptionID: f.pepperoniID})
	if !changed || len(out) != 0 {
		t.Fatalf("remove failed: changed=%v len=%d", changed, len(out))
	}
}

func TestToggleMultiSelectRefusesBeyondMax(t *testing.T) {
	t.Parallel()

	f := newPizzaFixture()
	toppings := f.item.Groups[3]
	toppings.MaxSelections = 1

	current := []Selection{{OptionID: f.pepperoniID, Section: enums.SectionWhole, Intensity: enums.IntensityRegular, Quantity: 1}}
	out, changed := ToggleMultiSelect(toppings, current, Selection{OptionID: f.mushroomID})
	if changed {
		t.Fatal("add beyond max should be refused")
	}
	if len(out) != 1 {
		t.Fatalf("selection set mutated: %v", out)
	}
}

func TestToggleMultiSelectDistinctSectionsCoexist(t *testing.T) {
	t.Parallel()

	f := newPizzaFixture()
	toppings := f.item.Groups[3]

	out, _ := ToggleMultiSelect(toppings, nil, Selection{OptionID: f.pepperoniID, Section: enums.SectionLeft})
	out, changed := ToggleMultiSelect(toppings, out, Selection{OptionID: f.mushroomID, Section: enums.SectionRight})
	if !changed || len(out) != 2 {
		t.Fatalf("expected 2 selections, got %d", len(out))
	}
}

func TestToggleSectionMovesOption(t *testing.T) {
	t.Parallel()

	f := newPizzaFixture()
	toppings := f.item.Groups[3]
	current := []Selection{{OptionID: f.pepperoniID, Section: enums.SectionLeft, Intensity: enums.IntensityRegular, Quantity: 1}}

	out, changed := ToggleSection(toppings, current, Selection{OptionID: f.pepperoniID, Section: enums.SectionRight})
	if !changed || len(out) != 1 {
		t.Fatalf("move failed: changed=%v len=%d", changed, len(out))
	}
	if out[0].Section != enums.SectionRight {
		t.Fatalf("section = %s, want right", out[0].Section)
	}
}

func TestToggleSectionSameSectionDeselects(t *testing.T) {
	t.Parallel()

	f := newPizzaFixture()
	toppings := f.item.Groups[3]
	current := []Selection{{OptionID: f.pepperoniID, Section: enums.SectionLeft, Intensity: enums.IntensityRegular, Quantity: 1}}

	out, changed := ToggleSection(toppings, current, Selection{OptionID: f.pepperoniID, Section: enums.SectionLeft})
	if !changed || len(out) != 0 {
		t.Fatalf("deselect failed: changed=%v len=%d", changed, len(out))
	}
}

func TestToggleSectionRefusesNewOptionAtMax(t *testing.T) {
	t.Parallel()

	f := newPizzaFixture()
	toppings := f.item.Groups[3]
	toppings.MaxSelections = 1
	current := []Selection{{OptionID: f.pepperoniID, Section: enums.SectionLeft, Intensity: enums.IntensityRegular, Quantity: 1}}

	out, changed := ToggleSection(toppings, current, Selection{OptionID: f.mushroomID, Section: enums.SectionRight})
	if changed {
		t.Fatal("new option beyond max should be refused")
	}
	if len(out) != 1 || out[0].OptionID != f.pepperoniID {
		t.Fatalf("selection set mutated: %v", out)
	}
}

func TestNormalizeFillsDefaults(t *testing.T) {
	t.Parallel()

	sel := Selection{OptionID: uuid.New()}.Normalize()
	if sel.Quantity != 1 {
		t.Fatalf("quantity = %d, want 1", sel.Quantity)
	}
	if sel.Section != enums.SectionWhole {
		t.Fatalf("section = %s, want whole", sel.Section)
	}
	if sel.Intensity != enums.IntensityRegular {
		t.Fatalf("intensity = %s, want regular", sel.Intensity)
	}
}
