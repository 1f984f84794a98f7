package enums

import "testing"

func TestParseGroupKind(t *testing.T) {
	t.Parallel()

	kind, err := ParseGroupKind("multi_select")
	if err != nil || kind != GroupKindMultiSelect {
		t.Fatalf("expected multi_select, got %v (%v)", kind, err)
	}
	if _, err := ParseGroupKind("carousel"); err == nil {
		t.Fatal("expected error for unknown group kind")
	}
}

func TestParsePriceModifierType(t *testing.T) {
	t.Parallel()

	mod, err := ParsePriceModifierType("per_unit")
	if err != nil || mod != PriceModifierPerUnit {
		t.Fatalf("expected per_unit, got %v (%v)", mod, err)
	}
	if _, err := ParsePriceModifierType("surge"); err == nil {
		t.Fatal("expected error for unknown modifier type")
	}
}
