package enums

import "fmt"

// GroupKind defines the selection semantics of a customization group.
type GroupKind string

const (
	GroupKindSingleSelect   GroupKind = "single_select"
	GroupKindMultiSelect    GroupKind = "multi_select"
	GroupKindQuantitySelect GroupKind = "quantity_select"
	GroupKindSpecialLogic   GroupKind = "special_logic"
)

var validGroupKinds = []GroupKind{
	GroupKindSingleSelect,
	GroupKindMultiSelect,
	GroupKindQuantitySelect,
	GroupKindSpecialLogic,
}

// String implements fmt.Stringer.
func (k GroupKind) String() string {
	return string(k)
}

// IsValid reports whether the value is a known GroupKind.
func (k GroupKind) IsValid() bool {
	for _, candidate := range validGroupKinds {
		if candidate == k {
			return true
		}
	}
	return false
}

// ParseGroupKind converts raw input into a GroupKind.
func ParseGroupKind(value string) (GroupKind, error) {
	for _, candidate := range validGroupKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid group kind %q", value)
}

// PriceModifierType defines how an option's price modifier is applied.
type PriceModifierType string

const (
	PriceModifierFlat       PriceModifierType = "flat"
	PriceModifierPercentage PriceModifierType = "percentage"
	PriceModifierPerUnit    PriceModifierType = "per_unit"
)

var validPriceModifierTypes = []PriceModifierType{
	PriceModifierFlat,
	PriceModifierPercentage,
	PriceModifierPerUnit,
}

// String implements fmt.Stringer.
func (p PriceModifierType) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PriceModifierType.
func (p PriceModifierType) IsValid() bool {
	for _, candidate := range validPriceModifierTypes {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePriceModifierType converts raw input into a PriceModifierType.
func ParsePriceModifierType(value string) (PriceModifierType, error) {
	for _, candidate := range validPriceModifierTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid price modifier type %q", value)
}
