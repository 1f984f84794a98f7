package enums

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Section identifies the placement of a topping-like option on the item.
type Section string

const (
	SectionWhole Section = "whole"
	SectionLeft  Section = "left"
	SectionRight Section = "right"
)

var validSections = []Section{
	SectionWhole,
	SectionLeft,
	SectionRight,
}

// String implements fmt.Stringer.
func (s Section) String() string {
	return string(s)
}

// IsValid reports whether the value is a known Section.
func (s Section) IsValid() bool {
	for _, candidate := range validSections {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSection converts raw input into a Section. Matching is
// case-insensitive; empty input defaults to whole.
func ParseSection(value string) (Section, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if normalized == "" {
		return SectionWhole, nil
	}
	for _, candidate := range validSections {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid section %q", value)
}

// UnmarshalJSON accepts any casing clients send ("LEFT" and "left"
// both decode to SectionLeft); empty input defaults to whole.
func (s *Section) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseSection(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Intensity describes how heavily an option is applied and scales
// per-unit pricing.
type Intensity string

const (
	IntensityLight   Intensity = "light"
	IntensityRegular Intensity = "regular"
	IntensityExtra   Intensity = "extra"
)

var validIntensities = []Intensity{
	IntensityLight,
	IntensityRegular,
	IntensityExtra,
}

var intensityMultipliers = map[Intensity]decimal.Decimal{
	IntensityLight:   decimal.RequireFromString("0.75"),
	IntensityRegular: decimal.RequireFromString("1"),
	IntensityExtra:   decimal.RequireFromString("1.5"),
}

// String implements fmt.Stringer.
func (i Intensity) String() string {
	return string(i)
}

// IsValid reports whether the value is a known Intensity.
func (i Intensity) IsValid() bool {
	for _, candidate := range validIntensities {
		if candidate == i {
			return true
		}
	}
	return false
}

// Multiplier returns the price multiplier for the intensity. Unknown
// values price as regular.
func (i Intensity) Multiplier() decimal.Decimal {
	if m, ok := intensityMultipliers[i]; ok {
		return m
	}
	return intensityMultipliers[IntensityRegular]
}

// ParseIntensity converts raw input into an Intensity. Matching is
// case-insensitive; empty input defaults to regular.
func ParseIntensity(value string) (Intensity, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if normalized == "" {
		return IntensityRegular, nil
	}
	for _, candidate := range validIntensities {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid intensity %q", value)
}

// UnmarshalJSON accepts any casing clients send; empty input defaults
// to regular.
func (i *Intensity) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseIntensity(raw)
	if err != nil {
		return err
	}
	*i = parsed
	return nil
}
