// Package pricing holds the selection validation and price computation
// shared by the interactive cart path and server-side order
// reconciliation. Everything here is pure: callers load catalog data
// and pass it in, nothing reaches for I/O.
package pricing

import (
	"github.com/google/uuid"

	"github.com/lucaferrante/fornello-backend/pkg/enums"
)

// Selection is one customization choice submitted by the caller.
type Selection struct {
	OptionID  uuid.UUID       `json:"customization_option_id"`
	Quantity  int             `json:"quantity,omitempty"`
	Section   enums.Section   `json:"section,omitempty"`
	Intensity enums.Intensity `json:"intensity,omitempty"`
}

// Normalize defaults quantity to 1, section to whole and intensity to
// regular. Malformed client payloads are common enough that every
// entry point runs selections through here first.
func (s Selection) Normalize() Selection {
	if s.Quantity <= 0 {
		s.Quantity = 1
	}
	if !s.Section.IsValid() {
		s.Section = enums.SectionWhole
	}
	if !s.Intensity.IsValid() {
		s.Intensity = enums.IntensityRegular
	}
	return s
}

// NormalizeAll returns a normalized copy of the selection set.
func NormalizeAll(selections []Selection) []Selection {
	out := make([]Selection, len(selections))
	for i, sel := range selections {
		out[i] = sel.Normalize()
	}
	return out
}

// placement identifies an option within a specific section; the diff
// between a preset's original selections and the current set is keyed
// on it.
type placement struct {
	OptionID uuid.UUID
	Section  enums.Section
}

func (s Selection) placementKey() placement {
	return placement{OptionID: s.OptionID, Section: s.Section}
}
