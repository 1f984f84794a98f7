package pricing

// Mutation helpers applied when a caller changes an in-progress
// selection set. They return new slices; inputs are never modified.

// ApplySingleSelect replaces any existing selection from the group with
// the change (radio semantics).
func ApplySingleSelect(group Group, current []Selection, change Selection) []Selection {
	out := make([]Selection, 0, len(current)+1)
	for _, sel := range current {
		if group.HasOption(sel.OptionID) {
			continue
		}
		out = append(out, sel)
	}
	return append(out, change.Normalize())
}

// ToggleMultiSelect toggles membership of the change within the group.
// Adding beyond the group's max selection count is refused; the second
// return value reports whether the set changed.
func ToggleMultiSelect(group Group, current []Selection, change Selection) ([]Selection, bool) {
	change = change.Normalize()

	if idx := indexOfPlacement(current, change); idx >= 0 {
		return removeAt(current, idx), true
	}

	if group.MaxSelections > 0 && countGroupSelections(group, current) >= group.MaxSelections {
		return current, false
	}
	out := make([]Selection, len(current), len(current)+1)
	copy(out, current)
	return append(out, change), true
}

// ToggleSection places a section-constrained option. An option occupies
// at most one section at a time: picking a new section releases the old
// one, picking the occupied section removes the option entirely. A
// brand-new option is refused when the group is already at its max.
func ToggleSection(group Group, current []Selection, change Selection) ([]Selection, bool) {
	change = change.Normalize()

	occupied := -1
	for i, sel := range current {
		if sel.OptionID == change.OptionID {
			occupied = i
			break
		}
	}

	if occupied >= 0 {
		prior := current[occupied]
		out := removeAt(current, occupied)
		if prior.Section == change.Section {
			return out, true
		}
		return append(out, change), true
	}

	if group.MaxSelections > 0 && countGroupSelections(group, current) >= group.MaxSelections {
		return current, false
	}
	out := make([]Selection, len(current), len(current)+1)
	copy(out, current)
	return append(out, change), true
}

func indexOfPlacement(selections []Selection, target Selection) int {
	key := target.placementKey()
	for i, sel := range selections {
		if sel.Normalize().placementKey() == key {
			return i
		}
	}
	return -1
}

func removeAt(selections []Selection, idx int) []Selection {
	out := make([]Selection, 0, len(selections)-1)
	out = append(out, selections[:idx]...)
	return append(out, selections[idx+1:]...)
}
