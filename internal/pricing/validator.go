package pricing

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/lucaferrante/fornello-backend/pkg/enums"
)

var chooseKofNPattern = regexp.MustCompile(`(?i)(\d+)\s+of\s+(\d+)`)

// Validate checks a selection set against every group's constraints and
// returns all human-readable violations. An empty slice means the
// selection is valid. Errors are collected exhaustively: a set that
// violates rules in several groups reports each of them.
func Validate(groups []Group, selections []Selection) []string {
	selections = NormalizeAll(selections)

	var errs []string
	for _, group := range groups {
		count := countGroupSelections(group, selections)
		errs = append(errs, quantityCapErrors(group, selections)...)

		if group.Kind == enums.GroupKindSpecialLogic {
			if k, n, ok := parseChooseKofN(group.Name); ok {
				errs = append(errs, chooseKofNErrors(group, k, n, count)...)
				continue
			}
		}

		if group.Required && count == 0 {
			errs = append(errs, fmt.Sprintf("%s is required", group.Name))
			continue
		}
		if group.MinSelections > 0 && count < group.MinSelections {
			errs = append(errs, fmt.Sprintf("%s requires at least %d selection(s)", group.Name, group.MinSelections))
		}
		if group.MaxSelections > 0 && count > group.MaxSelections {
			errs = append(errs, fmt.Sprintf("%s allows a maximum of %d selection(s)", group.Name, group.MaxSelections))
		}
	}
	return errs
}

// quantityCapErrors enforces each option's per-item quantity cap; zero
// means uncapped.
func quantityCapErrors(group Group, selections []Selection) []string {
	var errs []string
	for _, sel := range selections {
		for _, opt := range group.Options {
			if opt.ID != sel.OptionID {
				continue
			}
			if opt.MaxQuantity > 0 && sel.Quantity > opt.MaxQuantity {
				errs = append(errs, fmt.Sprintf("%s allows a maximum of %d", opt.Name, opt.MaxQuantity))
			}
			break
		}
	}
	return errs
}

func countGroupSelections(group Group, selections []Selection) int {
	count := 0
	for _, sel := range selections {
		if group.HasOption(sel.OptionID) {
			count++
		}
	}
	return count
}

// parseChooseKofN extracts the K and N from a group name that signals
// the rule, e.g. "Choose 2 of 3 Sides".
func parseChooseKofN(name string) (k, n int, ok bool) {
	match := chooseKofNPattern.FindStringSubmatch(name)
	if match == nil {
		return 0, 0, false
	}
	k, errK := strconv.Atoi(match[1])
	n, errN := strconv.Atoi(match[2])
	if errK != nil || errN != nil || k <= 0 || n < k {
		return 0, 0, false
	}
	return k, n, true
}

func chooseKofNErrors(group Group, k, n, count int) []string {
	if count == 0 {
		if group.Required {
			return []string{fmt.Sprintf("%s is required", group.Name)}
		}
		return nil
	}

	singular, plural := selectionNouns(group.Name)
	switch {
	case count < k:
		remaining := k - count
		if remaining == 1 {
			return []string{fmt.Sprintf("Please select one more %s (%d of %d required)", singular, k, n)}
		}
		return []string{fmt.Sprintf("Please select %d more %s (%d of %d required)", remaining, plural, k, n)}
	case count > k:
		return []string{fmt.Sprintf("Too many %s selected (only %d of %d allowed)", plural, k, n)}
	}
	return nil
}

var nounStopWords = map[string]struct{}{
	"choose": {},
	"select": {},
	"pick":   {},
	"of":     {},
	"the":    {},
	"a":      {},
	"any":    {},
}

// selectionNouns derives the thing being chosen from the group name so
// messages read naturally ("side"/"sides" for "Choose 2 of 3 Sides").
func selectionNouns(name string) (singular, plural string) {
	words := strings.Fields(name)
	for i := len(words) - 1; i >= 0; i-- {
		word := strings.ToLower(strings.Trim(words[i], ".,:;()"))
		if word == "" {
			continue
		}
		if _, stop := nounStopWords[word]; stop {
			continue
		}
		if _, err := strconv.Atoi(word); err == nil {
			continue
		}
		if strings.HasSuffix(word, "s") && len(word) > 1 {
			return strings.TrimSuffix(word, "s"), word
		}
		return word, word + "s"
	}
	return "option", "options"
}
