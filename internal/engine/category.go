// Package engine implements the budget allocation and reconciliation core:
// percentage-to-dollar targets, budget item validation, lock handling, and
// the optimize pass that balances unlocked items against category targets.
// All operations are pure: they take a Snapshot and return a new one.
package engine

import (
	"strings"

	apperrors "trifold/internal/errors"
)

// Category is one of the fixed three-way partitions of a budget.
type Category string

const (
	CategoryNeeds   Category = "needs"
	CategorySavings Category = "savings"
	CategoryWants   Category = "wants"
)

// Categories returns all categories in canonical display order. The order is
// load-bearing for reconciliation: items synthesized by the optimize pass and
// remainder cents are assigned in this order.
func Categories() []Category {
	return []Category{CategoryNeeds, CategorySavings, CategoryWants}
}

// Valid reports whether c is one of the three known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryNeeds, CategorySavings, CategoryWants:
		return true
	}
	return false
}

// Title returns the capitalized display name, e.g. "Needs".
func (c Category) Title() string {
	if c == "" {
		return ""
	}
	return strings.ToUpper(string(c[:1])) + string(c[1:])
}

// ParseCategory converts a string to a Category.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "category must be needs, savings, or wants")
	}
	return c, nil
}
