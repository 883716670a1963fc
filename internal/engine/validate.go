package engine

import (
	"fmt"

	apperrors "trifold/internal/errors"
)

// ValidateAmount checks whether setting the item's amount to candidate would
// breach a budget ceiling. The category check substitutes the candidate for
// the item's current amount; the global check does the same against income.
// Both are strict: the edit either fully applies or fully rejects.
func (s Snapshot) ValidateAmount(id uint, candidate int64) error {
	it, ok := s.ItemByID(id)
	if !ok {
		return apperrors.ErrItemNotFound
	}

	target := s.CategoryTarget(it.Category)
	categoryTotal := s.CategoryTotal(it.Category) - it.Amount + candidate
	if categoryTotal > target {
		over := categoryTotal - target
		return apperrors.WithMessage(apperrors.ErrAmountOverBudget,
			fmt.Sprintf("%s would be %s over budget (budget %s)", it.Category.Title(), FormatCents(over), FormatCents(target)))
	}

	total := s.TotalAllocated() - it.Amount + candidate
	if total > s.Income {
		over := total - s.Income
		return apperrors.WithMessage(apperrors.ErrAmountOverIncome,
			fmt.Sprintf("Budget would be %s over total income (%s)", FormatCents(over), FormatCents(s.Income)))
	}

	return nil
}

// CanLockItem reports whether the item could be locked at the candidate
// amount. Locking is a commitment gesture, so the bar is stricter than an
// amount edit: the item must carry a real amount and already fit within its
// category budget alongside the other items.
func (s Snapshot) CanLockItem(id uint, candidate int64) bool {
	it, ok := s.ItemByID(id)
	if !ok {
		return false
	}
	return s.lockRefusal(it, candidate) == nil
}

// lockRefusal returns the refusal for locking the item at the given amount,
// or nil when locking is allowed. A total exactly at the category budget is
// allowed; one cent above is not.
func (s Snapshot) lockRefusal(it Item, candidate int64) error {
	if candidate <= 0 {
		return apperrors.WithMessage(apperrors.ErrLockRefused, "Enter amount to lock")
	}

	target := s.CategoryTarget(it.Category)
	otherTotal := s.CategoryTotal(it.Category) - it.Amount
	if otherTotal+candidate > target {
		return apperrors.WithMessage(apperrors.ErrLockRefused,
			fmt.Sprintf("Amount exceeds %s budget (%s)", it.Category, FormatCents(target)))
	}

	return nil
}
