package engine

import (
	"fmt"
	"strings"

	apperrors "trifold/internal/errors"
)

// AddItem creates a new item and returns the updated snapshot together with
// the created item. An unnamed item may exist as a placeholder, but only
// with a zero amount. Items created with a positive amount are presumed
// intentional and are auto-locked so a later optimize pass cannot overwrite
// them.
//
// Creation is refused when the category is already strictly over budget, and
// a positive amount is validated like an amount edit: the resulting category
// total may not exceed the target, nor the global total exceed income.
func (s Snapshot) AddItem(name string, amount int64, category Category) (Snapshot, Item, error) {
	if !category.Valid() {
		return s, Item{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "category must be needs, savings, or wants")
	}
	if amount < 0 {
		return s, Item{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must not be negative")
	}

	name = strings.TrimSpace(name)
	if name == "" && amount > 0 {
		return s, Item{}, apperrors.ErrNameRequired
	}

	target := s.CategoryTarget(category)
	if s.CategoryTotal(category) > target {
		return s, Item{}, apperrors.WithMessage(apperrors.ErrCategoryOverBudget,
			fmt.Sprintf("Cannot add more items: %s category is over budget (%s)", category.Title(), FormatCents(target)))
	}

	if amount > 0 {
		if total := s.CategoryTotal(category) + amount; total > target {
			over := total - target
			return s, Item{}, apperrors.WithMessage(apperrors.ErrAmountOverBudget,
				fmt.Sprintf("%s would be %s over budget (budget %s)", category.Title(), FormatCents(over), FormatCents(target)))
		}
		if total := s.TotalAllocated() + amount; total > s.Income {
			over := total - s.Income
			return s, Item{}, apperrors.WithMessage(apperrors.ErrAmountOverIncome,
				fmt.Sprintf("Budget would be %s over total income (%s)", FormatCents(over), FormatCents(s.Income)))
		}
	}

	out := s.Clone()
	item := Item{
		ID:       out.nextID(),
		Name:     name,
		Amount:   amount,
		Category: category,
		Locked:   amount > 0,
	}
	out.Items = append(out.Items, item)
	return out, item, nil
}

// RenameItem sets an item's name. Locked items cannot be edited, and an item
// holding a positive amount cannot be renamed to the unnamed state.
func (s Snapshot) RenameItem(id uint, name string) (Snapshot, error) {
	i := s.itemIndex(id)
	if i < 0 {
		return s, apperrors.ErrItemNotFound
	}
	if s.Items[i].Locked {
		return s, apperrors.ErrItemLocked
	}

	name = strings.TrimSpace(name)
	if name == "" && s.Items[i].Amount > 0 {
		return s, apperrors.ErrNameRequired
	}

	out := s.Clone()
	out.Items[i].Name = name
	return out, nil
}

// SetItemAmount sets an item's amount under the strict validation policy:
// the item must be unlocked and named, and the candidate must not push the
// category over its target or the global total over income. The change
// either fully applies or fully rejects.
func (s Snapshot) SetItemAmount(id uint, amount int64) (Snapshot, error) {
	i := s.itemIndex(id)
	if i < 0 {
		return s, apperrors.ErrItemNotFound
	}
	if s.Items[i].Locked {
		return s, apperrors.ErrItemLocked
	}
	if amount < 0 {
		return s, apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must not be negative")
	}
	if s.Items[i].Name == "" {
		return s, apperrors.ErrNameRequired
	}
	if err := s.ValidateAmount(id, amount); err != nil {
		return s, err
	}

	out := s.Clone()
	out.Items[i].Amount = amount
	return out, nil
}

// DeleteItem removes an item; its lock state goes with it.
func (s Snapshot) DeleteItem(id uint) (Snapshot, error) {
	i := s.itemIndex(id)
	if i < 0 {
		return s, apperrors.ErrItemNotFound
	}

	out := s.Clone()
	out.Items = append(out.Items[:i], out.Items[i+1:]...)
	return out, nil
}

// ToggleLock flips an item's lock state. Unlocking always succeeds; locking
// is subject to the lock-eligibility check (see CanLockItem).
func (s Snapshot) ToggleLock(id uint) (Snapshot, error) {
	i := s.itemIndex(id)
	if i < 0 {
		return s, apperrors.ErrItemNotFound
	}

	if !s.Items[i].Locked {
		if err := s.lockRefusal(s.Items[i], s.Items[i].Amount); err != nil {
			return s, err
		}
	}

	out := s.Clone()
	out.Items[i].Locked = !out.Items[i].Locked
	return out, nil
}
