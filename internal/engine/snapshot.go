package engine

import "math"

// Item is one budget line. Amount is integer cents. Locked items are excluded
// from the optimize pass and their amounts cannot be edited.
type Item struct {
	ID       uint     `json:"id"`
	Name     string   `json:"name"`
	Amount   int64    `json:"amount_cents"`
	Category Category `json:"category"`
	Locked   bool     `json:"locked"`
}

// Split holds the needs/savings/wants percentages of a budget plan.
type Split struct {
	Needs   int `json:"needs"`
	Savings int `json:"savings"`
	Wants   int `json:"wants"`
}

// Percent returns the percentage assigned to a category.
func (s Split) Percent(c Category) int {
	switch c {
	case CategoryNeeds:
		return s.Needs
	case CategorySavings:
		return s.Savings
	case CategoryWants:
		return s.Wants
	}
	return 0
}

// Total returns the sum of the three percentages. It is user-controlled and
// may transiently differ from 100; only the report transition requires 100.
func (s Split) Total() int {
	return s.Needs + s.Savings + s.Wants
}

// Snapshot is an immutable view of a budget sheet: income, the percentage
// split, and the ordered item list. Engine operations never mutate a
// snapshot in place; they clone and return a new one.
type Snapshot struct {
	Income int64 `json:"income_cents"`
	Split  Split `json:"split"`
	Items  []Item `json:"items"`
}

// Clone returns a deep copy of the snapshot.
func (s Snapshot) Clone() Snapshot {
	out := s
	out.Items = make([]Item, len(s.Items))
	copy(out.Items, s.Items)
	return out
}

func (s Snapshot) itemIndex(id uint) int {
	for i := range s.Items {
		if s.Items[i].ID == id {
			return i
		}
	}
	return -1
}

// ItemByID returns the item with the given id.
func (s Snapshot) ItemByID(id uint) (Item, bool) {
	if i := s.itemIndex(id); i >= 0 {
		return s.Items[i], true
	}
	return Item{}, false
}

// nextID returns a fresh monotonic item id, one above the largest in use.
func (s Snapshot) nextID() uint {
	var max uint
	for _, it := range s.Items {
		if it.ID > max {
			max = it.ID
		}
	}
	return max + 1
}

// CategoryTarget returns the dollar budget for a category in cents. Residue
// cents from flooring are distributed so the three targets sum to income on
// a fully assigned split (see CategoryTargets).
func (s Snapshot) CategoryTarget(c Category) int64 {
	return CategoryTargets(s.Split, s.Income)[c]
}

// CategoryItems returns the items in a category, in snapshot order.
func (s Snapshot) CategoryItems(c Category) []Item {
	var out []Item
	for _, it := range s.Items {
		if it.Category == c {
			out = append(out, it)
		}
	}
	return out
}

// CategoryTotal returns the allocated cents in a category.
func (s Snapshot) CategoryTotal(c Category) int64 {
	var sum int64
	for _, it := range s.Items {
		if it.Category == c {
			sum += it.Amount
		}
	}
	return sum
}

// CategoryLockedTotal returns the locked cents in a category.
func (s Snapshot) CategoryLockedTotal(c Category) int64 {
	var sum int64
	for _, it := range s.Items {
		if it.Category == c && it.Locked {
			sum += it.Amount
		}
	}
	return sum
}

// CategoryRemaining returns target minus allocated for a category. Negative
// when the category is over budget.
func (s Snapshot) CategoryRemaining(c Category) int64 {
	return s.CategoryTarget(c) - s.CategoryTotal(c)
}

// TotalAllocated returns the allocated cents across all categories.
func (s Snapshot) TotalAllocated() int64 {
	var sum int64
	for _, it := range s.Items {
		sum += it.Amount
	}
	return sum
}

// Unallocated returns income minus the allocated total. Negative when the
// budget exceeds income.
func (s Snapshot) Unallocated() int64 {
	return s.Income - s.TotalAllocated()
}

// TotalPercent returns the allocated share of income, rounded to two decimals.
func (s Snapshot) TotalPercent() float64 {
	return DollarToPercent(s.TotalAllocated(), s.Income)
}

// LockedTotal returns the locked cents across all categories.
func (s Snapshot) LockedTotal() int64 {
	var sum int64
	for _, it := range s.Items {
		if it.Locked {
			sum += it.Amount
		}
	}
	return sum
}

// LockedCount returns the number of locked items.
func (s Snapshot) LockedCount() int {
	n := 0
	for _, it := range s.Items {
		if it.Locked {
			n++
		}
	}
	return n
}

// ItemPercent returns an item's share of its category target, rounded to two
// decimals. Display only.
func (s Snapshot) ItemPercent(it Item) float64 {
	target := s.CategoryTarget(it.Category)
	if target == 0 || it.Amount == 0 {
		return 0
	}
	return math.Round(float64(it.Amount)/float64(target)*100*100) / 100
}

// OverBudgetCategories returns categories whose allocated total strictly
// exceeds their target.
func (s Snapshot) OverBudgetCategories() []Category {
	var out []Category
	for _, c := range Categories() {
		if s.CategoryTotal(c) > s.CategoryTarget(c) {
			out = append(out, c)
		}
	}
	return out
}

// EmptyCategories returns categories with no items at all.
func (s Snapshot) EmptyCategories() []Category {
	var out []Category
	for _, c := range Categories() {
		if len(s.CategoryItems(c)) == 0 {
			out = append(out, c)
		}
	}
	return out
}

// UnderfundedCategories returns categories whose locked total alone exceeds
// the category target. Reconciliation cannot succeed while any exist.
func (s Snapshot) UnderfundedCategories() []Category {
	var out []Category
	for _, c := range Categories() {
		if s.CategoryLockedTotal(c) > s.CategoryTarget(c) {
			out = append(out, c)
		}
	}
	return out
}
