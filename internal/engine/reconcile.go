package engine

import (
	"fmt"

	apperrors "trifold/internal/errors"
)

// maxReconcilePasses bounds the post-distribution fix-up loop. Equal-split
// rounding on integer cents converges in one pass; the bound is a guard
// against a future distribution change that oscillates.
const maxReconcilePasses = 5

// ReconcileChange describes one item the optimize pass touched.
type ReconcileChange struct {
	ItemID    uint     `json:"item_id"`
	Name      string   `json:"name"`
	Category  Category `json:"category"`
	OldAmount int64    `json:"old_amount_cents"`
	NewAmount int64    `json:"new_amount_cents"`
	Created   bool     `json:"created"`
}

// ReconcileResult is the outcome of an optimize pass: the adjusted snapshot
// and the per-item changes that produced it.
type ReconcileResult struct {
	Snapshot Snapshot
	Changes  []ReconcileChange
}

// Reconcile redistributes each category's unlocked budget so every category
// lands exactly on its target. Locked items are never touched. Within a
// category the remaining budget (target minus locked) is split equally across
// the unlocked items, leftover cents going one each to the earliest items. A
// category with budget left but no unlocked item to hold it gets a
// synthesized "Additional <Category>" item.
//
// Reconciliation refuses to run while any category's locked total alone
// exceeds its target; the caller must unlock or shrink items first.
func Reconcile(s Snapshot) (ReconcileResult, error) {
	if under := s.UnderfundedCategories(); len(under) > 0 {
		return ReconcileResult{}, apperrors.WithMessage(apperrors.ErrLockedOverBudget,
			fmt.Sprintf("Locked items exceed the %s budget; unlock or reduce them first", under[0].Title()))
	}

	out := s.Clone()
	before := map[uint]int64{}
	created := map[uint]bool{}
	for _, it := range s.Items {
		before[it.ID] = it.Amount
	}

	for _, c := range Categories() {
		target := out.CategoryTarget(c)
		remaining := target - out.CategoryLockedTotal(c)

		var unlocked []int
		for i := range out.Items {
			if out.Items[i].Category == c && !out.Items[i].Locked {
				unlocked = append(unlocked, i)
			}
		}

		if len(unlocked) == 0 {
			if remaining > 0 {
				id := out.nextID()
				out.Items = append(out.Items, Item{
					ID:       id,
					Name:     "Additional " + c.Title(),
					Amount:   remaining,
					Category: c,
				})
				created[id] = true
			}
			continue
		}

		if remaining <= 0 {
			for _, i := range unlocked {
				out.Items[i].Amount = 0
			}
			continue
		}

		base := remaining / int64(len(unlocked))
		extra := remaining % int64(len(unlocked))
		for n, i := range unlocked {
			out.Items[i].Amount = base
			if int64(n) < extra {
				out.Items[i].Amount++
			}
		}
	}

	// Sweep any residual drift onto the last unlocked item per category.
	for pass := 0; pass < maxReconcilePasses; pass++ {
		settled := true
		for _, c := range Categories() {
			delta := out.CategoryTarget(c) - out.CategoryTotal(c)
			if delta == 0 {
				continue
			}
			last := -1
			for i := range out.Items {
				if out.Items[i].Category == c && !out.Items[i].Locked {
					last = i
				}
			}
			if last < 0 || out.Items[last].Amount+delta < 0 {
				continue
			}
			out.Items[last].Amount += delta
			settled = false
		}
		if settled {
			break
		}
	}

	var changes []ReconcileChange
	for _, it := range out.Items {
		old, existed := before[it.ID]
		if existed && old == it.Amount {
			continue
		}
		changes = append(changes, ReconcileChange{
			ItemID:    it.ID,
			Name:      it.Name,
			Category:  it.Category,
			OldAmount: old,
			NewAmount: it.Amount,
			Created:   created[it.ID],
		})
	}

	return ReconcileResult{Snapshot: out, Changes: changes}, nil
}
