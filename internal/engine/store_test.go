package engine_test

import (
	"testing"

	"trifold/internal/engine"
	"trifold/internal/testutil"
)

// baseSnapshot is $5000.00 income on the 50/20/30 split: needs $2500.00,
// savings $1000.00, wants $1500.00.
func baseSnapshot(items ...engine.Item) engine.Snapshot {
	return engine.Snapshot{
		Income: 500000,
		Split:  engine.Split{Needs: 50, Savings: 20, Wants: 30},
		Items:  items,
	}
}

func TestAddItem(t *testing.T) {
	t.Run("auto_locks_positive_amount", func(t *testing.T) {
		s, item, err := baseSnapshot().AddItem("Rent", 150000, engine.CategoryNeeds)
		testutil.AssertNoError(t, err)

		if !item.Locked {
			t.Error("expected item created with an amount to be locked")
		}
		if item.ID == 0 {
			t.Error("expected non-zero item ID")
		}
		if got := s.CategoryTotal(engine.CategoryNeeds); got != 150000 {
			t.Errorf("expected needs total 150000, got %d", got)
		}
	})

	t.Run("unnamed_placeholder_allowed", func(t *testing.T) {
		_, item, err := baseSnapshot().AddItem("", 0, engine.CategoryWants)
		testutil.AssertNoError(t, err)

		if item.Locked {
			t.Error("expected zero-amount item to be unlocked")
		}
	})

	t.Run("unnamed_with_amount_refused", func(t *testing.T) {
		_, _, err := baseSnapshot().AddItem("  ", 5000, engine.CategoryWants)
		testutil.AssertAppError(t, err, "NAME_REQUIRED")
	})

	t.Run("refused_when_category_over_budget", func(t *testing.T) {
		s := baseSnapshot(engine.Item{ID: 1, Name: "Rent", Amount: 260000, Category: engine.CategoryNeeds})
		_, _, err := s.AddItem("Groceries", 0, engine.CategoryNeeds)
		testutil.AssertAppError(t, err, "CATEGORY_OVER_BUDGET")
	})

	t.Run("allowed_when_category_exactly_at_budget", func(t *testing.T) {
		s := baseSnapshot(engine.Item{ID: 1, Name: "Rent", Amount: 250000, Category: engine.CategoryNeeds})
		_, _, err := s.AddItem("Groceries", 0, engine.CategoryNeeds)
		testutil.AssertNoError(t, err)
	})

	t.Run("amount_refused_when_it_would_overflow_category", func(t *testing.T) {
		s := baseSnapshot(engine.Item{ID: 1, Name: "Rent", Amount: 250000, Category: engine.CategoryNeeds})
		_, _, err := s.AddItem("Groceries", 5000, engine.CategoryNeeds)
		testutil.AssertAppError(t, err, "AMOUNT_OVER_BUDGET")
	})

	t.Run("negative_amount_refused", func(t *testing.T) {
		_, _, err := baseSnapshot().AddItem("Rent", -1, engine.CategoryNeeds)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("invalid_category_refused", func(t *testing.T) {
		_, _, err := baseSnapshot().AddItem("Rent", 0, engine.Category("luxuries"))
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("does_not_mutate_receiver", func(t *testing.T) {
		s := baseSnapshot()
		s2, _, err := s.AddItem("Rent", 100000, engine.CategoryNeeds)
		testutil.AssertNoError(t, err)

		if len(s.Items) != 0 {
			t.Error("expected original snapshot unchanged")
		}
		if len(s2.Items) != 1 {
			t.Error("expected new snapshot to hold the item")
		}
	})
}

func TestSetItemAmount(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		s := baseSnapshot(engine.Item{ID: 1, Name: "Rent", Amount: 100000, Category: engine.CategoryNeeds})
		s2, err := s.SetItemAmount(1, 120000)
		testutil.AssertNoError(t, err)

		it, _ := s2.ItemByID(1)
		if it.Amount != 120000 {
			t.Errorf("expected 120000, got %d", it.Amount)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		_, err := baseSnapshot().SetItemAmount(99, 1000)
		testutil.AssertAppError(t, err, "ITEM_NOT_FOUND")
	})

	t.Run("locked_item_refused", func(t *testing.T) {
		s := baseSnapshot(engine.Item{ID: 1, Name: "Rent", Amount: 100000, Category: engine.CategoryNeeds, Locked: true})
		_, err := s.SetItemAmount(1, 120000)
		testutil.AssertAppError(t, err, "ITEM_LOCKED")
	})

	t.Run("unnamed_item_refused", func(t *testing.T) {
		s := baseSnapshot(engine.Item{ID: 1, Amount: 0, Category: engine.CategoryNeeds})
		_, err := s.SetItemAmount(1, 1000)
		testutil.AssertAppError(t, err, "NAME_REQUIRED")
	})

	t.Run("over_category_budget_refused", func(t *testing.T) {
		// Wants budget is $1500.00; $1600.00 overflows it.
		s := baseSnapshot(engine.Item{ID: 1, Name: "Travel", Amount: 0, Category: engine.CategoryWants})
		_, err := s.SetItemAmount(1, 160000)
		testutil.AssertAppError(t, err, "AMOUNT_OVER_BUDGET")
	})

	t.Run("exactly_at_category_budget_allowed", func(t *testing.T) {
		s := baseSnapshot(engine.Item{ID: 1, Name: "Travel", Amount: 0, Category: engine.CategoryWants})
		_, err := s.SetItemAmount(1, 150000)
		testutil.AssertNoError(t, err)
	})

	t.Run("rejected_edit_leaves_amount_unchanged", func(t *testing.T) {
		s := baseSnapshot(engine.Item{ID: 1, Name: "Travel", Amount: 50000, Category: engine.CategoryWants})
		_, err := s.SetItemAmount(1, 160000)
		testutil.AssertAppError(t, err, "AMOUNT_OVER_BUDGET")

		it, _ := s.ItemByID(1)
		if it.Amount != 50000 {
			t.Errorf("expected amount to stay 50000, got %d", it.Amount)
		}
	})

	t.Run("substitutes_candidate_for_current_amount", func(t *testing.T) {
		// Needs holds 2000+500; raising the 2000 item to 2050 totals
		// 2550 and must be refused, not treated as an addition.
		s := baseSnapshot(
			engine.Item{ID: 1, Name: "Rent", Amount: 200000, Category: engine.CategoryNeeds},
			engine.Item{ID: 2, Name: "Groceries", Amount: 50000, Category: engine.CategoryNeeds},
		)
		_, err := s.SetItemAmount(1, 205000)
		testutil.AssertAppError(t, err, "AMOUNT_OVER_BUDGET")

		s2, err := s.SetItemAmount(1, 200000)
		testutil.AssertNoError(t, err)
		if got := s2.CategoryTotal(engine.CategoryNeeds); got != 250000 {
			t.Errorf("expected needs total 250000, got %d", got)
		}
	})
}

func TestRenameItem(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		s := baseSnapshot(engine.Item{ID: 1, Name: "Rent", Amount: 100000, Category: engine.CategoryNeeds})
		s2, err := s.RenameItem(1, "Mortgage")
		testutil.AssertNoError(t, err)

		it, _ := s2.ItemByID(1)
		if it.Name != "Mortgage" {
			t.Errorf("expected Mortgage, got %s", it.Name)
		}
	})

	t.Run("locked_refused", func(t *testing.T) {
		s := baseSnapshot(engine.Item{ID: 1, Name: "Rent", Amount: 100000, Category: engine.CategoryNeeds, Locked: true})
		_, err := s.RenameItem(1, "Mortgage")
		testutil.AssertAppError(t, err, "ITEM_LOCKED")
	})

	t.Run("clearing_name_with_amount_refused", func(t *testing.T) {
		s := baseSnapshot(engine.Item{ID: 1, Name: "Rent", Amount: 100000, Category: engine.CategoryNeeds})
		_, err := s.RenameItem(1, "")
		testutil.AssertAppError(t, err, "NAME_REQUIRED")
	})

	t.Run("clearing_name_of_zero_item_allowed", func(t *testing.T) {
		s := baseSnapshot(engine.Item{ID: 1, Name: "Placeholder", Amount: 0, Category: engine.CategoryNeeds})
		_, err := s.RenameItem(1, "")
		testutil.AssertNoError(t, err)
	})
}

func TestDeleteItem(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		s := baseSnapshot(
			engine.Item{ID: 1, Name: "Rent", Amount: 100000, Category: engine.CategoryNeeds},
			engine.Item{ID: 2, Name: "Groceries", Amount: 50000, Category: engine.CategoryNeeds},
		)
		s2, err := s.DeleteItem(1)
		testutil.AssertNoError(t, err)

		if _, ok := s2.ItemByID(1); ok {
			t.Error("expected item 1 to be gone")
		}
		if got := s2.CategoryTotal(engine.CategoryNeeds); got != 50000 {
			t.Errorf("expected needs total 50000, got %d", got)
		}
	})

	t.Run("locked_items_can_be_deleted", func(t *testing.T) {
		s := baseSnapshot(engine.Item{ID: 1, Name: "Rent", Amount: 100000, Category: engine.CategoryNeeds, Locked: true})
		s2, err := s.DeleteItem(1)
		testutil.AssertNoError(t, err)

		if s2.LockedCount() != 0 {
			t.Error("expected lock to vanish with the item")
		}
	})

	t.Run("not_found", func(t *testing.T) {
		_, err := baseSnapshot().DeleteItem(42)
		testutil.AssertAppError(t, err, "ITEM_NOT_FOUND")
	})
}

func TestToggleLock(t *testing.T) {
	t.Run("lock_and_unlock", func(t *testing.T) {
		s := baseSnapshot(engine.Item{ID: 1, Name: "Rent", Amount: 100000, Category: engine.CategoryNeeds})

		s2, err := s.ToggleLock(1)
		testutil.AssertNoError(t, err)
		if it, _ := s2.ItemByID(1); !it.Locked {
			t.Fatal("expected item locked")
		}

		s3, err := s2.ToggleLock(1)
		testutil.AssertNoError(t, err)
		if it, _ := s3.ItemByID(1); it.Locked {
			t.Error("expected item unlocked")
		}
	})

	t.Run("zero_amount_cannot_lock", func(t *testing.T) {
		s := baseSnapshot(engine.Item{ID: 1, Name: "Rent", Amount: 0, Category: engine.CategoryNeeds})
		_, err := s.ToggleLock(1)
		testutil.AssertAppError(t, err, "LOCK_REFUSED")
	})

	t.Run("over_budget_cannot_lock", func(t *testing.T) {
		// Savings budget is $1000.00; two items at $600.00 each put the
		// category over, so neither may be locked in.
		s := baseSnapshot(
			engine.Item{ID: 1, Name: "Emergency", Amount: 60000, Category: engine.CategorySavings},
			engine.Item{ID: 2, Name: "Vacation", Amount: 60000, Category: engine.CategorySavings},
		)
		_, err := s.ToggleLock(1)
		testutil.AssertAppError(t, err, "LOCK_REFUSED")
	})

	t.Run("exactly_at_budget_can_lock", func(t *testing.T) {
		s := baseSnapshot(
			engine.Item{ID: 1, Name: "Emergency", Amount: 60000, Category: engine.CategorySavings},
			engine.Item{ID: 2, Name: "Vacation", Amount: 40000, Category: engine.CategorySavings},
		)
		_, err := s.ToggleLock(1)
		testutil.AssertNoError(t, err)
	})

	t.Run("unlock_always_allowed", func(t *testing.T) {
		// Even an over-budget locked item may be unlocked; that is the
		// way out of the over-committed state.
		s := baseSnapshot(engine.Item{ID: 1, Name: "Emergency", Amount: 120000, Category: engine.CategorySavings, Locked: true})
		s2, err := s.ToggleLock(1)
		testutil.AssertNoError(t, err)
		if it, _ := s2.ItemByID(1); it.Locked {
			t.Error("expected item unlocked")
		}
	})
}

func TestCanLockItem(t *testing.T) {
	s := baseSnapshot(
		engine.Item{ID: 1, Name: "Emergency", Amount: 60000, Category: engine.CategorySavings},
		engine.Item{ID: 2, Name: "Vacation", Amount: 0, Category: engine.CategorySavings},
	)

	if s.CanLockItem(2, 0) {
		t.Error("expected zero candidate to be unlockable")
	}
	if !s.CanLockItem(2, 40000) {
		t.Error("expected candidate filling the budget exactly to be lockable")
	}
	if s.CanLockItem(2, 40001) {
		t.Error("expected candidate one cent over budget to be unlockable")
	}
	if s.CanLockItem(99, 1000) {
		t.Error("expected unknown item to be unlockable")
	}
}
