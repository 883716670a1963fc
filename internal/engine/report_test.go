package engine_test

import (
	"strings"
	"testing"

	"trifold/internal/engine"
)

// reportSnapshot is a balanced $5000.00 budget with an emergency fund and a
// big discretionary item, enough to trip several tip rules at once.
func reportSnapshot() engine.Snapshot {
	return baseSnapshot(
		engine.Item{ID: 1, Name: "Rent", Amount: 200000, Category: engine.CategoryNeeds},
		engine.Item{ID: 2, Name: "Groceries", Amount: 50000, Category: engine.CategoryNeeds},
		engine.Item{ID: 3, Name: "Emergency Fund", Amount: 100000, Category: engine.CategorySavings},
		engine.Item{ID: 4, Name: "Gaming PC", Amount: 100000, Category: engine.CategoryWants},
		engine.Item{ID: 5, Name: "Dining", Amount: 50000, Category: engine.CategoryWants},
	)
}

func findTip(tips []engine.SmartTip, id string) *engine.SmartTip {
	for i := range tips {
		if tips[i].ID == id {
			return &tips[i]
		}
	}
	return nil
}

func TestBuildReport(t *testing.T) {
	t.Run("totals", func(t *testing.T) {
		r := engine.BuildReport(reportSnapshot())
		if r.Income != 500000 {
			t.Errorf("expected income 500000, got %d", r.Income)
		}
		if r.TotalAllocated != 500000 {
			t.Errorf("expected allocated 500000, got %d", r.TotalAllocated)
		}
		if r.Unallocated != 0 {
			t.Errorf("expected 0 unallocated, got %d", r.Unallocated)
		}
	})

	t.Run("category_performance", func(t *testing.T) {
		r := engine.BuildReport(reportSnapshot())
		if len(r.Performance) != 3 {
			t.Fatalf("expected 3 categories, got %d", len(r.Performance))
		}

		needs := r.Performance[0]
		if needs.Category != engine.CategoryNeeds {
			t.Fatalf("expected needs first, got %s", needs.Category)
		}
		if needs.TargetAmount != 250000 || needs.ActualAmount != 250000 {
			t.Errorf("unexpected needs amounts: %+v", needs)
		}
		if needs.Status != "good" {
			t.Errorf("expected good, got %s", needs.Status)
		}
		if needs.BiggestExpense != "Rent" {
			t.Errorf("expected Rent, got %s", needs.BiggestExpense)
		}
		if needs.ItemCount != 2 {
			t.Errorf("expected 2 items, got %d", needs.ItemCount)
		}
	})

	t.Run("performance_status_bands", func(t *testing.T) {
		// Needs at 56% of income against a 50% target is over the +5
		// variance band; savings at 4% against 20% is under.
		s := baseSnapshot(
			engine.Item{ID: 1, Name: "Rent", Amount: 280000, Category: engine.CategoryNeeds},
			engine.Item{ID: 2, Name: "Emergency", Amount: 20000, Category: engine.CategorySavings},
			engine.Item{ID: 3, Name: "Dining", Amount: 150000, Category: engine.CategoryWants},
		)
		r := engine.BuildReport(s)
		if r.Performance[0].Status != "over" {
			t.Errorf("expected needs over, got %s", r.Performance[0].Status)
		}
		if r.Performance[1].Status != "under" {
			t.Errorf("expected savings under, got %s", r.Performance[1].Status)
		}
		if r.Performance[2].Status != "good" {
			t.Errorf("expected wants good, got %s", r.Performance[2].Status)
		}
	})

	t.Run("empty_performance_without_income", func(t *testing.T) {
		r := engine.BuildReport(engine.Snapshot{})
		if len(r.Performance) != 0 {
			t.Errorf("expected no performance rows, got %d", len(r.Performance))
		}
	})
}

func TestSmartTips(t *testing.T) {
	t.Run("missing_emergency_fund_is_critical", func(t *testing.T) {
		s := baseSnapshot(
			engine.Item{ID: 1, Name: "Rent", Amount: 250000, Category: engine.CategoryNeeds},
			engine.Item{ID: 2, Name: "Vacation", Amount: 100000, Category: engine.CategorySavings},
			engine.Item{ID: 3, Name: "Dining", Amount: 150000, Category: engine.CategoryWants},
		)
		r := engine.BuildReport(s)

		tip := findTip(r.SmartTips, "no-emergency-fund")
		if tip == nil {
			t.Fatal("expected no-emergency-fund tip")
		}
		if tip.Type != engine.TipCritical {
			t.Errorf("expected critical, got %s", tip.Type)
		}
		// Priority 10 sorts it first.
		if r.SmartTips[0].ID != "no-emergency-fund" {
			t.Errorf("expected no-emergency-fund first, got %s", r.SmartTips[0].ID)
		}
	})

	t.Run("low_emergency_fund_names_the_items", func(t *testing.T) {
		r := engine.BuildReport(reportSnapshot())

		tip := findTip(r.SmartTips, "low-emergency-fund")
		if tip == nil {
			t.Fatal("expected low-emergency-fund tip")
		}
		if len(tip.Items) != 1 || tip.Items[0] != "Emergency Fund" {
			t.Errorf("expected Emergency Fund named, got %v", tip.Items)
		}
		if !strings.Contains(tip.Message, "$1000.00") {
			t.Errorf("expected fund amount in message, got %q", tip.Message)
		}
	})

	t.Run("savings_rate_guideposts", func(t *testing.T) {
		r := engine.BuildReport(reportSnapshot())
		if tip := findTip(r.SmartTips, "excellent-savings"); tip == nil {
			t.Error("expected excellent-savings at a 20% rate")
		}

		low := baseSnapshot(
			engine.Item{ID: 1, Name: "Emergency Fund", Amount: 20000, Category: engine.CategorySavings},
		)
		r = engine.BuildReport(low)
		if tip := findTip(r.SmartTips, "low-savings-rate"); tip == nil {
			t.Error("expected low-savings-rate at a 4% rate")
		}
	})

	t.Run("high_discretionary_item_flagged", func(t *testing.T) {
		// Gaming PC is 20% of income and sits in wants.
		r := engine.BuildReport(reportSnapshot())

		tip := findTip(r.SmartTips, "high-wants-spending")
		if tip == nil {
			t.Fatal("expected high-wants-spending tip")
		}
		if !strings.Contains(tip.Message, "Gaming PC") {
			t.Errorf("expected item named in message, got %q", tip.Message)
		}
	})

	t.Run("debt_load_flagged_over_20_percent", func(t *testing.T) {
		s := baseSnapshot(
			engine.Item{ID: 1, Name: "Car Loan", Amount: 80000, Category: engine.CategoryNeeds},
			engine.Item{ID: 2, Name: "Credit Card", Amount: 40000, Category: engine.CategoryNeeds},
		)
		r := engine.BuildReport(s)

		tip := findTip(r.SmartTips, "high-debt-payments")
		if tip == nil {
			t.Fatal("expected high-debt-payments tip")
		}
		if len(tip.Items) != 2 {
			t.Errorf("expected both debt items named, got %v", tip.Items)
		}
	})

	t.Run("caps_at_five_tips_by_priority", func(t *testing.T) {
		// A messy budget trips most rules at once; only the five highest
		// priorities survive.
		s := baseSnapshot(
			engine.Item{ID: 1, Name: "Rent", Amount: 290000, Category: engine.CategoryNeeds},
			engine.Item{ID: 2, Name: "Car Loan", Amount: 120000, Category: engine.CategoryNeeds},
			engine.Item{ID: 3, Name: "Shopping", Amount: 110000, Category: engine.CategoryWants},
		)
		r := engine.BuildReport(s)

		if len(r.SmartTips) > 5 {
			t.Fatalf("expected at most 5 tips, got %d", len(r.SmartTips))
		}
		for i := 1; i < len(r.SmartTips); i++ {
			if r.SmartTips[i].Priority > r.SmartTips[i-1].Priority {
				t.Errorf("tips not sorted by priority: %s before %s",
					r.SmartTips[i-1].ID, r.SmartTips[i].ID)
			}
		}
		if tip := findTip(r.SmartTips, "over-budget"); tip == nil {
			t.Error("expected over-budget tip in the top five")
		}
	})
}

func TestSavingsGoals(t *testing.T) {
	r := engine.BuildReport(reportSnapshot())
	if len(r.SavingsGoals) != 3 {
		t.Fatalf("expected 3 goals, got %d", len(r.SavingsGoals))
	}

	emergency := r.SavingsGoals[0]
	if emergency.Name != "Emergency Fund" {
		t.Fatalf("expected Emergency Fund first, got %s", emergency.Name)
	}
	if emergency.Target != 3000000 {
		t.Errorf("expected target of six months income, got %d", emergency.Target)
	}
	if emergency.Current != 70000 {
		t.Errorf("expected 70%% of savings, got %d", emergency.Current)
	}

	vacation := r.SavingsGoals[1]
	if vacation.Target != 300000 || vacation.Current != 20000 {
		t.Errorf("unexpected vacation goal: %+v", vacation)
	}

	t.Run("no_savings_means_no_timeline", func(t *testing.T) {
		r := engine.BuildReport(baseSnapshot())
		for _, g := range r.SavingsGoals {
			if g.Timeline != "∞" {
				t.Errorf("%s: expected ∞, got %s", g.Name, g.Timeline)
			}
		}
	})
}
