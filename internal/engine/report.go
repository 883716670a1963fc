package engine

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// TipType grades a smart tip's severity.
type TipType string

const (
	TipSuccess  TipType = "success"
	TipInfo     TipType = "info"
	TipWarning  TipType = "warning"
	TipCritical TipType = "critical"
)

// SmartTip is one piece of rule-based advice derived from the budget data.
// Priority runs 1-10; the report keeps the five highest.
type SmartTip struct {
	ID       string   `json:"id"`
	Type     TipType  `json:"type"`
	Topic    string   `json:"topic"`
	Title    string   `json:"title"`
	Message  string   `json:"message"`
	Items    []string `json:"items,omitempty"`
	Priority int      `json:"priority"`
}

// CategoryPerformance compares a category's actual allocation against its
// target. Variance is in percentage points; a band of ±5 counts as on track.
type CategoryPerformance struct {
	Category       Category `json:"category"`
	TargetPercent  int      `json:"target_percent"`
	TargetAmount   int64    `json:"target_amount_cents"`
	ActualAmount   int64    `json:"actual_amount_cents"`
	ActualPercent  float64  `json:"actual_percent"`
	Variance       float64  `json:"variance"`
	Remaining      int64    `json:"remaining_cents"`
	ItemCount      int      `json:"item_count"`
	BiggestExpense string   `json:"biggest_expense"`
	Status         string   `json:"status"`
}

// SavingsGoal tracks progress toward a fixed target out of the monthly
// savings allocation.
type SavingsGoal struct {
	Name     string `json:"name"`
	Target   int64  `json:"target_cents"`
	Current  int64  `json:"current_cents"`
	Priority string `json:"priority"`
	Timeline string `json:"timeline"`
}

// Report is the aggregated report view for a budget that has passed the
// readiness gate.
type Report struct {
	Income         int64                 `json:"income_cents"`
	TotalAllocated int64                 `json:"total_allocated_cents"`
	Unallocated    int64                 `json:"unallocated_cents"`
	Performance    []CategoryPerformance `json:"performance"`
	SmartTips      []SmartTip            `json:"smart_tips"`
	SavingsGoals   []SavingsGoal         `json:"savings_goals"`
}

// BuildReport aggregates the snapshot into the report view. It assumes the
// caller has already checked the readiness gate; it never fails on its own.
func BuildReport(s Snapshot) Report {
	return Report{
		Income:         s.Income,
		TotalAllocated: s.TotalAllocated(),
		Unallocated:    s.Unallocated(),
		Performance:    categoryPerformance(s),
		SmartTips:      smartTips(s),
		SavingsGoals:   savingsGoals(s),
	}
}

func categoryPerformance(s Snapshot) []CategoryPerformance {
	if s.Income == 0 {
		return nil
	}

	out := make([]CategoryPerformance, 0, len(Categories()))
	for _, c := range Categories() {
		items := s.CategoryItems(c)
		actual := s.CategoryTotal(c)
		actualPct := DollarToPercent(actual, s.Income)
		variance := actualPct - float64(s.Split.Percent(c))

		biggest := "None"
		var biggestAmt int64
		for _, it := range items {
			if it.Amount > biggestAmt {
				biggest, biggestAmt = it.Name, it.Amount
			}
		}

		status := "good"
		switch {
		case variance > 5:
			status = "over"
		case variance < -5:
			status = "under"
		}

		out = append(out, CategoryPerformance{
			Category:       c,
			TargetPercent:  s.Split.Percent(c),
			TargetAmount:   s.CategoryTarget(c),
			ActualAmount:   actual,
			ActualPercent:  actualPct,
			Variance:       variance,
			Remaining:      s.CategoryTarget(c) - actual,
			ItemCount:      len(items),
			BiggestExpense: biggest,
			Status:         status,
		})
	}
	return out
}

func nameContains(it Item, substrs ...string) bool {
	name := strings.ToLower(it.Name)
	for _, sub := range substrs {
		if strings.Contains(name, sub) {
			return true
		}
	}
	return false
}

func smartTips(s Snapshot) []SmartTip {
	var tips []SmartTip

	income := s.Income
	allocated := s.TotalAllocated()
	needsTotal := s.CategoryTotal(CategoryNeeds)
	savingsPct := DollarToPercent(s.CategoryTotal(CategorySavings), income)
	needsPct := DollarToPercent(needsTotal, income)

	// Emergency fund coverage, measured in months of needs spending.
	var emergency []Item
	for _, it := range s.Items {
		if nameContains(it, "emergency", "fund") {
			emergency = append(emergency, it)
		}
	}
	if len(emergency) == 0 {
		tips = append(tips, SmartTip{
			ID:       "no-emergency-fund",
			Type:     TipCritical,
			Topic:    "emergency",
			Title:    "Missing Emergency Fund",
			Message:  "You don't have an emergency fund allocated. Experts recommend 3-6 months of expenses for unexpected situations.",
			Priority: 10,
		})
	} else {
		var emergencyTotal int64
		names := make([]string, 0, len(emergency))
		for _, it := range emergency {
			emergencyTotal += it.Amount
			names = append(names, it.Name)
		}
		needsBase := needsTotal
		if needsBase == 0 {
			needsBase = 1
		}
		months := float64(emergencyTotal) / float64(needsBase)
		if months < 3 {
			tips = append(tips, SmartTip{
				ID:    "low-emergency-fund",
				Type:  TipWarning,
				Topic: "emergency",
				Title: "Boost Your Emergency Fund",
				Message: fmt.Sprintf("Your emergency fund of %s covers only %.1f months of needs. Consider increasing it to cover 3-6 months.",
					FormatCents(emergencyTotal), months),
				Items:    names,
				Priority: 8,
			})
		}
	}

	// Savings rate against the 10/20 percent guideposts.
	if savingsPct < 10 {
		var names []string
		for _, it := range s.CategoryItems(CategorySavings) {
			names = append(names, fmt.Sprintf("%s: %s", it.Name, FormatCents(it.Amount)))
		}
		tips = append(tips, SmartTip{
			ID:    "low-savings-rate",
			Type:  TipWarning,
			Topic: "saving",
			Title: "Increase Your Savings Rate",
			Message: fmt.Sprintf("Your savings rate is %.1f%%. Financial experts recommend saving at least 20%% of income.",
				savingsPct),
			Items:    names,
			Priority: 9,
		})
	} else if savingsPct >= 20 {
		tips = append(tips, SmartTip{
			ID:    "excellent-savings",
			Type:  TipSuccess,
			Topic: "saving",
			Title: "Excellent Savings Rate!",
			Message: fmt.Sprintf("Your %.1f%% savings rate is fantastic! You're building a strong financial future.",
				savingsPct),
			Priority: 6,
		})
	}

	// Spending above income, pointing at the heaviest category.
	if allocated > income {
		heaviest := CategoryNeeds
		var heaviestTotal int64 = -1
		for _, c := range Categories() {
			if t := s.CategoryTotal(c); t > heaviestTotal {
				heaviest, heaviestTotal = c, t
			}
		}
		tips = append(tips, SmartTip{
			ID:    "over-budget",
			Type:  TipCritical,
			Topic: "budgeting",
			Title: "Budget Exceeds Income",
			Message: fmt.Sprintf("You're spending %s more than your income. Consider reducing your %s expenses.",
				FormatCents(allocated-income), heaviest),
			Priority: 10,
		})
	}

	// A single discretionary item eating more than 15% of income.
	var biggest Item
	for _, it := range s.Items {
		if it.Amount*100 > income*15 && it.Amount > biggest.Amount {
			biggest = it
		}
	}
	if biggest.ID != 0 && biggest.Category == CategoryWants {
		tips = append(tips, SmartTip{
			ID:    "high-wants-spending",
			Type:  TipWarning,
			Topic: "budgeting",
			Title: "High Discretionary Spending",
			Message: fmt.Sprintf("%q (%s) is %.1f%% of your income. Consider if this aligns with your financial goals.",
				biggest.Name, FormatCents(biggest.Amount), DollarToPercent(biggest.Amount, income)),
			Items:    []string{biggest.Name},
			Priority: 7,
		})
	}

	// Essential spending well past the usual 50% share.
	if needsPct > 60 {
		needsItems := s.CategoryItems(CategoryNeeds)
		topNeed := ""
		var topAmt int64 = -1
		names := make([]string, 0, len(needsItems))
		for _, it := range needsItems {
			names = append(names, fmt.Sprintf("%s: %s", it.Name, FormatCents(it.Amount)))
			if it.Amount > topAmt {
				topNeed, topAmt = it.Name, it.Amount
			}
		}
		tips = append(tips, SmartTip{
			ID:    "high-needs-spending",
			Type:  TipInfo,
			Topic: "budgeting",
			Title: "High Essential Expenses",
			Message: fmt.Sprintf("Your needs spending (%.1f%%) is above the recommended 50%%. Look for ways to optimize costs like %q.",
				needsPct, topNeed),
			Items:    names,
			Priority: 6,
		})
	}

	// Good savers with no investment vehicle named anywhere.
	hasInvestment := false
	for _, it := range s.Items {
		if nameContains(it, "invest", "401k", "ira", "stock") {
			hasInvestment = true
			break
		}
	}
	if !hasInvestment && savingsPct > 15 {
		tips = append(tips, SmartTip{
			ID:       "consider-investing",
			Type:     TipInfo,
			Topic:    "investing",
			Title:    "Consider Investment Options",
			Message:  "You have good savings habits! Consider allocating some savings to investments like 401k, IRA, or index funds for long-term growth.",
			Priority: 5,
		})
	}

	// Debt service over 20% of income.
	var debtTotal int64
	var debtNames []string
	for _, it := range s.Items {
		if nameContains(it, "debt", "loan", "credit", "payment") {
			debtTotal += it.Amount
			debtNames = append(debtNames, fmt.Sprintf("%s: %s", it.Name, FormatCents(it.Amount)))
		}
	}
	if len(debtNames) > 0 {
		if debtPct := DollarToPercent(debtTotal, income); debtPct > 20 {
			tips = append(tips, SmartTip{
				ID:    "high-debt-payments",
				Type:  TipWarning,
				Topic: "debt",
				Title: "High Debt Payments",
				Message: fmt.Sprintf("Debt payments (%.1f%% of income) are high. Consider debt consolidation or avalanche method to pay off high-interest debt first.",
					debtPct),
				Items:    debtNames,
				Priority: 8,
			})
		}
	}

	// More than 5% of income sitting unallocated.
	if unallocated := s.Unallocated(); unallocated*100 > income*5 {
		tips = append(tips, SmartTip{
			ID:    "unallocated-money",
			Type:  TipInfo,
			Topic: "allocation",
			Title: "Optimize Unallocated Funds",
			Message: fmt.Sprintf("You have %s unallocated. Consider directing this to emergency fund, savings, or debt payments for better financial health.",
				FormatCents(unallocated)),
			Priority: 7,
		})
	}

	sort.SliceStable(tips, func(i, j int) bool { return tips[i].Priority > tips[j].Priority })
	if len(tips) > 5 {
		tips = tips[:5]
	}
	return tips
}

// goalTimeline estimates months to reach target at the current monthly
// contribution rate. The contribution is treated as a yearly pool paid out
// over twelve months, matching the progress figures shown alongside it.
func goalTimeline(target, current int64) string {
	if current <= 0 {
		return "∞"
	}
	if target <= current {
		return "0 months"
	}
	months := math.Ceil(float64(target-current) / (float64(current) / 12))
	return fmt.Sprintf("%d months", int64(months))
}

func savingsGoals(s Snapshot) []SavingsGoal {
	savings := s.CategoryTotal(CategorySavings)

	emergencyCur := savings * 70 / 100
	vacationCur := savings * 20 / 100
	investCur := savings * 10 / 100

	return []SavingsGoal{
		{
			Name:     "Emergency Fund",
			Target:   s.Income * 6,
			Current:  emergencyCur,
			Priority: "high",
			Timeline: goalTimeline(s.Income*6, emergencyCur),
		},
		{
			Name:     "Vacation Fund",
			Target:   300000,
			Current:  vacationCur,
			Priority: "medium",
			Timeline: goalTimeline(300000, vacationCur),
		},
		{
			Name:     "Investment Portfolio",
			Target:   2500000,
			Current:  investCur,
			Priority: "low",
			Timeline: goalTimeline(2500000, investCur),
		},
	}
}
