package engine

import (
	"fmt"
	"math"
)

// Target converts a percentage share of income into cents. The floor policy
// (integer division truncates) guarantees the three category targets never
// sum above income, so no fractional cent is ever allocated twice.
func Target(percent int, incomeCents int64) int64 {
	if percent <= 0 || incomeCents <= 0 {
		return 0
	}
	return incomeCents * int64(percent) / 100
}

// CategoryTargets computes every category's dollar budget in cents. Each
// share floors individually, which strands a cent or two of income whenever
// income is not a multiple of 100; when the split sums to exactly 100 the
// stranded cents are handed out by largest remainder so the targets sum to
// income and full allocation stays reachable. Targets never sum above income.
func CategoryTargets(s Split, incomeCents int64) map[Category]int64 {
	targets := make(map[Category]int64, 3)
	if incomeCents <= 0 {
		for _, c := range Categories() {
			targets[c] = 0
		}
		return targets
	}

	rems := make(map[Category]int64, 3)
	var floored int64
	for _, c := range Categories() {
		pct := s.Percent(c)
		if pct <= 0 {
			targets[c] = 0
			continue
		}
		raw := incomeCents * int64(pct)
		targets[c] = raw / 100
		rems[c] = raw % 100
		floored += raw / 100
	}

	if s.Total() != 100 {
		return targets
	}

	// At most two residue cents exist, so each pass hands one cent to the
	// category with the largest remainder; canonical order breaks ties.
	for residue := incomeCents - floored; residue > 0; residue-- {
		best := CategoryNeeds
		var bestRem int64 = -1
		for _, c := range Categories() {
			if rems[c] > bestRem {
				best, bestRem = c, rems[c]
			}
		}
		targets[best]++
		rems[best] = -1
	}
	return targets
}

// DollarToPercent converts an amount into its share of income, rounded to two
// decimals. Display only: allocation math always goes through Target to avoid
// round-trip drift.
func DollarToPercent(amountCents, incomeCents int64) float64 {
	if incomeCents <= 0 {
		return 0
	}
	return math.Round(float64(amountCents)/float64(incomeCents)*100*100) / 100
}

// FormatCents renders a cent amount as a dollar string, e.g. 150000 -> "$1500.00".
func FormatCents(c int64) string {
	sign := ""
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s$%d.%02d", sign, c/100, c%100)
}
