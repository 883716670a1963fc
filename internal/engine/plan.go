package engine

import apperrors "trifold/internal/errors"

// CustomPlanName is the plan a sheet reverts to whenever the user adjusts
// the split by hand.
const CustomPlanName = "Custom Plan"

// Plan is a named needs/savings/wants percentage preset. Built-in plans sum
// to 100 by construction; the custom plan tracks whatever the user sets.
type Plan struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Needs       int    `json:"needs"`
	Savings     int    `json:"savings"`
	Wants       int    `json:"wants"`
}

// Split returns the plan's percentages as a Split.
func (p Plan) Split() Split {
	return Split{Needs: p.Needs, Savings: p.Savings, Wants: p.Wants}
}

var plans = []Plan{
	{
		Name:        CustomPlanName,
		Description: "Users with unique priorities who want full control.",
		Needs:       50,
		Savings:     20,
		Wants:       30,
	},
	{
		Name:        "Saver's Plan",
		Description: "Aggressive Savings for Goals or Early Retirement",
		Needs:       50,
		Savings:     35,
		Wants:       15,
	},
	{
		Name:        "Minimalist Plan",
		Description: "Frugal lifestyle, freelancers, or anyone reducing expenses to hit goals quickly.",
		Needs:       60,
		Savings:     25,
		Wants:       15,
	},
	{
		Name:        "Survival Plan",
		Description: "Students, Low-Income earners, or those in high cost-of-living areas prioritizing essentials.",
		Needs:       70,
		Savings:     20,
		Wants:       10,
	},
	{
		Name:        "Standard Plan",
		Description: "Beginners, steady income earners, those wanting a simple, balanced approach.",
		Needs:       50,
		Savings:     30,
		Wants:       20,
	},
}

// Plans returns the built-in budget plans in display order.
func Plans() []Plan {
	out := make([]Plan, len(plans))
	copy(out, plans)
	return out
}

// PlanByName looks up a built-in plan by its exact name.
func PlanByName(name string) (Plan, error) {
	for _, p := range plans {
		if p.Name == name {
			return p, nil
		}
	}
	return Plan{}, apperrors.ErrPlanNotFound
}
