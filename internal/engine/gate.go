package engine

import apperrors "trifold/internal/errors"

// ReportGate is the readiness check for the report view. Every blocking
// condition is reported at once so the user can fix them in a single pass.
type ReportGate struct {
	CanView     bool       `json:"can_view"`
	OverBudget  []Category `json:"over_budget,omitempty"`
	Empty       []Category `json:"empty,omitempty"`
	Underfunded []Category `json:"underfunded,omitempty"`
	Unallocated int64      `json:"unallocated_cents"`
}

// Gate evaluates whether the snapshot is ready for the report view: no
// category over budget, no empty category, no category whose locked items
// alone exceed its target, and every cent of income allocated.
func Gate(s Snapshot) ReportGate {
	g := ReportGate{
		OverBudget:  s.OverBudgetCategories(),
		Empty:       s.EmptyCategories(),
		Underfunded: s.UnderfundedCategories(),
		Unallocated: s.Unallocated(),
	}
	g.CanView = len(g.OverBudget) == 0 && len(g.Empty) == 0 && len(g.Underfunded) == 0 && g.Unallocated <= 0
	return g
}

// GateError returns the blocking error for a snapshot not ready for the
// report view, or nil when the gate is open.
func GateError(s Snapshot) error {
	g := Gate(s)
	if g.CanView {
		return nil
	}
	switch {
	case len(g.Underfunded) > 0:
		return apperrors.ErrLockedOverBudget
	case len(g.OverBudget) > 0:
		return apperrors.WithMessage(apperrors.ErrReportBlocked, "A category is over budget")
	case len(g.Empty) > 0:
		return apperrors.WithMessage(apperrors.ErrReportBlocked, "Every category needs at least one item")
	default:
		return apperrors.WithMessage(apperrors.ErrReportBlocked, "Allocate your full income before viewing the report")
	}
}
