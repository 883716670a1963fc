package models

import "trifold/internal/engine"

// Sheet is one monthly budget: an income figure, the active plan and its
// percentage split, and the budget items hanging off it. The split columns
// are denormalized from the plan so a custom split survives plan renames.
type Sheet struct {
	Base
	UserID         uint   `gorm:"not null;index" json:"user_id"`
	Name           string `gorm:"not null" json:"name"`
	IncomeCents    int64  `gorm:"not null;default:0" json:"income_cents"`
	PlanName       string `gorm:"not null" json:"plan_name"`
	NeedsPercent   int    `gorm:"not null;default:50" json:"needs_percent"`
	SavingsPercent int    `gorm:"not null;default:20" json:"savings_percent"`
	WantsPercent   int    `gorm:"not null;default:30" json:"wants_percent"`
	Items          []Item `gorm:"foreignKey:SheetID" json:"items,omitempty"`
}

// Split returns the sheet's percentage split.
func (s *Sheet) Split() engine.Split {
	return engine.Split{Needs: s.NeedsPercent, Savings: s.SavingsPercent, Wants: s.WantsPercent}
}

// Snapshot builds the engine view of the sheet from its loaded items.
func (s *Sheet) Snapshot() engine.Snapshot {
	snap := engine.Snapshot{Income: s.IncomeCents, Split: s.Split()}
	for _, it := range s.Items {
		snap.Items = append(snap.Items, it.EngineItem())
	}
	return snap
}
