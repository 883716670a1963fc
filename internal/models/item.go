package models

import "trifold/internal/engine"

// Item is one budget line on a sheet. Amounts are integer cents. Locked
// items are excluded from the optimize pass and cannot be edited until
// unlocked.
type Item struct {
	Base
	SheetID     uint            `gorm:"not null;index" json:"sheet_id"`
	Name        string          `json:"name"`
	AmountCents int64           `gorm:"not null;default:0" json:"amount_cents"`
	Category    engine.Category `gorm:"not null;index" json:"category"`
	Locked      bool            `gorm:"not null;default:false" json:"locked"`
	Position    int             `gorm:"not null;default:0" json:"position"`
}

// EngineItem converts the row to its engine representation.
func (i *Item) EngineItem() engine.Item {
	return engine.Item{
		ID:       i.ID,
		Name:     i.Name,
		Amount:   i.AmountCents,
		Category: i.Category,
		Locked:   i.Locked,
	}
}
