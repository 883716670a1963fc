package services

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"trifold/internal/engine"
	apperrors "trifold/internal/errors"
	"trifold/internal/models"
	"trifold/internal/pagination"
)

// sheetService handles sheet-level business logic: plans, splits, income,
// the optimize pass, and the report views.
type sheetService struct {
	db *gorm.DB
}

// NewSheetService creates a new SheetServicer.
func NewSheetService(db *gorm.DB) SheetServicer {
	return &sheetService{db: db}
}

// loadSheet fetches a sheet owned by the user with its items in display order.
func (s *sheetService) loadSheet(userID, sheetID uint) (*models.Sheet, error) {
	var sheet models.Sheet
	err := s.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC, id ASC")
	}).Where("user_id = ?", userID).First(&sheet, sheetID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSheetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &sheet, nil
}

// CreateSheet creates a sheet on the custom plan's default 50/20/30 split.
func (s *sheetService) CreateSheet(userID uint, name string) (*models.Sheet, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "sheet name is required")
	}

	plan, err := engine.PlanByName(engine.CustomPlanName)
	if err != nil {
		return nil, err
	}

	sheet := &models.Sheet{
		UserID:         userID,
		Name:           name,
		PlanName:       plan.Name,
		NeedsPercent:   plan.Needs,
		SavingsPercent: plan.Savings,
		WantsPercent:   plan.Wants,
	}
	if err := s.db.Create(sheet).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return sheet, nil
}

// GetUserSheets lists the user's sheets, newest first.
func (s *sheetService) GetUserSheets(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Sheet], error) {
	page.Defaults()

	query := s.db.Model(&models.Sheet{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var sheets []models.Sheet
	if err := query.Scopes(pagination.Paginate(page)).Order("created_at DESC").Find(&sheets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	resp := pagination.NewPageResponse(sheets, page.Page, page.PageSize, total)
	return &resp, nil
}

// GetSheetByID retrieves a sheet with its items.
func (s *sheetService) GetSheetByID(userID, sheetID uint) (*models.Sheet, error) {
	return s.loadSheet(userID, sheetID)
}

// RenameSheet sets the sheet's display name.
func (s *sheetService) RenameSheet(userID, sheetID uint, name string) (*models.Sheet, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "sheet name is required")
	}

	sheet, err := s.loadSheet(userID, sheetID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(sheet).Update("name", name).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	sheet.Name = name
	return sheet, nil
}

// DeleteSheet removes a sheet and its items.
func (s *sheetService) DeleteSheet(userID, sheetID uint) error {
	sheet, err := s.loadSheet(userID, sheetID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("sheet_id = ?", sheet.ID).Delete(&models.Item{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Delete(sheet).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
}

// SelectPlan switches the sheet to a built-in plan and adopts its split.
// Existing items and locks are untouched; only the targets move.
func (s *sheetService) SelectPlan(userID, sheetID uint, planName string) (*models.Sheet, error) {
	plan, err := engine.PlanByName(planName)
	if err != nil {
		return nil, err
	}

	sheet, err := s.loadSheet(userID, sheetID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"plan_name":       plan.Name,
		"needs_percent":   plan.Needs,
		"savings_percent": plan.Savings,
		"wants_percent":   plan.Wants,
	}
	if err := s.db.Model(sheet).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	sheet.PlanName = plan.Name
	sheet.NeedsPercent = plan.Needs
	sheet.SavingsPercent = plan.Savings
	sheet.WantsPercent = plan.Wants
	return sheet, nil
}

// SetSplit sets a hand-tuned percentage split. Any manual adjustment reverts
// the sheet to the custom plan. The three values need not sum to 100 while
// the user is still dragging sliders; the report gate enforces full
// allocation later.
func (s *sheetService) SetSplit(userID, sheetID uint, needs, savings, wants int) (*models.Sheet, error) {
	for _, pct := range []int{needs, savings, wants} {
		if pct < 0 || pct > 100 {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "percentages must be between 0 and 100")
		}
	}

	sheet, err := s.loadSheet(userID, sheetID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"plan_name":       engine.CustomPlanName,
		"needs_percent":   needs,
		"savings_percent": savings,
		"wants_percent":   wants,
	}
	if err := s.db.Model(sheet).Updates(updates).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	sheet.PlanName = engine.CustomPlanName
	sheet.NeedsPercent = needs
	sheet.SavingsPercent = savings
	sheet.WantsPercent = wants
	return sheet, nil
}

// SetIncome sets the sheet's monthly income in cents.
func (s *sheetService) SetIncome(userID, sheetID uint, incomeCents int64) (*models.Sheet, error) {
	if incomeCents < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "income must not be negative")
	}

	sheet, err := s.loadSheet(userID, sheetID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(sheet).Update("income_cents", incomeCents).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	sheet.IncomeCents = incomeCents
	return sheet, nil
}

// Summary builds the dashboard view of a sheet.
func (s *sheetService) Summary(userID, sheetID uint) (*SheetSummary, error) {
	sheet, err := s.loadSheet(userID, sheetID)
	if err != nil {
		return nil, err
	}

	snap := sheet.Snapshot()
	summary := &SheetSummary{
		SheetID:        sheet.ID,
		Name:           sheet.Name,
		PlanName:       sheet.PlanName,
		IncomeCents:    sheet.IncomeCents,
		Split:          snap.Split,
		TotalAllocated: snap.TotalAllocated(),
		Unallocated:    snap.Unallocated(),
		TotalPercent:   snap.TotalPercent(),
		Gate:           engine.Gate(snap),
	}

	for _, c := range engine.Categories() {
		items := snap.CategoryItems(c)
		locked := 0
		for _, it := range items {
			if it.Locked {
				locked++
			}
		}
		summary.Categories = append(summary.Categories, CategorySummary{
			Category:       c,
			TargetPercent:  snap.Split.Percent(c),
			TargetCents:    snap.CategoryTarget(c),
			AllocatedCents: snap.CategoryTotal(c),
			RemainingCents: snap.CategoryRemaining(c),
			LockedCents:    snap.CategoryLockedTotal(c),
			ItemCount:      len(items),
			LockedCount:    locked,
		})
	}

	return summary, nil
}

// Optimize runs the reconciliation pass and persists the adjusted amounts.
// Synthesized items become real rows; everything commits atomically.
func (s *sheetService) Optimize(userID, sheetID uint) (*OptimizeResult, error) {
	sheet, err := s.loadSheet(userID, sheetID)
	if err != nil {
		return nil, err
	}

	res, err := engine.Reconcile(sheet.Snapshot())
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		position := len(sheet.Items)
		for i, ch := range res.Changes {
			if ch.Created {
				item := &models.Item{
					SheetID:     sheet.ID,
					Name:        ch.Name,
					AmountCents: ch.NewAmount,
					Category:    ch.Category,
					Position:    position,
				}
				if err := tx.Create(item).Error; err != nil {
					return apperrors.Wrap(apperrors.ErrInternalServer, err)
				}
				res.Changes[i].ItemID = item.ID
				position++
				continue
			}
			if err := tx.Model(&models.Item{}).Where("id = ? AND sheet_id = ?", ch.ItemID, sheet.ID).
				Update("amount_cents", ch.NewAmount).Error; err != nil {
				return apperrors.Wrap(apperrors.ErrInternalServer, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sheet, err = s.loadSheet(userID, sheetID)
	if err != nil {
		return nil, err
	}
	return &OptimizeResult{Sheet: sheet, Changes: res.Changes}, nil
}

// BuildReport aggregates the report view. The readiness gate must be open.
func (s *sheetService) BuildReport(userID, sheetID uint) (*engine.Report, error) {
	sheet, err := s.loadSheet(userID, sheetID)
	if err != nil {
		return nil, err
	}

	snap := sheet.Snapshot()
	if err := engine.GateError(snap); err != nil {
		return nil, err
	}

	report := engine.BuildReport(snap)
	return &report, nil
}

// ExportCSV renders the sheet's items as a CSV document. The gate applies:
// an unbalanced budget cannot be exported, the same as the report view.
func (s *sheetService) ExportCSV(userID, sheetID uint) ([]byte, error) {
	sheet, err := s.loadSheet(userID, sheetID)
	if err != nil {
		return nil, err
	}

	snap := sheet.Snapshot()
	if err := engine.GateError(snap); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"Category", "Item", "Amount", "Percentage"}); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	for _, it := range snap.Items {
		row := []string{
			string(it.Category),
			it.Name,
			fmt.Sprintf("%d.%02d", it.Amount/100, it.Amount%100),
			fmt.Sprintf("%.2f", snap.ItemPercent(it)),
		}
		if err := w.Write(row); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return buf.Bytes(), nil
}
