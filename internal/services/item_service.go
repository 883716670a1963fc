package services

import (
	"errors"

	"gorm.io/gorm"

	"trifold/internal/engine"
	apperrors "trifold/internal/errors"
	"trifold/internal/models"
	"trifold/internal/pagination"
)

// itemService handles budget item business logic. Every mutation runs
// through the allocation engine against the full sheet snapshot, so the
// category and income ceilings hold no matter which route the change
// came in on.
type itemService struct {
	db *gorm.DB
}

// NewItemService creates a new ItemServicer.
func NewItemService(db *gorm.DB) ItemServicer {
	return &itemService{db: db}
}

// loadItemSheet fetches an item together with its owning sheet, verifying
// the sheet belongs to the user.
func (s *itemService) loadItemSheet(userID, itemID uint) (*models.Item, *models.Sheet, error) {
	var item models.Item
	if err := s.db.First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperrors.ErrItemNotFound
		}
		return nil, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var sheet models.Sheet
	err := s.db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC, id ASC")
	}).Where("user_id = ?", userID).First(&sheet, item.SheetID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Wrong owner reads the same as a missing item.
			return nil, nil, apperrors.ErrItemNotFound
		}
		return nil, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return &item, &sheet, nil
}

// CreateItem adds an item to a sheet. Items created with a positive amount
// are validated against the category and income ceilings and come back
// locked.
func (s *itemService) CreateItem(userID, sheetID uint, name string, amountCents int64, category engine.Category) (*models.Item, error) {
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

	_, created, err := sheet.Snapshot().AddItem(name, amountCents, category)
	if err != nil {
		return nil, err
	}

	item := &models.Item{
		SheetID:     sheet.ID,
		Name:        created.Name,
		AmountCents: created.Amount,
		Category:    created.Category,
		Locked:      created.Locked,
		Position:    len(sheet.Items),
	}
	if err := s.db.Create(item).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return item, nil
}

// GetSheetItems lists a sheet's items in display order.
func (s *itemService) GetSheetItems(userID, sheetID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Item], error) {
	page.Defaults()

	var sheet models.Sheet
	if err := s.db.Where("user_id = ?", userID).First(&sheet, sheetID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrSheetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	query := s.db.Model(&models.Item{}).Where("sheet_id = ?", sheetID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var items []models.Item
	if err := query.Scopes(pagination.Paginate(page)).Order("position ASC, id ASC").Find(&items).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	resp := pagination.NewPageResponse(items, page.Page, page.PageSize, total)
	return &resp, nil
}

// RenameItem sets an item's name, subject to the engine's naming rules.
func (s *itemService) RenameItem(userID, itemID uint, name string) (*models.Item, error) {
	item, sheet, err := s.loadItemSheet(userID, itemID)
	if err != nil {
		return nil, err
	}

	snap, err := sheet.Snapshot().RenameItem(item.ID, name)
	if err != nil {
		return nil, err
	}
	updated, _ := snap.ItemByID(item.ID)

	if err := s.db.Model(item).Update("name", updated.Name).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	item.Name = updated.Name
	return item, nil
}

// SetItemAmount sets an item's amount under the strict validation policy.
func (s *itemService) SetItemAmount(userID, itemID uint, amountCents int64) (*models.Item, error) {
	item, sheet, err := s.loadItemSheet(userID, itemID)
	if err != nil {
		return nil, err
	}

	if _, err := sheet.Snapshot().SetItemAmount(item.ID, amountCents); err != nil {
		return nil, err
	}

	if err := s.db.Model(item).Update("amount_cents", amountCents).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	item.AmountCents = amountCents
	return item, nil
}

// DeleteItem removes an item from its sheet.
func (s *itemService) DeleteItem(userID, itemID uint) error {
	item, _, err := s.loadItemSheet(userID, itemID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(item).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// ToggleLock flips an item's lock state, subject to lock eligibility.
func (s *itemService) ToggleLock(userID, itemID uint) (*models.Item, error) {
	item, sheet, err := s.loadItemSheet(userID, itemID)
	if err != nil {
		return nil, err
	}

	snap, err := sheet.Snapshot().ToggleLock(item.ID)
	if err != nil {
		return nil, err
	}
	updated, _ := snap.ItemByID(item.ID)

	if err := s.db.Model(item).Update("locked", updated.Locked).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	item.Locked = updated.Locked
	return item, nil
}
