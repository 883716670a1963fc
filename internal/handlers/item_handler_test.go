package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"trifold/internal/engine"
	apperrors "trifold/internal/errors"
	"trifold/internal/models"
	"trifold/internal/pagination"
	"trifold/internal/services"
)

var _ services.ItemServicer = (*mockItemService)(nil)

type mockItemService struct {
	createItemFn    func(userID, sheetID uint, name string, amountCents int64, category engine.Category) (*models.Item, error)
	getSheetItemsFn func(userID, sheetID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Item], error)
	renameItemFn    func(userID, itemID uint, name string) (*models.Item, error)
	setItemAmountFn func(userID, itemID uint, amountCents int64) (*models.Item, error)
	deleteItemFn    func(userID, itemID uint) error
	toggleLockFn    func(userID, itemID uint) (*models.Item, error)
}

func (m *mockItemService) CreateItem(userID, sheetID uint, name string, amountCents int64, category engine.Category) (*models.Item, error) {
	if m.createItemFn != nil {
		return m.createItemFn(userID, sheetID, name, amountCents, category)
	}
	return &models.Item{SheetID: sheetID, Name: name, AmountCents: amountCents, Category: category, Locked: amountCents > 0}, nil
}

func (m *mockItemService) GetSheetItems(userID, sheetID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Item], error) {
	if m.getSheetItemsFn != nil {
		return m.getSheetItemsFn(userID, sheetID, page)
	}
	return &pagination.PageResponse[models.Item]{Data: []models.Item{}}, nil
}

func (m *mockItemService) RenameItem(userID, itemID uint, name string) (*models.Item, error) {
	if m.renameItemFn != nil {
		return m.renameItemFn(userID, itemID, name)
	}
	return &models.Item{Base: models.Base{ID: itemID}, Name: name}, nil
}

func (m *mockItemService) SetItemAmount(userID, itemID uint, amountCents int64) (*models.Item, error) {
	if m.setItemAmountFn != nil {
		return m.setItemAmountFn(userID, itemID, amountCents)
	}
	return &models.Item{Base: models.Base{ID: itemID}, AmountCents: amountCents}, nil
}

func (m *mockItemService) DeleteItem(userID, itemID uint) error {
	if m.deleteItemFn != nil {
		return m.deleteItemFn(userID, itemID)
	}
	return nil
}

func (m *mockItemService) ToggleLock(userID, itemID uint) (*models.Item, error) {
	if m.toggleLockFn != nil {
		return m.toggleLockFn(userID, itemID)
	}
	return &models.Item{Base: models.Base{ID: itemID}, Locked: true}, nil
}

func setupItemRouter(svc services.ItemServicer) *gin.Engine {
	handler := NewItemHandler(svc, &mockAuditService{})
	r := gin.New()
	authed := r.Group("/", injectUserID(1))
	authed.POST("/sheets/:id/items", handler.CreateItem)
	authed.GET("/sheets/:id/items", handler.GetItems)
	authed.PATCH("/items/:id", handler.RenameItem)
	authed.PUT("/items/:id/amount", handler.SetAmount)
	authed.DELETE("/items/:id", handler.DeleteItem)
	authed.POST("/items/:id/lock", handler.ToggleLock)
	return r
}

func TestItemHandler_CreateItem(t *testing.T) {
	t.Run("returns 201 with the created item", func(t *testing.T) {
		svc := &mockItemService{
			createItemFn: func(_, sheetID uint, name string, amountCents int64, category engine.Category) (*models.Item, error) {
				return &models.Item{
					Base:        models.Base{ID: 5},
					SheetID:     sheetID,
					Name:        name,
					AmountCents: amountCents,
					Category:    category,
					Locked:      true,
				}, nil
			},
		}
		r := setupItemRouter(svc)

		rec := doRequest(r, "POST", "/sheets/1/items",
			`{"name":"Rent","amount_cents":150000,"category":"needs"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		item := result["item"].(map[string]interface{})
		if item["locked"] != true {
			t.Error("expected created item to come back locked")
		}
	})

	t.Run("returns 400 on unknown category", func(t *testing.T) {
		r := setupItemRouter(&mockItemService{})

		rec := doRequest(r, "POST", "/sheets/1/items",
			`{"name":"Rent","amount_cents":1000,"category":"luxuries"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 409 when the category is over budget", func(t *testing.T) {
		svc := &mockItemService{
			createItemFn: func(_, _ uint, _ string, _ int64, _ engine.Category) (*models.Item, error) {
				return nil, apperrors.ErrCategoryOverBudget
			},
		}
		r := setupItemRouter(svc)

		rec := doRequest(r, "POST", "/sheets/1/items",
			`{"name":"Rent","amount_cents":1000,"category":"needs"}`)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "CATEGORY_OVER_BUDGET")
	})

	t.Run("returns 400 when an unnamed item carries an amount", func(t *testing.T) {
		svc := &mockItemService{
			createItemFn: func(_, _ uint, _ string, _ int64, _ engine.Category) (*models.Item, error) {
				return nil, apperrors.ErrNameRequired
			},
		}
		r := setupItemRouter(svc)

		rec := doRequest(r, "POST", "/sheets/1/items",
			`{"name":"","amount_cents":1000,"category":"wants"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "NAME_REQUIRED")
	})
}

func TestItemHandler_SetAmount(t *testing.T) {
	t.Run("passes the amount through", func(t *testing.T) {
		var got int64
		svc := &mockItemService{
			setItemAmountFn: func(_, itemID uint, amountCents int64) (*models.Item, error) {
				got = amountCents
				return &models.Item{Base: models.Base{ID: itemID}, AmountCents: amountCents}, nil
			},
		}
		r := setupItemRouter(svc)

		rec := doRequest(r, "PUT", "/items/2/amount", `{"amount_cents":42000}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if got != 42000 {
			t.Errorf("expected amount forwarded, got %d", got)
		}
	})

	t.Run("returns 400 when the amount exceeds the budget", func(t *testing.T) {
		svc := &mockItemService{
			setItemAmountFn: func(_, _ uint, _ int64) (*models.Item, error) {
				return nil, apperrors.ErrAmountOverBudget
			},
		}
		r := setupItemRouter(svc)

		rec := doRequest(r, "PUT", "/items/2/amount", `{"amount_cents":9900000}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "AMOUNT_OVER_BUDGET")
	})

	t.Run("returns 409 when the item is locked", func(t *testing.T) {
		svc := &mockItemService{
			setItemAmountFn: func(_, _ uint, _ int64) (*models.Item, error) {
				return nil, apperrors.ErrItemLocked
			},
		}
		r := setupItemRouter(svc)

		rec := doRequest(r, "PUT", "/items/2/amount", `{"amount_cents":1000}`)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "ITEM_LOCKED")
	})
}

func TestItemHandler_ToggleLock(t *testing.T) {
	t.Run("returns the toggled item", func(t *testing.T) {
		svc := &mockItemService{
			toggleLockFn: func(_, itemID uint) (*models.Item, error) {
				return &models.Item{Base: models.Base{ID: itemID}, Locked: false}, nil
			},
		}
		r := setupItemRouter(svc)

		rec := doRequest(r, "POST", "/items/2/lock", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		result := parseJSON(t, rec)
		item := result["item"].(map[string]interface{})
		if item["locked"] != false {
			t.Errorf("expected unlocked item, got %v", item["locked"])
		}
	})

	t.Run("returns 409 when the lock is refused", func(t *testing.T) {
		svc := &mockItemService{
			toggleLockFn: func(_, _ uint) (*models.Item, error) {
				return nil, apperrors.WithMessage(apperrors.ErrLockRefused, "Enter amount to lock")
			},
		}
		r := setupItemRouter(svc)

		rec := doRequest(r, "POST", "/items/2/lock", "")

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "LOCK_REFUSED")
	})
}

func TestItemHandler_DeleteItem(t *testing.T) {
	t.Run("returns 204", func(t *testing.T) {
		r := setupItemRouter(&mockItemService{})

		rec := doRequest(r, "DELETE", "/items/2", "")

		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", rec.Code)
		}
	})

	t.Run("returns 404 for an unknown item", func(t *testing.T) {
		svc := &mockItemService{
			deleteItemFn: func(_, _ uint) error {
				return apperrors.ErrItemNotFound
			},
		}
		r := setupItemRouter(svc)

		rec := doRequest(r, "DELETE", "/items/99", "")

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "ITEM_NOT_FOUND")
	})
}
