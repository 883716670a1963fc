package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"trifold/internal/engine"
	apperrors "trifold/internal/errors"
	"trifold/internal/pagination"
	"trifold/internal/services"
)

// ItemHandler handles budget item requests.
type ItemHandler struct {
	itemService  services.ItemServicer
	auditService services.AuditServicer
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(itemService services.ItemServicer, auditService services.AuditServicer) *ItemHandler {
	return &ItemHandler{itemService: itemService, auditService: auditService}
}

// CreateItemRequest represents the request payload for creating an item.
// Name may be empty only for a zero-amount placeholder.
type CreateItemRequest struct {
	Name        string          `json:"name" binding:"max=100"`
	AmountCents int64           `json:"amount_cents" binding:"min=0"`
	Category    engine.Category `json:"category" binding:"required,budget_category"`
}

// RenameItemRequest represents the request payload for renaming an item.
type RenameItemRequest struct {
	Name string `json:"name" binding:"max=100"`
}

// SetAmountRequest represents the request payload for setting an item amount.
type SetAmountRequest struct {
	AmountCents *int64 `json:"amount_cents" binding:"required,min=0"`
}

// CreateItem handles adding an item to a sheet.
// @Summary     Create an item
// @Description Add a budget item to a sheet; items created with an amount come back locked
// @Tags        items
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Sheet ID"
// @Param       request body CreateItemRequest true "Item details"
// @Success     201 {object} models.Item "Item created"
// @Failure     400 {object} ErrorResponse "Invalid input or amount over budget"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Sheet not found"
// @Failure     409 {object} ErrorResponse "Category over budget"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /sheets/{id}/items [post]
func (h *ItemHandler) CreateItem(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	sheetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	item, err := h.itemService.CreateItem(userID, sheetID, req.Name, req.AmountCents, req.Category)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_ITEM", "item", item.ID, c.ClientIP(),
		map[string]interface{}{"name": item.Name, "amount_cents": item.AmountCents, "category": item.Category})

	c.JSON(http.StatusCreated, gin.H{"item": item})
}

// GetItems handles listing a sheet's items.
// @Summary     Get items
// @Description Get a paginated list of a sheet's budget items
// @Tags        items
// @Produce     json
// @Security    BearerAuth
// @Param       id        path  int true  "Sheet ID"
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Item] "Paginated items"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Sheet not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /sheets/{id}/items [get]
func (h *ItemHandler) GetItems(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	sheetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	resp, err := h.itemService.GetSheetItems(userID, sheetID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// RenameItem handles renaming an item.
// @Summary     Rename an item
// @Description Set an item's name; locked items cannot be renamed
// @Tags        items
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Item ID"
// @Param       request body RenameItemRequest true "New name"
// @Success     200 {object} models.Item "Item renamed"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Item not found"
// @Failure     409 {object} ErrorResponse "Item locked"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /items/{id} [patch]
func (h *ItemHandler) RenameItem(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	itemID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req RenameItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	item, err := h.itemService.RenameItem(userID, itemID, req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": item})
}

// SetAmount handles setting an item's amount.
// @Summary     Set item amount
// @Description Set an item's amount in cents under the strict validation policy
// @Tags        items
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Item ID"
// @Param       request body SetAmountRequest true "Amount in cents"
// @Success     200 {object} models.Item "Amount updated"
// @Failure     400 {object} ErrorResponse "Invalid input or amount over budget"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Item not found"
// @Failure     409 {object} ErrorResponse "Item locked"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /items/{id}/amount [put]
func (h *ItemHandler) SetAmount(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	itemID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req SetAmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	item, err := h.itemService.SetItemAmount(userID, itemID, *req.AmountCents)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"item": item})
}

// DeleteItem handles deleting an item.
// @Summary     Delete an item
// @Description Remove a budget item from its sheet
// @Tags        items
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Item ID"
// @Success     204 "Item deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Item not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /items/{id} [delete]
func (h *ItemHandler) DeleteItem(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	itemID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.itemService.DeleteItem(userID, itemID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_ITEM", "item", itemID, c.ClientIP(), nil)

	c.Status(http.StatusNoContent)
}

// ToggleLock handles locking or unlocking an item.
// @Summary     Toggle an item lock
// @Description Lock an eligible item, or unlock a locked one
// @Tags        items
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Item ID"
// @Success     200 {object} models.Item "Lock toggled"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Item not found"
// @Failure     409 {object} ErrorResponse "Lock refused"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /items/{id}/lock [post]
func (h *ItemHandler) ToggleLock(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	itemID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	item, err := h.itemService.ToggleLock(userID, itemID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "TOGGLE_ITEM_LOCK", "item", itemID, c.ClientIP(),
		map[string]interface{}{"locked": item.Locked})

	c.JSON(http.StatusOK, gin.H{"item": item})
}
