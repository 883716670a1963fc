package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "trifold/internal/errors"
	"trifold/internal/pagination"
	"trifold/internal/services"
)

// SheetHandler handles budget sheet requests: CRUD, plan and split changes,
// income, the optimize pass, and the report views.
type SheetHandler struct {
	sheetService services.SheetServicer
	auditService services.AuditServicer
}

// NewSheetHandler creates a new SheetHandler.
func NewSheetHandler(sheetService services.SheetServicer, auditService services.AuditServicer) *SheetHandler {
	return &SheetHandler{sheetService: sheetService, auditService: auditService}
}

// CreateSheetRequest represents the request payload for creating a sheet.
type CreateSheetRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// RenameSheetRequest represents the request payload for renaming a sheet.
type RenameSheetRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// SelectPlanRequest represents the request payload for switching plans.
type SelectPlanRequest struct {
	PlanName string `json:"plan_name" binding:"required,plan_name"`
}

// SetSplitRequest represents the request payload for a hand-tuned split.
type SetSplitRequest struct {
	Needs   *int `json:"needs" binding:"required,min=0,max=100"`
	Savings *int `json:"savings" binding:"required,min=0,max=100"`
	Wants   *int `json:"wants" binding:"required,min=0,max=100"`
}

// SetIncomeRequest represents the request payload for setting income.
type SetIncomeRequest struct {
	IncomeCents *int64 `json:"income_cents" binding:"required,min=0"`
}

// CreateSheet handles the creation of a new budget sheet.
// @Summary     Create a sheet
// @Description Create a new budget sheet on the default custom plan
// @Tags        sheets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateSheetRequest true "Sheet details"
// @Success     201 {object} models.Sheet "Sheet created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /sheets [post]
func (h *SheetHandler) CreateSheet(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateSheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	sheet, err := h.sheetService.CreateSheet(userID, req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_SHEET", "sheet", sheet.ID, c.ClientIP(),
		map[string]interface{}{"name": req.Name})

	c.JSON(http.StatusCreated, gin.H{"sheet": sheet})
}

// GetSheets handles listing sheets for the authenticated user.
// @Summary     Get sheets
// @Description Get a paginated list of the user's budget sheets
// @Tags        sheets
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Sheet] "Paginated sheets"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /sheets [get]
func (h *SheetHandler) GetSheets(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	resp, err := h.sheetService.GetUserSheets(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetSheet handles retrieving a single sheet with its items.
// @Summary     Get a sheet
// @Description Get a budget sheet with its items
// @Tags        sheets
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Sheet ID"
// @Success     200 {object} models.Sheet "Sheet"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Sheet not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /sheets/{id} [get]
func (h *SheetHandler) GetSheet(c *gin.Context) {
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

	sheet, err := h.sheetService.GetSheetByID(userID, sheetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"sheet": sheet})
}

// RenameSheet handles renaming a sheet.
// @Summary     Rename a sheet
// @Description Set a sheet's display name
// @Tags        sheets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Sheet ID"
// @Param       request body RenameSheetRequest true "New name"
// @Success     200 {object} models.Sheet "Sheet renamed"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Sheet not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /sheets/{id} [patch]
func (h *SheetHandler) RenameSheet(c *gin.Context) {
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

	var req RenameSheetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	sheet, err := h.sheetService.RenameSheet(userID, sheetID, req.Name)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"sheet": sheet})
}

// DeleteSheet handles deleting a sheet and its items.
// @Summary     Delete a sheet
// @Description Delete a budget sheet and all of its items
// @Tags        sheets
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Sheet ID"
// @Success     204 "Sheet deleted"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Sheet not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /sheets/{id} [delete]
func (h *SheetHandler) DeleteSheet(c *gin.Context) {
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

	if err := h.sheetService.DeleteSheet(userID, sheetID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_SHEET", "sheet", sheetID, c.ClientIP(), nil)

	c.Status(http.StatusNoContent)
}

// SelectPlan handles switching a sheet to a built-in plan.
// @Summary     Select a plan
// @Description Switch the sheet to a built-in plan and adopt its split
// @Tags        sheets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Sheet ID"
// @Param       request body SelectPlanRequest true "Plan name"
// @Success     200 {object} models.Sheet "Plan selected"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Sheet or plan not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /sheets/{id}/plan [put]
func (h *SheetHandler) SelectPlan(c *gin.Context) {
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

	var req SelectPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	sheet, err := h.sheetService.SelectPlan(userID, sheetID, req.PlanName)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "SELECT_PLAN", "sheet", sheetID, c.ClientIP(),
		map[string]interface{}{"plan_name": req.PlanName})

	c.JSON(http.StatusOK, gin.H{"sheet": sheet})
}

// SetSplit handles setting a hand-tuned percentage split.
// @Summary     Set the split
// @Description Set a custom needs/savings/wants split; the sheet reverts to the custom plan
// @Tags        sheets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Sheet ID"
// @Param       request body SetSplitRequest true "Percentages"
// @Success     200 {object} models.Sheet "Split updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Sheet not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /sheets/{id}/split [put]
func (h *SheetHandler) SetSplit(c *gin.Context) {
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

	var req SetSplitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	sheet, err := h.sheetService.SetSplit(userID, sheetID, *req.Needs, *req.Savings, *req.Wants)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"sheet": sheet})
}

// SetIncome handles setting a sheet's monthly income.
// @Summary     Set income
// @Description Set the sheet's monthly income in cents
// @Tags        sheets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Sheet ID"
// @Param       request body SetIncomeRequest true "Income in cents"
// @Success     200 {object} models.Sheet "Income updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Sheet not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /sheets/{id}/income [put]
func (h *SheetHandler) SetIncome(c *gin.Context) {
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

	var req SetIncomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	sheet, err := h.sheetService.SetIncome(userID, sheetID, *req.IncomeCents)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"sheet": sheet})
}

// GetSummary handles the dashboard summary of a sheet.
// @Summary     Get sheet summary
// @Description Get totals, per-category breakdown, and the report readiness gate
// @Tags        sheets
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Sheet ID"
// @Success     200 {object} services.SheetSummary "Summary"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Sheet not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /sheets/{id}/summary [get]
func (h *SheetHandler) GetSummary(c *gin.Context) {
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

	summary, err := h.sheetService.Summary(userID, sheetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// Optimize handles the reconciliation pass on a sheet.
// @Summary     Optimize a sheet
// @Description Redistribute each category's unlocked budget so every category lands on target
// @Tags        sheets
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Sheet ID"
// @Success     200 {object} services.OptimizeResult "Adjusted sheet and changes"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Sheet not found"
// @Failure     409 {object} ErrorResponse "Locked items exceed a category budget"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /sheets/{id}/optimize [post]
func (h *SheetHandler) Optimize(c *gin.Context) {
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

	res, err := h.sheetService.Optimize(userID, sheetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "OPTIMIZE_SHEET", "sheet", sheetID, c.ClientIP(),
		map[string]interface{}{"changes": len(res.Changes)})

	c.JSON(http.StatusOK, res)
}

// GetReport handles the aggregated report view.
// @Summary     Get sheet report
// @Description Get the aggregated report: performance, smart tips, and savings goals
// @Tags        sheets
// @Produce     json
// @Security    BearerAuth
// @Param       id path int true "Sheet ID"
// @Success     200 {object} engine.Report "Report"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Sheet not found"
// @Failure     409 {object} ErrorResponse "Budget not ready for a report"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /sheets/{id}/report [get]
func (h *SheetHandler) GetReport(c *gin.Context) {
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

	report, err := h.sheetService.BuildReport(userID, sheetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": report})
}

// ExportCSV handles the CSV export of a sheet.
// @Summary     Export a sheet as CSV
// @Description Download the sheet's items as a CSV document
// @Tags        sheets
// @Produce     text/csv
// @Security    BearerAuth
// @Param       id path int true "Sheet ID"
// @Success     200 {string} string "CSV document"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Sheet not found"
// @Failure     409 {object} ErrorResponse "Budget not ready for export"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /sheets/{id}/export/csv [get]
func (h *SheetHandler) ExportCSV(c *gin.Context) {
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

	data, err := h.sheetService.ExportCSV(userID, sheetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=budget-report-%d.csv", sheetID))
	c.Data(http.StatusOK, "text/csv", data)
}
