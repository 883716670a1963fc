package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"trifold/internal/engine"
)

// PlanHandler serves the built-in budget plans. Plans are static, so the
// handler needs no service behind it.
type PlanHandler struct{}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler() *PlanHandler {
	return &PlanHandler{}
}

// GetPlans lists the built-in budget plans
// @Summary     List budget plans
// @Description Get the built-in needs/savings/wants percentage presets
// @Tags        plans
// @Produce     json
// @Success     200 {array} engine.Plan "Budget plans"
// @Router      /plans [get]
func (h *PlanHandler) GetPlans(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"plans": engine.Plans()})
}
