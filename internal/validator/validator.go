// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"trifold/internal/engine"
)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("budget_category", validateBudgetCategory)
		_ = v.RegisterValidation("plan_name", validatePlanName)
	}
}

func validateBudgetCategory(fl validator.FieldLevel) bool {
	return engine.Category(fl.Field().String()).Valid()
}

func validatePlanName(fl validator.FieldLevel) bool {
	_, err := engine.PlanByName(fl.Field().String())
	return err == nil
}
