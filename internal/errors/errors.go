// Package errors provides custom error types for the Trifold API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication & authorization errors.
var (
	ErrUnauthorized       = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid email or password", StatusCode: http.StatusUnauthorized}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
	ErrAccountLocked      = &AppError{Code: "ACCOUNT_LOCKED", Message: "Account is temporarily locked", StatusCode: http.StatusLocked}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// User errors.
var (
	ErrUserNotFound   = &AppError{Code: "USER_NOT_FOUND", Message: "User not found", StatusCode: http.StatusNotFound}
	ErrDuplicateEmail = &AppError{Code: "DUPLICATE_EMAIL", Message: "A user with this email already exists", StatusCode: http.StatusConflict}
)

// Sheet errors.
var (
	ErrSheetNotFound = &AppError{Code: "SHEET_NOT_FOUND", Message: "Budget sheet not found", StatusCode: http.StatusNotFound}
	ErrPlanNotFound  = &AppError{Code: "PLAN_NOT_FOUND", Message: "Budget plan not found", StatusCode: http.StatusNotFound}
)

// Item and allocation errors.
var (
	ErrItemNotFound       = &AppError{Code: "ITEM_NOT_FOUND", Message: "Budget item not found", StatusCode: http.StatusNotFound}
	ErrNameRequired       = &AppError{Code: "NAME_REQUIRED", Message: "Item must be named before it can hold an amount", StatusCode: http.StatusBadRequest}
	ErrItemLocked         = &AppError{Code: "ITEM_LOCKED", Message: "Locked items cannot be edited", StatusCode: http.StatusConflict}
	ErrLockRefused        = &AppError{Code: "LOCK_REFUSED", Message: "Item cannot be locked", StatusCode: http.StatusConflict}
	ErrAmountOverBudget   = &AppError{Code: "AMOUNT_OVER_BUDGET", Message: "Amount would exceed the category budget", StatusCode: http.StatusBadRequest}
	ErrAmountOverIncome   = &AppError{Code: "AMOUNT_OVER_INCOME", Message: "Amount would exceed total income", StatusCode: http.StatusBadRequest}
	ErrCategoryOverBudget = &AppError{Code: "CATEGORY_OVER_BUDGET", Message: "Category is over budget", StatusCode: http.StatusConflict}
	ErrLockedOverBudget   = &AppError{Code: "LOCKED_OVER_BUDGET", Message: "Locked items exceed category budget", StatusCode: http.StatusConflict}
	ErrReportBlocked      = &AppError{Code: "REPORT_BLOCKED", Message: "Budget is not ready for a report", StatusCode: http.StatusConflict}
)
