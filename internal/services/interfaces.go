package services

import (
	"trifold/internal/engine"
	"trifold/internal/models"
	"trifold/internal/pagination"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id uint) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
	AttemptLogin(email, password string) (*models.User, error)
	StoreRefreshTokenHash(userID uint, tokenHash string) error
	GetRefreshTokenHash(userID uint) (string, error)
}

// CategorySummary aggregates one category's allocation state on a sheet.
type CategorySummary struct {
	Category       engine.Category `json:"category"`
	TargetPercent  int             `json:"target_percent"`
	TargetCents    int64           `json:"target_cents"`
	AllocatedCents int64           `json:"allocated_cents"`
	RemainingCents int64           `json:"remaining_cents"`
	LockedCents    int64           `json:"locked_cents"`
	ItemCount      int             `json:"item_count"`
	LockedCount    int             `json:"locked_count"`
}

// SheetSummary is the dashboard view of a sheet: totals, per-category
// breakdown, and the report readiness gate.
type SheetSummary struct {
	SheetID        uint              `json:"sheet_id"`
	Name           string            `json:"name"`
	PlanName       string            `json:"plan_name"`
	IncomeCents    int64             `json:"income_cents"`
	Split          engine.Split      `json:"split"`
	TotalAllocated int64             `json:"total_allocated_cents"`
	Unallocated    int64             `json:"unallocated_cents"`
	TotalPercent   float64           `json:"total_percent"`
	Categories     []CategorySummary `json:"categories"`
	Gate           engine.ReportGate `json:"gate"`
}

// OptimizeResult is the outcome of an optimize pass on a sheet.
type OptimizeResult struct {
	Sheet   *models.Sheet            `json:"sheet"`
	Changes []engine.ReconcileChange `json:"changes"`
}

// SheetServicer defines the contract for sheet-related business logic.
type SheetServicer interface {
	CreateSheet(userID uint, name string) (*models.Sheet, error)
	GetUserSheets(userID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Sheet], error)
	GetSheetByID(userID, sheetID uint) (*models.Sheet, error)
	RenameSheet(userID, sheetID uint, name string) (*models.Sheet, error)
	DeleteSheet(userID, sheetID uint) error
	SelectPlan(userID, sheetID uint, planName string) (*models.Sheet, error)
	SetSplit(userID, sheetID uint, needs, savings, wants int) (*models.Sheet, error)
	SetIncome(userID, sheetID uint, incomeCents int64) (*models.Sheet, error)
	Summary(userID, sheetID uint) (*SheetSummary, error)
	Optimize(userID, sheetID uint) (*OptimizeResult, error)
	BuildReport(userID, sheetID uint) (*engine.Report, error)
	ExportCSV(userID, sheetID uint) ([]byte, error)
}

// ItemServicer defines the contract for budget item business logic.
type ItemServicer interface {
	CreateItem(userID, sheetID uint, name string, amountCents int64, category engine.Category) (*models.Item, error)
	GetSheetItems(userID, sheetID uint, page pagination.PageRequest) (*pagination.PageResponse[models.Item], error)
	RenameItem(userID, itemID uint, name string) (*models.Item, error)
	SetItemAmount(userID, itemID uint, amountCents int64) (*models.Item, error)
	DeleteItem(userID, itemID uint) error
	ToggleLock(userID, itemID uint) (*models.Item, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID uint, action, resourceType string, resourceID uint, ipAddress string, changes map[string]interface{})
}
