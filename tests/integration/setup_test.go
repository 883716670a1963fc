package integration

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"trifold/internal/handlers"
	"trifold/internal/logger"
	"trifold/internal/middleware"
	"trifold/internal/models"
	"trifold/internal/services"
	"trifold/internal/validator"
)

// testApp holds the full application stack for integration tests.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

// dbCounter ensures each test gets a unique in-memory database.
var dbCounter atomic.Int64

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupIsolatedDB creates an isolated in-memory SQLite database for a single test.
func setupIsolatedDB(t *testing.T) *gorm.DB {
	t.Helper()

	n := dbCounter.Add(1)
	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", n)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	allModels := []interface{}{
		&models.User{},
		&models.Sheet{},
		&models.Item{},
		&models.AuditLog{},
	}
	if err := db.AutoMigrate(allModels...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := setupIsolatedDB(t)

	// Services
	userService := services.NewUserService(db)
	auditService := services.NewAuditService(db)
	sheetService := services.NewSheetService(db)
	itemService := services.NewItemService(db)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService, auditService)
	planHandler := handlers.NewPlanHandler()
	sheetHandler := handlers.NewSheetHandler(sheetService, auditService)
	itemHandler := handlers.NewItemHandler(itemService, auditService)

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.ErrorHandler())

	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	v1.GET("/plans", planHandler.GetPlans)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.GET("/profile", authHandler.GetProfile)

	sheets := protected.Group("/sheets")
	sheets.POST("", sheetHandler.CreateSheet)
	sheets.GET("", sheetHandler.GetSheets)
	sheets.GET("/:id", sheetHandler.GetSheet)
	sheets.PATCH("/:id", sheetHandler.RenameSheet)
	sheets.DELETE("/:id", sheetHandler.DeleteSheet)
	sheets.PUT("/:id/plan", sheetHandler.SelectPlan)
	sheets.PUT("/:id/split", sheetHandler.SetSplit)
	sheets.PUT("/:id/income", sheetHandler.SetIncome)
	sheets.GET("/:id/summary", sheetHandler.GetSummary)
	sheets.POST("/:id/optimize", sheetHandler.Optimize)
	sheets.GET("/:id/report", sheetHandler.GetReport)
	sheets.GET("/:id/export/csv", sheetHandler.ExportCSV)
	sheets.POST("/:id/items", itemHandler.CreateItem)
	sheets.GET("/:id/items", itemHandler.GetItems)

	items := protected.Group("/items")
	items.PATCH("/:id", itemHandler.RenameItem)
	items.PUT("/:id/amount", itemHandler.SetAmount)
	items.DELETE("/:id", itemHandler.DeleteItem)
	items.POST("/:id/lock", itemHandler.ToggleLock)

	return &testApp{DB: db, Router: router}
}

// request makes an HTTP request to the test router and returns the recorder.
func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

// parseJSON parses the response body into a map.
func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

// registerUser registers a new user and returns the access token, refresh token, and user ID.
func (app *testApp) registerUser(t *testing.T, email, password string) (accessToken, refreshToken string, userID float64) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q,"first_name":"Test","last_name":"User"}`, email, password)
	rec := app.request("POST", "/api/v1/auth/register", body, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	user := result["user"].(map[string]interface{})
	return result["token"].(string), result["refresh_token"].(string), user["id"].(float64)
}

// loginUser logs in and returns the access and refresh tokens.
func (app *testApp) loginUser(t *testing.T, email, password string) (accessToken, refreshToken string) {
	t.Helper()
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, email, password)
	rec := app.request("POST", "/api/v1/auth/login", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	result := parseJSON(t, rec)
	return result["token"].(string), result["refresh_token"].(string)
}

// createSheet creates a sheet and returns its ID.
func (app *testApp) createSheet(t *testing.T, token, name string) float64 {
	t.Helper()
	rec := app.request("POST", "/api/v1/sheets", fmt.Sprintf(`{"name":%q}`, name), token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create sheet failed: %d %s", rec.Code, rec.Body.String())
	}
	sheet := parseJSON(t, rec)["sheet"].(map[string]interface{})
	return sheet["id"].(float64)
}

// addItem adds an item to a sheet and returns its ID.
func (app *testApp) addItem(t *testing.T, token string, sheetID float64, name string, amountCents int64, category string) float64 {
	t.Helper()
	body := fmt.Sprintf(`{"name":%q,"amount_cents":%d,"category":%q}`, name, amountCents, category)
	rec := app.request("POST", fmt.Sprintf("/api/v1/sheets/%.0f/items", sheetID), body, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add item failed: %d %s", rec.Code, rec.Body.String())
	}
	item := parseJSON(t, rec)["item"].(map[string]interface{})
	return item["id"].(float64)
}
