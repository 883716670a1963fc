package main

import (
	"fmt"
	"net/http"
	"os"

	"trifold/internal/config"
	"trifold/internal/database"
	"trifold/internal/handlers"
	"trifold/internal/logger"
	"trifold/internal/middleware"
	"trifold/internal/services"
	"trifold/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Trifold API
// @version         1.0
// @description     Trifold is a budget allocation engine: split a monthly income across needs, savings, and wants, itemize each category, lock what is fixed, and let the optimizer spread the rest.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	logger.Init(os.Getenv("APP_ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	validator.Register()

	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	db := dbManager.DB()
	userService := services.NewUserService(db)
	auditService := services.NewAuditService(db)
	sheetService := services.NewSheetService(db)
	itemService := services.NewItemService(db)

	authHandler := handlers.NewAuthHandler(userService, auditService)
	planHandler := handlers.NewPlanHandler()
	sheetHandler := handlers.NewSheetHandler(sheetService, auditService)
	itemHandler := handlers.NewItemHandler(itemService, auditService)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
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

	// User profile
	protected.GET("/profile", authHandler.GetProfile)

	// Sheet routes
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

	// Item routes
	items := protected.Group("/items")
	items.PATCH("/:id", itemHandler.RenameItem)
	items.PUT("/:id/amount", itemHandler.SetAmount)
	items.DELETE("/:id", itemHandler.DeleteItem)
	items.POST("/:id/lock", itemHandler.ToggleLock)

	log.Infof("Starting Trifold backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
