package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"trifold/internal/engine"
	"trifold/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestSheet creates a sheet on the standard 50/20/30 split with a
// $5000.00 monthly income.
func CreateTestSheet(t *testing.T, db *gorm.DB, userID uint) *models.Sheet {
	t.Helper()
	return CreateTestSheetWithIncome(t, db, userID, 500000)
}

// CreateTestSheetWithIncome creates a sheet with the given income in cents.
func CreateTestSheetWithIncome(t *testing.T, db *gorm.DB, userID uint, incomeCents int64) *models.Sheet {
	t.Helper()

	sheet := &models.Sheet{
		UserID:         userID,
		Name:           fmt.Sprintf("Test Sheet %d", nextID()),
		IncomeCents:    incomeCents,
		PlanName:       engine.CustomPlanName,
		NeedsPercent:   50,
		SavingsPercent: 20,
		WantsPercent:   30,
	}
	if err := db.Create(sheet).Error; err != nil {
		t.Fatalf("failed to create test sheet: %v", err)
	}
	return sheet
}

// CreateTestItem creates an unlocked item with the given amount in cents.
func CreateTestItem(t *testing.T, db *gorm.DB, sheetID uint, category engine.Category, amount int64) *models.Item {
	t.Helper()

	item := &models.Item{
		SheetID:     sheetID,
		Name:        fmt.Sprintf("Test Item %d", nextID()),
		AmountCents: amount,
		Category:    category,
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("failed to create test item: %v", err)
	}
	return item
}

// CreateTestLockedItem creates a locked item with the given amount in cents.
func CreateTestLockedItem(t *testing.T, db *gorm.DB, sheetID uint, category engine.Category, amount int64) *models.Item {
	t.Helper()

	item := &models.Item{
		SheetID:     sheetID,
		Name:        fmt.Sprintf("Test Locked Item %d", nextID()),
		AmountCents: amount,
		Category:    category,
		Locked:      true,
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("failed to create test locked item: %v", err)
	}
	return item
}
