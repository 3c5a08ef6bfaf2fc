package services

import (
	"testing"

	"github.com/jwsummers/OnTrack/config"
	"github.com/jwsummers/OnTrack/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// setupTestDB points config.DB at a fresh in-memory database for one test.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	// one connection: every pool conn of an in-memory DSN is its own database
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access test database pool: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.User{}, &models.IntakeEntry{}, &models.DailyGoal{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	prev := config.DB
	config.DB = db
	t.Cleanup(func() { config.DB = prev })

	return db
}
