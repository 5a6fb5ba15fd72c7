package repository

import (
	"testing"

	"microblog/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB opens an in-memory sqlite database with the full schema.
// Each test gets its own database, so tests can run in parallel.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Status{},
		&models.Follow{},
	); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	return db
}
