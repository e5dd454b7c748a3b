// Package testutil provides an in-memory database with the full schema for
// service-level tests.
package testutil

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dagcentrum/backend/internal/models"
)

// OpenDB returns an isolated in-memory database with all tables migrated.
// It is closed when the test finishes.
func OpenDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	// One connection keeps every session on the same in-memory database.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	err = db.AutoMigrate(
		&models.StaffUser{},
		&models.RefreshToken{},
		&models.FacilitySetting{},
		&models.SystemLog{},
		&models.Resident{},
		&models.SupportProfile{},
		&models.ResidentPreferences{},
		&models.ActivityTemplate{},
		&models.TemplateRequiredSupport{},
		&models.Activity{},
		&models.ActivityRequiredSupport{},
		&models.ActivityHistory{},
		&models.GroupActivitySettings{},
		&models.GroupActivityParticipant{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}
