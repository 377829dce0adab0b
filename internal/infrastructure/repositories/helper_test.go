package repositories_test

import (
	"fmt"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"firmdesk.backend/internal/infrastructure/models"
)

// openTestDB opens an in-memory sqlite database unique to the test and
// migrates the full schema.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&models.Influencer{},
		&models.Client{},
		&models.Task{},
		&models.Checklist{},
		&models.Charge{},
		&models.Coupon{},
		&models.User{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
