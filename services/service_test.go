package services

import (
	"testing"

	"wellness-backend/config"
	"wellness-backend/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := config.AutoMigrateAll(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func seedTenant(t *testing.T, db *gorm.DB) (models.Company, models.Office) {
	t.Helper()
	company := models.Company{Name: "Acme Health", ShortCode: "ACME"}
	if err := db.Create(&company).Error; err != nil {
		t.Fatalf("failed to seed company: %v", err)
	}
	office := models.Office{CompanyID: company.ID, Name: "HQ", DisplayName: "ACME-HQ"}
	if err := db.Create(&office).Error; err != nil {
		t.Fatalf("failed to seed office: %v", err)
	}
	return company, office
}

func newTestBookingService(t *testing.T, db *gorm.DB) *BookingService {
	t.Helper()
	return NewBookingService(db, NewExportService(t.TempDir()), NewNotifyService(db), nil)
}

func mustCount(t *testing.T, db *gorm.DB, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var count int64
	q := db.Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	if err := q.Count(&count).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	return count
}
