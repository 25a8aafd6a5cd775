package services

import (
	"fmt"
	"regexp"
	"testing"
	"time"

	"wellness-backend/models"
)

var refPattern = regexp.MustCompile(`^[A-Z0-9]{4}\d+\d{4}\d{4}$`)

func TestAllocateReferenceNumberFormat(t *testing.T) {
	db := openTestDB(t)
	company, office := seedTenant(t, db)

	now := time.Date(2025, time.March, 10, 9, 0, 0, 0, time.UTC)
	ref := AllocateReferenceNumber(db, company.ID, office.ID, now)

	want := fmt.Sprintf("ACME%d%d25030001", company.ID, office.ID)
	if ref != want {
		t.Fatalf("AllocateReferenceNumber = %q, want %q", ref, want)
	}
	if !refPattern.MatchString(ref) {
		t.Fatalf("reference %q does not match grammar", ref)
	}
}

func TestSequenceIncrementsPerPair(t *testing.T) {
	db := openTestDB(t)
	company, office := seedTenant(t, db)
	now := time.Now()

	first := AllocateReferenceNumber(db, company.ID, office.ID, now)
	if err := db.Create(&models.Booking{
		CompanyID: company.ID, OfficeID: office.ID,
		ReferenceNumber: first, Status: models.BookingStatusPending,
	}).Error; err != nil {
		t.Fatalf("failed to insert booking: %v", err)
	}

	second := AllocateReferenceNumber(db, company.ID, office.ID, now)
	if second[len(second)-4:] != "0002" {
		t.Fatalf("second allocation suffix = %q, want 0002", second[len(second)-4:])
	}
	if second <= first {
		t.Fatalf("sequences not strictly increasing: %q then %q", first, second)
	}

	// a different office starts its own sequence
	other := models.Office{CompanyID: company.ID, Name: "Branch", DisplayName: "ACME-Branch"}
	if err := db.Create(&other).Error; err != nil {
		t.Fatalf("failed to seed office: %v", err)
	}
	branch := AllocateReferenceNumber(db, company.ID, other.ID, now)
	if branch[len(branch)-4:] != "0001" {
		t.Fatalf("new pair suffix = %q, want 0001", branch[len(branch)-4:])
	}
}

func TestCorruptSuffixTreatedAsZero(t *testing.T) {
	db := openTestDB(t)
	company, office := seedTenant(t, db)

	if err := db.Create(&models.Booking{
		CompanyID: company.ID, OfficeID: office.ID,
		ReferenceNumber: "ACME112503XXXX", Status: models.BookingStatusPending,
	}).Error; err != nil {
		t.Fatalf("failed to insert booking: %v", err)
	}

	ref := AllocateReferenceNumber(db, company.ID, office.ID, time.Now())
	if ref[len(ref)-4:] != "0001" {
		t.Fatalf("suffix after corrupt reference = %q, want 0001", ref[len(ref)-4:])
	}
}

func TestShortCodeFallsBackOnResolutionError(t *testing.T) {
	db := openTestDB(t)

	ref := AllocateReferenceNumber(db, 999, 5, time.Now())
	if ref[:4] != fallbackShortCode {
		t.Fatalf("prefix = %q, want %q", ref[:4], fallbackShortCode)
	}
}

func TestPlatformShortNameWinsOverCompanyCode(t *testing.T) {
	db := openTestDB(t)
	company, office := seedTenant(t, db)

	if err := db.Create(&models.PlatformSetting{ShortName: "ZEN"}).Error; err != nil {
		t.Fatalf("failed to seed setting: %v", err)
	}

	ref := AllocateReferenceNumber(db, company.ID, office.ID, time.Now())
	if ref[:4] != "ZENX" {
		t.Fatalf("prefix = %q, want ZENX (padded platform short name)", ref[:4])
	}
}
