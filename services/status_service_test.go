package services

import (
	"errors"
	"fmt"
	"testing"

	"wellness-backend/models"

	"gorm.io/gorm"
)

func seedBooking(t *testing.T, db *gorm.DB, companyID, officeID uint, status string) models.Booking {
	t.Helper()
	booking := models.Booking{
		CompanyID:       companyID,
		OfficeID:        officeID,
		ReferenceNumber: fmt.Sprintf("TEST%d%d2501%04d", companyID, officeID, mustCount(t, db, &models.Booking{}, "")+1),
		Status:          status,
	}
	if err := db.Create(&booking).Error; err != nil {
		t.Fatalf("failed to seed booking: %v", err)
	}
	return booking
}

func TestTransitionTableIsComplete(t *testing.T) {
	statuses := []string{
		models.BookingStatusPending,
		models.BookingStatusConfirmed,
		models.BookingStatusCancelled,
		models.BookingStatusCompleted,
	}
	allowed := map[string]bool{
		"pending:confirmed":   true,
		"pending:cancelled":   true,
		"confirmed:completed": true,
		"confirmed:cancelled": true,
	}

	db := openTestDB(t)
	company, office := seedTenant(t, db)
	svc := NewStatusService(db)
	actor := uint(7)

	for _, from := range statuses {
		for _, to := range statuses {
			booking := seedBooking(t, db, company.ID, office.ID, from)
			updated, err := svc.Transition(booking.ID, to, &actor)

			if allowed[from+":"+to] {
				if err != nil {
					t.Fatalf("%s -> %s should succeed: %v", from, to, err)
				}
				if updated.Status != to {
					t.Fatalf("%s -> %s left status %q", from, to, updated.Status)
				}
				if updated.UpdatedBy == nil || *updated.UpdatedBy != actor {
					t.Fatalf("%s -> %s did not record actor", from, to)
				}
				continue
			}

			var invalid *InvalidTransitionError
			if !errors.As(err, &invalid) {
				t.Fatalf("%s -> %s should be rejected, got %v", from, to, err)
			}
			if invalid.From != from || invalid.To != to {
				t.Fatalf("error carries %s -> %s, want %s -> %s", invalid.From, invalid.To, from, to)
			}

			var after models.Booking
			if err := db.First(&after, booking.ID).Error; err != nil {
				t.Fatalf("reload booking: %v", err)
			}
			if after.Status != from {
				t.Fatalf("rejected transition mutated status to %q", after.Status)
			}
		}
	}
}

func TestTransitionRejectsMissingBooking(t *testing.T) {
	db := openTestDB(t)
	svc := NewStatusService(db)

	_, err := svc.Transition(4242, models.BookingStatusConfirmed, nil)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected record-not-found, got %v", err)
	}
}

func TestInvalidTransitionErrorMessage(t *testing.T) {
	err := &InvalidTransitionError{From: models.BookingStatusPending, To: models.BookingStatusCompleted}
	want := "invalid booking status transition: pending -> completed"
	if err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestCancelCascadesOnlyScheduledApplicants(t *testing.T) {
	db := openTestDB(t)
	company, office := seedTenant(t, db)
	svc := NewStatusService(db)

	booking := seedBooking(t, db, company.ID, office.ID, models.BookingStatusConfirmed)
	booking.TotalEmployees = 4
	if err := db.Save(&booking).Error; err != nil {
		t.Fatalf("update totals: %v", err)
	}

	details := []string{
		models.ApplicantStatusScheduled,
		models.ApplicantStatusScheduled,
		models.ApplicantStatusScheduled,
		models.ApplicantStatusAttended,
	}
	for i, status := range details {
		detail := models.ApplicantDetail{
			BookingID:     booking.ID,
			ApplicantType: models.ApplicantTypeEmployee,
			FullName:      fmt.Sprintf("Applicant %d", i+1),
			Status:        status,
		}
		if err := db.Create(&detail).Error; err != nil {
			t.Fatalf("seed detail: %v", err)
		}
	}

	actor := uint(3)
	updated, err := svc.Transition(booking.ID, models.BookingStatusCancelled, &actor)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if updated.Status != models.BookingStatusCancelled {
		t.Fatalf("status = %q, want cancelled", updated.Status)
	}

	if n := mustCount(t, db, &models.ApplicantDetail{}, "booking_id = ? AND status = ?", booking.ID, models.ApplicantStatusCancelled); n != 3 {
		t.Fatalf("cancelled applicants = %d, want 3", n)
	}
	if n := mustCount(t, db, &models.ApplicantDetail{}, "booking_id = ? AND status = ?", booking.ID, models.ApplicantStatusAttended); n != 1 {
		t.Fatalf("attended applicant must survive the cascade, count = %d", n)
	}

	// totals record attempted applicants and never change
	var after models.Booking
	if err := db.First(&after, booking.ID).Error; err != nil {
		t.Fatalf("reload booking: %v", err)
	}
	if after.TotalEmployees != 4 {
		t.Fatalf("TotalEmployees = %d, want 4", after.TotalEmployees)
	}
}
