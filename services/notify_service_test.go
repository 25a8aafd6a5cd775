package services

import (
	"testing"

	"wellness-backend/models"
)

func TestResolveRecipientPrefersPrimary(t *testing.T) {
	db := openTestDB(t)
	svc := NewNotifyService(db)

	if got := svc.ResolveRecipient("user@acme.com"); got != "user@acme.com" {
		t.Fatalf("ResolveRecipient = %q, want primary", got)
	}
}

func TestResolveRecipientFallsBackToPlatformSupport(t *testing.T) {
	db := openTestDB(t)
	if err := db.Create(&models.PlatformSetting{SupportEmail: "support@wellness.example"}).Error; err != nil {
		t.Fatalf("seed setting: %v", err)
	}
	svc := NewNotifyService(db)

	if got := svc.ResolveRecipient("  "); got != "support@wellness.example" {
		t.Fatalf("ResolveRecipient = %q, want platform support address", got)
	}
}

func TestResolveRecipientFallsBackToEnv(t *testing.T) {
	t.Setenv("SUPPORT_EMAIL", "ops@wellness.example")
	svc := NewNotifyService(openTestDB(t))

	if got := svc.ResolveRecipient(""); got != "ops@wellness.example" {
		t.Fatalf("ResolveRecipient = %q, want env support address", got)
	}
}

func TestSendFailsWithoutAnyRecipient(t *testing.T) {
	t.Setenv("SUPPORT_EMAIL", "")
	t.Setenv("MAIL_CC", "")
	t.Setenv("MAIL_BCC", "")
	svc := NewNotifyService(openTestDB(t))

	err := svc.SendBookingFailure("", "reason", 1, 0, "")
	if err == nil {
		t.Fatalf("expected error when no recipient can be resolved")
	}
}

func TestSendMocksWhenSMTPUnconfigured(t *testing.T) {
	t.Setenv("SMTP_HOST", "")
	t.Setenv("SMTP_PORT", "")
	t.Setenv("SMTP_USERNAME", "")
	t.Setenv("SMTP_PASSWORD", "")
	svc := NewNotifyService(openTestDB(t))

	booking := &models.Booking{
		ReferenceNumber: "ACME1125030001",
		Status:          models.BookingStatusPending,
		TotalEmployees:  1,
	}
	if err := svc.SendBookingSuccess(booking, "user@acme.com", ""); err != nil {
		t.Fatalf("mock-mode send should succeed, got %v", err)
	}
}
