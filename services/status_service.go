package services

import (
	"fmt"

	"wellness-backend/models"

	"gorm.io/gorm"
)

// bookingTransitions is the allowed-next set per booking status.
// cancelled and completed are terminal.
var bookingTransitions = map[string][]string{
	models.BookingStatusPending:   {models.BookingStatusConfirmed, models.BookingStatusCancelled},
	models.BookingStatusConfirmed: {models.BookingStatusCompleted, models.BookingStatusCancelled},
	models.BookingStatusCancelled: {},
	models.BookingStatusCompleted: {},
}

// KnownBookingStatus reports whether the value is one of the four booking
// statuses at all, for boundary validation.
func KnownBookingStatus(status string) bool {
	_, ok := bookingTransitions[status]
	return ok
}

// CanTransition consults the transition table.
func CanTransition(from, to string) bool {
	for _, allowed := range bookingTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// StatusService applies guarded booking-status transitions.
type StatusService struct {
	DB *gorm.DB
}

func NewStatusService(db *gorm.DB) *StatusService {
	return &StatusService{DB: db}
}

// Transition validates and applies a status change. The header is read
// under a row lock so concurrent transition attempts on the same booking
// serialize; the status write, the acting-user audit column and the
// cancel cascade all commit together. Totals are never touched: they
// record attempted applicants, not active ones.
func (s *StatusService) Transition(bookingID uint, target string, actorID *uint) (*models.Booking, error) {
	var booking models.Booking

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).First(&booking, bookingID).Error; err != nil {
			return err
		}

		if !CanTransition(booking.Status, target) {
			return &InvalidTransitionError{From: booking.Status, To: target}
		}

		if err := tx.Model(&booking).Updates(map[string]interface{}{
			"status":     target,
			"updated_by": actorID,
		}).Error; err != nil {
			return fmt.Errorf("failed to update booking status: %w", err)
		}
		booking.Status = target
		booking.UpdatedBy = actorID

		// The only cross-entity cascade in the system: cancelling a
		// booking downgrades its still-scheduled applicants with it.
		if target == models.BookingStatusCancelled {
			if err := tx.Model(&models.ApplicantDetail{}).
				Where("booking_id = ? AND status = ?", bookingID, models.ApplicantStatusScheduled).
				Updates(map[string]interface{}{
					"status":     models.ApplicantStatusCancelled,
					"updated_by": actorID,
				}).Error; err != nil {
				return fmt.Errorf("failed to cascade applicant cancellation: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &booking, nil
}
