package services

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"wellness-backend/models"
	"wellness-backend/utils"

	"gorm.io/gorm"
)

const (
	refShortCodeWidth = 4
	refSequenceWidth  = 4

	// fallbackShortCode is used whenever short-code resolution fails;
	// allocation degrades the prefix rather than aborting the booking.
	fallbackShortCode = "CORP"
)

// ResolveShortCode returns the 4-character prefix for reference numbers
// and export filenames: the platform-wide short name when configured,
// else the company's own short code or name.
func ResolveShortCode(db *gorm.DB, companyID uint) string {
	var setting models.PlatformSetting
	if err := db.First(&setting).Error; err == nil && setting.ShortName != "" {
		return utils.ShortCodeTag(setting.ShortName, refShortCodeWidth)
	}

	var company models.Company
	if err := db.First(&company, companyID).Error; err != nil {
		return fallbackShortCode
	}
	name := company.ShortCode
	if name == "" {
		name = company.Name
	}
	if name == "" {
		return fallbackShortCode
	}
	return utils.ShortCodeTag(name, refShortCodeWidth)
}

// AllocateReferenceNumber produces the next booking reference number for a
// (company, office) pair: {ShortCode}{companyId}{officeId}{YYMM}{seq}.
//
// The read of the previous header is promoted to a locking read so two
// concurrent submissions for the same pair cannot compute the same next
// sequence; the caller's insert of the new header is what reserves the
// number. Must run inside the submission transaction.
func AllocateReferenceNumber(tx *gorm.DB, companyID, officeID uint, now time.Time) string {
	shortCode := ResolveShortCode(tx, companyID)
	yymm := now.Format("0601")
	seq := nextSequence(tx, companyID, officeID)
	return fmt.Sprintf("%s%d%d%s%0*d", shortCode, companyID, officeID, yymm, refSequenceWidth, seq)
}

// nextSequence reads the numeric suffix of the most recent reference
// number for the pair. Soft-deleted bookings still count so their numbers
// are never reissued. A suffix that cannot be parsed is treated as zero.
func nextSequence(tx *gorm.DB, companyID, officeID uint) int {
	var last models.Booking
	err := lockForUpdate(tx.Unscoped()).
		Where("company_id = ? AND office_id = ?", companyID, officeID).
		Order("id DESC").
		First(&last).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			// degrade to a fresh sequence rather than abort allocation
			return 1
		}
		return 1
	}

	ref := last.ReferenceNumber
	if len(ref) < refSequenceWidth {
		return 1
	}
	seq, convErr := strconv.Atoi(ref[len(ref)-refSequenceWidth:])
	if convErr != nil {
		seq = 0
	}
	return seq + 1
}
