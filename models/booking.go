package models

import (
	"time"

	"gorm.io/gorm"
)

// Booking statuses. pending is the initial state; cancelled and completed
// are terminal.
const (
	BookingStatusPending   = "pending"
	BookingStatusConfirmed = "confirmed"
	BookingStatusCancelled = "cancelled"
	BookingStatusCompleted = "completed"
)

// Per-applicant statuses, independent of the booking status.
const (
	ApplicantStatusScheduled = "scheduled"
	ApplicantStatusAttended  = "attended"
	ApplicantStatusNoShow    = "no_show"
	ApplicantStatusCancelled = "cancelled"
	ApplicantStatusCompleted = "completed"
)

const (
	ApplicantTypeEmployee  = "employee"
	ApplicantTypeDependent = "dependent"
)

type Booking struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	CompanyID     uint  `gorm:"index;column:company_id" json:"company_id"`
	OfficeID      uint  `gorm:"index;column:office_id" json:"office_id"`
	CompanyUserID *uint `gorm:"column:company_user_id" json:"company_user_id,omitempty"`

	// ReferenceNumber is assigned exactly once at creation and never
	// regenerated. The unique index backs duplicate-allocation detection
	// under concurrent submissions.
	ReferenceNumber string `gorm:"column:reference_number;size:64;uniqueIndex" json:"reference_number"`

	// PreferredDate is a free-text appointment preference, not an
	// allocated slot.
	PreferredDate string `gorm:"column:preferred_date;size:64" json:"preferred_date"`

	Status string `gorm:"column:status;size:32;default:pending" json:"status"`

	// Totals are set once at creation and represent attempted, not
	// currently active, applicants.
	TotalEmployees  int `gorm:"column:total_employees;default:0" json:"total_employees"`
	TotalDependents int `gorm:"column:total_dependents;default:0" json:"total_dependents"`

	Notes string `gorm:"column:notes;type:text" json:"notes,omitempty"`

	CreatedBy *uint `gorm:"column:created_by" json:"created_by,omitempty"`
	UpdatedBy *uint `gorm:"column:updated_by" json:"updated_by,omitempty"`

	Company     Company           `gorm:"foreignKey:CompanyID;references:ID" json:"company,omitempty"`
	Office      Office            `gorm:"foreignKey:OfficeID;references:ID" json:"office,omitempty"`
	CompanyUser *CompanyUser      `gorm:"foreignKey:CompanyUserID;references:ID" json:"company_user,omitempty"`
	Details     []ApplicantDetail `gorm:"foreignKey:BookingID" json:"details,omitempty"`
}
