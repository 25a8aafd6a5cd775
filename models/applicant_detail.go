package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ApplicantDetail is the point-in-time, booking-scoped snapshot of an
// applicant at submission time. Mutating the canonical Employee/Dependent
// later never changes rows that are already here.
type ApplicantDetail struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	BookingID     uint   `gorm:"index;column:booking_id" json:"booking_id"`
	ApplicantType string `gorm:"column:applicant_type;size:16" json:"applicant_type"`

	// EmployeeID is set for employee rows and, for dependent rows, carries
	// the parent employee's id for traceability.
	EmployeeID  *uint `gorm:"column:employee_id;index" json:"employee_id,omitempty"`
	DependentID *uint `gorm:"column:dependent_id;index" json:"dependent_id,omitempty"`

	FullName    string     `gorm:"column:full_name;size:255" json:"full_name"`
	Gender      *string    `gorm:"column:gender;size:16" json:"gender,omitempty"`
	DateOfBirth *time.Time `gorm:"column:date_of_birth" json:"date_of_birth,omitempty"`
	Age         *int       `gorm:"column:age" json:"age,omitempty"`
	Email       string     `gorm:"column:email;size:150" json:"email,omitempty"`
	Phone       string     `gorm:"column:phone;size:50" json:"phone,omitempty"`

	Designation string `gorm:"column:designation;size:150" json:"designation,omitempty"`
	Relation    string `gorm:"column:relation;size:100" json:"relation,omitempty"`

	MedicalConditions datatypes.JSON `gorm:"column:medical_conditions" json:"medical_conditions,omitempty"`
	Remarks           string         `gorm:"column:remarks;type:text" json:"remarks,omitempty"`

	Status string `gorm:"column:status;size:32;default:scheduled" json:"status"`

	CreatedBy *uint `gorm:"column:created_by" json:"created_by,omitempty"`
	UpdatedBy *uint `gorm:"column:updated_by" json:"updated_by,omitempty"`
}
