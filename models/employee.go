package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Employee is the canonical, company-scoped master record. It persists
// across bookings; every sighting in a new submission overwrites its
// mutable fields (last submission wins).
type Employee struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	CompanyID uint `gorm:"column:company_id;index:idx_employees_company_email;index:idx_employees_company_phone" json:"company_id"`

	FullName    string     `gorm:"column:full_name;size:255" json:"full_name"`
	Email       string     `gorm:"column:email;size:150;index:idx_employees_company_email" json:"email,omitempty"`
	Phone       string     `gorm:"column:phone;size:50;index:idx_employees_company_phone" json:"phone,omitempty"`
	Gender      *string    `gorm:"column:gender;size:16" json:"gender,omitempty"`
	DateOfBirth *time.Time `gorm:"column:date_of_birth" json:"date_of_birth,omitempty"`
	Age         *int       `gorm:"column:age" json:"age,omitempty"`
	Designation string     `gorm:"column:designation;size:150" json:"designation,omitempty"`

	MedicalConditions datatypes.JSON `gorm:"column:medical_conditions" json:"medical_conditions,omitempty"`
	Remarks           string         `gorm:"column:remarks;type:text" json:"remarks,omitempty"`

	Dependents []Dependent `gorm:"foreignKey:EmployeeID" json:"dependents,omitempty"`
}

// Dependent is scoped to its parent Employee and deduplicated by
// (employee, name, relation).
type Dependent struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	EmployeeID uint `gorm:"column:employee_id;index" json:"employee_id"`

	FullName    string     `gorm:"column:full_name;size:255" json:"full_name"`
	Relation    string     `gorm:"column:relation;size:100" json:"relation"`
	Gender      *string    `gorm:"column:gender;size:16" json:"gender,omitempty"`
	DateOfBirth *time.Time `gorm:"column:date_of_birth" json:"date_of_birth,omitempty"`
	Age         *int       `gorm:"column:age" json:"age,omitempty"`

	MedicalConditions datatypes.JSON `gorm:"column:medical_conditions" json:"medical_conditions,omitempty"`
	Remarks           string         `gorm:"column:remarks;type:text" json:"remarks,omitempty"`
}
