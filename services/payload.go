package services

import (
	"fmt"
	"strings"
)

// DependentRow is one raw dependent entry from a submission request.
type DependentRow struct {
	FullName          string      `json:"full_name"`
	Relation          string      `json:"relation"`
	Gender            string      `json:"gender,omitempty"`
	DateOfBirth       string      `json:"date_of_birth,omitempty"`
	Age               *int        `json:"age,omitempty"`
	MedicalConditions interface{} `json:"medical_conditions,omitempty"`
	Remarks           string      `json:"remarks,omitempty"`
}

// EmployeeRow is one raw employee entry, optionally carrying its
// dependents.
type EmployeeRow struct {
	FullName          string         `json:"full_name"`
	Email             string         `json:"email,omitempty"`
	Phone             string         `json:"phone,omitempty"`
	Gender            string         `json:"gender,omitempty"`
	DateOfBirth       string         `json:"date_of_birth,omitempty"`
	Age               *int           `json:"age,omitempty"`
	Designation       string         `json:"designation,omitempty"`
	MedicalConditions interface{}    `json:"medical_conditions,omitempty"`
	Remarks           string         `json:"remarks,omitempty"`
	Accepted          bool           `json:"accepted"`
	Dependents        []DependentRow `json:"dependents,omitempty"`
}

// BookingPayload is the full submission request body. All optional-field
// handling happens here and in the resolver's normalizers, once, at the
// boundary.
type BookingPayload struct {
	CompanyID     uint          `json:"company_id" binding:"required"`
	OfficeID      uint          `json:"office_id" binding:"required"`
	CompanyUserID *uint         `json:"company_user_id,omitempty"`
	PreferredDate string        `json:"preferred_date"`
	Notes         string        `json:"notes,omitempty"`
	Employees     []EmployeeRow `json:"employees"`
}

// Validate performs the structural checks that never need a database.
func (p *BookingPayload) Validate() error {
	if p.CompanyID == 0 {
		return &PreconditionError{Reason: "company_id is required"}
	}
	if p.OfficeID == 0 {
		return &PreconditionError{Reason: "office_id is required"}
	}
	if len(p.Employees) == 0 {
		return &PreconditionError{Reason: "at least one employee is required"}
	}
	for i, emp := range p.Employees {
		if strings.TrimSpace(emp.FullName) == "" {
			return &PreconditionError{Reason: fmt.Sprintf("employee %d: full_name is required", i+1)}
		}
		for j, dep := range emp.Dependents {
			if strings.TrimSpace(dep.FullName) == "" {
				return &PreconditionError{Reason: fmt.Sprintf("employee %d dependent %d: full_name is required", i+1, j+1)}
			}
			if strings.TrimSpace(dep.Relation) == "" {
				return &PreconditionError{Reason: fmt.Sprintf("employee %d dependent %d: relation is required", i+1, j+1)}
			}
		}
	}
	return nil
}

// CountApplicants returns the attempted employee and dependent counts,
// computed from the raw payload so the failure path can report them even
// when nothing was persisted.
func (p *BookingPayload) CountApplicants() (employees int, dependents int) {
	employees = len(p.Employees)
	for _, emp := range p.Employees {
		dependents += len(emp.Dependents)
	}
	return employees, dependents
}
