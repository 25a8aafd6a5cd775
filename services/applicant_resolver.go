package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"wellness-backend/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Resolution tags reported back per applicant.
const (
	ResolutionNewCreated      = "new_created"
	ResolutionExistingUpdated = "existing_updated"
)

// NormalizeGender lowercases the raw value and restricts it to
// {male, female, other}; anything else becomes NULL.
func NormalizeGender(raw string) *string {
	g := strings.ToLower(strings.TrimSpace(raw))
	switch g {
	case "male", "female", "other":
		return &g
	default:
		return nil
	}
}

// ParseDate accepts the date formats the frontend is known to send.
func ParseDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if t, err := time.Parse("2006-01-02", raw); err == nil {
		return &t
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t
	}
	return nil
}

// AgeFromDOB is the floor of elapsed years at now.
func AgeFromDOB(dob time.Time, now time.Time) int {
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	if age < 0 {
		age = 0
	}
	return age
}

// ResolveAge prefers an explicit age even when it disagrees with the date
// of birth, deriving from DOB only when no age was supplied.
func ResolveAge(explicit *int, dob *time.Time, now time.Time) *int {
	if explicit != nil {
		return explicit
	}
	if dob != nil {
		age := AgeFromDOB(*dob, now)
		return &age
	}
	return nil
}

// NormalizeConditions accepts a JSON array or a comma/semicolon-delimited
// string, trims entries, drops empties and de-duplicates
// case-insensitively, preserving the first-seen casing and order.
func NormalizeConditions(raw interface{}) []string {
	var items []string
	switch v := raw.(type) {
	case nil:
		return nil
	case string:
		items = strings.FieldsFunc(v, func(r rune) bool { return r == ',' || r == ';' })
	case []string:
		items = v
	case []interface{}:
		for _, item := range v {
			items = append(items, fmt.Sprintf("%v", item))
		}
	default:
		items = []string{fmt.Sprintf("%v", v)}
	}

	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		key := strings.ToLower(item)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, item)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// ConditionsJSON serializes a normalized condition list for a JSON column.
func ConditionsJSON(raw interface{}) datatypes.JSON {
	list := NormalizeConditions(raw)
	if list == nil {
		return nil
	}
	buf, err := json.Marshal(list)
	if err != nil {
		return nil
	}
	return datatypes.JSON(buf)
}

// ResolveEmployee finds or creates the canonical employee master for a raw
// row, scoped to the company. Lookup is by email first, then phone. On a
// match every provided mutable field is overwritten: last submission wins,
// by design, with no merging. Must run inside the caller's transaction so
// the upsert rolls back with the booking.
func ResolveEmployee(tx *gorm.DB, companyID uint, row EmployeeRow, now time.Time) (*models.Employee, string, error) {
	email := strings.ToLower(strings.TrimSpace(row.Email))
	phone := strings.TrimSpace(row.Phone)

	var emp models.Employee
	found := false

	if email != "" {
		err := tx.Where("company_id = ? AND email = ?", companyID, email).First(&emp).Error
		if err == nil {
			found = true
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", fmt.Errorf("employee lookup by email: %w", err)
		}
	}
	if !found && phone != "" {
		err := tx.Where("company_id = ? AND phone = ?", companyID, phone).First(&emp).Error
		if err == nil {
			found = true
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", fmt.Errorf("employee lookup by phone: %w", err)
		}
	}

	dob := ParseDate(row.DateOfBirth)

	emp.CompanyID = companyID
	emp.FullName = strings.TrimSpace(row.FullName)
	// email/phone only overwrite when provided, so a row matched on one
	// key never blanks the other
	if email != "" {
		emp.Email = email
	}
	if phone != "" {
		emp.Phone = phone
	}
	emp.Gender = NormalizeGender(row.Gender)
	emp.DateOfBirth = dob
	emp.Age = ResolveAge(row.Age, dob, now)
	emp.Designation = strings.TrimSpace(row.Designation)
	emp.MedicalConditions = ConditionsJSON(row.MedicalConditions)
	emp.Remarks = strings.TrimSpace(row.Remarks)

	if found {
		if err := tx.Save(&emp).Error; err != nil {
			return nil, "", fmt.Errorf("failed to update employee: %w", err)
		}
		return &emp, ResolutionExistingUpdated, nil
	}

	if err := tx.Create(&emp).Error; err != nil {
		return nil, "", fmt.Errorf("failed to create employee: %w", err)
	}
	return &emp, ResolutionNewCreated, nil
}

// ResolveDependent is the dependent analogue, scoped to a resolved parent
// employee and deduplicated by (employee, name, relation).
func ResolveDependent(tx *gorm.DB, employee *models.Employee, row DependentRow, now time.Time) (*models.Dependent, string, error) {
	name := strings.TrimSpace(row.FullName)
	relation := strings.ToLower(strings.TrimSpace(row.Relation))

	var dep models.Dependent
	found := false

	err := tx.Where("employee_id = ? AND full_name = ? AND relation = ?", employee.ID, name, relation).
		First(&dep).Error
	if err == nil {
		found = true
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", fmt.Errorf("dependent lookup: %w", err)
	}

	dob := ParseDate(row.DateOfBirth)

	dep.EmployeeID = employee.ID
	dep.FullName = name
	dep.Relation = relation
	dep.Gender = NormalizeGender(row.Gender)
	dep.DateOfBirth = dob
	dep.Age = ResolveAge(row.Age, dob, now)
	dep.MedicalConditions = ConditionsJSON(row.MedicalConditions)
	dep.Remarks = strings.TrimSpace(row.Remarks)

	if found {
		if err := tx.Save(&dep).Error; err != nil {
			return nil, "", fmt.Errorf("failed to update dependent: %w", err)
		}
		return &dep, ResolutionExistingUpdated, nil
	}

	if err := tx.Create(&dep).Error; err != nil {
		return nil, "", fmt.Errorf("failed to create dependent: %w", err)
	}
	return &dep, ResolutionNewCreated, nil
}
