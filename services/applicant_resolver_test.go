package services

import (
	"reflect"
	"testing"
	"time"

	"wellness-backend/models"
)

func TestNormalizeGender(t *testing.T) {
	cases := []struct {
		in   string
		want string
		null bool
	}{
		{"Male", "male", false},
		{"FEMALE", "female", false},
		{" other ", "other", false},
		{"unknown", "", true},
		{"m", "", true},
		{"", "", true},
	}
	for _, tt := range cases {
		got := NormalizeGender(tt.in)
		if tt.null {
			if got != nil {
				t.Fatalf("NormalizeGender(%q) = %q, want nil", tt.in, *got)
			}
			continue
		}
		if got == nil || *got != tt.want {
			t.Fatalf("NormalizeGender(%q) = %v, want %q", tt.in, got, tt.want)
		}
	}
}

func TestResolveAgeExplicitWins(t *testing.T) {
	now := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	dob := time.Date(2000, time.January, 15, 0, 0, 0, 0, time.UTC)

	explicit := 30 // inconsistent with DOB on purpose
	if got := ResolveAge(&explicit, &dob, now); got == nil || *got != 30 {
		t.Fatalf("explicit age should win, got %v", got)
	}
	if got := ResolveAge(nil, &dob, now); got == nil || *got != 25 {
		t.Fatalf("derived age = %v, want 25", got)
	}
	if got := ResolveAge(nil, nil, now); got != nil {
		t.Fatalf("age with no inputs = %v, want nil", got)
	}
}

func TestAgeFromDOBFloorsPartialYears(t *testing.T) {
	dob := time.Date(2000, time.June, 15, 0, 0, 0, 0, time.UTC)

	dayBefore := time.Date(2020, time.June, 14, 0, 0, 0, 0, time.UTC)
	if got := AgeFromDOB(dob, dayBefore); got != 19 {
		t.Fatalf("age day before birthday = %d, want 19", got)
	}
	onBirthday := time.Date(2020, time.June, 15, 0, 0, 0, 0, time.UTC)
	if got := AgeFromDOB(dob, onBirthday); got != 20 {
		t.Fatalf("age on birthday = %d, want 20", got)
	}
}

func TestNormalizeConditions(t *testing.T) {
	cases := []struct {
		name string
		in   interface{}
		want []string
	}{
		{"delimited string", "diabetes, asthma; Diabetes , ,", []string{"diabetes", "asthma"}},
		{"array", []interface{}{"Hypertension", "hypertension", " asthma "}, []string{"Hypertension", "asthma"}},
		{"empty string", "  ", nil},
		{"nil", nil, nil},
	}
	for _, tt := range cases {
		if got := NormalizeConditions(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Fatalf("%s: NormalizeConditions = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestResolveEmployeeFindsThenUpdates(t *testing.T) {
	db := openTestDB(t)
	company, _ := seedTenant(t, db)
	now := time.Now()

	first, resolution, err := ResolveEmployee(db, company.ID, EmployeeRow{
		FullName: "Asha Rao", Email: "ASHA@x.com", Phone: "9000000001", Designation: "Analyst",
	}, now)
	if err != nil {
		t.Fatalf("first resolve: %v", err)
	}
	if resolution != ResolutionNewCreated {
		t.Fatalf("first resolution = %q, want %q", resolution, ResolutionNewCreated)
	}
	if first.Email != "asha@x.com" {
		t.Fatalf("email not lowercased: %q", first.Email)
	}

	// same email, changed fields: last submission wins
	second, resolution, err := ResolveEmployee(db, company.ID, EmployeeRow{
		FullName: "Asha R.", Email: "asha@x.com", Designation: "Senior Analyst",
	}, now)
	if err != nil {
		t.Fatalf("second resolve: %v", err)
	}
	if resolution != ResolutionExistingUpdated {
		t.Fatalf("second resolution = %q, want %q", resolution, ResolutionExistingUpdated)
	}
	if second.ID != first.ID {
		t.Fatalf("resolution created a second master: %d then %d", first.ID, second.ID)
	}
	if second.FullName != "Asha R." || second.Designation != "Senior Analyst" {
		t.Fatalf("upsert did not overwrite fields: %+v", second)
	}
	if second.Phone != "9000000001" {
		t.Fatalf("missing phone should not blank the stored one, got %q", second.Phone)
	}

	if n := mustCount(t, db, &models.Employee{}, ""); n != 1 {
		t.Fatalf("employee master count = %d, want 1", n)
	}
}

func TestResolveEmployeePhoneFallback(t *testing.T) {
	db := openTestDB(t)
	company, _ := seedTenant(t, db)
	now := time.Now()

	created, _, err := ResolveEmployee(db, company.ID, EmployeeRow{
		FullName: "Vik Shah", Email: "vik@x.com", Phone: "9000000002",
	}, now)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	matched, resolution, err := ResolveEmployee(db, company.ID, EmployeeRow{
		FullName: "Vikram Shah", Phone: "9000000002",
	}, now)
	if err != nil {
		t.Fatalf("phone match: %v", err)
	}
	if resolution != ResolutionExistingUpdated || matched.ID != created.ID {
		t.Fatalf("phone fallback did not match existing master (resolution=%q)", resolution)
	}
	if matched.Email != "vik@x.com" {
		t.Fatalf("email blanked by phone-matched row: %q", matched.Email)
	}
}

func TestResolveEmployeeScopedToCompany(t *testing.T) {
	db := openTestDB(t)
	company, _ := seedTenant(t, db)
	other := models.Company{Name: "Globex", ShortCode: "GLBX"}
	if err := db.Create(&other).Error; err != nil {
		t.Fatalf("seed company: %v", err)
	}
	now := time.Now()

	if _, _, err := ResolveEmployee(db, company.ID, EmployeeRow{FullName: "A", Email: "a@x.com"}, now); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	_, resolution, err := ResolveEmployee(db, other.ID, EmployeeRow{FullName: "A", Email: "a@x.com"}, now)
	if err != nil {
		t.Fatalf("resolve other company: %v", err)
	}
	if resolution != ResolutionNewCreated {
		t.Fatalf("identity must not cross companies, resolution = %q", resolution)
	}
	if n := mustCount(t, db, &models.Employee{}, "email = ?", "a@x.com"); n != 2 {
		t.Fatalf("expected one master per company, got %d", n)
	}
}

func TestResolveDependentDedupedByNameAndRelation(t *testing.T) {
	db := openTestDB(t)
	company, _ := seedTenant(t, db)
	now := time.Now()

	emp, _, err := ResolveEmployee(db, company.ID, EmployeeRow{FullName: "P", Email: "p@x.com"}, now)
	if err != nil {
		t.Fatalf("resolve employee: %v", err)
	}

	dep1, resolution, err := ResolveDependent(db, emp, DependentRow{FullName: "Q", Relation: "Spouse"}, now)
	if err != nil {
		t.Fatalf("resolve dependent: %v", err)
	}
	if resolution != ResolutionNewCreated || dep1.Relation != "spouse" {
		t.Fatalf("unexpected first dependent: %q %+v", resolution, dep1)
	}

	dep2, resolution, err := ResolveDependent(db, emp, DependentRow{FullName: "Q", Relation: "spouse", Remarks: "updated"}, now)
	if err != nil {
		t.Fatalf("resolve dependent again: %v", err)
	}
	if resolution != ResolutionExistingUpdated || dep2.ID != dep1.ID {
		t.Fatalf("dependent not deduplicated: %q", resolution)
	}

	// different relation is a different dependent
	_, resolution, err = ResolveDependent(db, emp, DependentRow{FullName: "Q", Relation: "child"}, now)
	if err != nil {
		t.Fatalf("resolve child: %v", err)
	}
	if resolution != ResolutionNewCreated {
		t.Fatalf("dependent with new relation should be new, got %q", resolution)
	}
}
