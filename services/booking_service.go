package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"wellness-backend/models"
	"wellness-backend/utils"

	mysql "github.com/go-sql-driver/mysql"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// SubmitterInfo is the resolved identity of the submitting company user.
type SubmitterInfo struct {
	ID       uint   `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

// ApplicantResult reports what happened to one applicant row.
type ApplicantResult struct {
	ApplicantType string `json:"applicant_type"`
	FullName      string `json:"full_name"`
	EmployeeID    uint   `json:"employee_id,omitempty"`
	DependentID   uint   `json:"dependent_id,omitempty"`
	Resolution    string `json:"resolution"`
}

// BookingResult is the success response of a submission.
type BookingResult struct {
	BookingID       uint              `json:"booking_id"`
	ReferenceNumber string            `json:"reference_number"`
	PreferredDate   string            `json:"preferred_date"`
	CompanyID       uint              `json:"company_id"`
	OfficeID        uint              `json:"office_id"`
	SubmittedBy     *SubmitterInfo    `json:"submitted_by,omitempty"`
	Status          string            `json:"status"`
	TotalApplicants int               `json:"total_applicants"`
	Applicants      []ApplicantResult `json:"applicants"`
	ExportURL       string            `json:"export_url,omitempty"`
}

// BookingService owns the submission workflow: preconditions outside the
// transaction, an all-or-nothing transactional body, and best-effort
// post-commit side effects that can never turn a committed booking into
// an error response.
type BookingService struct {
	DB         *gorm.DB
	Exports    *ExportService
	Notifier   *NotifyService
	Dispatcher *SideEffectDispatcher
}

func NewBookingService(db *gorm.DB, exports *ExportService, notifier *NotifyService, dispatcher *SideEffectDispatcher) *BookingService {
	return &BookingService{DB: db, Exports: exports, Notifier: notifier, Dispatcher: dispatcher}
}

// Submit materializes a booking header plus its applicant snapshot tree.
// actorID is the authenticated user recorded in audit columns, threaded
// explicitly rather than read from ambient state.
func (s *BookingService) Submit(payload BookingPayload, actorID *uint) (*BookingResult, error) {
	now := time.Now().In(utils.AppLocation())

	if err := payload.Validate(); err != nil {
		return nil, s.fail(payload, nil, FailureStagePrecondition, err)
	}

	// Ownership guards run before any transaction opens: a guard failure
	// must leave no partial write behind.
	var office models.Office
	if err := s.DB.First(&office, payload.OfficeID).Error; err != nil {
		return nil, s.fail(payload, nil, FailureStagePrecondition,
			&PreconditionError{Reason: fmt.Sprintf("office %d not found", payload.OfficeID)})
	}
	if office.CompanyID != payload.CompanyID {
		return nil, s.fail(payload, nil, FailureStagePrecondition,
			&PreconditionError{Reason: fmt.Sprintf("office %d does not belong to company %d", payload.OfficeID, payload.CompanyID)})
	}

	var submitter *models.CompanyUser
	if payload.CompanyUserID != nil {
		var user models.CompanyUser
		if err := s.DB.First(&user, *payload.CompanyUserID).Error; err != nil {
			return nil, s.fail(payload, nil, FailureStagePrecondition,
				&PreconditionError{Reason: fmt.Sprintf("company user %d not found", *payload.CompanyUserID)})
		}
		if user.CompanyID != payload.CompanyID {
			return nil, s.fail(payload, &user, FailureStagePrecondition,
				&PreconditionError{Reason: fmt.Sprintf("company user %d does not belong to company %d", user.ID, payload.CompanyID)})
		}
		submitter = &user
	}

	var booking models.Booking
	var results []ApplicantResult
	var rows []ExportRow

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		results = nil
		rows = nil

		// Allocate and insert the header; the unique index on the
		// reference number backstops the locking read, with one
		// reallocation attempt on a duplicate.
		var createErr error
		for attempt := 0; attempt < 2; attempt++ {
			booking = models.Booking{
				CompanyID:       payload.CompanyID,
				OfficeID:        payload.OfficeID,
				CompanyUserID:   payload.CompanyUserID,
				ReferenceNumber: AllocateReferenceNumber(tx, payload.CompanyID, payload.OfficeID, now),
				PreferredDate:   strings.TrimSpace(payload.PreferredDate),
				Status:          models.BookingStatusPending,
				Notes:           strings.TrimSpace(payload.Notes),
				CreatedBy:       actorID,
				UpdatedBy:       actorID,
			}
			createErr = tx.Create(&booking).Error
			if createErr == nil {
				break
			}
			if isDuplicateKeyError(createErr) {
				logrus.WithField("reference", booking.ReferenceNumber).
					Warn("reference number collision, reallocating")
				continue
			}
			return fmt.Errorf("failed to create booking header: %w", createErr)
		}
		if createErr != nil {
			return fmt.Errorf("failed to create booking header after reallocation: %w", createErr)
		}

		totalEmployees := 0
		totalDependents := 0

		for _, row := range payload.Employees {
			emp, resolution, err := ResolveEmployee(tx, payload.CompanyID, row, now)
			if err != nil {
				return err
			}

			detail := buildEmployeeDetail(booking.ID, emp.ID, row, now, actorID)
			if err := tx.Create(&detail).Error; err != nil {
				return fmt.Errorf("failed to create employee detail: %w", err)
			}
			totalEmployees++
			results = append(results, ApplicantResult{
				ApplicantType: models.ApplicantTypeEmployee,
				FullName:      detail.FullName,
				EmployeeID:    emp.ID,
				Resolution:    resolution,
			})
			rows = append(rows, detailExportRow(detail, ""))

			for _, depRow := range row.Dependents {
				dep, depResolution, err := ResolveDependent(tx, emp, depRow, now)
				if err != nil {
					return err
				}

				depDetail := buildDependentDetail(booking.ID, emp, dep.ID, depRow, now, actorID)
				if err := tx.Create(&depDetail).Error; err != nil {
					return fmt.Errorf("failed to create dependent detail: %w", err)
				}
				totalDependents++
				results = append(results, ApplicantResult{
					ApplicantType: models.ApplicantTypeDependent,
					FullName:      depDetail.FullName,
					EmployeeID:    emp.ID,
					DependentID:   dep.ID,
					Resolution:    depResolution,
				})
				rows = append(rows, detailExportRow(depDetail, emp.FullName))
			}
		}

		if err := tx.Model(&booking).Updates(map[string]interface{}{
			"total_employees":  totalEmployees,
			"total_dependents": totalDependents,
		}).Error; err != nil {
			return fmt.Errorf("failed to update booking totals: %w", err)
		}
		booking.TotalEmployees = totalEmployees
		booking.TotalDependents = totalDependents
		return nil
	})

	if txErr != nil {
		return nil, s.fail(payload, submitter, FailureStageTransaction, txErr)
	}

	// Post-commit side effects: best-effort, independent failure domain.
	exportFile := ""
	if path, _, err := s.Exports.Build(ExportRequest{
		AppTag:        s.appTag(),
		CompanyTag:    s.companyTag(payload.CompanyID),
		OfficeTag:     s.officeTag(payload.OfficeID),
		Outcome:       ExportOutcomeSuccess,
		Reference:     booking.ReferenceNumber,
		CompanyID:     payload.CompanyID,
		OfficeID:      payload.OfficeID,
		PreferredDate: booking.PreferredDate,
		Notes:         booking.Notes,
		Rows:          rows,
	}); err != nil {
		logrus.WithError(err).WithField("reference", booking.ReferenceNumber).
			Error("success export failed")
	} else {
		exportFile = path
	}

	recipient := ""
	if submitter != nil {
		recipient = submitter.Email
	}
	committed := booking
	attachment := s.exportFilePath(exportFile)
	s.Dispatcher.Dispatch(SideEffectJob{
		Kind: "booking_success_notice",
		Ref:  booking.ReferenceNumber,
		Run: func() error {
			return s.Notifier.SendBookingSuccess(&committed, recipient, attachment)
		},
	})

	result := &BookingResult{
		BookingID:       booking.ID,
		ReferenceNumber: booking.ReferenceNumber,
		PreferredDate:   booking.PreferredDate,
		CompanyID:       booking.CompanyID,
		OfficeID:        booking.OfficeID,
		Status:          booking.Status,
		TotalApplicants: booking.TotalEmployees + booking.TotalDependents,
		Applicants:      results,
	}
	if submitter != nil {
		result.SubmittedBy = &SubmitterInfo{ID: submitter.ID, FullName: submitter.FullName, Email: submitter.Email}
	}
	if exportFile != "" {
		result.ExportURL = "/exports/" + exportFile
	}
	return result, nil
}

// fail is the single failure path: build the failure export, queue the
// failure notification, and wrap the cause so callers still get a
// downloadable artifact of the attempt.
func (s *BookingService) fail(payload BookingPayload, submitter *models.CompanyUser, stage string, cause error) error {
	reason := cause.Error()

	exportFile := ""
	if path, _, err := s.Exports.Build(ExportRequest{
		AppTag:        s.appTag(),
		CompanyTag:    s.companyTag(payload.CompanyID),
		OfficeTag:     s.officeTag(payload.OfficeID),
		Outcome:       ExportOutcomeFailed,
		CompanyID:     payload.CompanyID,
		OfficeID:      payload.OfficeID,
		PreferredDate: strings.TrimSpace(payload.PreferredDate),
		Notes:         strings.TrimSpace(payload.Notes),
		Reason:        reason,
		Rows:          payloadExportRows(payload),
	}); err != nil {
		logrus.WithError(err).Error("failure export failed")
	} else {
		exportFile = path
	}

	recipient := ""
	if submitter != nil {
		recipient = submitter.Email
	} else if payload.CompanyUserID != nil {
		var user models.CompanyUser
		if err := s.DB.First(&user, *payload.CompanyUserID).Error; err == nil {
			recipient = user.Email
		}
	}

	employees, dependents := payload.CountApplicants()
	attachment := s.exportFilePath(exportFile)
	s.Dispatcher.Dispatch(SideEffectJob{
		Kind: "booking_failure_notice",
		Ref:  fmt.Sprintf("company=%d office=%d", payload.CompanyID, payload.OfficeID),
		Run: func() error {
			return s.Notifier.SendBookingFailure(recipient, reason, employees, dependents, attachment)
		},
	})

	return &SubmissionFailure{Stage: stage, Reason: reason, ExportPath: exportFile, Err: cause}
}

// List returns booking headers, newest first, with optional filters.
func (s *BookingService) List(companyID, officeID uint, status string) ([]models.Booking, error) {
	q := s.DB.Preload("Company").Preload("Office").Order("created_at DESC")
	if companyID != 0 {
		q = q.Where("company_id = ?", companyID)
	}
	if officeID != 0 {
		q = q.Where("office_id = ?", officeID)
	}
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var list []models.Booking
	if err := q.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return list, nil
}

// Get loads a booking header with its applicant details and relations.
func (s *BookingService) Get(id uint) (*models.Booking, error) {
	var booking models.Booking
	err := s.DB.
		Preload("Company").
		Preload("Office").
		Preload("CompanyUser").
		Preload("Details").
		First(&booking, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}
	return &booking, nil
}

// HardDelete removes a booking header and all its detail rows; canonical
// Employee/Dependent masters are never touched.
func (s *BookingService) HardDelete(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var booking models.Booking
		if err := tx.Unscoped().First(&booking, id).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("booking_id = ?", id).Delete(&models.ApplicantDetail{}).Error; err != nil {
			return fmt.Errorf("failed to delete applicant details: %w", err)
		}
		if err := tx.Unscoped().Delete(&booking).Error; err != nil {
			return fmt.Errorf("failed to delete booking: %w", err)
		}
		return nil
	})
}

func (s *BookingService) appTag() string {
	var setting models.PlatformSetting
	if err := s.DB.First(&setting).Error; err == nil && setting.ShortName != "" {
		return setting.ShortName
	}
	return "wellness"
}

func (s *BookingService) companyTag(id uint) string {
	var company models.Company
	if err := s.DB.First(&company, id).Error; err != nil {
		return fmt.Sprintf("company%d", id)
	}
	if company.ShortCode != "" {
		return company.ShortCode
	}
	return company.Name
}

func (s *BookingService) officeTag(id uint) string {
	var office models.Office
	if err := s.DB.First(&office, id).Error; err != nil {
		return fmt.Sprintf("office%d", id)
	}
	return office.Name
}

func (s *BookingService) exportFilePath(file string) string {
	if file == "" {
		return ""
	}
	return filepath.Join(s.Exports.Dir, file)
}

// buildEmployeeDetail derives the snapshot row from the same raw input as
// the canonical master, but independently: a bug in one normalization
// path must not desynchronize data already committed in the other.
func buildEmployeeDetail(bookingID, employeeID uint, row EmployeeRow, now time.Time, actorID *uint) models.ApplicantDetail {
	dob := ParseDate(row.DateOfBirth)
	empID := employeeID
	return models.ApplicantDetail{
		BookingID:         bookingID,
		ApplicantType:     models.ApplicantTypeEmployee,
		EmployeeID:        &empID,
		FullName:          strings.TrimSpace(row.FullName),
		Gender:            NormalizeGender(row.Gender),
		DateOfBirth:       dob,
		Age:               ResolveAge(row.Age, dob, now),
		Email:             strings.ToLower(strings.TrimSpace(row.Email)),
		Phone:             strings.TrimSpace(row.Phone),
		Designation:       strings.TrimSpace(row.Designation),
		MedicalConditions: ConditionsJSON(row.MedicalConditions),
		Remarks:           strings.TrimSpace(row.Remarks),
		Status:            models.ApplicantStatusScheduled,
		CreatedBy:         actorID,
		UpdatedBy:         actorID,
	}
}

func buildDependentDetail(bookingID uint, parent *models.Employee, dependentID uint, row DependentRow, now time.Time, actorID *uint) models.ApplicantDetail {
	dob := ParseDate(row.DateOfBirth)
	parentID := parent.ID
	depID := dependentID
	return models.ApplicantDetail{
		BookingID:         bookingID,
		ApplicantType:     models.ApplicantTypeDependent,
		EmployeeID:        &parentID,
		DependentID:       &depID,
		FullName:          strings.TrimSpace(row.FullName),
		Gender:            NormalizeGender(row.Gender),
		DateOfBirth:       dob,
		Age:               ResolveAge(row.Age, dob, now),
		Email:             parent.Email,
		Phone:             parent.Phone,
		Relation:          strings.ToLower(strings.TrimSpace(row.Relation)),
		MedicalConditions: ConditionsJSON(row.MedicalConditions),
		Remarks:           strings.TrimSpace(row.Remarks),
		Status:            models.ApplicantStatusScheduled,
		CreatedBy:         actorID,
		UpdatedBy:         actorID,
	}
}

func detailExportRow(detail models.ApplicantDetail, parentName string) ExportRow {
	return ExportRow{
		ApplicantType: detail.ApplicantType,
		FullName:      detail.FullName,
		Gender:        detail.Gender,
		DateOfBirth:   detail.DateOfBirth,
		Age:           detail.Age,
		Email:         detail.Email,
		Phone:         detail.Phone,
		Designation:   detail.Designation,
		Relation:      detail.Relation,
		ParentName:    parentName,
		Conditions:    conditionsDisplay(detail.MedicalConditions),
		Remarks:       detail.Remarks,
		Status:        detail.Status,
	}
}

// payloadExportRows renders the attempted applicants straight from the
// raw payload, for failure exports where nothing was persisted.
func payloadExportRows(payload BookingPayload) []ExportRow {
	now := time.Now().In(utils.AppLocation())
	var rows []ExportRow
	for _, emp := range payload.Employees {
		dob := ParseDate(emp.DateOfBirth)
		rows = append(rows, ExportRow{
			ApplicantType: models.ApplicantTypeEmployee,
			FullName:      strings.TrimSpace(emp.FullName),
			Gender:        NormalizeGender(emp.Gender),
			DateOfBirth:   dob,
			Age:           ResolveAge(emp.Age, dob, now),
			Email:         strings.ToLower(strings.TrimSpace(emp.Email)),
			Phone:         strings.TrimSpace(emp.Phone),
			Designation:   strings.TrimSpace(emp.Designation),
			Conditions:    strings.Join(NormalizeConditions(emp.MedicalConditions), ", "),
			Remarks:       strings.TrimSpace(emp.Remarks),
		})
		for _, dep := range emp.Dependents {
			depDOB := ParseDate(dep.DateOfBirth)
			rows = append(rows, ExportRow{
				ApplicantType: models.ApplicantTypeDependent,
				FullName:      strings.TrimSpace(dep.FullName),
				Gender:        NormalizeGender(dep.Gender),
				DateOfBirth:   depDOB,
				Age:           ResolveAge(dep.Age, depDOB, now),
				Email:         strings.ToLower(strings.TrimSpace(emp.Email)),
				Phone:         strings.TrimSpace(emp.Phone),
				Relation:      strings.ToLower(strings.TrimSpace(dep.Relation)),
				ParentName:    strings.TrimSpace(emp.FullName),
				Conditions:    strings.Join(NormalizeConditions(dep.MedicalConditions), ", "),
				Remarks:       strings.TrimSpace(dep.Remarks),
			})
		}
	}
	return rows
}

// isDuplicateKeyError recognizes unique violations from MySQL (errno
// 1062) and, for the test database, SQLite's constraint message.
func isDuplicateKeyError(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique")
}

// conditionsDisplay renders a stored condition-list column for a cell.
func conditionsDisplay(raw datatypes.JSON) string {
	if len(raw) == 0 {
		return ""
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err != nil {
		return string(raw)
	}
	return strings.Join(list, ", ")
}
