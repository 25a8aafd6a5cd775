package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"wellness-backend/utils"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

// Export outcomes.
const (
	ExportOutcomeSuccess = "success"
	ExportOutcomeFailed  = "failed"
)

const exportSheet = "Applicants"

// ExportRow is one tabular line of an audit export: an employee, or a
// dependent repeating its parent employee's identifying columns.
type ExportRow struct {
	ApplicantType string
	FullName      string
	Gender        *string
	DateOfBirth   *time.Time
	Age           *int
	Email         string
	Phone         string
	Designation   string
	Relation      string
	ParentName    string
	Conditions    string
	Remarks       string
	Status        string
}

// ExportRequest carries everything the builder needs; tags are raw
// display strings and get slugified here.
type ExportRequest struct {
	AppTag     string
	CompanyTag string
	OfficeTag  string
	Outcome    string

	// Reference is the BRN when one exists; a failed submission that
	// never got one is tagged with a fresh session id instead.
	Reference string

	CompanyID     uint
	OfficeID      uint
	PreferredDate string
	Notes         string
	Reason        string

	Rows []ExportRow
}

// ExportService renders audit spreadsheets into a flat directory served
// statically at /exports.
type ExportService struct {
	Dir string
}

func NewExportService(dir string) *ExportService {
	return &ExportService{Dir: dir}
}

// Filename builds the deterministic, collision-resistant export name:
// {app}_{company}_{office}_{status}_{refOrSession}_{timestamp}.xlsx
func (s *ExportService) Filename(req ExportRequest, now time.Time) string {
	refTag := req.Reference
	if strings.TrimSpace(refTag) == "" {
		refTag = uuid.New().String()[:8]
	}
	tags := []string{
		utils.SlugTag(req.AppTag),
		utils.SlugTag(req.CompanyTag),
		utils.SlugTag(req.OfficeTag),
		utils.SlugTag(req.Outcome),
		utils.SlugTag(refTag),
		now.Format("20060102150405"),
	}
	for i, tag := range tags {
		if tag == "" {
			tags[i] = "na"
		}
	}
	return strings.Join(tags, "_") + ".xlsx"
}

// Build writes the workbook and returns its path relative to Dir plus the
// bare filename. Missing optional fields become blank cells; nothing in
// here may fail a row.
func (s *ExportService) Build(req ExportRequest) (string, string, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(exportSheet)
	if err != nil {
		return "", "", fmt.Errorf("failed to create export sheet: %w", err)
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	if len(req.Rows) == 0 {
		s.writeMetadataRow(f, req)
	} else if err := s.writeApplicantRows(f, req); err != nil {
		return "", "", err
	}

	filename := s.Filename(req, time.Now())
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", "", fmt.Errorf("failed to create export dir: %w", err)
	}
	if err := f.SaveAs(filepath.Join(s.Dir, filename)); err != nil {
		return "", "", fmt.Errorf("failed to save export: %w", err)
	}
	return filename, filename, nil
}

// writeMetadataRow covers a failed submission with no applicant rows: one
// line carrying what was attempted, so operators can still diagnose.
func (s *ExportService) writeMetadataRow(f *excelize.File, req ExportRequest) {
	headers := []string{"Company ID", "Office ID", "Preferred Date", "Notes", "Failure Reason"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(exportSheet, cell, header)
	}
	values := []interface{}{req.CompanyID, req.OfficeID, req.PreferredDate, req.Notes, req.Reason}
	for i, value := range values {
		cell, _ := excelize.CoordinatesToCellName(i+1, 2)
		_ = f.SetCellValue(exportSheet, cell, value)
	}
}

func (s *ExportService) writeApplicantRows(f *excelize.File, req ExportRequest) error {
	headers := []string{
		"Reference Number", "Applicant Type", "Full Name", "Gender", "Date of Birth",
		"Age", "Email", "Phone", "Designation", "Relation", "Parent Employee",
		"Medical Conditions", "Remarks", "Status", "Preferred Date",
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(exportSheet, cell, header)
	}

	// spreadsheet-native dates with an explicit display format
	dateFormat := "dd-mm-yyyy"
	dateStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &dateFormat})
	if err != nil {
		return fmt.Errorf("failed to create date style: %w", err)
	}

	for i, row := range req.Rows {
		n := i + 2
		_ = f.SetCellValue(exportSheet, fmt.Sprintf("A%d", n), req.Reference)
		_ = f.SetCellValue(exportSheet, fmt.Sprintf("B%d", n), row.ApplicantType)
		_ = f.SetCellValue(exportSheet, fmt.Sprintf("C%d", n), row.FullName)
		if row.Gender != nil {
			_ = f.SetCellValue(exportSheet, fmt.Sprintf("D%d", n), *row.Gender)
		}
		if row.DateOfBirth != nil {
			cell := fmt.Sprintf("E%d", n)
			_ = f.SetCellValue(exportSheet, cell, *row.DateOfBirth)
			_ = f.SetCellStyle(exportSheet, cell, cell, dateStyle)
		}
		if row.Age != nil {
			_ = f.SetCellValue(exportSheet, fmt.Sprintf("F%d", n), *row.Age)
		}
		_ = f.SetCellValue(exportSheet, fmt.Sprintf("G%d", n), row.Email)
		_ = f.SetCellValue(exportSheet, fmt.Sprintf("H%d", n), row.Phone)
		_ = f.SetCellValue(exportSheet, fmt.Sprintf("I%d", n), row.Designation)
		_ = f.SetCellValue(exportSheet, fmt.Sprintf("J%d", n), row.Relation)
		_ = f.SetCellValue(exportSheet, fmt.Sprintf("K%d", n), row.ParentName)
		_ = f.SetCellValue(exportSheet, fmt.Sprintf("L%d", n), row.Conditions)
		_ = f.SetCellValue(exportSheet, fmt.Sprintf("M%d", n), row.Remarks)
		_ = f.SetCellValue(exportSheet, fmt.Sprintf("N%d", n), row.Status)
		_ = f.SetCellValue(exportSheet, fmt.Sprintf("O%d", n), req.PreferredDate)
	}
	return nil
}
