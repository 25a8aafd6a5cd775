package services

import (
	"fmt"
	"strings"

	"wellness-backend/models"

	"gorm.io/gorm"
)

type OfficeService struct {
	DB *gorm.DB
}

func NewOfficeService(db *gorm.DB) *OfficeService {
	return &OfficeService{DB: db}
}

// canonicalDisplayName is the "{CompanyShortCode}-{OfficeName}" form
// consumed downstream as an opaque display string.
func canonicalDisplayName(company *models.Company, officeName string) string {
	return fmt.Sprintf("%s-%s", company.ShortCode, strings.TrimSpace(officeName))
}

func (s *OfficeService) Create(companyID uint, name, address string) (*models.Office, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &PreconditionError{Reason: "office name is required"}
	}

	var company models.Company
	if err := s.DB.First(&company, companyID).Error; err != nil {
		return nil, &PreconditionError{Reason: fmt.Sprintf("company %d not found", companyID)}
	}

	office := models.Office{
		CompanyID:   companyID,
		Name:        name,
		DisplayName: canonicalDisplayName(&company, name),
		Address:     strings.TrimSpace(address),
	}
	if err := s.DB.Create(&office).Error; err != nil {
		return nil, fmt.Errorf("failed to create office: %w", err)
	}
	return &office, nil
}

func (s *OfficeService) List(companyID uint) ([]models.Office, error) {
	q := s.DB.Order("name ASC")
	if companyID != 0 {
		q = q.Where("company_id = ?", companyID)
	}
	var list []models.Office
	if err := q.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list offices: %w", err)
	}
	return list, nil
}

func (s *OfficeService) Update(id uint, name, address string) (*models.Office, error) {
	var office models.Office
	if err := s.DB.First(&office, id).Error; err != nil {
		return nil, err
	}

	if name = strings.TrimSpace(name); name != "" {
		var company models.Company
		if err := s.DB.First(&company, office.CompanyID).Error; err != nil {
			return nil, fmt.Errorf("failed to load owning company: %w", err)
		}
		office.Name = name
		office.DisplayName = canonicalDisplayName(&company, name)
	}
	office.Address = strings.TrimSpace(address)

	if err := s.DB.Save(&office).Error; err != nil {
		return nil, fmt.Errorf("failed to update office: %w", err)
	}
	return &office, nil
}

func (s *OfficeService) Delete(id uint) error {
	result := s.DB.Delete(&models.Office{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete office: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
