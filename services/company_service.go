package services

import (
	"fmt"
	"strings"

	"wellness-backend/models"
	"wellness-backend/utils"

	"gorm.io/gorm"
)

type CompanyService struct {
	DB *gorm.DB
}

func NewCompanyService(db *gorm.DB) *CompanyService {
	return &CompanyService{DB: db}
}

func (s *CompanyService) Create(name, shortCode, address, phone, email string) (*models.Company, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &PreconditionError{Reason: "company name is required"}
	}
	if strings.TrimSpace(shortCode) == "" {
		shortCode = name
	}

	company := models.Company{
		Name:      name,
		ShortCode: utils.ShortCodeTag(shortCode, 4),
		Address:   strings.TrimSpace(address),
		Phone:     strings.TrimSpace(phone),
		Email:     strings.TrimSpace(email),
	}
	if err := s.DB.Create(&company).Error; err != nil {
		return nil, fmt.Errorf("failed to create company: %w", err)
	}
	return &company, nil
}

func (s *CompanyService) List() ([]models.Company, error) {
	var list []models.Company
	if err := s.DB.Order("name ASC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	return list, nil
}

func (s *CompanyService) Get(id uint) (*models.Company, error) {
	var company models.Company
	if err := s.DB.Preload("Offices").First(&company, id).Error; err != nil {
		return nil, err
	}
	return &company, nil
}

// Update rejects changes once bookings reference the company; its code is
// baked into historical reference numbers.
func (s *CompanyService) Update(id uint, name, shortCode, address, phone, email string) (*models.Company, error) {
	var company models.Company
	if err := s.DB.First(&company, id).Error; err != nil {
		return nil, err
	}

	var bookingCount int64
	if err := s.DB.Model(&models.Booking{}).Where("company_id = ?", id).Count(&bookingCount).Error; err != nil {
		return nil, fmt.Errorf("failed to check company bookings: %w", err)
	}
	if bookingCount > 0 {
		return nil, &PreconditionError{Reason: "company is referenced by bookings and cannot be modified"}
	}

	if name = strings.TrimSpace(name); name != "" {
		company.Name = name
	}
	if shortCode = strings.TrimSpace(shortCode); shortCode != "" {
		company.ShortCode = utils.ShortCodeTag(shortCode, 4)
	}
	company.Address = strings.TrimSpace(address)
	company.Phone = strings.TrimSpace(phone)
	company.Email = strings.TrimSpace(email)

	if err := s.DB.Save(&company).Error; err != nil {
		return nil, fmt.Errorf("failed to update company: %w", err)
	}
	return &company, nil
}

// Delete is always a soft delete; bookings keep their company id.
func (s *CompanyService) Delete(id uint) error {
	result := s.DB.Delete(&models.Company{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete company: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
