package services

import (
	"errors"
	"fmt"
	"strings"

	"wellness-backend/models"

	"gorm.io/gorm"
)

type CompanyUserService struct {
	DB *gorm.DB
}

func NewCompanyUserService(db *gorm.DB) *CompanyUserService {
	return &CompanyUserService{DB: db}
}

func (s *CompanyUserService) Create(companyID uint, fullName, email, phone string) (*models.CompanyUser, error) {
	fullName = strings.TrimSpace(fullName)
	email = strings.ToLower(strings.TrimSpace(email))
	if fullName == "" || email == "" {
		return nil, &PreconditionError{Reason: "full_name and email are required"}
	}

	var company models.Company
	if err := s.DB.First(&company, companyID).Error; err != nil {
		return nil, &PreconditionError{Reason: fmt.Sprintf("company %d not found", companyID)}
	}

	var existing models.CompanyUser
	err := s.DB.Where("company_id = ? AND email = ?", companyID, email).First(&existing).Error
	if err == nil {
		return nil, &PreconditionError{Reason: "a user with this email already exists for the company"}
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	user := models.CompanyUser{
		CompanyID: companyID,
		FullName:  fullName,
		Email:     email,
		Phone:     strings.TrimSpace(phone),
	}
	if err := s.DB.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create company user: %w", err)
	}
	return &user, nil
}

func (s *CompanyUserService) List(companyID uint) ([]models.CompanyUser, error) {
	q := s.DB.Order("full_name ASC")
	if companyID != 0 {
		q = q.Where("company_id = ?", companyID)
	}
	var list []models.CompanyUser
	if err := q.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list company users: %w", err)
	}
	return list, nil
}

func (s *CompanyUserService) Delete(id uint) error {
	result := s.DB.Delete(&models.CompanyUser{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete company user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
