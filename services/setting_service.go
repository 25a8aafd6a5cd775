package services

import (
	"errors"
	"fmt"
	"strings"

	"wellness-backend/models"

	"gorm.io/gorm"
)

// SettingService manages the single platform-settings row.
type SettingService struct {
	DB *gorm.DB
}

func NewSettingService(db *gorm.DB) *SettingService {
	return &SettingService{DB: db}
}

func (s *SettingService) Get() (*models.PlatformSetting, error) {
	var setting models.PlatformSetting
	err := s.DB.First(&setting).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.PlatformSetting{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load platform settings: %w", err)
	}
	return &setting, nil
}

func (s *SettingService) Update(shortName, supportEmail, ccList, bccList string) (*models.PlatformSetting, error) {
	setting, err := s.Get()
	if err != nil {
		return nil, err
	}

	setting.ShortName = strings.ToUpper(strings.TrimSpace(shortName))
	setting.SupportEmail = strings.TrimSpace(supportEmail)
	setting.CCList = strings.TrimSpace(ccList)
	setting.BCCList = strings.TrimSpace(bccList)

	if err := s.DB.Save(setting).Error; err != nil {
		return nil, fmt.Errorf("failed to save platform settings: %w", err)
	}
	return setting, nil
}
