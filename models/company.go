package models

import (
	"time"

	"gorm.io/gorm"
)

type Company struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Name      string `gorm:"column:name;size:255" json:"name"`
	ShortCode string `gorm:"column:short_code;size:16" json:"short_code"`
	Address   string `gorm:"column:address;type:text" json:"address,omitempty"`
	Phone     string `gorm:"column:phone;size:50" json:"phone,omitempty"`
	Email     string `gorm:"column:email;size:150" json:"email,omitempty"`

	Offices []Office `gorm:"foreignKey:CompanyID" json:"offices,omitempty"`
}

type Office struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	CompanyID uint `gorm:"index;column:company_id" json:"company_id"`

	// DisplayName is the canonical "{CompanyShortCode}-{OfficeName}" form,
	// consumed downstream as an opaque string.
	Name        string `gorm:"column:name;size:255" json:"name"`
	DisplayName string `gorm:"column:display_name;size:255" json:"display_name"`
	Address     string `gorm:"column:address;type:text" json:"address,omitempty"`

	Company Company `gorm:"foreignKey:CompanyID;references:ID" json:"company,omitempty"`
}

type CompanyUser struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	CompanyID uint   `gorm:"index;column:company_id" json:"company_id"`
	FullName  string `gorm:"column:full_name;size:255" json:"full_name"`
	Email     string `gorm:"column:email;size:150;index" json:"email"`
	Phone     string `gorm:"column:phone;size:50" json:"phone,omitempty"`

	Company Company `gorm:"foreignKey:CompanyID;references:ID" json:"company,omitempty"`
}
