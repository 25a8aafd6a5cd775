package models

import "time"

// PlatformSetting is a single-row table holding tenant-wide configuration.
// ShortName, when set, takes precedence over company short codes in
// reference numbers and export filenames.
type PlatformSetting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ShortName    string `gorm:"column:short_name;size:16" json:"short_name"`
	SupportEmail string `gorm:"column:support_email;size:150" json:"support_email"`
	CCList       string `gorm:"column:cc_list;type:text" json:"cc_list"`
	BCCList      string `gorm:"column:bcc_list;type:text" json:"bcc_list"`
}
