package model

import "time"

// SocialAccount 已授权的社交平台账号
type SocialAccount struct {
	ID           uint64     `gorm:"primaryKey" json:"id"`
	UserID       uint64     `gorm:"not null;index:idx_user_id" json:"user_id"`
	Platform     string     `gorm:"type:varchar(32);not null;index:idx_platform_active,priority:1" json:"platform"`
	Username     string     `gorm:"type:varchar(64)" json:"username"`
	AccessToken  string     `gorm:"type:text;not null" json:"-"`
	IsActive     bool       `gorm:"not null;index:idx_platform_active,priority:2" json:"is_active"`
	LastSyncedAt *time.Time `json:"last_synced_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (SocialAccount) TableName() string {
	return "social_accounts"
}
