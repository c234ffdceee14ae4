package model

import (
	"time"
)

// Post 已排期或已发布的帖子，由排期模块写入，这里只读取与回写指标
type Post struct {
	ID              uint64     `gorm:"primaryKey" json:"id"`
	AccountID       uint64     `gorm:"not null;index:idx_account_published,priority:1" json:"account_id"`
	Content         string     `gorm:"type:text;not null" json:"content"`
	Status          int8       `gorm:"not null;default:0" json:"status"` // 0:草稿, 1:已排期, 2:已发布, 3:失败
	ExternalID      *string    `gorm:"type:varchar(64);index:idx_external_id" json:"external_id"`
	PublishedAt     *time.Time `gorm:"index:idx_account_published,priority:2" json:"published_at"`
	MediaCount      int        `gorm:"not null;default:0" json:"media_count"`
	Impressions     int64      `gorm:"not null;default:0" json:"impressions"`
	Engagements     int64      `gorm:"not null;default:0" json:"engagements"`
	Likes           int64      `gorm:"not null;default:0" json:"likes"`
	Replies         int64      `gorm:"not null;default:0" json:"replies"`
	Reposts         int64      `gorm:"not null;default:0" json:"reposts"`
	Clicks          int64      `gorm:"not null;default:0" json:"clicks"`
	MetricsSyncedAt *time.Time `json:"metrics_synced_at"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

func (Post) TableName() string {
	return "posts"
}
