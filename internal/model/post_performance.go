package model

import (
	"time"
)

// PostPerformance 单条帖子的表现快照，每个帖子至多一行
// DayOfWeek / HourOfDay 与内容特征在创建时写入，之后不再变更
type PostPerformance struct {
	ID             uint64    `gorm:"primaryKey;column:id" json:"id"`
	PostID         uint64    `gorm:"not null;uniqueIndex:idx_post_id;column:post_id" json:"postId"`
	AccountID      uint64    `gorm:"not null;index:idx_account_id;column:account_id" json:"accountId"`
	PostedAt       time.Time `gorm:"not null;column:posted_at" json:"postedAt"`
	DayOfWeek      int       `gorm:"not null;column:day_of_week" json:"dayOfWeek"`
	HourOfDay      int       `gorm:"not null;column:hour_of_day" json:"hourOfDay"`
	Impressions    int64     `gorm:"not null;default:0;column:impressions" json:"impressions"`
	Engagements    int64     `gorm:"not null;default:0;column:engagements" json:"engagements"`
	Likes          int64     `gorm:"not null;default:0;column:likes" json:"likes"`
	Replies        int64     `gorm:"not null;default:0;column:replies" json:"replies"`
	Reposts        int64     `gorm:"not null;default:0;column:reposts" json:"reposts"`
	Clicks         int64     `gorm:"not null;default:0;column:clicks" json:"clicks"`
	EngagementRate float64   `gorm:"not null;default:0;column:engagement_rate" json:"engagementRate"`
	ContentLength  int       `gorm:"not null;default:0;column:content_length" json:"contentLength"`
	HasMedia       bool      `gorm:"not null;default:false;column:has_media" json:"hasMedia"`
	MediaCount     int       `gorm:"not null;default:0;column:media_count" json:"mediaCount"`
	HasHashtags    bool      `gorm:"not null;default:false;column:has_hashtags" json:"hasHashtags"`
	HashtagCount   int       `gorm:"not null;default:0;column:hashtag_count" json:"hashtagCount"`
	LastSyncedAt   time.Time `gorm:"not null;column:last_synced_at" json:"lastSyncedAt"`
	CreatedAt      time.Time `gorm:"column:created_at" json:"createdAt"`
}

func (PostPerformance) TableName() string {
	return "post_performances"
}
