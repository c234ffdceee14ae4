package model

import (
	"time"
)

// AudienceInsight 账号在 (星期, 小时) 桶上的累计表现
type AudienceInsight struct {
	ID               uint64    `gorm:"primaryKey;column:id" json:"id"`
	AccountID        uint64    `gorm:"not null;uniqueIndex:idx_account_bucket,priority:1;column:account_id" json:"accountId"`
	DayOfWeek        int       `gorm:"not null;uniqueIndex:idx_account_bucket,priority:2;column:day_of_week" json:"dayOfWeek"`
	HourOfDay        int       `gorm:"not null;uniqueIndex:idx_account_bucket,priority:3;column:hour_of_day" json:"hourOfDay"`
	PostsCount       int       `gorm:"not null;default:0;column:posts_count" json:"postsCount"`
	AvgImpressions   float64   `gorm:"not null;default:0;column:avg_impressions" json:"avgImpressions"`
	AvgEngagements   float64   `gorm:"not null;default:0;column:avg_engagements" json:"avgEngagements"`
	PerformanceScore float64   `gorm:"not null;default:0;column:performance_score" json:"performanceScore"`
	Confidence       float64   `gorm:"not null;default:0;column:confidence" json:"confidence"`
	LastUpdated      time.Time `gorm:"not null;column:last_updated" json:"lastUpdated"`
}

func (AudienceInsight) TableName() string {
	return "audience_insights"
}
