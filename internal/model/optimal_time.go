package model

import "time"

// OptimalTime 由 AudienceInsight 重建的推荐发帖时段，每天最多 3 个
type OptimalTime struct {
	ID            uint64    `gorm:"primaryKey;column:id" json:"id"`
	AccountID     uint64    `gorm:"not null;uniqueIndex:idx_account_day_rank,priority:1;column:account_id" json:"accountId"`
	DayOfWeek     int       `gorm:"not null;uniqueIndex:idx_account_day_rank,priority:2;column:day_of_week" json:"dayOfWeek"`
	Rank          int       `gorm:"not null;uniqueIndex:idx_account_day_rank,priority:3;column:rank" json:"rank"`
	HourOfDay     int       `gorm:"not null;column:hour_of_day" json:"hourOfDay"`
	Minute        int       `gorm:"not null;default:0;column:minute" json:"minute"`
	Reason        string    `gorm:"type:varchar(255);not null;column:reason" json:"reason"`
	ExpectedReach int64     `gorm:"not null;default:0;column:expected_reach" json:"expectedReach"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"createdAt"`
}

func (OptimalTime) TableName() string {
	return "optimal_posting_times"
}
