package dto

// TimeSlotDTO 推荐发帖时段
// Day 为空表示行业默认时段，不区分星期
type TimeSlotDTO struct {
	Day            *int   `json:"dayOfWeek,omitempty"`
	DayName        string `json:"dayName,omitempty"`
	HourOfDay      int    `json:"hourOfDay"`
	Minute         int    `json:"minute"`
	Time           string `json:"time"` // 24 小时制 HH:MM
	Rank           int    `json:"rank"`
	Reason         string `json:"reason"`
	ExpectedReach  int64  `json:"expectedReach"`
	IsPersonalized bool   `json:"isPersonalized"`
	Description    string `json:"description"`
}

// AudienceSummaryDTO 受众分析概览
type AudienceSummaryDTO struct {
	AccountID            uint64  `json:"accountId"`
	TotalPostsAnalyzed   int64   `json:"totalPostsAnalyzed"`
	BestDay              *int    `json:"bestDayOfWeek"`
	BestDayName          string  `json:"bestDayName"`
	BestHour             *int    `json:"bestHourOfDay"`
	BestTime             string  `json:"bestTime"`
	BestPerformanceScore float64 `json:"bestPerformanceScore"`
	IsLearning           bool    `json:"isLearning"`
}

// AudienceInsightDTO 单个时间桶，用于热力图
type AudienceInsightDTO struct {
	DayOfWeek        int     `json:"dayOfWeek"`
	HourOfDay        int     `json:"hourOfDay"`
	PostsCount       int     `json:"postsCount"`
	AvgImpressions   float64 `json:"avgImpressions"`
	AvgEngagements   float64 `json:"avgEngagements"`
	PerformanceScore float64 `json:"performanceScore"`
	Confidence       float64 `json:"confidence"`
}
