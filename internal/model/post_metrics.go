package model

// PostMetrics 外部平台返回的单条帖子互动计数
type PostMetrics struct {
	Impressions int64 `json:"impressions"`
	Engagements int64 `json:"engagements"`
	Likes       int64 `json:"likes"`
	Replies     int64 `json:"replies"`
	Reposts     int64 `json:"reposts"`
	Clicks      int64 `json:"clicks"`
}
