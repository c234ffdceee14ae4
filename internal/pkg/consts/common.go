package consts

const (
	PostStatusDraft     = 0
	PostStatusScheduled = 1
	PostStatusPublished = 2
	PostStatusFailed    = 3
)

const (
	PlatformTwitter = "twitter"
)

const (
	// RankedSlotsPerDay 每天保留的推荐时段数
	RankedSlotsPerDay = 3
	// BestTimesLimit 对外返回的推荐时段数
	BestTimesLimit = 4
	// LearningThreshold 分析帖子数低于该值时推荐仅供参考
	LearningThreshold = 10
)
