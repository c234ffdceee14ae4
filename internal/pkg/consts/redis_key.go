package consts

const (
	AudienceBestTimesKey = "audience:best_times:"
	AudienceSummaryKey   = "audience:summary:"
	TokenBlacklistKey    = "auth:blacklist:"
)

const (
	AudienceSyncLock = "lock:audience:sync:"
)
