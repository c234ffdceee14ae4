package job

import (
	"Postwise/internal/pkg/logger"
	"Postwise/internal/service"
	log "log/slog"
	"time"
)

type AudienceSyncJob struct {
	syncSvc service.AnalyticsSyncService
}

func NewAudienceSyncJob(syncSvc service.AnalyticsSyncService) *AudienceSyncJob {
	return &AudienceSyncJob{syncSvc: syncSvc}
}

func (s *AudienceSyncJob) Run() {
	ctx := logger.NewJobContext("audience")
	start := time.Now()
	log.InfoContext(ctx, "start audience analytics sync job")

	result := s.syncSvc.SyncDailyAnalytics(ctx)
	if !result.Success {
		log.ErrorContext(ctx, "audience analytics sync job failed", "err", result.Error)
		return
	}

	log.InfoContext(ctx, "audience analytics sync job finished",
		"processed", result.AccountsProcessed,
		"failed", result.AccountsFailed,
		"skipped", result.AccountsSkipped,
		"cost", time.Since(start).String())
}
