package wire

import (
	"Postwise/internal/api"
	"Postwise/internal/api/config"
	"Postwise/internal/api/handler"
	"Postwise/internal/job"
	"Postwise/internal/pkg/cron"
	"Postwise/internal/pkg/platform"
	"Postwise/internal/repository"
	"Postwise/internal/service"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router  *gin.Engine
	DB      *gorm.DB
	CronMgr *cron.Manager
	SyncSvc service.AnalyticsSyncService
}

func BuildApplication(db *gorm.DB, cfg *config.Config) (*ApplicationContainer, error) {
	accountRepo := repository.NewSocialAccountRepository(db)
	postRepo := repository.NewPostRepository(db)
	perfRepo := repository.NewPostPerformanceRepository(db)
	insightRepo := repository.NewAudienceInsightRepository(db)
	optimalTimeRepo := repository.NewOptimalTimeRepository(db)

	fetcher := platform.NewClient(cfg.Platform)

	optimalTimeService := service.NewOptimalTimeService(insightRepo, optimalTimeRepo)
	insightService := service.NewAudienceInsightService(insightRepo, optimalTimeService)
	perfService := service.NewPostPerformanceService(postRepo, perfRepo)
	syncService := service.NewAnalyticsSyncService(
		accountRepo, postRepo, fetcher, perfService, insightService, cfg.Platform.Name, cfg.Analytics,
	)
	recommendationService := service.NewRecommendationService(
		optimalTimeRepo, insightRepo, perfRepo, time.Duration(cfg.Analytics.CacheMinutes)*time.Minute,
	)
	accountService := service.NewSocialAccountService(accountRepo)

	handlers := &api.HandlersGroup{
		AnalyticsHandler: handler.NewAnalyticsHandler(syncService, recommendationService, accountService),
	}
	router := api.SetupRouter(handlers, cfg.Logstash.Index)

	cronMgr := cron.NewCronManager(job.NewAudienceSyncJob(syncService), cfg.Analytics.SyncCron)

	return &ApplicationContainer{
		Router:  router,
		DB:      db,
		CronMgr: cronMgr,
		SyncSvc: syncService,
	}, nil
}
