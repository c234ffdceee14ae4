package cron

import (
	"Postwise/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

const DefaultAudienceSyncSpec = "0 0 3 * * *"

type Manager struct {
	engine          *cron.Cron
	audienceSyncJob *job.AudienceSyncJob
	audienceSpec    string
}

func NewCronManager(audienceSyncJob *job.AudienceSyncJob, audienceSpec string) *Manager {
	if audienceSpec == "" {
		audienceSpec = DefaultAudienceSyncSpec
	}
	return &Manager{
		engine: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)),
		),
		audienceSyncJob: audienceSyncJob,
		audienceSpec:    audienceSpec,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	if _, err := s.engine.AddJob(s.audienceSpec, s.audienceSyncJob); err != nil {
		return err
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动", "audienceSpec", s.audienceSpec)
	s.engine.Start()
}

func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	<-s.engine.Stop().Done()
}

// InitCron 注册并启动全部定时任务
func InitCron(mgr *Manager) error {
	log.Info("Cron Jobs starting...")
	if err := mgr.RegisterJobs(); err != nil {
		return err
	}
	mgr.Start()
	return nil
}
