package service

import (
	"Postwise/internal/api/config"
	"Postwise/internal/api/dto"
	"Postwise/internal/model"
	"Postwise/internal/pkg/consts"
	"Postwise/internal/pkg/platform"
	"Postwise/internal/pkg/redis"
	"Postwise/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
	pkgerrors "github.com/pkg/errors"
)

const (
	defaultWindowDays    = 30
	defaultSyncBatchSize = 100
	defaultLease         = 10 * time.Minute
	staleAfter           = 24 * time.Hour
)

type AnalyticsSyncService interface {
	SyncDailyAnalytics(ctx context.Context) *dto.SyncResultDTO
	SyncAccount(ctx context.Context, accountID uint64) (*dto.AccountSyncDTO, error)
}

type AnalyticsSyncServiceImpl struct {
	accountRepo repository.SocialAccountRepo
	postRepo    repository.PostRepo
	fetcher     platform.MetricsFetcher
	perfSvc     PostPerformanceService
	insightSvc  AudienceInsightService
	platform    string
	windowDays  int
	batchSize   int
	lease       time.Duration
}

func NewAnalyticsSyncService(
	accountRepo repository.SocialAccountRepo,
	postRepo repository.PostRepo,
	fetcher platform.MetricsFetcher,
	perfSvc PostPerformanceService,
	insightSvc AudienceInsightService,
	platformName string,
	cfg config.AnalyticsConfig,
) AnalyticsSyncService {
	s := &AnalyticsSyncServiceImpl{
		accountRepo: accountRepo,
		postRepo:    postRepo,
		fetcher:     fetcher,
		perfSvc:     perfSvc,
		insightSvc:  insightSvc,
		platform:    platformName,
		windowDays:  cfg.WindowDays,
		batchSize:   cfg.SyncBatchSize,
		lease:       time.Duration(cfg.LeaseSeconds) * time.Second,
	}
	if s.platform == "" {
		s.platform = consts.PlatformTwitter
	}
	if s.windowDays <= 0 {
		s.windowDays = defaultWindowDays
	}
	if s.batchSize <= 0 {
		s.batchSize = defaultSyncBatchSize
	}
	if s.lease <= 0 {
		s.lease = defaultLease
	}
	return s
}

// SyncDailyAnalytics 依次同步平台下所有活跃账号，单个账号失败不影响其他账号
func (s *AnalyticsSyncServiceImpl) SyncDailyAnalytics(ctx context.Context) *dto.SyncResultDTO {
	// 同步一旦开始就跑完整个账号循环，不随调用方取消
	ctx = context.WithoutCancel(ctx)
	accounts, err := s.accountRepo.ListActiveAccounts(ctx, s.platform)
	if err != nil {
		log.ErrorContext(ctx, "failed to list active accounts", "platform", s.platform, "err", err)
		return &dto.SyncResultDTO{Success: false, Error: err.Error()}
	}

	result := &dto.SyncResultDTO{Success: true}
	for _, account := range accounts {
		stat, err := s.syncAccount(ctx, account)
		if err != nil {
			if errors.Is(err, ErrSyncInProgress) {
				result.AccountsSkipped++
				log.WarnContext(ctx, "account sync already in progress, skipped", "accountId", account.ID)
				continue
			}
			result.AccountsFailed++
			log.ErrorContext(ctx, "account analytics sync failed", "accountId", account.ID, "err", err)
			continue
		}
		result.AccountsProcessed++
		log.InfoContext(ctx, "account analytics synced",
			"accountId", account.ID, "checked", stat.PostsChecked, "recorded", stat.PostsRecorded, "buckets", stat.BucketsUpdated)
	}

	log.InfoContext(ctx, "daily analytics sync finished",
		"accounts", len(accounts), "processed", result.AccountsProcessed, "failed", result.AccountsFailed, "skipped", result.AccountsSkipped)
	return result
}

// SyncAccount 手动同步单个账号
func (s *AnalyticsSyncServiceImpl) SyncAccount(ctx context.Context, accountID uint64) (*dto.AccountSyncDTO, error) {
	ctx = context.WithoutCancel(ctx)
	account, err := s.accountRepo.GetAccount(ctx, accountID)
	if err != nil {
		log.ErrorContext(ctx, "failed to get social account", "accountId", accountID, "err", err)
		return nil, UnExpectedError
	}
	if account == nil {
		return nil, ErrAccountNotFound
	}
	if !account.IsActive {
		return nil, ErrAccountInactive
	}

	stat, err := s.syncAccount(ctx, account)
	if err != nil {
		if errors.Is(err, ErrSyncInProgress) {
			return nil, ErrSyncInProgress
		}
		log.ErrorContext(ctx, "account analytics sync failed", "accountId", accountID, "err", err)
		return nil, UnExpectedError
	}
	return stat, nil
}

// syncAccount 持有账号租约执行：选帖 -> 拉取指标 -> 记录 -> 聚合 -> 更新同步时间
func (s *AnalyticsSyncServiceImpl) syncAccount(ctx context.Context, account *model.SocialAccount) (*dto.AccountSyncDTO, error) {
	lockKey := consts.AudienceSyncLock + strconv.FormatUint(account.ID, 10)
	token := uuid.New().String()
	ok, err := redis.TryLock(ctx, lockKey, token, s.lease, 1)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "acquire sync lease")
	}
	if !ok {
		return nil, ErrSyncInProgress
	}
	defer redis.UnLock(ctx, lockKey, token)

	// 不让单次同步超出租约
	ctx, cancel := context.WithTimeout(ctx, s.lease)
	defer cancel()

	now := nowFunc()
	stat := &dto.AccountSyncDTO{AccountID: account.ID}

	posts, err := s.postRepo.FindPostsNeedingSync(ctx, account.ID,
		now.AddDate(0, 0, -s.windowDays), now.Add(-staleAfter), s.batchSize)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "find posts needing sync")
	}
	stat.PostsChecked = len(posts)
	if len(posts) == 0 {
		return stat, s.markSynced(ctx, account.ID, now)
	}

	ids := make([]string, 0, len(posts))
	for _, p := range posts {
		if p.ExternalID != nil && *p.ExternalID != "" {
			ids = append(ids, *p.ExternalID)
		}
	}
	metrics := s.fetcher.FetchMetrics(ctx, account.AccessToken, ids)

	batch, err := s.perfSvc.RecordPerformances(ctx, posts, metrics)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "record post performances")
	}
	stat.PostsRecorded = len(batch)

	if len(batch) > 0 {
		insights, err := s.insightSvc.AggregateBatch(ctx, account.ID, batch)
		if err != nil {
			return nil, pkgerrors.Wrap(err, "aggregate audience buckets")
		}
		stat.BucketsUpdated = len(insights)
	}

	return stat, s.markSynced(ctx, account.ID, now)
}

func (s *AnalyticsSyncServiceImpl) markSynced(ctx context.Context, accountID uint64, now time.Time) error {
	if err := s.accountRepo.UpdateLastSynced(ctx, accountID, now); err != nil {
		return pkgerrors.Wrap(err, "update account last synced")
	}
	return nil
}
