package service

import (
	"Postwise/internal/api/config"
	"Postwise/internal/model"
	"Postwise/internal/pkg/consts"
	"Postwise/internal/pkg/redis"
	"Postwise/internal/repository"
	"context"
	"errors"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type syncFixture struct {
	db          *gorm.DB
	fetcher     *stubFetcher
	svc         AnalyticsSyncService
	recommender RecommendationService
	insightRepo repository.AudienceInsightRepo
	optimalRepo repository.OptimalTimeRepo
	perfRepo    repository.PostPerformanceRepo
}

func newSyncFixture(t *testing.T, wrapInsight func(AudienceInsightService) AudienceInsightService) *syncFixture {
	db := newTestDB(t)
	setupMiniRedis(t)
	freezeNow(t, testNow)

	accountRepo := repository.NewSocialAccountRepository(db)
	postRepo := repository.NewPostRepository(db)
	perfRepo := repository.NewPostPerformanceRepository(db)
	insightRepo := repository.NewAudienceInsightRepository(db)
	optimalRepo := repository.NewOptimalTimeRepository(db)

	optimalSvc := NewOptimalTimeService(insightRepo, optimalRepo)
	var insightSvc AudienceInsightService = NewAudienceInsightService(insightRepo, optimalSvc)
	if wrapInsight != nil {
		insightSvc = wrapInsight(insightSvc)
	}
	fetcher := newStubFetcher()

	svc := NewAnalyticsSyncService(accountRepo, postRepo, fetcher,
		NewPostPerformanceService(postRepo, perfRepo), insightSvc,
		consts.PlatformTwitter, config.AnalyticsConfig{WindowDays: 30, SyncBatchSize: 100, LeaseSeconds: 600})

	return &syncFixture{
		db:          db,
		fetcher:     fetcher,
		svc:         svc,
		recommender: NewRecommendationService(optimalRepo, insightRepo, perfRepo, time.Hour),
		insightRepo: insightRepo,
		optimalRepo: optimalRepo,
		perfRepo:    perfRepo,
	}
}

// seedMondayNine 12 条周一 9 点的帖子，每条曝光 100、互动 5
func (f *syncFixture) seedMondayNine(t *testing.T, account *model.SocialAccount) {
	for i := 0; i < 12; i++ {
		week := i % 2
		publishedAt := time.Date(2026, 3, 16-7*week, 9, i, 0, 0, time.UTC)
		id := fmt.Sprintf("%d-%d", account.ID, i)
		createPublishedPost(t, f.db, account.ID, id, publishedAt, "post #launch "+strconv.Itoa(i))
		f.fetcher.set(id, &model.PostMetrics{Impressions: 100, Engagements: 5, Likes: 3, Replies: 1, Reposts: 1})
	}
}

func TestSyncDailyAnalyticsMondayNineScenario(t *testing.T) {
	f := newSyncFixture(t, nil)
	ctx := context.Background()
	account := createAccount(t, f.db, 1, "alice")
	f.seedMondayNine(t, account)

	result := f.svc.SyncDailyAnalytics(ctx)
	require.True(t, result.Success)
	assert.Equal(t, 1, result.AccountsProcessed)
	assert.Equal(t, 0, result.AccountsFailed)

	insights, err := f.insightRepo.ListByAccount(ctx, account.ID)
	require.NoError(t, err)
	require.Len(t, insights, 1)
	bucket := insights[0]
	assert.Equal(t, 1, bucket.DayOfWeek)
	assert.Equal(t, 9, bucket.HourOfDay)
	assert.Equal(t, 12, bucket.PostsCount)
	assert.InDelta(t, 100.0, bucket.AvgImpressions, 1e-9)
	assert.InDelta(t, 5.0, bucket.AvgEngagements, 1e-9)
	assert.InDelta(t, 80.0, bucket.PerformanceScore, 1e-9)
	assert.Equal(t, 1.0, bucket.Confidence)

	perf := findPerformance(t, f.db, 1)
	require.NotNil(t, perf)
	assert.InDelta(t, 0.05, perf.EngagementRate, 1e-9)
	assert.True(t, perf.HasHashtags)
	assert.Equal(t, 1, perf.HashtagCount)

	times, err := f.optimalRepo.ListByAccount(ctx, account.ID)
	require.NoError(t, err)
	require.Len(t, times, 1)
	assert.Equal(t, 1, times[0].Rank)
	assert.Equal(t, 9, times[0].HourOfDay)
	assert.Equal(t, "Proven high engagement", times[0].Reason)
	assert.Equal(t, int64(100), times[0].ExpectedReach)

	var post model.Post
	require.NoError(t, f.db.First(&post, 1).Error)
	assert.Equal(t, int64(100), post.Impressions)
	require.NotNil(t, post.MetricsSyncedAt)
	assert.True(t, testNow.Equal(*post.MetricsSyncedAt))

	var saved model.SocialAccount
	require.NoError(t, f.db.First(&saved, account.ID).Error)
	require.NotNil(t, saved.LastSyncedAt)
	assert.True(t, testNow.Equal(*saved.LastSyncedAt))

	summary := f.recommender.GetAudienceAnalyticsSummary(ctx, account.ID)
	assert.Equal(t, int64(12), summary.TotalPostsAnalyzed)
	assert.False(t, summary.IsLearning)
	require.NotNil(t, summary.BestDay)
	assert.Equal(t, 1, *summary.BestDay)
	assert.Equal(t, "Monday", summary.BestDayName)
	assert.Equal(t, "9:00 AM", summary.BestTime)
}

func TestSyncDailyAnalyticsIsIdempotent(t *testing.T) {
	f := newSyncFixture(t, nil)
	ctx := context.Background()
	account := createAccount(t, f.db, 1, "alice")
	f.seedMondayNine(t, account)

	require.True(t, f.svc.SyncDailyAnalytics(ctx).Success)
	before, err := f.insightRepo.ListByAccount(ctx, account.ID)
	require.NoError(t, err)
	timesBefore, err := f.optimalRepo.ListByAccount(ctx, account.ID)
	require.NoError(t, err)
	calls := f.fetcher.callCount()

	result := f.svc.SyncDailyAnalytics(ctx)
	require.True(t, result.Success)
	assert.Equal(t, 1, result.AccountsProcessed)
	assert.Equal(t, calls, f.fetcher.callCount())

	after, err := f.insightRepo.ListByAccount(ctx, account.ID)
	require.NoError(t, err)
	require.Len(t, after, len(before))
	assert.Equal(t, before[0].PostsCount, after[0].PostsCount)
	assert.Equal(t, before[0].AvgImpressions, after[0].AvgImpressions)
	assert.True(t, before[0].LastUpdated.Equal(after[0].LastUpdated))

	timesAfter, err := f.optimalRepo.ListByAccount(ctx, account.ID)
	require.NoError(t, err)
	require.Len(t, timesAfter, len(timesBefore))
	assert.Equal(t, timesBefore[0].ID, timesAfter[0].ID)
}

func TestSyncBlendsSecondObservation(t *testing.T) {
	f := newSyncFixture(t, nil)
	ctx := context.Background()
	account := createAccount(t, f.db, 1, "alice")

	first := createPublishedPost(t, f.db, account.ID, "p1", time.Date(2026, 3, 16, 9, 0, 0, 0, time.UTC), "hello")
	f.fetcher.set("p1", &model.PostMetrics{Impressions: 100, Engagements: 10})
	require.True(t, f.svc.SyncDailyAnalytics(ctx).Success)

	// 两天后重新同步同一帖子，以及一条新帖子
	later := testNow.Add(48 * time.Hour)
	freezeNow(t, later)
	createPublishedPost(t, f.db, account.ID, "p2", time.Date(2026, 3, 9, 9, 30, 0, 0, time.UTC), "world")
	f.fetcher.set("p1", &model.PostMetrics{Impressions: 300, Engagements: 30})
	f.fetcher.set("p2", &model.PostMetrics{Impressions: 100, Engagements: 2})
	require.True(t, f.svc.SyncDailyAnalytics(ctx).Success)

	insights, err := f.insightRepo.ListByAccount(ctx, account.ID)
	require.NoError(t, err)
	require.Len(t, insights, 1)
	bucket := insights[0]
	// 第一批 1 条，第二批 2 条
	assert.Equal(t, 3, bucket.PostsCount)
	assert.InDelta(t, 0.7*100+0.3*200, bucket.AvgImpressions, 1e-9)
	assert.InDelta(t, 0.7*10+0.3*16, bucket.AvgEngagements, 1e-9)
	// 批内互动率 32/400=0.08 -> 50，总数 3 -> 15
	assert.InDelta(t, 65.0, bucket.PerformanceScore, 1e-9)
	assert.InDelta(t, 0.3, bucket.Confidence, 1e-9)
	assert.True(t, later.Equal(bucket.LastUpdated))

	perf := findPerformance(t, f.db, first.ID)
	require.NotNil(t, perf)
	assert.Equal(t, int64(300), perf.Impressions)
	assert.Equal(t, 1, perf.DayOfWeek)
	assert.Equal(t, 9, perf.HourOfDay)
}

func TestSyncSkipsPostsWithoutMetrics(t *testing.T) {
	f := newSyncFixture(t, nil)
	ctx := context.Background()
	account := createAccount(t, f.db, 1, "alice")

	createPublishedPost(t, f.db, account.ID, "ok", time.Date(2026, 3, 18, 14, 0, 0, 0, time.UTC), "a")
	missing := createPublishedPost(t, f.db, account.ID, "gone", time.Date(2026, 3, 18, 15, 0, 0, 0, time.UTC), "b")
	f.fetcher.set("ok", &model.PostMetrics{Impressions: 10, Engagements: 1})

	stat, err := f.svc.SyncAccount(ctx, account.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stat.PostsChecked)
	assert.Equal(t, 1, stat.PostsRecorded)
	assert.Equal(t, 1, stat.BucketsUpdated)

	assert.Nil(t, findPerformance(t, f.db, missing.ID))

	var post model.Post
	require.NoError(t, f.db.First(&post, missing.ID).Error)
	assert.Nil(t, post.MetricsSyncedAt)
}

type failingInsightService struct {
	next      AudienceInsightService
	failForID uint64
}

func (s *failingInsightService) AggregateBatch(ctx context.Context, accountID uint64, batch []*model.PostPerformance) ([]*model.AudienceInsight, error) {
	if accountID == s.failForID {
		return nil, errors.New("boom")
	}
	return s.next.AggregateBatch(ctx, accountID, batch)
}

func TestSyncDailyAnalyticsIsolatesAccountFailures(t *testing.T) {
	var failing *failingInsightService
	f := newSyncFixture(t, func(next AudienceInsightService) AudienceInsightService {
		failing = &failingInsightService{next: next}
		return failing
	})
	ctx := context.Background()

	broken := createAccount(t, f.db, 1, "broken")
	healthy := createAccount(t, f.db, 2, "healthy")
	failing.failForID = broken.ID

	createPublishedPost(t, f.db, broken.ID, "b1", time.Date(2026, 3, 17, 8, 0, 0, 0, time.UTC), "x")
	createPublishedPost(t, f.db, healthy.ID, "h1", time.Date(2026, 3, 17, 8, 0, 0, 0, time.UTC), "y")
	f.fetcher.set("b1", &model.PostMetrics{Impressions: 10, Engagements: 1})
	f.fetcher.set("h1", &model.PostMetrics{Impressions: 10, Engagements: 1})

	result := f.svc.SyncDailyAnalytics(ctx)
	require.True(t, result.Success)
	assert.Equal(t, 1, result.AccountsProcessed)
	assert.Equal(t, 1, result.AccountsFailed)

	healthyInsights, err := f.insightRepo.ListByAccount(ctx, healthy.ID)
	require.NoError(t, err)
	assert.Len(t, healthyInsights, 1)

	brokenInsights, err := f.insightRepo.ListByAccount(ctx, broken.ID)
	require.NoError(t, err)
	assert.Empty(t, brokenInsights)

	var saved model.SocialAccount
	require.NoError(t, f.db.First(&saved, broken.ID).Error)
	assert.Nil(t, saved.LastSyncedAt)
}

func TestSyncDailyAnalyticsSkipsLeasedAccount(t *testing.T) {
	f := newSyncFixture(t, nil)
	ctx := context.Background()
	account := createAccount(t, f.db, 1, "alice")
	createPublishedPost(t, f.db, account.ID, "p1", time.Date(2026, 3, 17, 8, 0, 0, 0, time.UTC), "x")
	f.fetcher.set("p1", &model.PostMetrics{Impressions: 10, Engagements: 1})

	lockKey := consts.AudienceSyncLock + strconv.FormatUint(account.ID, 10)
	ok, err := redis.TryLock(ctx, lockKey, "someone-else", time.Minute, 1)
	require.NoError(t, err)
	require.True(t, ok)

	result := f.svc.SyncDailyAnalytics(ctx)
	require.True(t, result.Success)
	assert.Equal(t, 0, result.AccountsProcessed)
	assert.Equal(t, 1, result.AccountsSkipped)
	assert.Equal(t, 0, f.fetcher.callCount())

	_, err = f.svc.SyncAccount(ctx, account.ID)
	assert.ErrorIs(t, err, ErrSyncInProgress)
}

func TestSyncAccountReleasesLease(t *testing.T) {
	f := newSyncFixture(t, nil)
	ctx := context.Background()
	account := createAccount(t, f.db, 1, "alice")

	_, err := f.svc.SyncAccount(ctx, account.ID)
	require.NoError(t, err)

	lockKey := consts.AudienceSyncLock + strconv.FormatUint(account.ID, 10)
	val, err := redis.GetValue(ctx, lockKey)
	require.NoError(t, err)
	assert.Empty(t, val)
}

func TestSyncAccountValidatesAccount(t *testing.T) {
	f := newSyncFixture(t, nil)
	ctx := context.Background()

	_, err := f.svc.SyncAccount(ctx, 42)
	assert.ErrorIs(t, err, ErrAccountNotFound)

	inactive := &model.SocialAccount{UserID: 1, Platform: consts.PlatformTwitter, Username: "alice", AccessToken: "tok", IsActive: false}
	require.NoError(t, f.db.Create(inactive).Error)
	_, err = f.svc.SyncAccount(ctx, inactive.ID)
	assert.ErrorIs(t, err, ErrAccountInactive)
}

type brokenAccountRepo struct {
	repository.SocialAccountRepo
}

func (brokenAccountRepo) ListActiveAccounts(context.Context, string) ([]*model.SocialAccount, error) {
	return nil, errors.New("database is down")
}

func TestSyncDailyAnalyticsReportsListFailure(t *testing.T) {
	setupMiniRedis(t)
	svc := NewAnalyticsSyncService(brokenAccountRepo{}, nil, newStubFetcher(), nil, nil, "", config.AnalyticsConfig{})

	result := svc.SyncDailyAnalytics(context.Background())
	assert.False(t, result.Success)
	assert.Equal(t, 0, result.AccountsProcessed)
	assert.Equal(t, "database is down", result.Error)
}

func TestSyncCompletesWhenCallerContextCancelled(t *testing.T) {
	f := newSyncFixture(t, nil)
	first := createAccount(t, f.db, 1, "alice")
	second := createAccount(t, f.db, 2, "bob")
	createPublishedPost(t, f.db, first.ID, "a1", time.Date(2026, 3, 17, 8, 0, 0, 0, time.UTC), "x")
	createPublishedPost(t, f.db, second.ID, "b1", time.Date(2026, 3, 18, 20, 0, 0, 0, time.UTC), "y")
	f.fetcher.set("a1", &model.PostMetrics{Impressions: 10, Engagements: 1})
	f.fetcher.set("b1", &model.PostMetrics{Impressions: 20, Engagements: 2})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := f.svc.SyncDailyAnalytics(ctx)
	require.True(t, result.Success)
	assert.Equal(t, 2, result.AccountsProcessed)
	assert.Equal(t, 0, result.AccountsFailed)

	for _, id := range []uint64{first.ID, second.ID} {
		insights, err := f.insightRepo.ListByAccount(context.Background(), id)
		require.NoError(t, err)
		assert.Len(t, insights, 1)
	}

	createPublishedPost(t, f.db, first.ID, "a2", time.Date(2026, 3, 19, 12, 0, 0, 0, time.UTC), "z")
	f.fetcher.set("a2", &model.PostMetrics{Impressions: 30, Engagements: 3})
	stat, err := f.svc.SyncAccount(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stat.PostsRecorded)
}
