package service

import (
	"Postwise/internal/model"
	"Postwise/internal/pkg/consts"
	"Postwise/internal/pkg/database"
	"Postwise/internal/pkg/logger"
	"Postwise/internal/pkg/redis"
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	redisv9 "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// 2026-03-20 是周五
var testNow = time.Date(2026, 3, 20, 3, 0, 0, 0, time.UTC)

func newTestDB(t *testing.T) *gorm.DB {
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{
		Logger: logger.NewGormLogger(gormlogger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.AutoMigrate(db))
	return db
}

func setupMiniRedis(t *testing.T) *miniredis.Miniredis {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	redis.Rdb = redisv9.NewClient(&redisv9.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = redis.Rdb.Close()
		mr.Close()
	})
	return mr
}

func freezeNow(t *testing.T, at time.Time) {
	prev := nowFunc
	nowFunc = func() time.Time { return at }
	t.Cleanup(func() { nowFunc = prev })
}

// stubFetcher 按外部 ID 返回固定指标，未登记的 ID 视为拉取失败
type stubFetcher struct {
	mu      sync.Mutex
	metrics map[string]*model.PostMetrics
	calls   [][]string
}

func newStubFetcher() *stubFetcher {
	return &stubFetcher{metrics: make(map[string]*model.PostMetrics)}
}

func (f *stubFetcher) set(id string, m *model.PostMetrics) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.metrics[id] = m
}

func (f *stubFetcher) FetchMetrics(_ context.Context, _ string, externalIDs []string) map[string]*model.PostMetrics {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, append([]string(nil), externalIDs...))
	result := make(map[string]*model.PostMetrics)
	for _, id := range externalIDs {
		if m, ok := f.metrics[id]; ok {
			copied := *m
			result[id] = &copied
		}
	}
	return result
}

func (f *stubFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func createAccount(t *testing.T, db *gorm.DB, userID uint64, username string) *model.SocialAccount {
	account := &model.SocialAccount{
		UserID:      userID,
		Platform:    consts.PlatformTwitter,
		Username:    username,
		AccessToken: "token-" + username,
		IsActive:    true,
	}
	require.NoError(t, db.Create(account).Error)
	return account
}

func createPublishedPost(t *testing.T, db *gorm.DB, accountID uint64, externalID string, publishedAt time.Time, content string) *model.Post {
	id := externalID
	at := publishedAt.UTC()
	post := &model.Post{
		AccountID:   accountID,
		Content:     content,
		Status:      consts.PostStatusPublished,
		ExternalID:  &id,
		PublishedAt: &at,
	}
	require.NoError(t, db.Create(post).Error)
	return post
}

func findPerformance(t *testing.T, db *gorm.DB, postID uint64) *model.PostPerformance {
	var rows []*model.PostPerformance
	require.NoError(t, db.Where("post_id = ?", postID).Limit(1).Find(&rows).Error)
	if len(rows) == 0 {
		return nil
	}
	return rows[0]
}
