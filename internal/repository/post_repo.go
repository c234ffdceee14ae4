package repository

import (
	"Postwise/internal/model"
	"Postwise/internal/pkg/consts"
	"context"
	"time"

	"gorm.io/gorm"
)

type PostRepo interface {
	// FindPostsNeedingSync 查询窗口内已发布、且指标过期或从未同步的帖子
	FindPostsNeedingSync(ctx context.Context, accountID uint64, publishedSince time.Time, staleBefore time.Time, limit int) ([]*model.Post, error)
	UpdatePostMetrics(ctx context.Context, postID uint64, metrics *model.PostMetrics, syncedAt time.Time) error
}

type postRepoImpl struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepo {
	return &postRepoImpl{
		db: db,
	}
}

// FindPostsNeedingSync 从未同步过的帖子优先，其余按上次同步时间由旧到新
func (s *postRepoImpl) FindPostsNeedingSync(ctx context.Context, accountID uint64, publishedSince time.Time, staleBefore time.Time, limit int) ([]*model.Post, error) {
	posts := make([]*model.Post, 0)
	err := s.db.WithContext(ctx).
		Where("account_id = ? AND status = ?", accountID, consts.PostStatusPublished).
		Where("external_id IS NOT NULL AND external_id <> ''").
		Where("published_at >= ?", publishedSince).
		Where("(metrics_synced_at IS NULL OR metrics_synced_at < ?)", staleBefore).
		Order("metrics_synced_at IS NOT NULL").
		Order("metrics_synced_at ASC").
		Order("published_at ASC").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *postRepoImpl) UpdatePostMetrics(ctx context.Context, postID uint64, metrics *model.PostMetrics, syncedAt time.Time) error {
	return s.db.WithContext(ctx).Model(&model.Post{}).Where("id = ?", postID).Updates(map[string]interface{}{
		"impressions":       metrics.Impressions,
		"engagements":       metrics.Engagements,
		"likes":             metrics.Likes,
		"replies":           metrics.Replies,
		"reposts":           metrics.Reposts,
		"clicks":            metrics.Clicks,
		"metrics_synced_at": syncedAt,
	}).Error
}
