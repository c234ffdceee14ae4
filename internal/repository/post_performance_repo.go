package repository

import (
	"Postwise/internal/model"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostPerformanceRepo interface {
	SaveOrUpdatePerformance(ctx context.Context, perf *model.PostPerformance) error
	CountByAccount(ctx context.Context, accountID uint64) (int64, error)
}

type postPerformanceRepoImpl struct {
	db *gorm.DB
}

func NewPostPerformanceRepository(db *gorm.DB) PostPerformanceRepo {
	return &postPerformanceRepoImpl{db: db}
}

// SaveOrUpdatePerformance 以 post_id 为键 Upsert。
// 冲突时只刷新计数、互动率与同步时间，桶坐标与内容特征保持首次写入的值
func (r *postPerformanceRepoImpl) SaveOrUpdatePerformance(ctx context.Context, perf *model.PostPerformance) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "post_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"impressions",
			"engagements",
			"likes",
			"replies",
			"reposts",
			"clicks",
			"engagement_rate",
			"last_synced_at",
		}),
	}).Create(perf).Error
}

// CountByAccount 账号累计分析过的帖子数
func (r *postPerformanceRepoImpl) CountByAccount(ctx context.Context, accountID uint64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.PostPerformance{}).
		Where("account_id = ?", accountID).
		Distinct("post_id").
		Count(&count).Error
	return count, err
}
