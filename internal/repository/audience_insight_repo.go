package repository

import (
	"Postwise/internal/model"
	"context"
	"errors"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BucketMergeFunc 根据桶的当前值（首次为 nil）计算新值
type BucketMergeFunc func(current *model.AudienceInsight) *model.AudienceInsight

type AudienceInsightRepo interface {
	UpsertBucket(ctx context.Context, accountID uint64, dayOfWeek, hourOfDay int, merge BucketMergeFunc) (*model.AudienceInsight, error)
	ListByAccount(ctx context.Context, accountID uint64) ([]*model.AudienceInsight, error)
	GetTopInsight(ctx context.Context, accountID uint64) (*model.AudienceInsight, error)
}

type audienceInsightRepoImpl struct {
	db *gorm.DB
}

func NewAudienceInsightRepository(db *gorm.DB) AudienceInsightRepo {
	return &audienceInsightRepoImpl{db: db}
}

// UpsertBucket 在同一事务内加锁读取桶并写回合并结果
func (r *audienceInsightRepoImpl) UpsertBucket(ctx context.Context, accountID uint64, dayOfWeek, hourOfDay int, merge BucketMergeFunc) (*model.AudienceInsight, error) {
	var saved *model.AudienceInsight
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current model.AudienceInsight
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("account_id = ? AND day_of_week = ? AND hour_of_day = ?", accountID, dayOfWeek, hourOfDay).
			First(&current).Error

		var existing *model.AudienceInsight
		switch {
		case err == nil:
			existing = &current
		case errors.Is(err, gorm.ErrRecordNotFound):
			existing = nil
		default:
			return pkgerrors.Wrap(err, "lock audience bucket")
		}

		next := merge(existing)
		next.AccountID = accountID
		next.DayOfWeek = dayOfWeek
		next.HourOfDay = hourOfDay

		if existing == nil {
			if err = tx.Create(next).Error; err != nil {
				return pkgerrors.Wrap(err, "create audience bucket")
			}
		} else {
			next.ID = existing.ID
			err = tx.Model(&model.AudienceInsight{}).Where("id = ?", existing.ID).Updates(map[string]interface{}{
				"posts_count":       next.PostsCount,
				"avg_impressions":   next.AvgImpressions,
				"avg_engagements":   next.AvgEngagements,
				"performance_score": next.PerformanceScore,
				"confidence":        next.Confidence,
				"last_updated":      next.LastUpdated,
			}).Error
			if err != nil {
				return pkgerrors.Wrap(err, "update audience bucket")
			}
		}
		saved = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	return saved, nil
}

func (r *audienceInsightRepoImpl) ListByAccount(ctx context.Context, accountID uint64) ([]*model.AudienceInsight, error) {
	insights := make([]*model.AudienceInsight, 0)
	result := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("day_of_week ASC").
		Order("hour_of_day ASC").
		Find(&insights)
	return insights, result.Error
}

// GetTopInsight 获取账号表现分最高的桶
func (r *audienceInsightRepoImpl) GetTopInsight(ctx context.Context, accountID uint64) (*model.AudienceInsight, error) {
	var insight model.AudienceInsight
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("performance_score DESC").
		First(&insight).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &insight, nil
}
