package service

import (
	"Postwise/internal/model"
	"Postwise/internal/repository"
	"context"
	log "log/slog"
	"time"
)

// nowFunc 统一使用 UTC，测试中可替换
var nowFunc = func() time.Time {
	return time.Now().UTC()
}

type AudienceInsightService interface {
	AggregateBatch(ctx context.Context, accountID uint64, batch []*model.PostPerformance) ([]*model.AudienceInsight, error)
}

type AudienceInsightServiceImpl struct {
	insightRepo    repository.AudienceInsightRepo
	optimalTimeSvc OptimalTimeService
}

func NewAudienceInsightService(insightRepo repository.AudienceInsightRepo, optimalTimeSvc OptimalTimeService) AudienceInsightService {
	return &AudienceInsightServiceImpl{
		insightRepo:    insightRepo,
		optimalTimeSvc: optimalTimeSvc,
	}
}

// AggregateBatch 把一批表现记录合并进对应的时间桶，然后重算推荐时段。
// 中途失败时已写入的桶不回滚，同样触发重算
func (s *AudienceInsightServiceImpl) AggregateBatch(ctx context.Context, accountID uint64, batch []*model.PostPerformance) ([]*model.AudienceInsight, error) {
	groups := GroupByBucket(batch)
	if len(groups) == 0 {
		return nil, nil
	}

	now := nowFunc()
	updated := make([]*model.AudienceInsight, 0, len(groups))
	for _, group := range groups {
		g := group
		saved, err := s.insightRepo.UpsertBucket(ctx, accountID, g.Key.DayOfWeek, g.Key.HourOfDay,
			func(current *model.AudienceInsight) *model.AudienceInsight {
				return MergeBucket(current, g, now)
			})
		if err != nil {
			log.ErrorContext(ctx, "failed to upsert audience bucket",
				"accountId", accountID, "day", g.Key.DayOfWeek, "hour", g.Key.HourOfDay, "err", err)
			// 已合并的桶仍要反映到推荐时段里
			if len(updated) > 0 {
				if _, rerr := s.optimalTimeSvc.RecalculateOptimalTimes(ctx, accountID); rerr != nil {
					log.ErrorContext(ctx, "failed to recalculate optimal times after partial aggregation",
						"accountId", accountID, "err", rerr)
				}
			}
			return updated, err
		}
		updated = append(updated, saved)
	}

	if _, err := s.optimalTimeSvc.RecalculateOptimalTimes(ctx, accountID); err != nil {
		return updated, err
	}
	return updated, nil
}
