package service

import (
	"Postwise/internal/model"
	"Postwise/internal/pkg/consts"
	"Postwise/internal/pkg/redis"
	"Postwise/internal/repository"
	"context"
	log "log/slog"
	"math"
	"sort"
	"strconv"
	"strings"
)

const (
	reasonProven    = "Proven high engagement"
	reasonTrend     = "Good engagement trend"
	reasonPromising = "Promising time slot"
	reasonHighReach = "High interaction rate"
	reasonSeparator = " • "

	provenConfidence       = 0.7
	trendConfidence        = 0.3
	highInteractionAverage = 100.0
)

type OptimalTimeService interface {
	RecalculateOptimalTimes(ctx context.Context, accountID uint64) ([]*model.OptimalTime, error)
}

type OptimalTimeServiceImpl struct {
	insightRepo     repository.AudienceInsightRepo
	optimalTimeRepo repository.OptimalTimeRepo
}

func NewOptimalTimeService(insightRepo repository.AudienceInsightRepo, optimalTimeRepo repository.OptimalTimeRepo) OptimalTimeService {
	return &OptimalTimeServiceImpl{
		insightRepo:     insightRepo,
		optimalTimeRepo: optimalTimeRepo,
	}
}

// RecalculateOptimalTimes 基于账号全部桶重建推荐时段，并清除推荐缓存
func (s *OptimalTimeServiceImpl) RecalculateOptimalTimes(ctx context.Context, accountID uint64) ([]*model.OptimalTime, error) {
	insights, err := s.insightRepo.ListByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	times := ComputeOptimalTimes(accountID, insights)
	if err = s.optimalTimeRepo.ReplaceForAccount(ctx, accountID, times); err != nil {
		return nil, err
	}

	id := strconv.FormatUint(accountID, 10)
	if err = redis.DeleteKey(ctx, consts.AudienceBestTimesKey+id, consts.AudienceSummaryKey+id); err != nil {
		log.WarnContext(ctx, "failed to invalidate audience cache", "accountId", accountID, "err", err)
	}

	log.InfoContext(ctx, "optimal posting times recalculated", "accountId", accountID, "buckets", len(insights), "slots", len(times))
	return times, nil
}

// ComputeOptimalTimes 每天取表现分最高的 3 个桶，同分保持输入顺序
func ComputeOptimalTimes(accountID uint64, insights []*model.AudienceInsight) []*model.OptimalTime {
	byDay := make(map[int][]*model.AudienceInsight)
	days := make([]int, 0, 7)
	for _, insight := range insights {
		if insight == nil {
			continue
		}
		if _, ok := byDay[insight.DayOfWeek]; !ok {
			days = append(days, insight.DayOfWeek)
		}
		byDay[insight.DayOfWeek] = append(byDay[insight.DayOfWeek], insight)
	}
	sort.Ints(days)

	times := make([]*model.OptimalTime, 0, len(days)*consts.RankedSlotsPerDay)
	for _, day := range days {
		candidates := byDay[day]
		sort.SliceStable(candidates, func(i, j int) bool {
			return candidates[i].PerformanceScore > candidates[j].PerformanceScore
		})
		for i, insight := range candidates {
			if i >= consts.RankedSlotsPerDay {
				break
			}
			times = append(times, &model.OptimalTime{
				AccountID:     accountID,
				DayOfWeek:     day,
				Rank:          i + 1,
				HourOfDay:     insight.HourOfDay,
				Minute:        0,
				Reason:        SlotReason(insight),
				ExpectedReach: int64(math.Round(insight.AvgImpressions)),
			})
		}
	}
	return times
}

// SlotReason 根据置信度和平均互动数生成推荐理由
func SlotReason(insight *model.AudienceInsight) string {
	reasons := make([]string, 0, 2)
	switch {
	case insight.Confidence > provenConfidence:
		reasons = append(reasons, reasonProven)
	case insight.Confidence > trendConfidence:
		reasons = append(reasons, reasonTrend)
	default:
		reasons = append(reasons, reasonPromising)
	}
	if insight.AvgEngagements > highInteractionAverage {
		reasons = append(reasons, reasonHighReach)
	}
	return strings.Join(reasons, reasonSeparator)
}
