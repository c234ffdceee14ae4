package service

import (
	"Postwise/internal/api/dto"
	"Postwise/internal/model"
	"Postwise/internal/pkg/consts"
	"Postwise/internal/pkg/redis"
	"Postwise/internal/pkg/util"
	"Postwise/internal/repository"
	"context"
	"fmt"
	log "log/slog"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/jinzhu/copier"
)

const defaultCacheTTL = time.Hour

type defaultSlot struct {
	hour   int
	reason string
}

// 行业默认发帖时段，数据不足时按顺序补齐
var defaultSlots = []defaultSlot{
	{hour: 9, reason: "Morning check-in"},
	{hour: 12, reason: "Lunch break scroll"},
	{hour: 18, reason: "After-work peak"},
	{hour: 21, reason: "Evening wind-down"},
}

type RecommendationService interface {
	GetPersonalizedBestTimes(ctx context.Context, accountID uint64) []*dto.TimeSlotDTO
	GetAudienceAnalyticsSummary(ctx context.Context, accountID uint64) *dto.AudienceSummaryDTO
	GetAudienceInsights(ctx context.Context, accountID uint64) []*dto.AudienceInsightDTO
}

type RecommendationServiceImpl struct {
	optimalTimeRepo repository.OptimalTimeRepo
	insightRepo     repository.AudienceInsightRepo
	perfRepo        repository.PostPerformanceRepo
	cacheTTL        time.Duration
}

func NewRecommendationService(
	optimalTimeRepo repository.OptimalTimeRepo,
	insightRepo repository.AudienceInsightRepo,
	perfRepo repository.PostPerformanceRepo,
	cacheTTL time.Duration,
) RecommendationService {
	if cacheTTL <= 0 {
		cacheTTL = defaultCacheTTL
	}
	return &RecommendationServiceImpl{
		optimalTimeRepo: optimalTimeRepo,
		insightRepo:     insightRepo,
		perfRepo:        perfRepo,
		cacheTTL:        cacheTTL,
	}
}

// GetPersonalizedBestTimes 返回 4 个推荐时段，个性化时段在前，不足部分用默认时段补齐
func (s *RecommendationServiceImpl) GetPersonalizedBestTimes(ctx context.Context, accountID uint64) []*dto.TimeSlotDTO {
	key := consts.AudienceBestTimesKey + strconv.FormatUint(accountID, 10)
	var cached []*dto.TimeSlotDTO
	if s.getCache(ctx, key, &cached) {
		return cached
	}

	times, err := s.optimalTimeRepo.ListByAccount(ctx, accountID)
	if err != nil {
		log.ErrorContext(ctx, "failed to load optimal times, fallback to defaults", "accountId", accountID, "err", err)
		return padWithDefaults(nil)
	}

	slots := make([]*dto.TimeSlotDTO, 0, consts.BestTimesLimit)
	for _, t := range times {
		if len(slots) >= consts.BestTimesLimit {
			break
		}
		slots = append(slots, toPersonalizedSlot(t))
	}
	slots = padWithDefaults(slots)

	s.setCache(ctx, key, slots)
	return slots
}

// GetAudienceAnalyticsSummary 受众概览，读取失败时降级为空概览
func (s *RecommendationServiceImpl) GetAudienceAnalyticsSummary(ctx context.Context, accountID uint64) *dto.AudienceSummaryDTO {
	key := consts.AudienceSummaryKey + strconv.FormatUint(accountID, 10)
	cached := &dto.AudienceSummaryDTO{}
	if s.getCache(ctx, key, cached) {
		return cached
	}

	summary := &dto.AudienceSummaryDTO{AccountID: accountID, IsLearning: true}

	total, err := s.perfRepo.CountByAccount(ctx, accountID)
	if err != nil {
		log.ErrorContext(ctx, "failed to count analyzed posts", "accountId", accountID, "err", err)
		return summary
	}
	summary.TotalPostsAnalyzed = total
	summary.IsLearning = total < consts.LearningThreshold

	top, err := s.insightRepo.GetTopInsight(ctx, accountID)
	if err != nil {
		log.ErrorContext(ctx, "failed to load top audience insight", "accountId", accountID, "err", err)
		return summary
	}
	if top != nil {
		day, hour := top.DayOfWeek, top.HourOfDay
		summary.BestDay = &day
		summary.BestDayName = util.WeekdayName(day)
		summary.BestHour = &hour
		summary.BestTime = util.FormatClock(hour, 0)
		summary.BestPerformanceScore = top.PerformanceScore
	}

	s.setCache(ctx, key, summary)
	return summary
}

// GetAudienceInsights 账号全部时间桶，按星期、小时排序
func (s *RecommendationServiceImpl) GetAudienceInsights(ctx context.Context, accountID uint64) []*dto.AudienceInsightDTO {
	result := make([]*dto.AudienceInsightDTO, 0)
	insights, err := s.insightRepo.ListByAccount(ctx, accountID)
	if err != nil {
		log.ErrorContext(ctx, "failed to list audience insights", "accountId", accountID, "err", err)
		return result
	}
	if err = copier.Copy(&result, &insights); err != nil {
		log.ErrorContext(ctx, "failed to copy audience insights", "accountId", accountID, "err", err)
		return make([]*dto.AudienceInsightDTO, 0)
	}
	return result
}

func (s *RecommendationServiceImpl) getCache(ctx context.Context, key string, dest interface{}) bool {
	raw, err := redis.GetValue(ctx, key)
	if err != nil {
		log.WarnContext(ctx, "failed to read recommendation cache", "key", key, "err", err)
		return false
	}
	if raw == "" {
		return false
	}
	if err = json.Unmarshal([]byte(raw), dest); err != nil {
		log.WarnContext(ctx, "invalid recommendation cache payload", "key", key, "err", err)
		return false
	}
	return true
}

func (s *RecommendationServiceImpl) setCache(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err = redis.SetWithExpiration(ctx, key, data, s.cacheTTL); err != nil {
		log.WarnContext(ctx, "failed to write recommendation cache", "key", key, "err", err)
	}
}

func toPersonalizedSlot(t *model.OptimalTime) *dto.TimeSlotDTO {
	slot := &dto.TimeSlotDTO{}
	_ = copier.Copy(slot, t)
	day := t.DayOfWeek
	slot.Day = &day
	slot.DayName = util.WeekdayName(day)
	slot.Time = clock24(t.HourOfDay, t.Minute)
	slot.IsPersonalized = true
	slot.Description = fmt.Sprintf("%s at %s – %s", slot.DayName, util.FormatClock(t.HourOfDay, t.Minute), t.Reason)
	return slot
}

// padWithDefaults 在末尾追加默认时段直到 4 个
func padWithDefaults(slots []*dto.TimeSlotDTO) []*dto.TimeSlotDTO {
	if slots == nil {
		slots = make([]*dto.TimeSlotDTO, 0, consts.BestTimesLimit)
	}
	for i := 0; len(slots) < consts.BestTimesLimit && i < len(defaultSlots); i++ {
		d := defaultSlots[i]
		slots = append(slots, &dto.TimeSlotDTO{
			HourOfDay:      d.hour,
			Minute:         0,
			Time:           clock24(d.hour, 0),
			Rank:           i + 1,
			Reason:         d.reason,
			IsPersonalized: false,
			Description:    fmt.Sprintf("Industry default at %s – %s", util.FormatClock(d.hour, 0), d.reason),
		})
	}
	return slots
}

func clock24(hour, minute int) string {
	return fmt.Sprintf("%02d:%02d", hour, minute)
}
