package service

import (
	"Postwise/internal/model"
	"Postwise/internal/pkg/util"
	"Postwise/internal/repository"
	"context"
	log "log/slog"
	"time"
)

type PostPerformanceService interface {
	RecordPerformances(ctx context.Context, posts []*model.Post, metrics map[string]*model.PostMetrics) ([]*model.PostPerformance, error)
}

type PostPerformanceServiceImpl struct {
	postRepo repository.PostRepo
	perfRepo repository.PostPerformanceRepo
}

func NewPostPerformanceService(postRepo repository.PostRepo, perfRepo repository.PostPerformanceRepo) PostPerformanceService {
	return &PostPerformanceServiceImpl{
		postRepo: postRepo,
		perfRepo: perfRepo,
	}
}

// RecordPerformances 回写帖子指标并 Upsert 表现快照，返回本次写入的记录
// 平台未返回指标的帖子直接跳过；单个帖子写入失败只记录日志
func (s *PostPerformanceServiceImpl) RecordPerformances(ctx context.Context, posts []*model.Post, metrics map[string]*model.PostMetrics) ([]*model.PostPerformance, error) {
	now := nowFunc()
	recorded := make([]*model.PostPerformance, 0, len(posts))
	for _, post := range posts {
		if post == nil || post.ExternalID == nil || post.PublishedAt == nil {
			continue
		}
		m, ok := metrics[*post.ExternalID]
		if !ok || m == nil {
			continue
		}

		if err := ctx.Err(); err != nil {
			return recorded, err
		}

		if err := s.postRepo.UpdatePostMetrics(ctx, post.ID, m, now); err != nil {
			log.ErrorContext(ctx, "failed to update post metrics", "postId", post.ID, "err", err)
			continue
		}

		perf := buildPerformance(post, m, now)
		if err := s.perfRepo.SaveOrUpdatePerformance(ctx, perf); err != nil {
			log.ErrorContext(ctx, "failed to save post performance", "postId", post.ID, "err", err)
			continue
		}
		recorded = append(recorded, perf)
	}
	return recorded, nil
}

func buildPerformance(post *model.Post, m *model.PostMetrics, now time.Time) *model.PostPerformance {
	postedAt := post.PublishedAt.UTC()
	day, hour := util.BucketOf(postedAt)
	features := util.ExtractContentFeatures(post.Content, post.MediaCount)
	return &model.PostPerformance{
		PostID:         post.ID,
		AccountID:      post.AccountID,
		PostedAt:       postedAt,
		DayOfWeek:      day,
		HourOfDay:      hour,
		Impressions:    m.Impressions,
		Engagements:    m.Engagements,
		Likes:          m.Likes,
		Replies:        m.Replies,
		Reposts:        m.Reposts,
		Clicks:         m.Clicks,
		EngagementRate: EngagementRate(m.Engagements, m.Impressions),
		ContentLength:  features.Length,
		HasMedia:       features.HasMedia,
		MediaCount:     features.MediaCount,
		HasHashtags:    features.HasHashtags,
		HashtagCount:   features.HashtagCount,
		LastSyncedAt:   now,
	}
}

// EngagementRate 曝光为 0 时互动率记为 0
func EngagementRate(engagements, impressions int64) float64 {
	if impressions <= 0 {
		return 0
	}
	return float64(engagements) / float64(impressions)
}
