package service

import (
	"Postwise/internal/model"
	"Postwise/internal/pkg/util"
	"math"
	"time"
)

const (
	blendOldWeight   = 0.7
	blendBatchWeight = 0.3

	rateScoreFactor = 1000.0
	rateScoreCap    = 50.0
	volumeScorePer  = 5.0
	volumeScoreCap  = 30.0
	maxScore        = 100.0

	confidenceFullPosts = 10.0
)

// BucketKey (星期, 小时) 桶坐标，UTC
type BucketKey struct {
	DayOfWeek int
	HourOfDay int
}

// BucketBatch 一次同步中落在同一桶内的帖子汇总
type BucketBatch struct {
	Key              BucketKey
	Count            int
	TotalImpressions int64
	TotalEngagements int64
}

// EngagementRate 批内互动率
func (b *BucketBatch) EngagementRate() float64 {
	if b.TotalImpressions <= 0 {
		return 0
	}
	return float64(b.TotalEngagements) / float64(b.TotalImpressions)
}

func (b *BucketBatch) AvgImpressions() float64 {
	if b.Count == 0 {
		return 0
	}
	return float64(b.TotalImpressions) / float64(b.Count)
}

func (b *BucketBatch) AvgEngagements() float64 {
	if b.Count == 0 {
		return 0
	}
	return float64(b.TotalEngagements) / float64(b.Count)
}

// GroupByBucket 按发布时间分桶，桶的顺序为首次出现的顺序
func GroupByBucket(batch []*model.PostPerformance) []*BucketBatch {
	index := make(map[BucketKey]*BucketBatch)
	groups := make([]*BucketBatch, 0)
	for _, perf := range batch {
		if perf == nil {
			continue
		}
		day, hour := util.BucketOf(perf.PostedAt)
		key := BucketKey{DayOfWeek: day, HourOfDay: hour}
		g, ok := index[key]
		if !ok {
			g = &BucketBatch{Key: key}
			index[key] = g
			groups = append(groups, g)
		}
		g.Count++
		g.TotalImpressions += perf.Impressions
		g.TotalEngagements += perf.Engagements
	}
	return groups
}

// BlendAverage 首次观测直接取批均值，否则按 0.7/0.3 加权
func BlendAverage(old, batchAvg float64, first bool) float64 {
	if first {
		return batchAvg
	}
	return blendOldWeight*old + blendBatchWeight*batchAvg
}

// PerformanceScore 互动率分（上限 50）+ 样本量分（上限 30），总分不超过 100
func PerformanceScore(rate float64, totalPosts int) float64 {
	if rate < 0 || math.IsNaN(rate) {
		rate = 0
	}
	if totalPosts < 0 {
		totalPosts = 0
	}
	rateScore := math.Min(rate*rateScoreFactor, rateScoreCap)
	volumeScore := math.Min(float64(totalPosts)*volumeScorePer, volumeScoreCap)
	return math.Min(rateScore+volumeScore, maxScore)
}

func Confidence(totalPosts int) float64 {
	if totalPosts <= 0 {
		return 0
	}
	return math.Min(float64(totalPosts)/confidenceFullPosts, 1.0)
}

// MergeBucket 把一批观测合并进桶的当前值，current 为 nil 表示首次观测
func MergeBucket(current *model.AudienceInsight, batch *BucketBatch, now time.Time) *model.AudienceInsight {
	first := current == nil
	next := &model.AudienceInsight{}
	if !first {
		*next = *current
	}

	next.PostsCount += batch.Count
	next.AvgImpressions = BlendAverage(next.AvgImpressions, batch.AvgImpressions(), first)
	next.AvgEngagements = BlendAverage(next.AvgEngagements, batch.AvgEngagements(), first)
	next.PerformanceScore = PerformanceScore(batch.EngagementRate(), next.PostsCount)
	next.Confidence = Confidence(next.PostsCount)
	next.LastUpdated = now
	return next
}
