package platform

import (
	"Postwise/internal/api/config"
	"Postwise/internal/model"
	"context"
	log "log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
	"golang.org/x/time/rate"
)

const (
	DefaultBatchSize = 100
	defaultTimeout   = 15 * time.Second
	tweetFields      = "public_metrics,non_public_metrics"
)

// MetricsFetcher 按外部帖子 ID 批量拉取互动指标
type MetricsFetcher interface {
	// FetchMetrics 返回 externalID -> 指标，失败的批次直接缺省，不返回错误
	FetchMetrics(ctx context.Context, credential string, externalIDs []string) map[string]*model.PostMetrics
}

type tweetsResponse struct {
	Data []tweetData `json:"data"`
}

type tweetData struct {
	ID               string            `json:"id"`
	PublicMetrics    publicMetrics     `json:"public_metrics"`
	NonPublicMetrics *nonPublicMetrics `json:"non_public_metrics,omitempty"`
}

type publicMetrics struct {
	RetweetCount    int64 `json:"retweet_count"`
	ReplyCount      int64 `json:"reply_count"`
	LikeCount       int64 `json:"like_count"`
	QuoteCount      int64 `json:"quote_count"`
	ImpressionCount int64 `json:"impression_count"`
}

type nonPublicMetrics struct {
	ImpressionCount   *int64 `json:"impression_count,omitempty"`
	Engagements       *int64 `json:"engagements,omitempty"`
	URLLinkClicks     int64  `json:"url_link_clicks"`
	UserProfileClicks int64  `json:"user_profile_clicks"`
}

type Client struct {
	httpClient *resty.Client
	limiter    *rate.Limiter
	batchSize  int
}

// NewClient 根据平台配置创建指标客户端
func NewClient(cfg config.PlatformConfig) *Client {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	batchSize := cfg.BatchSize
	if batchSize <= 0 || batchSize > DefaultBatchSize {
		batchSize = DefaultBatchSize
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}

	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetJSONMarshaler(json.Marshal).
		SetJSONUnmarshaler(json.Unmarshal)

	return &Client{
		httpClient: httpClient,
		limiter:    rate.NewLimiter(limit, 1),
		batchSize:  batchSize,
	}
}

func (s *Client) FetchMetrics(ctx context.Context, credential string, externalIDs []string) map[string]*model.PostMetrics {
	result := make(map[string]*model.PostMetrics, len(externalIDs))
	if len(externalIDs) == 0 {
		return result
	}

	for start := 0; start < len(externalIDs); start += s.batchSize {
		end := start + s.batchSize
		if end > len(externalIDs) {
			end = len(externalIDs)
		}
		batch := externalIDs[start:end]

		if err := s.limiter.Wait(ctx); err != nil {
			log.WarnContext(ctx, "metrics fetch aborted", "err", err, "remaining", len(externalIDs)-start)
			break
		}

		tweets, err := s.fetchBatch(ctx, credential, batch)
		if err != nil {
			log.ErrorContext(ctx, "metrics batch fetch failed", "batch_start", start, "batch_size", len(batch), "err", err)
			continue
		}

		for _, t := range tweets {
			result[t.ID] = toPostMetrics(t)
		}
	}

	return result
}

func (s *Client) fetchBatch(ctx context.Context, credential string, ids []string) ([]tweetData, error) {
	var payload tweetsResponse
	resp, err := s.httpClient.R().
		SetContext(ctx).
		SetAuthToken(credential).
		SetQueryParam("ids", strings.Join(ids, ",")).
		SetQueryParam("tweet.fields", tweetFields).
		SetResult(&payload).
		Get("/tweets")
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, &StatusError{StatusCode: resp.StatusCode(), Body: truncate(resp.String(), 500)}
	}
	return payload.Data, nil
}

// toPostMetrics 非公开曝光优先，缺失时回退到公开曝光；未直接给出互动数时按各项求和
func toPostMetrics(t tweetData) *model.PostMetrics {
	m := &model.PostMetrics{
		Impressions: t.PublicMetrics.ImpressionCount,
		Likes:       t.PublicMetrics.LikeCount,
		Replies:     t.PublicMetrics.ReplyCount,
		Reposts:     t.PublicMetrics.RetweetCount,
		Engagements: t.PublicMetrics.LikeCount + t.PublicMetrics.ReplyCount + t.PublicMetrics.RetweetCount + t.PublicMetrics.QuoteCount,
	}

	if np := t.NonPublicMetrics; np != nil {
		if np.ImpressionCount != nil {
			m.Impressions = *np.ImpressionCount
		}
		if np.Engagements != nil {
			m.Engagements = *np.Engagements
		}
		m.Clicks = np.URLLinkClicks + np.UserProfileClicks
	}

	return m
}

// truncate 按字节截断，退回到最近的 rune 起点
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit] + "...[truncated]"
}
