package handler

import (
	"Postwise/internal/api/dto"
	"Postwise/internal/pkg/response"
	"Postwise/internal/pkg/util"
	"Postwise/internal/service"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	syncSvc           service.AnalyticsSyncService
	recommendationSvc service.RecommendationService
	accountSvc        service.SocialAccountService
}

func NewAnalyticsHandler(
	syncSvc service.AnalyticsSyncService,
	recommendationSvc service.RecommendationService,
	accountSvc service.SocialAccountService,
) *AnalyticsHandler {
	return &AnalyticsHandler{
		syncSvc:           syncSvc,
		recommendationSvc: recommendationSvc,
		accountSvc:        accountSvc,
	}
}

// SyncAll 管理员手动触发全量同步
func (s *AnalyticsHandler) SyncAll(c *gin.Context) {
	result := s.syncSvc.SyncDailyAnalytics(c.Request.Context())
	response.Success(c, result)
}

func (s *AnalyticsHandler) SyncAccount(c *gin.Context) {
	accountID, ok := s.ownedAccountID(c)
	if !ok {
		return
	}
	stat, err := s.syncSvc.SyncAccount(c.Request.Context(), accountID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, stat)
}

func (s *AnalyticsHandler) GetBestTimes(c *gin.Context) {
	accountID, ok := s.ownedAccountID(c)
	if !ok {
		return
	}
	response.Success(c, s.recommendationSvc.GetPersonalizedBestTimes(c.Request.Context(), accountID))
}

func (s *AnalyticsHandler) GetSummary(c *gin.Context) {
	accountID, ok := s.ownedAccountID(c)
	if !ok {
		return
	}
	response.Success(c, s.recommendationSvc.GetAudienceAnalyticsSummary(c.Request.Context(), accountID))
}

func (s *AnalyticsHandler) GetInsights(c *gin.Context) {
	accountID, ok := s.ownedAccountID(c)
	if !ok {
		return
	}
	response.Success(c, s.recommendationSvc.GetAudienceInsights(c.Request.Context(), accountID))
}

// ownedAccountID 解析路径中的账号并校验归属，失败时已写回响应
func (s *AnalyticsHandler) ownedAccountID(c *gin.Context) (uint64, bool) {
	var path dto.AccountPathDTO
	if err := c.ShouldBindUri(&path); err != nil {
		response.Fail(c, response.BadRequest, "参数错误")
		return 0, false
	}
	if err := util.ValidateDTO(&path); err != nil {
		response.Fail(c, response.BadRequest, err.Error())
		return 0, false
	}

	userID := c.GetUint64("user_id")
	if _, err := s.accountSvc.GetOwnedAccount(c.Request.Context(), path.AccountID, userID); err != nil {
		response.Error(c, err)
		return 0, false
	}
	return path.AccountID, true
}
